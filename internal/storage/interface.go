package storage

import (
	"context"

	"github.com/playerbase/playerbase/internal/model"
)

// Storage defines the interface for data persistence.
//
// IncrementScore and AddAchievement are the only mutation paths for
// scores and achievement sets. Implementations must make them atomic at
// the storage layer so concurrent calls for the same login never lose
// updates or duplicate entries.
type Storage interface {
	// User operations

	// CreateUser persists a new user. It returns model.ErrUserExists if
	// the login or the player id is already taken; callers cannot tell
	// which field collided.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)
	GetUserByPlayerID(ctx context.Context, id model.PlayerID) (*model.User, error)
	LoginExists(ctx context.Context, login string) (bool, error)

	// Score and achievement operations

	// IncrementScore atomically adds delta to the user's score. The
	// returned flag reports whether anything was modified: it is false
	// both when no user matched and when delta was zero.
	IncrementScore(ctx context.Context, login string, delta int) (bool, error)
	// AddAchievement atomically adds achievementID to the user's
	// achievement set. The returned flag is false both when no user
	// matched and when the achievement was already present.
	AddAchievement(ctx context.Context, login, achievementID string) (bool, error)
	// TopByScore returns up to limit users ordered by score descending.
	// Tie order is implementation-defined.
	TopByScore(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)

	// Achievement catalog operations

	// SaveAchievement persists a catalog entry, overwriting any existing
	// entry with the same id.
	SaveAchievement(ctx context.Context, a *model.Achievement) error
	GetAchievement(ctx context.Context, id string) (*model.Achievement, error)
	ListAchievements(ctx context.Context) ([]*model.Achievement, error)
}
