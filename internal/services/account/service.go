package account

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/playerbase/playerbase/internal/dependencies/clock"
	"github.com/playerbase/playerbase/internal/dependencies/random"
	"github.com/playerbase/playerbase/internal/model"
	"github.com/playerbase/playerbase/internal/services/token"
	"github.com/playerbase/playerbase/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// hashCost is the bcrypt work factor for stored passwords
const hashCost = bcrypt.DefaultCost

// Credentials is the result of a successful authentication
type Credentials struct {
	Token    string
	PlayerID model.PlayerID
}

// Service implements the account and score operations. It holds no
// state of its own; every call is a single transition against storage.
type Service struct {
	storage storage.Storage
	tokens  *token.Issuer
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new account Service
func New(store storage.Storage, tokens *token.Issuer, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		tokens:  tokens,
		clock:   clk,
		random:  rnd,
		logger:  logger,
	}
}

// Register creates a new user with a hashed password, a fresh player id,
// zero score and no achievements. It returns model.ErrUserExists if the
// login (or, improbably, the generated player id) is already taken.
func (s *Service) Register(ctx context.Context, login, password string) (model.PlayerID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}

	playerID := s.newPlayerID()

	user := &model.User{
		Login:        login,
		PasswordHash: string(hash),
		PlayerID:     playerID,
		Score:        0,
		Achievements: []string{},
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return "", err
	}

	s.logger.Info("user registered", slog.String("login", login), slog.String("player_id", string(playerID)))
	return playerID, nil
}

// CheckLoginAvailable reports whether no user holds the given login
func (s *Service) CheckLoginAvailable(ctx context.Context, login string) (bool, error) {
	exists, err := s.storage.LoginExists(ctx, login)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// Authenticate verifies a login/password pair and issues a signed token
// embedding the player id. Unknown logins and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*Credentials, error) {
	user, err := s.storage.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.PlayerID)
	if err != nil {
		return nil, err
	}

	return &Credentials{
		Token:    tok,
		PlayerID: user.PlayerID,
	}, nil
}

// UserData looks a user up by login or player id. Login takes precedence
// when both are given; model.ErrUserNotFound when neither matches (or
// neither is supplied).
func (s *Service) UserData(ctx context.Context, login string, playerID model.PlayerID) (*model.User, error) {
	switch {
	case login != "":
		return s.storage.GetUserByLogin(ctx, login)
	case playerID != "":
		return s.storage.GetUserByPlayerID(ctx, playerID)
	default:
		return nil, model.ErrUserNotFound
	}
}

// Leaderboard returns the top users by score, highest first
func (s *Service) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return s.storage.TopByScore(ctx, model.LeaderboardSize)
}

// AddScore atomically adds delta (which may be negative) to the user's
// score. A call that modifies nothing reports model.ErrUserNotFound; a
// zero delta against an existing user is not distinguishable from a
// missing user.
func (s *Service) AddScore(ctx context.Context, login string, delta int) error {
	modified, err := s.storage.IncrementScore(ctx, login, delta)
	if err != nil {
		return err
	}
	if !modified {
		return model.ErrUserNotFound
	}

	s.logger.Info("score updated", slog.String("login", login), slog.Int("delta", delta))
	return nil
}

// UnlockAchievement adds an achievement id to the user's set. Repeat
// calls are idempotent on the stored set; any call that modifies nothing
// reports model.ErrAchievementNotUnlocked, whether the user was missing
// or the achievement already held.
func (s *Service) UnlockAchievement(ctx context.Context, login, achievementID string) error {
	modified, err := s.storage.AddAchievement(ctx, login, achievementID)
	if err != nil {
		return err
	}
	if !modified {
		return model.ErrAchievementNotUnlocked
	}

	s.logger.Info("achievement unlocked", slog.String("login", login), slog.String("achievement_id", achievementID))
	return nil
}

// newPlayerID builds a 12-byte identifier, hex-encoded: a 4-byte unix
// timestamp followed by 8 random bytes. Collisions are negligible and
// caught by the storage uniqueness constraint regardless.
func (s *Service) newPlayerID() model.PlayerID {
	id := make([]byte, 12)
	binary.BigEndian.PutUint32(id[:4], uint32(s.clock.Now().Unix()))
	copy(id[4:], s.random.Bytes(8))
	return model.PlayerID(hex.EncodeToString(id))
}
