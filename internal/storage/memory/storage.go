package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/playerbase/playerbase/internal/model"
	"github.com/playerbase/playerbase/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[string]*userRecord
	playerIDIndex map[model.PlayerID]string
	achievements  map[string]*model.Achievement
}

// userRecord keeps the mutable score/achievement state separate from the
// immutable account fields, mirroring the layout of the redis backend.
type userRecord struct {
	user         model.User
	score        int
	achievements map[string]struct{}
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[string]*userRecord),
		playerIDIndex: make(map[model.PlayerID]string),
		achievements:  make(map[string]*model.Achievement),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Login]; ok {
		return model.ErrUserExists
	}
	if _, ok := s.playerIDIndex[user.PlayerID]; ok {
		return model.ErrUserExists
	}

	rec := &userRecord{
		user:         *user,
		score:        user.Score,
		achievements: make(map[string]struct{}, len(user.Achievements)),
	}
	for _, a := range user.Achievements {
		rec.achievements[a] = struct{}{}
	}

	s.users[user.Login] = rec
	s.playerIDIndex[user.PlayerID] = user.Login
	return nil
}

func (s *Storage) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[login]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return rec.snapshot(), nil
}

func (s *Storage) GetUserByPlayerID(ctx context.Context, id model.PlayerID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	login, ok := s.playerIDIndex[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	rec, ok := s.users[login]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return rec.snapshot(), nil
}

func (s *Storage) LoginExists(ctx context.Context, login string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[login]
	return ok, nil
}

// Score and achievement operations

func (s *Storage) IncrementScore(ctx context.Context, login string, delta int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[login]
	if !ok {
		return false, nil
	}
	rec.score += delta
	return delta != 0, nil
}

func (s *Storage) AddAchievement(ctx context.Context, login, achievementID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[login]
	if !ok {
		return false, nil
	}
	if _, present := rec.achievements[achievementID]; present {
		return false, nil
	}
	rec.achievements[achievementID] = struct{}{}
	return true, nil
}

func (s *Storage) TopByScore(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]model.LeaderboardEntry, 0, len(s.users))
	for login, rec := range s.users {
		entries = append(entries, model.LeaderboardEntry{Login: login, Score: rec.score})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Achievement catalog operations

func (s *Storage) SaveAchievement(ctx context.Context, a *model.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *a
	s.achievements[a.ID] = &copied
	return nil
}

func (s *Storage) GetAchievement(ctx context.Context, id string) (*model.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.achievements[id]
	if !ok {
		return nil, model.ErrAchievementNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *Storage) ListAchievements(ctx context.Context) ([]*model.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Achievement, 0, len(s.achievements))
	for _, a := range s.achievements {
		copied := *a
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// snapshot returns a copy of the record as a model.User, with the live
// score and achievement set folded back in.
func (r *userRecord) snapshot() *model.User {
	u := r.user
	u.Score = r.score
	u.Achievements = make([]string, 0, len(r.achievements))
	for a := range r.achievements {
		u.Achievements = append(u.Achievements, a)
	}
	sort.Strings(u.Achievements)
	return &u
}
