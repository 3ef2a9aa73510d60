package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playerbase/playerbase/internal/model"
	"github.com/playerbase/playerbase/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
//
// Account fields live in a JSON value per user. Scores live in a single
// sorted set (ZINCRBY is the atomic increment, ZREVRANGE the leaderboard)
// and achievement sets in one SET per user (SADD is the atomic set-add).
type Storage struct {
	client *redis.Client
	cfg    Config
}

// userDoc is the persisted shape of a user's account fields. Score and
// achievements are kept in their own structures so they can be mutated
// atomically without rewriting the document.
type userDoc struct {
	Login        string         `json:"login"`
	PasswordHash string         `json:"password_hash"`
	PlayerID     model.PlayerID `json:"player_id"`
	CreatedAt    time.Time      `json:"created_at"`
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	doc := userDoc{
		Login:        user.Login,
		PasswordHash: user.PasswordHash,
		PlayerID:     user.PlayerID,
		CreatedAt:    user.CreatedAt,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	// SETNX enforces login uniqueness; two concurrent registrations with
	// the same login race here and exactly one wins.
	ok, err := s.client.SetNX(ctx, userKey(user.Login), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrUserExists
	}

	ok, err = s.client.SetNX(ctx, playerIDIndexKey(user.PlayerID), user.Login, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		// player_id collision: roll back the account record
		_ = s.client.Del(ctx, userKey(user.Login)).Err()
		return model.ErrUserExists
	}

	pipe := s.client.Pipeline()
	pipe.ZAddNX(ctx, scoresKey(), redis.Z{Score: float64(user.Score), Member: user.Login})
	if len(user.Achievements) > 0 {
		members := make([]interface{}, len(user.Achievements))
		for i, a := range user.Achievements {
			members[i] = a
		}
		pipe.SAdd(ctx, userAchievementsKey(user.Login), members...)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(login)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var doc userDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	score, err := s.client.ZScore(ctx, scoresKey(), login).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	achievements, err := s.client.SMembers(ctx, userAchievementsKey(login)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(achievements)

	return &model.User{
		Login:        doc.Login,
		PasswordHash: doc.PasswordHash,
		PlayerID:     doc.PlayerID,
		Score:        int(score),
		Achievements: achievements,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

func (s *Storage) GetUserByPlayerID(ctx context.Context, id model.PlayerID) (*model.User, error) {
	login, err := s.client.Get(ctx, playerIDIndexKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUserByLogin(ctx, login)
}

func (s *Storage) LoginExists(ctx context.Context, login string) (bool, error) {
	exists, err := s.client.Exists(ctx, userKey(login)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Score and achievement operations

func (s *Storage) IncrementScore(ctx context.Context, login string, delta int) (bool, error) {
	exists, err := s.client.Exists(ctx, userKey(login)).Result()
	if err != nil {
		return false, err
	}
	if exists == 0 {
		return false, nil
	}

	if err := s.client.ZIncrBy(ctx, scoresKey(), float64(delta), login).Err(); err != nil {
		return false, err
	}

	// A zero delta modifies nothing, same as a missing user
	return delta != 0, nil
}

func (s *Storage) AddAchievement(ctx context.Context, login, achievementID string) (bool, error) {
	exists, err := s.client.Exists(ctx, userKey(login)).Result()
	if err != nil {
		return false, err
	}
	if exists == 0 {
		return false, nil
	}

	added, err := s.client.SAdd(ctx, userAchievementsKey(login), achievementID).Result()
	if err != nil {
		return false, err
	}
	return added > 0, nil
}

func (s *Storage) TopByScore(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		return []model.LeaderboardEntry{}, nil
	}

	results, err := s.client.ZRevRangeWithScores(ctx, scoresKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(results))
	for _, z := range results {
		login, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			Login: login,
			Score: int(z.Score),
		})
	}
	return entries, nil
}

// Achievement catalog operations

func (s *Storage) SaveAchievement(ctx context.Context, a *model.Achievement) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, achievementKey(a.ID), data, 0)
	pipe.SAdd(ctx, achievementIDsKey(), a.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAchievement(ctx context.Context, id string) (*model.Achievement, error) {
	data, err := s.client.Get(ctx, achievementKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAchievementNotFound
		}
		return nil, err
	}

	var a model.Achievement
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Storage) ListAchievements(ctx context.Context) ([]*model.Achievement, error) {
	ids, err := s.client.SMembers(ctx, achievementIDsKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Achievement{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = achievementKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*model.Achievement, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var a model.Achievement
		if err := json.Unmarshal([]byte(val.(string)), &a); err != nil {
			continue // Skip invalid data
		}
		out = append(out, &a)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
