package redis

import (
	"fmt"

	"github.com/playerbase/playerbase/internal/model"
)

// Key prefix for all account data
const keyPrefix = "pbase"

// userKey returns the Redis key for a user's account record
func userKey(login string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, login)
}

// playerIDIndexKey returns the Redis key for the player_id -> login index
func playerIDIndexKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:idx:player_id:%s", keyPrefix, id)
}

// scoresKey returns the Redis key for the score sorted set. Members are
// logins; the sorted set doubles as the leaderboard.
func scoresKey() string {
	return fmt.Sprintf("%s:scores", keyPrefix)
}

// userAchievementsKey returns the Redis key for a user's achievement SET
func userAchievementsKey(login string) string {
	return fmt.Sprintf("%s:achievements:%s", keyPrefix, login)
}

// achievementKey returns the Redis key for a catalog Achievement
func achievementKey(id string) string {
	return fmt.Sprintf("%s:achievement:%s", keyPrefix, id)
}

// achievementIDsKey returns the Redis key for the SET of catalog ids
func achievementIDsKey() string {
	return fmt.Sprintf("%s:idx:achievement_ids", keyPrefix)
}
