package model

import "time"

// PlayerID is the server-generated, stable external identifier for a user.
// It is distinct from the login name and never changes.
type PlayerID string

// User represents a registered player account.
type User struct {
	// Login is the globally unique name the user authenticates with.
	Login string `json:"login"`
	// PasswordHash is the bcrypt hash of the password. Plaintext is
	// never stored.
	PasswordHash string `json:"password_hash"`
	// PlayerID is globally unique and assigned at registration.
	PlayerID PlayerID `json:"player_id"`
	// Score is mutated only through atomic increments.
	Score int `json:"score"`
	// Achievements holds unlocked achievement ids, no duplicates.
	Achievements []string  `json:"achievements"`
	CreatedAt    time.Time `json:"created_at"`
}

// Achievement is an entry in the static achievement catalog. The catalog
// is seeded out-of-band; User.Achievements may reference ids with no
// catalog entry.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

// LeaderboardEntry is a single leaderboard row. Only the login and score
// are ever exposed.
type LeaderboardEntry struct {
	Login string `json:"login"`
	Score int    `json:"score"`
}

// LeaderboardSize is the fixed number of entries a leaderboard query returns.
const LeaderboardSize = 10
