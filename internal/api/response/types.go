package response

import (
	"github.com/playerbase/playerbase/internal/model"
	"github.com/playerbase/playerbase/internal/services/account"
)

// RegisterResponse is the response for a successful registration
type RegisterResponse struct {
	Message  string `json:"message"`
	PlayerID string `json:"player_id"`
}

// AuthResponse is the response for a successful login
type AuthResponse struct {
	Token    string `json:"token"`
	PlayerID string `json:"player_id"`
}

// AuthResponseFromCredentials creates an AuthResponse from issued credentials
func AuthResponseFromCredentials(c *account.Credentials) AuthResponse {
	return AuthResponse{
		Token:    c.Token,
		PlayerID: string(c.PlayerID),
	}
}

// UserData is the public view of a user: no player id, no hash
type UserData struct {
	Login        string   `json:"login"`
	Score        int      `json:"score"`
	Achievements []string `json:"achievements"`
}

// UserDataFromModel converts a model.User to its public view
func UserDataFromModel(u *model.User) UserData {
	achievements := u.Achievements
	if achievements == nil {
		achievements = []string{}
	}
	return UserData{
		Login:        u.Login,
		Score:        u.Score,
		Achievements: achievements,
	}
}

// LeaderboardEntry is a single leaderboard row
type LeaderboardEntry struct {
	Login string `json:"login"`
	Score int    `json:"score"`
}

// Leaderboard wraps the ordered leaderboard rows
type Leaderboard struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// LeaderboardFromModel converts leaderboard entries to the response shape
func LeaderboardFromModel(entries []model.LeaderboardEntry) Leaderboard {
	rows := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		rows[i] = LeaderboardEntry{Login: e.Login, Score: e.Score}
	}
	return Leaderboard{Leaderboard: rows}
}

// Me is the authenticated user's own view, which does include the player id
type Me struct {
	Login        string   `json:"login"`
	PlayerID     string   `json:"player_id"`
	Score        int      `json:"score"`
	Achievements []string `json:"achievements"`
}

// MeFromModel converts a model.User to the authenticated self view
func MeFromModel(u *model.User) Me {
	achievements := u.Achievements
	if achievements == nil {
		achievements = []string{}
	}
	return Me{
		Login:        u.Login,
		PlayerID:     string(u.PlayerID),
		Score:        u.Score,
		Achievements: achievements,
	}
}

// Message is a bare acknowledgement
type Message struct {
	Message string `json:"message"`
}
