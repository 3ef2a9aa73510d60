package request

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// UpdateScoreRequest is the request body for adding to a user's score.
// Score is a pointer so a missing field can be told apart from an
// explicit zero (both are rejected differently: missing is a 400, zero
// reaches storage and reports no modification).
type UpdateScoreRequest struct {
	Login string `json:"login"`
	Score *int   `json:"score"`
}

// UnlockAchievementRequest is the request body for unlocking an achievement
type UnlockAchievementRequest struct {
	Login         string `json:"login"`
	AchievementID string `json:"achievement_id"`
}
