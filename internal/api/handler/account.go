package handler

import (
	"encoding/json"
	"net/http"

	"github.com/playerbase/playerbase/internal/api/apierr"
	"github.com/playerbase/playerbase/internal/api/middleware"
	"github.com/playerbase/playerbase/internal/api/request"
	"github.com/playerbase/playerbase/internal/api/response"
	"github.com/playerbase/playerbase/internal/model"
	"github.com/playerbase/playerbase/internal/services/account"
)

// AccountHandler handles all account and score endpoints
type AccountHandler struct {
	accounts *account.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *account.Service) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
	}
}

// Register handles POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Login == "" || req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Missing login or password"))
		return
	}

	playerID, err := h.accounts.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RegisterResponse{
		Message:  "User registered",
		PlayerID: string(playerID),
	})
}

// CheckLogin handles GET /check-login. The body is the bare string
// "true" or "false", not JSON.
func (h *AccountHandler) CheckLogin(w http.ResponseWriter, r *http.Request) {
	login := r.URL.Query().Get("login")

	available, err := h.accounts.CheckLoginAvailable(r.Context(), login)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	body := "false"
	if available {
		body = "true"
	}
	response.PlainText(w, http.StatusOK, body)
}

// Login handles POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	creds, err := h.accounts.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromCredentials(creds))
}

// UserData handles GET /user-data. Lookup is by login or player_id;
// login wins when both are present. No authentication is required here.
func (h *AccountHandler) UserData(w http.ResponseWriter, r *http.Request) {
	login := r.URL.Query().Get("login")
	playerID := model.PlayerID(r.URL.Query().Get("player_id"))

	user, err := h.accounts.UserData(r.Context(), login, playerID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserDataFromModel(user))
}

// Leaderboard handles GET /leaderboard
func (h *AccountHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.accounts.Leaderboard(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}

// UpdateScore handles POST /update-score
func (h *AccountHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Login == "" || req.Score == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Missing login or score"))
		return
	}

	if err := h.accounts.AddScore(r.Context(), req.Login, *req.Score); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Message: "Score updated"})
}

// UnlockAchievement handles POST /unlock-achievement
func (h *AccountHandler) UnlockAchievement(w http.ResponseWriter, r *http.Request) {
	var req request.UnlockAchievementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Login == "" || req.AchievementID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Missing login or achievement_id"))
		return
	}

	if err := h.accounts.UnlockAchievement(r.Context(), req.Login, req.AchievementID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Message: "Achievement unlocked"})
}

// Me handles GET /me, which requires a bearer token
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	playerID := middleware.MustGetPlayerID(r.Context())

	user, err := h.accounts.UserData(r.Context(), "", playerID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MeFromModel(user))
}
