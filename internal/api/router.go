package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/playerbase/playerbase/internal/api/handler"
	"github.com/playerbase/playerbase/internal/api/middleware"
	"github.com/playerbase/playerbase/internal/services/account"
	"github.com/playerbase/playerbase/internal/services/token"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AccountService *account.Service
	TokenIssuer    *token.Issuer
}

// NewRouter creates a new API router with all routes configured. Paths
// are mounted at the root: they are a published wire contract.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	accountHandler := handler.NewAccountHandler(cfg.AccountService)

	authMiddleware := middleware.Auth(cfg.TokenIssuer)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Account routes (no auth; /user-data is deliberately open)
	r.HandleFunc("/register", accountHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/check-login", accountHandler.CheckLogin).Methods(http.MethodGet)
	r.HandleFunc("/login", accountHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/user-data", accountHandler.UserData).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard", accountHandler.Leaderboard).Methods(http.MethodGet)
	r.HandleFunc("/update-score", accountHandler.UpdateScore).Methods(http.MethodPost)
	r.HandleFunc("/unlock-achievement", accountHandler.UnlockAchievement).Methods(http.MethodPost)

	// Authenticated self view
	r.Handle("/me", authMiddleware(http.HandlerFunc(accountHandler.Me))).Methods(http.MethodGet)

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
