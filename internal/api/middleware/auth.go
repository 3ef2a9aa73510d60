package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/playerbase/playerbase/internal/api/apierr"
	"github.com/playerbase/playerbase/internal/model"
	"github.com/playerbase/playerbase/internal/services/token"
)

type contextKey string

const playerIDContextKey contextKey = "player_id"

// Auth creates authentication middleware that verifies a bearer token
// and stores its player id claim on the request context. Verification is
// purely cryptographic; no storage lookup happens here.
func Auth(verifier *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := extractToken(r)
			if tok == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			claims, err := verifier.Verify(tok)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), playerIDContextKey, claims.PlayerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetPlayerID returns the authenticated player id from the request context
func GetPlayerID(ctx context.Context) model.PlayerID {
	id, _ := ctx.Value(playerIDContextKey).(model.PlayerID)
	return id
}

// MustGetPlayerID returns the authenticated player id or panics
func MustGetPlayerID(ctx context.Context) model.PlayerID {
	id := GetPlayerID(ctx)
	if id == "" {
		panic("no player id in context - auth middleware not applied?")
	}
	return id
}
