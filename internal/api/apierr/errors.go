package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/playerbase/playerbase/internal/model"
	"github.com/playerbase/playerbase/internal/services/account"
	"github.com/playerbase/playerbase/internal/services/token"
)

// ErrorResponse is the wire shape of every error: a single message under
// the "error" key.
type ErrorResponse struct {
	Error string `json:"error"`
}

// httpError combines an HTTP status code with a user-visible message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.message})
}

// toHTTPError converts an error to an httpError. Storage and
// infrastructure failures deliberately collapse to a generic message so
// driver detail never reaches callers.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// The registration conflict reports 400, not 409: the wire contract
	// predates this implementation and callers depend on it.
	case errors.Is(err, model.ErrUserExists):
		return &httpError{http.StatusBadRequest, "User already exists"}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, "User not found"}
	case errors.Is(err, model.ErrAchievementNotUnlocked):
		return &httpError{http.StatusNotFound, "User not found or achievement already unlocked"}
	case errors.Is(err, model.ErrAchievementNotFound):
		return &httpError{http.StatusNotFound, "Achievement not found"}

	case errors.Is(err, account.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "Invalid credentials"}
	case errors.Is(err, token.ErrTokenExpired), errors.Is(err, token.ErrTokenInvalid):
		return &httpError{http.StatusUnauthorized, "Invalid or expired token"}

	default:
		return &httpError{http.StatusInternalServerError, "Server error"}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, "Authentication required"}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Server error"}
}
