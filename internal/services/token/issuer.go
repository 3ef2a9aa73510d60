package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/playerbase/playerbase/internal/dependencies/clock"
	"github.com/playerbase/playerbase/internal/model"
)

// Errors
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims is the verified content of a token. The player id is the sole
// application claim; verification needs only the shared secret, never a
// storage lookup.
type Claims struct {
	PlayerID  model.PlayerID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Config holds configuration for the token issuer
type Config struct {
	// Secret is the shared HMAC signing secret. Required.
	Secret string
	// Lifetime is how long issued tokens stay valid
	Lifetime time.Duration
}

// DefaultConfig returns default token configuration
func DefaultConfig() Config {
	return Config{
		Lifetime: time.Hour,
	}
}

// Issuer issues and verifies HMAC-signed bearer tokens
type Issuer struct {
	secret   []byte
	lifetime time.Duration
	clock    clock.Clock
}

// tokenClaims is the wire shape of the JWT claim set
type tokenClaims struct {
	PlayerID string `json:"player_id"`
	jwt.RegisteredClaims
}

// New creates a new token Issuer
func New(cfg Config, clk clock.Clock) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	if cfg.Lifetime == 0 {
		cfg.Lifetime = DefaultConfig().Lifetime
	}
	return &Issuer{
		secret:   []byte(cfg.Secret),
		lifetime: cfg.Lifetime,
		clock:    clk,
	}, nil
}

// Issue signs a new token asserting the given player id
func (i *Issuer) Issue(playerID model.PlayerID) (string, error) {
	now := i.clock.Now()

	claims := tokenClaims{
		PlayerID: string(playerID),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks a token's signature and expiry and returns its claims
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(i.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.PlayerID == "" {
		return nil, ErrTokenInvalid
	}
	// A token signed without iat/exp parses but is not one of ours
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}

	return &Claims{
		PlayerID:  model.PlayerID(claims.PlayerID),
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
