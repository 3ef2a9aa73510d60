package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/playerbase/playerbase/internal/dependencies/mocks"
)

const testSecret = "test-secret-for-token-issuer-tests"

type IssuerSuite struct {
	suite.Suite
	clock  *mocks.MockClock
	issuer *Issuer
}

func TestIssuerSuite(t *testing.T) {
	suite.Run(t, new(IssuerSuite))
}

func (s *IssuerSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	cfg := DefaultConfig()
	cfg.Secret = testSecret

	issuer, err := New(cfg, s.clock)
	s.Require().NoError(err)
	s.issuer = issuer
}

func (s *IssuerSuite) TestNewRequiresSecret() {
	_, err := New(Config{}, s.clock)
	s.Error(err)
}

func (s *IssuerSuite) TestIssueAndVerify() {
	tok, err := s.issuer.Issue("pid-1")
	s.Require().NoError(err)
	s.NotEmpty(tok)

	claims, err := s.issuer.Verify(tok)
	s.Require().NoError(err)
	s.Equal("pid-1", string(claims.PlayerID))
	s.True(claims.IssuedAt.Equal(s.clock.CurrentTime))
	s.True(claims.ExpiresAt.Equal(s.clock.CurrentTime.Add(time.Hour)))
}

func (s *IssuerSuite) TestVerifyStillValidJustBeforeExpiry() {
	tok, _ := s.issuer.Issue("pid-1")

	s.clock.Advance(59 * time.Minute)

	_, err := s.issuer.Verify(tok)
	s.NoError(err)
}

func (s *IssuerSuite) TestVerifyExpired() {
	tok, _ := s.issuer.Issue("pid-1")

	s.clock.Advance(61 * time.Minute)

	_, err := s.issuer.Verify(tok)
	s.ErrorIs(err, ErrTokenExpired)
}

func (s *IssuerSuite) TestVerifyWrongSecret() {
	otherCfg := DefaultConfig()
	otherCfg.Secret = "a-completely-different-secret"
	other, err := New(otherCfg, s.clock)
	s.Require().NoError(err)

	tok, _ := other.Issue("pid-1")

	_, err = s.issuer.Verify(tok)
	s.ErrorIs(err, ErrTokenInvalid)
}

func (s *IssuerSuite) TestVerifyMalformed() {
	_, err := s.issuer.Verify("not-a-token")
	s.ErrorIs(err, ErrTokenInvalid)
}

func (s *IssuerSuite) TestVerifyEmpty() {
	_, err := s.issuer.Verify("")
	s.ErrorIs(err, ErrTokenInvalid)
}

func (s *IssuerSuite) TestVerifyMissingTimestampClaims() {
	// Correctly signed but carrying no iat/exp
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{PlayerID: "pid-1"})
	signed, err := tok.SignedString([]byte(testSecret))
	s.Require().NoError(err)

	_, err = s.issuer.Verify(signed)
	s.ErrorIs(err, ErrTokenInvalid)
}

func (s *IssuerSuite) TestCustomLifetime() {
	cfg := Config{Secret: testSecret, Lifetime: 5 * time.Minute}
	issuer, err := New(cfg, s.clock)
	s.Require().NoError(err)

	tok, _ := issuer.Issue("pid-1")

	s.clock.Advance(6 * time.Minute)

	_, err = issuer.Verify(tok)
	s.ErrorIs(err, ErrTokenExpired)
}
