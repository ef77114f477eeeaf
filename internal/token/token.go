// Package token issues and verifies the panel's signed bearer tokens.
// Session tokens are stateless and self-contained; reset tokens carry a
// purpose tag and are additionally corroborated against the copy stored on
// the user row before a reset is honored.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	Issuer   = "xtreme-panel"
	Audience = "xtreme-panel-users"

	purposeReset = "password_reset"

	// ResetTokenTTL is fixed at 15 minutes regardless of session lifetime.
	ResetTokenTTL = 15 * time.Minute
)

var (
	// ErrExpired means the token was once valid; the caller should
	// authenticate again.
	ErrExpired = errors.New("token expired")
	// ErrMalformed means the signature or structure is invalid; reject
	// outright, no retry.
	ErrMalformed = errors.New("token malformed")
)

// Claims is the identity a verified session token resolves to.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Service struct {
	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

func New(secret string, sessionTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// Now exposes the service clock so flows that persist expiry timestamps stay
// consistent with token expiry in tests.
func (s *Service) Now() time.Time {
	return s.now()
}

type sessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type resetClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func (s *Service) IssueSession(userID uint, username, role string) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(userID)),
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			ID:        uuid.New().String(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) VerifySession(tokenStr string) (*Claims, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims,
		func(token *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrMalformed
	}
	if !token.Valid {
		return nil, ErrMalformed
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, ErrMalformed
	}

	return &Claims{
		UserID:   uint(id),
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

func (s *Service) IssueReset(userID uint) (string, error) {
	now := s.now()
	claims := resetClaims{
		Purpose: purposeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(userID)),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ResetTokenTTL)),
			// Timestamps have second granularity; without a unique ID two
			// tokens minted in the same second would be byte-identical and
			// the stored-copy check could not tell them apart.
			ID: uuid.New().String(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyReset checks signature, expiry and the purpose tag, and returns the
// account the token was issued for.
func (s *Service) VerifyReset(tokenStr string) (uint, error) {
	var claims resetClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims,
		func(token *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, ErrMalformed
	}
	if !token.Valid || claims.Purpose != purposeReset {
		return 0, fmt.Errorf("%w: not a password reset token", ErrMalformed)
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, ErrMalformed
	}

	return uint(id), nil
}
