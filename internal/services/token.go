package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionTTL = 24 * time.Hour
	resetTTL   = 10 * time.Minute
)

var errInvalidToken = errors.New("invalid token")

// UserClaim is the session token payload handed to clients after login.
type UserClaim struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Photo     *string `json:"photo"`
	jwt.RegisteredClaims
}

// resetClaim travels inside password reset links.
type resetClaim struct {
	UserName string `json:"user_name"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 tokens with a shared secret.
type Tokens struct {
	Secret []byte
	Now    func() time.Time
}

func (t Tokens) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t Tokens) expiry(ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(t.now().Add(ttl))}
}

func (t Tokens) sign(claims jwt.Claims) (string, error) {
	if len(t.Secret) == 0 {
		return "", errors.New("token secret is not configured")
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
}

func (t Tokens) parse(token string, claims jwt.Claims) error {
	if len(t.Secret) == 0 {
		return errInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return errInvalidToken
	}
	return nil
}

// SessionToken issues a 24h session token for claim.
func (t Tokens) SessionToken(claim UserClaim) (string, error) {
	claim.RegisteredClaims = t.expiry(sessionTTL)
	return t.sign(claim)
}

// ParseSession verifies a session token and returns its payload.
func (t Tokens) ParseSession(token string) (UserClaim, error) {
	var claim UserClaim
	if err := t.parse(token, &claim); err != nil {
		return UserClaim{}, err
	}
	return claim, nil
}

func (t Tokens) resetToken(userName string) (string, error) {
	return t.sign(resetClaim{UserName: userName, RegisteredClaims: t.expiry(resetTTL)})
}

func (t Tokens) parseReset(token string) (string, error) {
	var claim resetClaim
	if err := t.parse(token, &claim); err != nil {
		return "", err
	}
	return claim.UserName, nil
}
