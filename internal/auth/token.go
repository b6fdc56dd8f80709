package auth

import (
	"errors"
	"strings"
	"time"

	"labook/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "labook-api"
	tokenAudience = "labook-client"
)

// Authenticator signs and verifies HS256 access tokens.
type Authenticator struct {
	secret    []byte
	expiresIn time.Duration
	now       func() time.Time
}

// NewAuthenticator returns an Authenticator signing with secret. Tokens expire after expiresIn.
func NewAuthenticator(secret string, expiresIn time.Duration) *Authenticator {
	return &Authenticator{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

// GenerateToken issues a token whose subject is subjectID.
func (a *Authenticator) GenerateToken(subjectID string) (string, error) {
	if len(a.secret) == 0 {
		return "", errors.New("JWT secret not configured")
	}

	now := a.now()
	claims := jwt.MapClaims{
		"sub": subjectID,
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(a.expiresIn).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// GetTokenData verifies token and returns its subject. Every failure yields
// the same unauthorized error.
func (a *Authenticator) GetTokenData(token string) (string, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return "", invalidCredentials()
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !parsed.Valid {
		return "", invalidCredentials()
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", invalidCredentials()
	}
	return sub, nil
}

func invalidCredentials() error {
	return models.NewUnauthorizedError("Invalid credentials")
}
