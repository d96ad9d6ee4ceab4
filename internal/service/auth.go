package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkjwt "github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/deppfellow/mentorship/internal/server"
	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingToken is returned by Verify for an empty token.
var ErrMissingToken = errors.New("missing session token")

// AuthService turns a session token into the verified user id (the token's
// subject).
//
// With auth.provider "clerk" tokens are Clerk session JWTs and SecretKey is
// the Clerk API key. With "jwt" they are HS256 tokens signed with SecretKey.
type AuthService struct {
	server *server.Server
	verify func(ctx context.Context, token string) (string, error)
}

func NewAuthService(s *server.Server) *AuthService {
	auth := &AuthService{server: s}

	switch s.Config.Auth.Provider {
	case "jwt":
		secret := []byte(s.Config.Auth.SecretKey)
		auth.verify = func(_ context.Context, token string) (string, error) {
			return verifyHS256(token, secret)
		}
	default:
		clerk.SetKey(s.Config.Auth.SecretKey)
		auth.verify = verifyClerk
	}

	return auth
}

// Verify returns the subject of a valid token.
func (a *AuthService) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}

	subject, err := a.verify(ctx, token)
	if err != nil {
		return "", err
	}
	if subject == "" {
		return "", errors.New("session token has no subject")
	}
	return subject, nil
}

func verifyClerk(ctx context.Context, token string) (string, error) {
	claims, err := clerkjwt.Verify(ctx, &clerkjwt.VerifyParams{Token: token})
	if err != nil {
		return "", fmt.Errorf("clerk session verification failed: %w", err)
	}
	return claims.Subject, nil
}

func verifyHS256(token string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("session token verification failed: %w", err)
	}
	if !parsed.Valid {
		return "", errors.New("invalid session token")
	}
	return claims.Subject, nil
}
