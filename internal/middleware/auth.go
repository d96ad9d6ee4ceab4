package middleware

import (
	"context"
	"time"

	"github.com/deppfellow/mentorship/internal/server"
	"github.com/labstack/echo/v4"
)

// TokenVerifier resolves a session token to a user id.
// *service.AuthService implements it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// AuthMiddleware loads the caller's identity from the session cookie.
type AuthMiddleware struct {
	server   *server.Server
	verifier TokenVerifier
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server, verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		server:   s,
		verifier: verifier,
	}
}

// LoadIdentity verifies the session cookie and stores the subject under
// UserIDKey. It never rejects a request: a missing or invalid token leaves
// the request anonymous and handlers decide what that means.
func (auth *AuthMiddleware) LoadIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		logger := GetLogger(c)

		cookie, err := c.Cookie(auth.server.Config.Auth.CookieName)
		if err != nil || cookie.Value == "" {
			logger.Debug().
				Str("function", "LoadIdentity").
				Msg("no session cookie, continuing anonymously")
			return next(c)
		}

		userID, err := auth.verifier.Verify(c.Request().Context(), cookie.Value)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("function", "LoadIdentity").
				Dur("duration", time.Since(start)).
				Msg("session token rejected, continuing anonymously")
			return next(c)
		}

		c.Set(UserIDKey, userID)

		// The request logger was built before the identity was known.
		withUser := logger.With().Str("user_id", userID).Logger()
		c.Set(LoggerKey, &withUser)
		c.SetRequest(c.Request().WithContext(withUser.WithContext(c.Request().Context())))

		withUser.Debug().
			Str("function", "LoadIdentity").
			Dur("duration", time.Since(start)).
			Msg("user authenticated successfully")

		return next(c)
	}
}
