package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anonto42/nano-link/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

const sessionKey = "session"

// ErrNoSession is returned by resolvers for unknown or invalid credentials.
var ErrNoSession = errors.New("no session")

// Session is the authenticated caller of a request.
type Session struct {
	UserID string
	Email  string
	Name   string
}

// SessionResolver turns a bearer token into a Session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*Session, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// resolved Session in the echo context.
func Authenticate(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			session, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				if !errors.Is(err, ErrNoSession) {
					log := logger.WithComponent("auth")
					log.Error().Err(err).Msg("resolve session")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			c.Set(sessionKey, session)
			return next(c)
		}
	}
}

// CurrentSession returns the Session stored by Authenticate. It panics when
// called on a route that is not behind Authenticate.
func CurrentSession(c echo.Context) *Session {
	return c.Get(sessionKey).(*Session)
}

// LookupSession returns the Session stored by Authenticate, if any.
func LookupSession(c echo.Context) (*Session, bool) {
	session, ok := c.Get(sessionKey).(*Session)
	return session, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}
