package auth

import (
	"errors"
	"log"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "fotolab/internal/errors"
)

const (
	// CookieName is the cookie carrying the session token.
	CookieName = "session"
	// ContextKey is where the middleware stores the caller's Identity.
	ContextKey = "identity"
)

const tokenLookup = "cookie:" + CookieName + ",header:" + echo.HeaderAuthorization + ":Bearer "

func parseToken(gate *SessionGate) func(c echo.Context, token string) (interface{}, error) {
	return func(c echo.Context, token string) (interface{}, error) {
		return gate.Authorize(c.Request().Context(), token)
	}
}

// Middleware gates a route group behind a live session. The token is read
// from the session cookie or a bearer Authorization header.
func Middleware(gate *SessionGate) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup:    tokenLookup,
		ContextKey:     ContextKey,
		ParseTokenFunc: parseToken(gate),
		ErrorHandler: func(c echo.Context, err error) error {
			// Missing, malformed and revoked tokens all share one 401 body.
			cause := apperrors.ErrUnauthorized
			if errors.Is(err, ErrSessionStore) {
				log.Printf("session lookup failed: %v", err)
				cause = err
			}
			httpErr := apperrors.MapErrorToHTTP(cause)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// OptionalMiddleware attaches the caller's identity when a valid session
// token is present and lets anonymous requests through otherwise.
func OptionalMiddleware(gate *SessionGate) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup:            tokenLookup,
		ContextKey:             ContextKey,
		ParseTokenFunc:         parseToken(gate),
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, ErrSessionStore) {
				log.Printf("session lookup failed: %v", err)
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return nil
		},
	})
}

// IdentityFromContext returns the identity stored by Middleware.
func IdentityFromContext(c echo.Context) (Identity, bool) {
	id, ok := c.Get(ContextKey).(Identity)
	if !ok || id.UserID == 0 {
		return Identity{}, false
	}
	return id, true
}
