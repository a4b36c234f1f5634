package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ideahub/internal/errors"
	"ideahub/internal/model"
)

// Echo context keys populated by the session middleware.
const (
	ContextUserKey    = "auth_user"
	ContextSessionKey = "auth_session"
)

// SessionCookieName is the cookie fallback for clients that do not send an
// Authorization header.
const SessionCookieName = "ideahub_session"

// SessionResolver turns a bearer token into the user and session it belongs
// to. Implemented by the auth service.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*model.User, *model.Session, error)
}

// SessionMiddleware authenticates every request before any domain logic runs.
// Missing, unknown, or expired tokens end the request with 401.
func SessionMiddleware(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "authentication required",
					Code:  "UNAUTHENTICATED",
				})
			}

			user, session, err := resolver.ResolveSession(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "invalid or expired session",
					Code:  "INVALID_SESSION",
				})
			}

			c.Set(ContextUserKey, user)
			c.Set(ContextSessionKey, session)
			return next(c)
		}
	}
}

// AdminMiddleware gates admin procedures. It must run after SessionMiddleware.
func AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFromContext(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "authentication required",
					Code:  "UNAUTHENTICATED",
				})
			}
			if !user.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: "admin privileges required",
					Code:  "ADMIN_REQUIRED",
				})
			}
			return next(c)
		}
	}
}

// UserFromContext returns the authenticated user, or nil outside the session
// middleware.
func UserFromContext(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}

// SessionFromContext returns the current session, or nil outside the session
// middleware.
func SessionFromContext(c echo.Context) *model.Session {
	session, _ := c.Get(ContextSessionKey).(*model.Session)
	return session
}

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}
