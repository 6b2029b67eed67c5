package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ininsico/voyago-api/internal/domain"
	"github.com/ininsico/voyago-api/internal/service"
	"github.com/ininsico/voyago-api/internal/util"
)

const (
	contextUserKey  = "auth.user"
	contextTokenKey = "auth.token"
)

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if strings.TrimSpace(authHeader) == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func RequireAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, util.Fail("missing or invalid authorization header"))
			}
			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, util.Fail(err.Error()))
			}
			c.Set(contextUserKey, user)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

// OptionalAuth attaches the user when a valid bearer token is present but
// never rejects the request. Used by the public contact form so signed-in
// senders get linked to their account.
func OptionalAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := bearerToken(c); ok {
				if user, err := auth.Authenticate(c.Request().Context(), token); err == nil {
					c.Set(contextUserKey, user)
					c.Set(contextTokenKey, token)
				}
			}
			return next(c)
		}
	}
}

func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(contextUserKey).(*domain.User)
			if !ok || user == nil {
				return c.JSON(http.StatusUnauthorized, util.Fail("authentication required"))
			}
			if !user.IsAdmin() {
				return c.JSON(http.StatusForbidden, util.Fail("admin privileges required"))
			}
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(contextUserKey).(*domain.User)
	return user, ok
}
