package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/booking-system/internal/core/domain"
)

const (
	ContextKeyUser   = "user"
	ContextKeyUserID = "user_id"
)

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth validates the bearer token and injects the user into the context.
func Auth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := auth.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				// domain.ErrInvalidToken → 401 in the error handler
				return err
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyUserID, user.ID)

			return next(c)
		}
	}
}
