package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/booking-system/internal/api/middleware"
	"github.com/99minutos/booking-system/internal/core/domain"
)

// ctxUser returns the user the Auth middleware resolved. A missing value means
// the route was mounted without the middleware.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextKeyUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
