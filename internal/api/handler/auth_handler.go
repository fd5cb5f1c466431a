package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/booking-system/internal/api/metrics"
	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthLoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.AuthLoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token.AccessToken, TokenType: token.TokenType})
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
