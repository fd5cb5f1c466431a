package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/infrastructure/errtrack"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors and reports them to the error tracker without
//     leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger, reporter *errtrack.Reporter) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, reporter, c)
		if code == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, reporter *errtrack.Reporter, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Int("status", he.Code).Msg("http error")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrOfficeNotFound):
		return http.StatusNotFound, "Office not found"
	case errors.Is(err, domain.ErrRoomNotFound):
		return http.StatusNotFound, "Room not found"
	case errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound, "Booking not found"
	case errors.Is(err, domain.ErrOfficeExists):
		return http.StatusConflict, "Office with this name already exists."
	case errors.Is(err, domain.ErrBookingOverlap):
		return http.StatusBadRequest, "Room is already booked for this time."
	case errors.Is(err, domain.ErrInvalidTimeRange):
		return http.StatusBadRequest, "end_time must be after start_time"
	case errors.Is(err, domain.ErrIdempotencyKeyReused):
		return http.StatusUnprocessableEntity, "Idempotency-Key was already used with a different payload"
	case errors.Is(err, domain.ErrIdempotencyInProgress):
		return http.StatusConflict, "A request with this Idempotency-Key is still being processed"
	case errors.Is(err, domain.ErrPasswordTooLong):
		return http.StatusBadRequest, "password must be at most 72 bytes"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "Username already registered"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Incorrect username or password"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Could not validate credentials"
	}

	// Unexpected error: log the real cause, return a generic message.
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", requestID).
		Msg("unhandled error")

	reporter.Capture(err, errtrack.Context{
		Method:    c.Request().Method,
		Path:      c.Path(),
		RequestID: requestID,
	})

	return http.StatusInternalServerError, "internal server error"
}
