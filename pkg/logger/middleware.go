package logger

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RequestLogger emits one structured line per HTTP request. Errors are passed
// to c.Error first so the logged status is the one the client receives.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			var evt *zerolog.Event
			switch {
			case status >= 500:
				evt = log.Error()
			case status >= 400:
				evt = log.Warn()
			default:
				evt = log.Info()
			}

			evt.
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("uri", c.Request().RequestURI).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("ip", c.RealIP()).
				Msg("http")

			// already handled above
			return nil
		}
	}
}
