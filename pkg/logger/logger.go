// Package logger builds the service's zerolog logger and the per-request log
// middleware. Every line carries the service name and environment so logs
// from several deployments can share one sink.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ServiceName is stamped on every line unless Options.Service overrides it.
const ServiceName = "booking-api"

// Options controls how New builds the logger.
type Options struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	// Empty or unknown values mean info.
	Level string
	// Pretty switches to zerolog's console writer. Production keeps JSON.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer

	Service string
	// Env is the deployment environment, e.g. "production".
	Env string
}

// New returns a logger configured from opts. It also sets zerolog's global
// level so libraries logging through zerolog follow the same threshold.
func New(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	service := opts.Service
	if service == "" {
		service = ServiceName
	}

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	ctx := zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", service)
	if opts.Env != "" {
		ctx = ctx.Str("env", opts.Env)
	}
	if lvl <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
