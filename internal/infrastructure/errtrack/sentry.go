// Package errtrack forwards unexpected errors to Sentry.
package errtrack

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// Reporter captures unexpected errors. The zero value and a Reporter built
// from an empty DSN are no-ops.
type Reporter struct {
	enabled bool
}

// Context is attached to each captured error as tags.
type Context struct {
	Method    string
	Path      string
	RequestID string
}

// New initialises the global Sentry client when dsn is non-empty.
func New(dsn, environment string) (*Reporter, error) {
	if dsn == "" {
		return &Reporter{}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	}); err != nil {
		return nil, err
	}
	return &Reporter{enabled: true}, nil
}

func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

// Capture reports err with the given request context.
func (r *Reporter) Capture(err error, rc Context) {
	if !r.Enabled() || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("method", rc.Method)
		scope.SetTag("path", rc.Path)
		if rc.RequestID != "" {
			scope.SetTag("request_id", rc.RequestID)
		}
		sentry.CaptureException(err)
	})
}

// Flush waits up to timeout for buffered events to be sent.
func (r *Reporter) Flush(timeout time.Duration) {
	if r.Enabled() {
		sentry.Flush(timeout)
	}
}
