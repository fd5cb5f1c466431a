package ports

import (
	"context"

	"github.com/99minutos/booking-system/internal/core/domain"
)

// AuditSink accepts audit events. Implementations must not block the caller
// on slow storage.
type AuditSink interface {
	Record(event domain.AuditEvent)
}

// AuditRepository is the durable store behind the audit sink.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}

// NopAuditSink discards every event.
type NopAuditSink struct{}

func (NopAuditSink) Record(domain.AuditEvent) {}
