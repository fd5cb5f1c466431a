package service

import (
	"context"
	"time"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

func record(ctx context.Context, sink ports.AuditSink, entity string, id int64, action domain.AuditAction) {
	if sink == nil {
		return
	}
	sink.Record(domain.AuditEvent{
		Entity:     entity,
		EntityID:   id,
		Action:     action,
		OccurredAt: time.Now().UTC(),
		RequestID:  ports.RequestID(ctx),
	})
}

func newPage[T any](items []*T, total int64, page ports.PageRequest) *ports.Page[T] {
	if items == nil {
		items = []*T{}
	}
	return &ports.Page[T]{Items: items, Total: total, Skip: page.Skip, Limit: page.Limit}
}
