package domain

import (
	"strconv"
	"time"
)

// AuditAction names the kind of mutation recorded in the audit trail.
type AuditAction string

const (
	AuditCreated AuditAction = "created"
	AuditUpdated AuditAction = "updated"
	AuditDeleted AuditAction = "deleted"
)

const (
	EntityOffice  = "office"
	EntityRoom    = "room"
	EntityBooking = "booking"
	EntityUser    = "user"
)

// AuditEvent records a successful mutation of one entity.
type AuditEvent struct {
	Entity     string
	EntityID   int64
	Action     AuditAction
	OccurredAt time.Time
	RequestID  string
}

// Key identifies the audited entity, e.g. "booking:42". Events sharing a key
// are written in the order they were emitted.
func (e AuditEvent) Key() string {
	return e.Entity + ":" + strconv.FormatInt(e.EntityID, 10)
}
