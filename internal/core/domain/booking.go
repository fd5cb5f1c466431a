package domain

import (
	"errors"
	"time"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingOverlap   = errors.New("room is already booked for this time")
	ErrInvalidTimeRange = errors.New("end time must be after start time")

	ErrIdempotencyKeyReused  = errors.New("idempotency key reused with a different payload")
	ErrIdempotencyInProgress = errors.New("idempotency key is held by a request in progress")
)

// Booking reserves the half-open interval [StartTime, EndTime) of a room.
// UserID is a plain integer; it is not tied to a registered user.
type Booking struct {
	ID        int64
	RoomID    int64
	UserID    int64
	StartTime time.Time
	EndTime   time.Time

	// Room is only populated by list queries that eager-load it. It stays nil
	// when the referenced room no longer exists.
	Room *Room
}

// Validate checks the interval is non-empty and well ordered.
func (b *Booking) Validate() error {
	if !b.EndTime.After(b.StartTime) {
		return ErrInvalidTimeRange
	}
	return nil
}
