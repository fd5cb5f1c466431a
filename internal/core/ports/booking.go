package ports

import (
	"context"
	"time"

	"github.com/99minutos/booking-system/internal/core/domain"
)

type BookingFilter struct {
	UserID *int64
	RoomID *int64
}

// BookingRepository persists bookings. Create and Update must run the overlap
// check and the write atomically and return domain.ErrBookingOverlap when the
// interval collides with another booking of the same room.
type BookingRepository interface {
	Store[domain.Booking, BookingFilter]
	// HasOverlap reports whether any booking of roomID other than excludeID
	// intersects [start, end).
	HasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (bool, error)
}

type BookingInput struct {
	RoomID    int64
	UserID    int64
	StartTime time.Time
	EndTime   time.Time
	// IdempotencyKey is only honoured on create.
	IdempotencyKey string
}

// BookingResult wraps a created booking. Replayed is true when the idempotency
// key matched an earlier create and no new row was written.
type BookingResult struct {
	Booking  *domain.Booking
	Replayed bool
}

type BookingService interface {
	List(ctx context.Context, filter BookingFilter, page PageRequest) (*Page[domain.Booking], error)
	Get(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, input BookingInput) (*BookingResult, error)
	Update(ctx context.Context, id int64, input BookingInput) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// IdempotencyRecord is what an Idempotency-Key currently maps to.
// BookingID is zero while the request that claimed the key is still running.
type IdempotencyRecord struct {
	BookingID   int64
	Fingerprint string
}

func (r IdempotencyRecord) Pending() bool { return r.BookingID == 0 }

// IdempotencyStore ties a client-supplied key to the booking it produced.
// The key is claimed before the insert, so concurrent requests with the same
// key see each other.
type IdempotencyStore interface {
	// Reserve claims key for a request whose payload hashes to fingerprint.
	// When the key is already held, claimed is false and the current record
	// is returned.
	Reserve(ctx context.Context, key, fingerprint string) (claimed bool, current IdempotencyRecord, err error)
	// Complete records the booking created under a claimed key.
	Complete(ctx context.Context, key, fingerprint string, bookingID int64) error
	// Release frees a claimed key after a failed create.
	Release(ctx context.Context, key string) error
}
