package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

func hour(h, m int) time.Time {
	return time.Date(2024, 1, 1, h, m, 0, 0, time.UTC)
}

func TestBookingService_Create_OverlapScenario(t *testing.T) {
	repo := newStubBookingRepo()
	svc := NewBookingService(repo, nil, nil, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.BookingInput{RoomID: 1, UserID: 1, StartTime: hour(10, 0), EndTime: hour(11, 0)}); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.Create(ctx, ports.BookingInput{RoomID: 1, UserID: 2, StartTime: hour(10, 30), EndTime: hour(11, 30)}); !errors.Is(err, domain.ErrBookingOverlap) {
		t.Fatalf("expected ErrBookingOverlap, got %v", err)
	}
	if _, err := svc.Create(ctx, ports.BookingInput{RoomID: 1, UserID: 2, StartTime: hour(11, 0), EndTime: hour(12, 0)}); err != nil {
		t.Fatalf("touching booking should succeed: %v", err)
	}
	// other rooms are independent
	if _, err := svc.Create(ctx, ports.BookingInput{RoomID: 2, UserID: 2, StartTime: hour(10, 30), EndTime: hour(11, 30)}); err != nil {
		t.Fatalf("booking another room should succeed: %v", err)
	}
	if len(repo.rows) != 3 {
		t.Fatalf("expected 3 stored bookings, got %d", len(repo.rows))
	}
}

func TestBookingService_Create_InvalidRange(t *testing.T) {
	repo := newStubBookingRepo()
	svc := NewBookingService(repo, nil, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.BookingInput{RoomID: 1, StartTime: hour(11, 0), EndTime: hour(10, 0)})
	if !errors.Is(err, domain.ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
	if repo.creates != 0 {
		t.Fatalf("repository must not be called for an invalid range")
	}
}

func TestBookingService_Create_NormalisesToUTC(t *testing.T) {
	svc := NewBookingService(newStubBookingRepo(), nil, nil, zerolog.Nop())
	zone := time.FixedZone("UTC+2", 2*60*60)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, zone)

	res, err := svc.Create(context.Background(), ports.BookingInput{RoomID: 1, StartTime: start, EndTime: start.Add(time.Hour)})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if res.Booking.StartTime.Location() != time.UTC || !res.Booking.StartTime.Equal(hour(10, 0)) {
		t.Fatalf("expected UTC start 10:00, got %v", res.Booking.StartTime)
	}
}

func TestBookingService_Create_IdempotentReplay(t *testing.T) {
	repo := newStubBookingRepo()
	idem := newStubIdempotency()
	sink := &recordingSink{}
	svc := NewBookingService(repo, idem, sink, zerolog.Nop())
	ctx := context.Background()

	input := ports.BookingInput{RoomID: 1, UserID: 1, StartTime: hour(10, 0), EndTime: hour(11, 0), IdempotencyKey: "abc"}

	first, err := svc.Create(ctx, input)
	if err != nil || first.Replayed {
		t.Fatalf("first create: replayed=%v err=%v", first != nil && first.Replayed, err)
	}

	second, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("replay returned error: %v", err)
	}
	if !second.Replayed || second.Booking.ID != first.Booking.ID {
		t.Fatalf("expected replay of booking %d, got %+v", first.Booking.ID, second)
	}
	if repo.creates != 1 {
		t.Fatalf("expected a single insert, got %d", repo.creates)
	}
	if len(sink.events) != 1 {
		t.Fatalf("replay must not emit audit events, got %d", len(sink.events))
	}
}

func TestBookingService_Create_IdempotencyStoreDownFallsBack(t *testing.T) {
	repo := newStubBookingRepo()
	idem := newStubIdempotency()
	idem.reserveErr = errors.New("redis down")
	svc := NewBookingService(repo, idem, nil, zerolog.Nop())

	res, err := svc.Create(context.Background(), ports.BookingInput{RoomID: 1, StartTime: hour(10, 0), EndTime: hour(11, 0), IdempotencyKey: "k"})
	if err != nil || res.Replayed {
		t.Fatalf("expected a normal create, got res=%+v err=%v", res, err)
	}
}

func TestBookingService_Create_KeyReusedWithDifferentPayload(t *testing.T) {
	repo := newStubBookingRepo()
	svc := NewBookingService(repo, newStubIdempotency(), nil, zerolog.Nop())
	ctx := context.Background()

	first := ports.BookingInput{RoomID: 1, UserID: 1, StartTime: hour(10, 0), EndTime: hour(11, 0), IdempotencyKey: "k"}
	if _, err := svc.Create(ctx, first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	other := first
	other.RoomID = 2
	if _, err := svc.Create(ctx, other); !errors.Is(err, domain.ErrIdempotencyKeyReused) {
		t.Fatalf("expected ErrIdempotencyKeyReused, got %v", err)
	}
	if repo.creates != 1 {
		t.Fatalf("mismatched payload must not insert, got %d inserts", repo.creates)
	}
}

func TestBookingService_Create_KeyHeldByRunningRequest(t *testing.T) {
	repo := newStubBookingRepo()
	idem := newStubIdempotency()
	svc := NewBookingService(repo, idem, nil, zerolog.Nop())
	input := ports.BookingInput{RoomID: 1, UserID: 1, StartTime: hour(10, 0), EndTime: hour(11, 0), IdempotencyKey: "k"}

	// a concurrent request has reserved the key but not finished yet
	claimed, _, _ := idem.Reserve(context.Background(), "k", fingerprint(&domain.Booking{
		RoomID: 1, UserID: 1, StartTime: hour(10, 0), EndTime: hour(11, 0),
	}))
	if !claimed {
		t.Fatalf("setup: reserve should succeed on an empty store")
	}

	if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrIdempotencyInProgress) {
		t.Fatalf("expected ErrIdempotencyInProgress, got %v", err)
	}
	if repo.creates != 0 {
		t.Fatalf("held key must not insert, got %d inserts", repo.creates)
	}
}

func TestBookingService_Create_FailedInsertReleasesKey(t *testing.T) {
	repo := newStubBookingRepo()
	idem := newStubIdempotency()
	svc := NewBookingService(repo, idem, nil, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.BookingInput{RoomID: 1, StartTime: hour(10, 0), EndTime: hour(11, 0)}); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	clash := ports.BookingInput{RoomID: 1, StartTime: hour(10, 30), EndTime: hour(11, 30), IdempotencyKey: "retry-me"}
	if _, err := svc.Create(ctx, clash); !errors.Is(err, domain.ErrBookingOverlap) {
		t.Fatalf("expected ErrBookingOverlap, got %v", err)
	}
	if len(idem.released) != 1 || idem.released[0] != "retry-me" {
		t.Fatalf("expected key to be released, got %v", idem.released)
	}
	if _, held := idem.records["retry-me"]; held {
		t.Fatalf("released key must not stay reserved")
	}

	// a retry under the same key gets the real outcome again, not a 409
	if _, err := svc.Create(ctx, clash); !errors.Is(err, domain.ErrBookingOverlap) {
		t.Fatalf("retry: expected ErrBookingOverlap, got %v", err)
	}
}

func TestBookingService_Create_ReplayOfDeletedBooking(t *testing.T) {
	repo := newStubBookingRepo()
	idem := newStubIdempotency()
	svc := NewBookingService(repo, idem, nil, zerolog.Nop())
	ctx := context.Background()
	input := ports.BookingInput{RoomID: 1, StartTime: hour(10, 0), EndTime: hour(11, 0), IdempotencyKey: "k"}

	first, _ := svc.Create(ctx, input)
	_ = svc.Delete(ctx, first.Booking.ID)

	again, err := svc.Create(ctx, input)
	if err != nil || again.Replayed || again.Booking.ID == first.Booking.ID {
		t.Fatalf("expected a fresh booking, got res=%+v err=%v", again, err)
	}
}

func TestBookingService_Update(t *testing.T) {
	repo := newStubBookingRepo()
	svc := NewBookingService(repo, nil, nil, zerolog.Nop())
	ctx := context.Background()

	a, _ := svc.Create(ctx, ports.BookingInput{RoomID: 1, UserID: 1, StartTime: hour(10, 0), EndTime: hour(11, 0)})
	b, _ := svc.Create(ctx, ports.BookingInput{RoomID: 1, UserID: 1, StartTime: hour(12, 0), EndTime: hour(13, 0)})

	// moving within its own slot does not collide with itself
	if _, err := svc.Update(ctx, a.Booking.ID, ports.BookingInput{RoomID: 1, UserID: 7, StartTime: hour(10, 15), EndTime: hour(11, 0)}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	_, err := svc.Update(ctx, b.Booking.ID, ports.BookingInput{RoomID: 1, UserID: 1, StartTime: hour(10, 30), EndTime: hour(12, 30)})
	if !errors.Is(err, domain.ErrBookingOverlap) {
		t.Fatalf("expected ErrBookingOverlap, got %v", err)
	}

	if _, err := svc.Update(ctx, 404, ports.BookingInput{RoomID: 1, StartTime: hour(1, 0), EndTime: hour(2, 0)}); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}

	got, _ := svc.Get(ctx, a.Booking.ID)
	if got.UserID != 7 || !got.StartTime.Equal(hour(10, 15)) {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestBookingService_List_Filters(t *testing.T) {
	svc := NewBookingService(newStubBookingRepo(), nil, nil, zerolog.Nop())
	ctx := context.Background()

	_, _ = svc.Create(ctx, ports.BookingInput{RoomID: 1, UserID: 1, StartTime: hour(8, 0), EndTime: hour(9, 0)})
	_, _ = svc.Create(ctx, ports.BookingInput{RoomID: 2, UserID: 1, StartTime: hour(8, 0), EndTime: hour(9, 0)})
	_, _ = svc.Create(ctx, ports.BookingInput{RoomID: 2, UserID: 2, StartTime: hour(9, 0), EndTime: hour(10, 0)})

	page, _ := svc.List(ctx, ports.BookingFilter{UserID: ptr(int64(1))}, ports.PageRequest{})
	if page.Total != 2 {
		t.Fatalf("expected 2 bookings for user 1, got %d", page.Total)
	}
	page, _ = svc.List(ctx, ports.BookingFilter{RoomID: ptr(int64(2)), UserID: ptr(int64(2))}, ports.PageRequest{})
	if page.Total != 1 {
		t.Fatalf("expected 1 booking, got %d", page.Total)
	}
}
