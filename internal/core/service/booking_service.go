package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

type BookingService struct {
	repo   ports.BookingRepository
	idem   ports.IdempotencyStore // optional
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewBookingService(repo ports.BookingRepository, idem ports.IdempotencyStore, audit ports.AuditSink, logger zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, idem: idem, audit: audit, logger: logger}
}

func (s *BookingService) List(ctx context.Context, filter ports.BookingFilter, page ports.PageRequest) (*ports.Page[domain.Booking], error) {
	page = page.Normalize()
	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return newPage(items, total, page), nil
}

func (s *BookingService) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.repo.Get(ctx, id)
}

// Create books the room for [StartTime, EndTime). With an idempotency key the
// key is claimed before the insert: a retry of a finished request replays its
// booking, a retry of a running one or a different payload under the same key
// is refused.
func (s *BookingService) Create(ctx context.Context, input ports.BookingInput) (*ports.BookingResult, error) {
	booking := &domain.Booking{
		RoomID:    input.RoomID,
		UserID:    input.UserID,
		StartTime: input.StartTime.UTC(),
		EndTime:   input.EndTime.UTC(),
	}
	if err := booking.Validate(); err != nil {
		return nil, err
	}

	key := input.IdempotencyKey
	if s.idem == nil {
		key = ""
	}
	fp := fingerprint(booking)
	if key != "" {
		existing, err := s.claim(ctx, key, fp)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &ports.BookingResult{Booking: existing, Replayed: true}, nil
		}
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrBookingOverlap) {
			s.logger.Info().
				Int64("room_id", booking.RoomID).
				Time("start_time", booking.StartTime).
				Time("end_time", booking.EndTime).
				Msg("booking rejected: slot taken")
		}
		if key != "" {
			if rerr := s.idem.Release(context.WithoutCancel(ctx), key); rerr != nil {
				s.logger.Warn().Err(rerr).Str("idempotency_key", key).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	if key != "" {
		if err := s.idem.Complete(context.WithoutCancel(ctx), key, fp, booking.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().Int64("booking_id", booking.ID).Int64("room_id", booking.RoomID).Int64("user_id", booking.UserID).Msg("booking created")
	record(ctx, s.audit, domain.EntityBooking, booking.ID, domain.AuditCreated)
	return &ports.BookingResult{Booking: booking}, nil
}

// claim reserves key for this request. It returns the booking to replay when
// an earlier request with the same payload already finished, and nil when the
// caller should go on and insert. A store outage degrades to a plain create.
func (s *BookingService) claim(ctx context.Context, key, fp string) (*domain.Booking, error) {
	claimed, current, err := s.idem.Reserve(ctx, key, fp)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed")
		return nil, nil
	}
	if claimed {
		return nil, nil
	}

	if current.Fingerprint != fp {
		return nil, domain.ErrIdempotencyKeyReused
	}
	if current.Pending() {
		return nil, domain.ErrIdempotencyInProgress
	}

	existing, err := s.repo.Get(ctx, current.BookingID)
	if errors.Is(err, domain.ErrBookingNotFound) {
		// deleted since; this request takes the key over
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("idempotency_key", key).Int64("booking_id", existing.ID).Msg("idempotent replay")
	return existing, nil
}

// fingerprint identifies a create payload after normalisation.
func fingerprint(b *domain.Booking) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%d|%s|%s",
		b.RoomID, b.UserID,
		b.StartTime.Format(time.RFC3339Nano), b.EndTime.Format(time.RFC3339Nano))))
	return hex.EncodeToString(sum[:])
}

// Update replaces the booking's room, user and interval. The new interval is
// checked against every other booking of the target room.
func (s *BookingService) Update(ctx context.Context, id int64, input ports.BookingInput) (*domain.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	booking.RoomID = input.RoomID
	booking.UserID = input.UserID
	booking.StartTime = input.StartTime.UTC()
	booking.EndTime = input.EndTime.UTC()
	booking.Room = nil
	if err := booking.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, err
	}

	record(ctx, s.audit, domain.EntityBooking, booking.ID, domain.AuditUpdated)
	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("booking_id", id).Msg("booking deleted")
	record(ctx, s.audit, domain.EntityBooking, id, domain.AuditDeleted)
	return nil
}
