package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

type RoomService struct {
	repo     ports.RoomRepository
	bookings ports.BookingRepository
	audit    ports.AuditSink
	logger   zerolog.Logger
}

func NewRoomService(repo ports.RoomRepository, bookings ports.BookingRepository, audit ports.AuditSink, logger zerolog.Logger) *RoomService {
	return &RoomService{repo: repo, bookings: bookings, audit: audit, logger: logger}
}

func (s *RoomService) List(ctx context.Context, filter ports.RoomFilter, page ports.PageRequest) (*ports.Page[domain.Room], error) {
	page = page.Normalize()
	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return newPage(items, total, page), nil
}

func (s *RoomService) Get(ctx context.Context, id int64) (*domain.Room, error) {
	return s.repo.Get(ctx, id)
}

// Create stores the room as given. The office id is not checked.
func (s *RoomService) Create(ctx context.Context, input ports.RoomInput) (*domain.Room, error) {
	room := &domain.Room{Name: input.Name, Capacity: input.Capacity, OfficeID: input.OfficeID}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("room_id", room.ID).Int64("office_id", room.OfficeID).Msg("room created")
	record(ctx, s.audit, domain.EntityRoom, room.ID, domain.AuditCreated)
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, id int64, input ports.RoomInput) (*domain.Room, error) {
	room, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	room.Name = input.Name
	room.Capacity = input.Capacity
	room.OfficeID = input.OfficeID
	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}

	record(ctx, s.audit, domain.EntityRoom, room.ID, domain.AuditUpdated)
	return room, nil
}

// Delete removes the room. Bookings referencing it are kept.
func (s *RoomService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("room_id", id).Msg("room deleted")
	record(ctx, s.audit, domain.EntityRoom, id, domain.AuditDeleted)
	return nil
}

func (s *RoomService) Availability(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	if !end.After(start) {
		return false, domain.ErrInvalidTimeRange
	}
	if _, err := s.repo.Get(ctx, roomID); err != nil {
		return false, err
	}

	busy, err := s.bookings.HasOverlap(ctx, roomID, start.UTC(), end.UTC(), 0)
	if err != nil {
		return false, fmt.Errorf("check availability: %w", err)
	}
	return !busy, nil
}
