package ports

import (
	"context"
	"time"

	"github.com/99minutos/booking-system/internal/core/domain"
)

// RoomFilter narrows room listings. Capacity is an exact match.
type RoomFilter struct {
	OfficeID *int64
	Capacity *int
}

type RoomRepository interface {
	Store[domain.Room, RoomFilter]
}

type RoomInput struct {
	Name     string
	Capacity *int
	OfficeID int64
}

type RoomService interface {
	List(ctx context.Context, filter RoomFilter, page PageRequest) (*Page[domain.Room], error)
	Get(ctx context.Context, id int64) (*domain.Room, error)
	Create(ctx context.Context, input RoomInput) (*domain.Room, error)
	Update(ctx context.Context, id int64, input RoomInput) (*domain.Room, error)
	Delete(ctx context.Context, id int64) error
	// Availability reports whether [start, end) is free for the room.
	Availability(ctx context.Context, roomID int64, start, end time.Time) (bool, error)
}
