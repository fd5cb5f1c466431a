package postgres

import (
	"time"

	"github.com/99minutos/booking-system/internal/core/domain"
)

type officeRecord struct {
	ID       int64  `gorm:"primaryKey"`
	Name     string `gorm:"not null;uniqueIndex"`
	Location string `gorm:"not null;index"`
}

func (officeRecord) TableName() string { return "offices" }

func (r *officeRecord) toDomain() *domain.Office {
	return &domain.Office{ID: r.ID, Name: r.Name, Location: r.Location}
}

func officeFromDomain(o *domain.Office) officeRecord {
	return officeRecord{ID: o.ID, Name: o.Name, Location: o.Location}
}

type roomRecord struct {
	ID       int64  `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Capacity *int
	OfficeID *int64 `gorm:"index"`
}

func (roomRecord) TableName() string { return "rooms" }

func (r *roomRecord) toDomain() *domain.Room {
	room := &domain.Room{ID: r.ID, Name: r.Name, Capacity: r.Capacity}
	if r.OfficeID != nil {
		room.OfficeID = *r.OfficeID
	}
	return room
}

func roomFromDomain(r *domain.Room) roomRecord {
	officeID := r.OfficeID
	return roomRecord{ID: r.ID, Name: r.Name, Capacity: r.Capacity, OfficeID: &officeID}
}

type bookingRecord struct {
	ID        int64     `gorm:"primaryKey"`
	RoomID    int64     `gorm:"not null;index:idx_bookings_room_start,priority:1"`
	UserID    int64     `gorm:"not null;index"`
	StartTime time.Time `gorm:"not null;index:idx_bookings_room_start,priority:2"`
	EndTime   time.Time `gorm:"not null"`

	Room *roomRecord `gorm:"foreignKey:RoomID"`
}

func (bookingRecord) TableName() string { return "bookings" }

func (r *bookingRecord) toDomain() *domain.Booking {
	b := &domain.Booking{
		ID:        r.ID,
		RoomID:    r.RoomID,
		UserID:    r.UserID,
		StartTime: r.StartTime.UTC(),
		EndTime:   r.EndTime.UTC(),
	}
	if r.Room != nil {
		b.Room = r.Room.toDomain()
	}
	return b
}

func bookingFromDomain(b *domain.Booking) bookingRecord {
	return bookingRecord{
		ID:        b.ID,
		RoomID:    b.RoomID,
		UserID:    b.UserID,
		StartTime: b.StartTime.UTC(),
		EndTime:   b.EndTime.UTC(),
	}
}

type userRecord struct {
	ID             int64  `gorm:"primaryKey"`
	Username       string `gorm:"not null;uniqueIndex"`
	HashedPassword string `gorm:"not null"`
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{ID: r.ID, Username: r.Username, PasswordHash: r.HashedPassword}
}
