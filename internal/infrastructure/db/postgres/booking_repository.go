package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

// BookingRepository implements ports.BookingRepository.
type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

var _ ports.BookingRepository = (*BookingRepository)(nil)

func bookingFilter(f ports.BookingFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.UserID != nil {
			db = db.Where("user_id = ?", *f.UserID)
		}
		if f.RoomID != nil {
			db = db.Where("room_id = ?", *f.RoomID)
		}
		return db
	}
}

// List returns bookings with their room eager-loaded.
func (r *BookingRepository) List(ctx context.Context, f ports.BookingFilter, page ports.PageRequest) ([]*domain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&bookingRecord{}).Scopes(bookingFilter(f)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	var recs []bookingRecord
	err := r.db.WithContext(ctx).
		Preload("Room").
		Scopes(bookingFilter(f), paginate(page.Skip, page.Limit)).
		Find(&recs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("find bookings: %w", err)
	}

	out := make([]*domain.Booking, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, total, nil
}

func (r *BookingRepository) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	var rec bookingRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, translate(err, domain.ErrBookingNotFound, nil)
	}
	return rec.toDomain(), nil
}

// Create checks for a colliding booking and inserts in one transaction.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	rec := bookingFromDomain(b)
	rec.ID = 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		busy, err := overlapping(tx, rec.RoomID, rec.StartTime, rec.EndTime, 0)
		if err != nil {
			return err
		}
		if busy {
			return domain.ErrBookingOverlap
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return bookingWriteError("create booking", err)
	}

	b.ID = rec.ID
	return nil
}

// Update re-runs the overlap check against every other booking of the target
// room before writing.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	rec := bookingFromDomain(b)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		busy, err := overlapping(tx, rec.RoomID, rec.StartTime, rec.EndTime, rec.ID)
		if err != nil {
			return err
		}
		if busy {
			return domain.ErrBookingOverlap
		}

		res := tx.Model(&bookingRecord{}).Where("id = ?", rec.ID).
			Select("room_id", "user_id", "start_time", "end_time").
			Updates(&rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrBookingNotFound
		}
		return nil
	})
	if err != nil {
		return bookingWriteError("update booking", err)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&bookingRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) HasOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeID int64) (bool, error) {
	return overlapping(r.db.WithContext(ctx), roomID, start.UTC(), end.UTC(), excludeID)
}

// overlapping runs the half-open intersection test:
// existing.start < new.end AND existing.end > new.start.
func overlapping(db *gorm.DB, roomID int64, start, end time.Time, excludeID int64) (bool, error) {
	var count int64
	q := db.Model(&bookingRecord{}).
		Where("room_id = ?", roomID).
		Where("start_time < ?", end).
		Where("end_time > ?", start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("overlap check: %w", err)
	}
	return count > 0, nil
}

func bookingWriteError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrBookingOverlap), errors.Is(err, domain.ErrBookingNotFound):
		return err
	case isExclusionViolation(err):
		return domain.ErrBookingOverlap
	}
	return fmt.Errorf("%s: %w", op, err)
}
