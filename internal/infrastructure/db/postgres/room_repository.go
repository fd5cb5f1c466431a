package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

// RoomRepository implements ports.RoomRepository.
type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

var _ ports.RoomRepository = (*RoomRepository)(nil)

func roomFilter(f ports.RoomFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.OfficeID != nil {
			db = db.Where("office_id = ?", *f.OfficeID)
		}
		if f.Capacity != nil {
			db = db.Where("capacity = ?", *f.Capacity)
		}
		return db
	}
}

func (r *RoomRepository) List(ctx context.Context, f ports.RoomFilter, page ports.PageRequest) ([]*domain.Room, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&roomRecord{}).Scopes(roomFilter(f)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count rooms: %w", err)
	}

	var recs []roomRecord
	if err := r.db.WithContext(ctx).Scopes(roomFilter(f), paginate(page.Skip, page.Limit)).Find(&recs).Error; err != nil {
		return nil, 0, fmt.Errorf("find rooms: %w", err)
	}

	out := make([]*domain.Room, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, total, nil
}

func (r *RoomRepository) Get(ctx context.Context, id int64) (*domain.Room, error) {
	var rec roomRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, translate(err, domain.ErrRoomNotFound, nil)
	}
	return rec.toDomain(), nil
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	rec := roomFromDomain(room)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	room.ID = rec.ID
	return nil
}

// Update writes every column, so a nil capacity clears the stored value.
func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	rec := roomFromDomain(room)
	res := r.db.WithContext(ctx).Model(&roomRecord{}).Where("id = ?", room.ID).
		Select("name", "capacity", "office_id").
		Updates(&rec)
	if res.Error != nil {
		return fmt.Errorf("update room: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&roomRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete room: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}
