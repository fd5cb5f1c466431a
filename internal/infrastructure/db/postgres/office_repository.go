package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

// OfficeRepository implements ports.OfficeRepository.
type OfficeRepository struct {
	db *gorm.DB
}

func NewOfficeRepository(db *gorm.DB) *OfficeRepository {
	return &OfficeRepository{db: db}
}

var _ ports.OfficeRepository = (*OfficeRepository)(nil)

func officeFilter(f ports.OfficeFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Location != nil {
			db = db.Where("location = ?", *f.Location)
		}
		return db
	}
}

func (r *OfficeRepository) List(ctx context.Context, f ports.OfficeFilter, page ports.PageRequest) ([]*domain.Office, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&officeRecord{}).Scopes(officeFilter(f)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count offices: %w", err)
	}

	var recs []officeRecord
	if err := r.db.WithContext(ctx).Scopes(officeFilter(f), paginate(page.Skip, page.Limit)).Find(&recs).Error; err != nil {
		return nil, 0, fmt.Errorf("find offices: %w", err)
	}

	out := make([]*domain.Office, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, total, nil
}

func (r *OfficeRepository) Get(ctx context.Context, id int64) (*domain.Office, error) {
	var rec officeRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, translate(err, domain.ErrOfficeNotFound, nil)
	}
	return rec.toDomain(), nil
}

func (r *OfficeRepository) Create(ctx context.Context, o *domain.Office) error {
	rec := officeFromDomain(o)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return translate(err, nil, domain.ErrOfficeExists)
	}
	o.ID = rec.ID
	return nil
}

func (r *OfficeRepository) Update(ctx context.Context, o *domain.Office) error {
	rec := officeFromDomain(o)
	res := r.db.WithContext(ctx).Model(&officeRecord{}).Where("id = ?", o.ID).
		Select("name", "location").
		Updates(&rec)
	if res.Error != nil {
		return translate(res.Error, domain.ErrOfficeNotFound, domain.ErrOfficeExists)
	}
	if res.RowsAffected == 0 {
		return domain.ErrOfficeNotFound
	}
	return nil
}

func (r *OfficeRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&officeRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete office: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrOfficeNotFound
	}
	return nil
}

func (r *OfficeRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&officeRecord{}).
		Where("name = ?", name).
		Where("id <> ?", excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
