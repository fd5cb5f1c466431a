package ports

import (
	"context"

	"github.com/99minutos/booking-system/internal/core/domain"
)

// OfficeFilter narrows office listings. Nil fields are ignored.
type OfficeFilter struct {
	Location *string
}

type OfficeRepository interface {
	Store[domain.Office, OfficeFilter]
	// ExistsByName reports whether another office already uses name.
	// excludeID lets an update keep its own name; pass 0 on create.
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
}

// OfficeInput carries the writable fields of an office.
type OfficeInput struct {
	Name     string
	Location string
}

type OfficeService interface {
	List(ctx context.Context, filter OfficeFilter, page PageRequest) (*Page[domain.Office], error)
	Get(ctx context.Context, id int64) (*domain.Office, error)
	Create(ctx context.Context, input OfficeInput) (*domain.Office, error)
	Update(ctx context.Context, id int64, input OfficeInput) (*domain.Office, error)
	Delete(ctx context.Context, id int64) error
}
