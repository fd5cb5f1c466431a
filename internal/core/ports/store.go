package ports

import "context"

// PageRequest is the skip/limit window applied to every list query.
type PageRequest struct {
	Skip  int
	Limit int
}

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

// Normalize clamps the window to the accepted range.
func (p PageRequest) Normalize() PageRequest {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Page is one window of a list query together with the unpaged total.
type Page[T any] struct {
	Items []*T
	Total int64
	Skip  int
	Limit int
}

// Store is the per-entity capability surface shared by every resource. It is
// deliberately small so that external tooling (admin panels, scripts) can work
// against any entity without knowing its storage.
type Store[T any, F any] interface {
	List(ctx context.Context, filter F, page PageRequest) ([]*T, int64, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int64) error
}
