package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

type OfficeService struct {
	repo   ports.OfficeRepository
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewOfficeService(repo ports.OfficeRepository, audit ports.AuditSink, logger zerolog.Logger) *OfficeService {
	return &OfficeService{repo: repo, audit: audit, logger: logger}
}

func (s *OfficeService) List(ctx context.Context, filter ports.OfficeFilter, page ports.PageRequest) (*ports.Page[domain.Office], error) {
	page = page.Normalize()
	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list offices: %w", err)
	}
	return newPage(items, total, page), nil
}

func (s *OfficeService) Get(ctx context.Context, id int64) (*domain.Office, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a new office. Names are unique; the pre-check gives a clean
// error in the common case and the unique index catches the racing one.
func (s *OfficeService) Create(ctx context.Context, input ports.OfficeInput) (*domain.Office, error) {
	exists, err := s.repo.ExistsByName(ctx, input.Name, 0)
	if err != nil {
		return nil, fmt.Errorf("check office name: %w", err)
	}
	if exists {
		return nil, domain.ErrOfficeExists
	}

	office := &domain.Office{Name: input.Name, Location: input.Location}
	if err := s.repo.Create(ctx, office); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("office_id", office.ID).Str("name", office.Name).Msg("office created")
	record(ctx, s.audit, domain.EntityOffice, office.ID, domain.AuditCreated)
	return office, nil
}

// Update replaces every writable field of the office.
func (s *OfficeService) Update(ctx context.Context, id int64, input ports.OfficeInput) (*domain.Office, error) {
	office, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, input.Name, id)
	if err != nil {
		return nil, fmt.Errorf("check office name: %w", err)
	}
	if exists {
		return nil, domain.ErrOfficeExists
	}

	office.Name = input.Name
	office.Location = input.Location
	if err := s.repo.Update(ctx, office); err != nil {
		return nil, err
	}

	record(ctx, s.audit, domain.EntityOffice, office.ID, domain.AuditUpdated)
	return office, nil
}

// Delete removes the office. Its rooms are left in place.
func (s *OfficeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("office_id", id).Msg("office deleted")
	record(ctx, s.audit, domain.EntityOffice, id, domain.AuditDeleted)
	return nil
}
