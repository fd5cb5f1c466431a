package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type memTable[T any] struct {
	rows   map[int64]*T
	nextID int64
}

func newMemTable[T any]() *memTable[T] {
	return &memTable[T]{rows: make(map[int64]*T)}
}

func (m *memTable[T]) sortedIDs() []int64 {
	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func window[T any](items []*T, page ports.PageRequest) []*T {
	if page.Skip >= len(items) {
		return nil
	}
	end := page.Skip + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Skip:end]
}

type stubOfficeRepo struct {
	*memTable[domain.Office]
	listErr error
}

func newStubOfficeRepo() *stubOfficeRepo {
	return &stubOfficeRepo{memTable: newMemTable[domain.Office]()}
}

func (r *stubOfficeRepo) List(_ context.Context, f ports.OfficeFilter, page ports.PageRequest) ([]*domain.Office, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var matched []*domain.Office
	for _, id := range r.sortedIDs() {
		o := r.rows[id]
		if f.Location != nil && o.Location != *f.Location {
			continue
		}
		clone := *o
		matched = append(matched, &clone)
	}
	return window(matched, page), int64(len(matched)), nil
}

func (r *stubOfficeRepo) Get(_ context.Context, id int64) (*domain.Office, error) {
	o, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrOfficeNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOfficeRepo) Create(_ context.Context, o *domain.Office) error {
	r.nextID++
	o.ID = r.nextID
	clone := *o
	r.rows[o.ID] = &clone
	return nil
}

func (r *stubOfficeRepo) Update(_ context.Context, o *domain.Office) error {
	if _, ok := r.rows[o.ID]; !ok {
		return domain.ErrOfficeNotFound
	}
	clone := *o
	r.rows[o.ID] = &clone
	return nil
}

func (r *stubOfficeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrOfficeNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *stubOfficeRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	for id, o := range r.rows {
		if o.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type stubRoomRepo struct {
	*memTable[domain.Room]
}

func newStubRoomRepo() *stubRoomRepo {
	return &stubRoomRepo{memTable: newMemTable[domain.Room]()}
}

func (r *stubRoomRepo) List(_ context.Context, f ports.RoomFilter, page ports.PageRequest) ([]*domain.Room, int64, error) {
	var matched []*domain.Room
	for _, id := range r.sortedIDs() {
		room := r.rows[id]
		if f.OfficeID != nil && room.OfficeID != *f.OfficeID {
			continue
		}
		if f.Capacity != nil && (room.Capacity == nil || *room.Capacity != *f.Capacity) {
			continue
		}
		clone := *room
		matched = append(matched, &clone)
	}
	return window(matched, page), int64(len(matched)), nil
}

func (r *stubRoomRepo) Get(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	clone := *room
	return &clone, nil
}

func (r *stubRoomRepo) Create(_ context.Context, room *domain.Room) error {
	r.nextID++
	room.ID = r.nextID
	clone := *room
	r.rows[room.ID] = &clone
	return nil
}

func (r *stubRoomRepo) Update(_ context.Context, room *domain.Room) error {
	if _, ok := r.rows[room.ID]; !ok {
		return domain.ErrRoomNotFound
	}
	clone := *room
	r.rows[room.ID] = &clone
	return nil
}

func (r *stubRoomRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrRoomNotFound
	}
	delete(r.rows, id)
	return nil
}

// stubBookingRepo mirrors the transactional overlap check of the real
// repository.
type stubBookingRepo struct {
	*memTable[domain.Booking]
	creates int
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{memTable: newMemTable[domain.Booking]()}
}

func (r *stubBookingRepo) List(_ context.Context, f ports.BookingFilter, page ports.PageRequest) ([]*domain.Booking, int64, error) {
	var matched []*domain.Booking
	for _, id := range r.sortedIDs() {
		b := r.rows[id]
		if f.UserID != nil && b.UserID != *f.UserID {
			continue
		}
		if f.RoomID != nil && b.RoomID != *f.RoomID {
			continue
		}
		clone := *b
		matched = append(matched, &clone)
	}
	return window(matched, page), int64(len(matched)), nil
}

func (r *stubBookingRepo) Get(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if busy, _ := r.HasOverlap(ctx, b.RoomID, b.StartTime, b.EndTime, 0); busy {
		return domain.ErrBookingOverlap
	}
	r.creates++
	r.nextID++
	b.ID = r.nextID
	clone := *b
	r.rows[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	if _, ok := r.rows[b.ID]; !ok {
		return domain.ErrBookingNotFound
	}
	if busy, _ := r.HasOverlap(ctx, b.RoomID, b.StartTime, b.EndTime, b.ID); busy {
		return domain.ErrBookingOverlap
	}
	clone := *b
	r.rows[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *stubBookingRepo) HasOverlap(_ context.Context, roomID int64, start, end time.Time, excludeID int64) (bool, error) {
	for id, b := range r.rows {
		if id == excludeID || b.RoomID != roomID {
			continue
		}
		if start.Before(b.EndTime) && b.StartTime.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

type stubIdempotency struct {
	records    map[string]ports.IdempotencyRecord
	reserveErr error
	released   []string
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{records: make(map[string]ports.IdempotencyRecord)}
}

func (s *stubIdempotency) Reserve(_ context.Context, key, fingerprint string) (bool, ports.IdempotencyRecord, error) {
	if s.reserveErr != nil {
		return false, ports.IdempotencyRecord{}, s.reserveErr
	}
	if rec, ok := s.records[key]; ok {
		return false, rec, nil
	}
	s.records[key] = ports.IdempotencyRecord{Fingerprint: fingerprint}
	return true, ports.IdempotencyRecord{}, nil
}

func (s *stubIdempotency) Complete(_ context.Context, key, fingerprint string, bookingID int64) error {
	s.records[key] = ports.IdempotencyRecord{BookingID: bookingID, Fingerprint: fingerprint}
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, key string) error {
	s.released = append(s.released, key)
	delete(s.records, key)
	return nil
}

// recordingSink captures audit events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *recordingSink) Record(e domain.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) actions() []domain.AuditAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Action)
	}
	return out
}

func ptr[T any](v T) *T { return &v }
