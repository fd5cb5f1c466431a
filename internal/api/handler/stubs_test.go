package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

type stubOfficeService struct {
	listFn   func(ctx context.Context, filter ports.OfficeFilter, page ports.PageRequest) (*ports.Page[domain.Office], error)
	getFn    func(ctx context.Context, id int64) (*domain.Office, error)
	createFn func(ctx context.Context, input ports.OfficeInput) (*domain.Office, error)
	updateFn func(ctx context.Context, id int64, input ports.OfficeInput) (*domain.Office, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubOfficeService) List(ctx context.Context, filter ports.OfficeFilter, page ports.PageRequest) (*ports.Page[domain.Office], error) {
	return s.listFn(ctx, filter, page)
}
func (s *stubOfficeService) Get(ctx context.Context, id int64) (*domain.Office, error) {
	return s.getFn(ctx, id)
}
func (s *stubOfficeService) Create(ctx context.Context, input ports.OfficeInput) (*domain.Office, error) {
	return s.createFn(ctx, input)
}
func (s *stubOfficeService) Update(ctx context.Context, id int64, input ports.OfficeInput) (*domain.Office, error) {
	return s.updateFn(ctx, id, input)
}
func (s *stubOfficeService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

type stubRoomService struct {
	listFn         func(ctx context.Context, filter ports.RoomFilter, page ports.PageRequest) (*ports.Page[domain.Room], error)
	getFn          func(ctx context.Context, id int64) (*domain.Room, error)
	createFn       func(ctx context.Context, input ports.RoomInput) (*domain.Room, error)
	updateFn       func(ctx context.Context, id int64, input ports.RoomInput) (*domain.Room, error)
	deleteFn       func(ctx context.Context, id int64) error
	availabilityFn func(ctx context.Context, roomID int64, start, end time.Time) (bool, error)
}

func (s *stubRoomService) List(ctx context.Context, filter ports.RoomFilter, page ports.PageRequest) (*ports.Page[domain.Room], error) {
	return s.listFn(ctx, filter, page)
}
func (s *stubRoomService) Get(ctx context.Context, id int64) (*domain.Room, error) {
	return s.getFn(ctx, id)
}
func (s *stubRoomService) Create(ctx context.Context, input ports.RoomInput) (*domain.Room, error) {
	return s.createFn(ctx, input)
}
func (s *stubRoomService) Update(ctx context.Context, id int64, input ports.RoomInput) (*domain.Room, error) {
	return s.updateFn(ctx, id, input)
}
func (s *stubRoomService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}
func (s *stubRoomService) Availability(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	return s.availabilityFn(ctx, roomID, start, end)
}

type stubBookingService struct {
	listFn   func(ctx context.Context, filter ports.BookingFilter, page ports.PageRequest) (*ports.Page[domain.Booking], error)
	getFn    func(ctx context.Context, id int64) (*domain.Booking, error)
	createFn func(ctx context.Context, input ports.BookingInput) (*ports.BookingResult, error)
	updateFn func(ctx context.Context, id int64, input ports.BookingInput) (*domain.Booking, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubBookingService) List(ctx context.Context, filter ports.BookingFilter, page ports.PageRequest) (*ports.Page[domain.Booking], error) {
	return s.listFn(ctx, filter, page)
}
func (s *stubBookingService) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.getFn(ctx, id)
}
func (s *stubBookingService) Create(ctx context.Context, input ports.BookingInput) (*ports.BookingResult, error) {
	return s.createFn(ctx, input)
}
func (s *stubBookingService) Update(ctx context.Context, id int64, input ports.BookingInput) (*domain.Booking, error) {
	return s.updateFn(ctx, id, input)
}
func (s *stubBookingService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

// newContext builds an echo context with the package validator installed.
// A non-empty body is sent as JSON.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

// requireHTTPError fails unless err is an *echo.HTTPError with the given code.
func requireHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
	return he
}

func mustNotCall(t *testing.T) {
	t.Helper()
	t.Fatalf("service should not be called")
}
