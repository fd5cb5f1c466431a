package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

func TestOfficeHandler_Create(t *testing.T) {
	stub := &stubOfficeService{
		createFn: func(ctx context.Context, input ports.OfficeInput) (*domain.Office, error) {
			if input.Name != "HQ" || input.Location != "Madrid" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Office{ID: 1, Name: input.Name, Location: input.Location}, nil
		},
	}
	handler := NewOfficeHandler(stub)

	c, rec := newContext(http.MethodPost, "/offices/", `{"name":"HQ","location":"Madrid"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp officeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp != (officeResponse{ID: 1, Name: "HQ", Location: "Madrid"}) {
		t.Fatalf("unexpected office: %+v", resp)
	}
}

func TestOfficeHandler_Create_MissingLocation(t *testing.T) {
	stub := &stubOfficeService{
		createFn: func(ctx context.Context, input ports.OfficeInput) (*domain.Office, error) {
			mustNotCall(t)
			return nil, nil
		},
	}
	handler := NewOfficeHandler(stub)

	c, _ := newContext(http.MethodPost, "/offices/", `{"name":"HQ"}`)
	he := requireHTTPError(t, handler.Create(c), http.StatusBadRequest)
	if he.Message != "location is required" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestOfficeHandler_List_Defaults(t *testing.T) {
	stub := &stubOfficeService{
		listFn: func(ctx context.Context, filter ports.OfficeFilter, page ports.PageRequest) (*ports.Page[domain.Office], error) {
			if filter.Location != nil {
				t.Fatalf("expected no location filter")
			}
			if page.Skip != 0 || page.Limit != 100 {
				t.Fatalf("unexpected page: %+v", page)
			}
			return &ports.Page[domain.Office]{Total: 0, Skip: 0, Limit: 100}, nil
		},
	}
	handler := NewOfficeHandler(stub)

	c, rec := newContext(http.MethodGet, "/offices/", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp pageResponse[officeResponse]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Items == nil || len(resp.Items) != 0 {
		t.Fatalf("expected empty items array, got %+v", resp.Items)
	}
	if resp.Pagination.Limit != 100 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
}

func TestOfficeHandler_List_FilterAndWindow(t *testing.T) {
	stub := &stubOfficeService{
		listFn: func(ctx context.Context, filter ports.OfficeFilter, page ports.PageRequest) (*ports.Page[domain.Office], error) {
			if filter.Location == nil || *filter.Location != "Lisbon" {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			if page.Skip != 2 || page.Limit != 5 {
				t.Fatalf("unexpected page: %+v", page)
			}
			return &ports.Page[domain.Office]{
				Items: []*domain.Office{{ID: 3, Name: "B", Location: "Lisbon"}},
				Total: 3,
				Skip:  2,
				Limit: 5,
			}, nil
		},
	}
	handler := NewOfficeHandler(stub)

	c, rec := newContext(http.MethodGet, "/offices/?location=Lisbon&skip=2&limit=5", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp pageResponse[officeResponse]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Items) != 1 || resp.Pagination.Total != 3 {
		t.Fatalf("unexpected page: %+v", resp)
	}
}

func TestOfficeHandler_List_InvalidWindow(t *testing.T) {
	stub := &stubOfficeService{
		listFn: func(ctx context.Context, filter ports.OfficeFilter, page ports.PageRequest) (*ports.Page[domain.Office], error) {
			mustNotCall(t)
			return nil, nil
		},
	}
	handler := NewOfficeHandler(stub)

	for _, target := range []string{
		"/offices/?limit=0",
		"/offices/?limit=101",
		"/offices/?skip=-1",
		"/offices/?skip=abc",
	} {
		c, _ := newContext(http.MethodGet, target, "")
		requireHTTPError(t, handler.List(c), http.StatusBadRequest)
	}
}

func TestOfficeHandler_Get_NotFound(t *testing.T) {
	stub := &stubOfficeService{
		getFn: func(ctx context.Context, id int64) (*domain.Office, error) {
			if id != 42 {
				t.Fatalf("unexpected id %d", id)
			}
			return nil, domain.ErrOfficeNotFound
		},
	}
	handler := NewOfficeHandler(stub)

	c, _ := newContext(http.MethodGet, "/offices/42", "")
	if err := handler.Get(withID(c, "42")); !errors.Is(err, domain.ErrOfficeNotFound) {
		t.Fatalf("expected ErrOfficeNotFound, got %v", err)
	}
}

func TestOfficeHandler_Get_InvalidID(t *testing.T) {
	handler := NewOfficeHandler(&stubOfficeService{})

	c, _ := newContext(http.MethodGet, "/offices/abc", "")
	requireHTTPError(t, handler.Get(withID(c, "abc")), http.StatusBadRequest)
}

func TestOfficeHandler_Update_Conflict(t *testing.T) {
	stub := &stubOfficeService{
		updateFn: func(ctx context.Context, id int64, input ports.OfficeInput) (*domain.Office, error) {
			return nil, domain.ErrOfficeExists
		},
	}
	handler := NewOfficeHandler(stub)

	c, _ := newContext(http.MethodPut, "/offices/1", `{"name":"Taken","location":"X"}`)
	if err := handler.Update(withID(c, "1")); !errors.Is(err, domain.ErrOfficeExists) {
		t.Fatalf("expected ErrOfficeExists, got %v", err)
	}
}

func TestOfficeHandler_Delete(t *testing.T) {
	var deleted int64
	stub := &stubOfficeService{
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	handler := NewOfficeHandler(stub)

	c, rec := newContext(http.MethodDelete, "/offices/9", "")
	if err := handler.Delete(withID(c, "9")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != 9 {
		t.Fatalf("expected id 9 to be deleted, got %d", deleted)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Office successfully deleted" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}
