package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/booking-system/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// Timestamp accepts RFC 3339 as well as zone-less "2006-01-02T15:04[:05]"
// values, which are read as UTC.
type Timestamp struct {
	time.Time
}

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// pathID parses the :id segment. Ids that match no row are left to the
// repository, which reports them as not found.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// pageParams reads skip (>= 0, default 0) and limit (1..100, default 100).
func pageParams(c echo.Context) (ports.PageRequest, error) {
	page := ports.PageRequest{Limit: ports.DefaultPageLimit}
	if err := echo.QueryParamsBinder(c).
		Int("skip", &page.Skip).
		Int("limit", &page.Limit).
		BindError(); err != nil {
		return page, echo.NewHTTPError(http.StatusBadRequest, "skip and limit must be integers")
	}
	if page.Skip < 0 {
		return page, echo.NewHTTPError(http.StatusBadRequest, "skip must be >= 0")
	}
	if page.Limit < 1 || page.Limit > ports.MaxPageLimit {
		return page, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", ports.MaxPageLimit))
	}
	return page, nil
}

// optionalInt64 returns nil when the query parameter is absent.
func optionalInt64(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return &v, nil
}

func optionalInt(c echo.Context, name string) (*int, error) {
	v, err := optionalInt64(c, name)
	if err != nil || v == nil {
		return nil, err
	}
	n := int(*v)
	return &n, nil
}

func queryTimestamp(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" is required")
	}
	t, err := ParseTimestamp(raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" must be a timestamp")
	}
	return t, nil
}
