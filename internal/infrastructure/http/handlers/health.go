package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const readinessTimeout = 3 * time.Second

// HealthHandler handles GET /health (liveness).
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// PingFunc checks one dependency.
type PingFunc func(ctx context.Context) error

// Dependency is a named readiness check.
type Dependency struct {
	Name string
	Ping PingFunc
}

// HealthDependenciesHandler handles GET /health/ready (readiness).
// Checks the SQL database and every optional store that is configured.
type HealthDependenciesHandler struct {
	deps []Dependency
}

// NewHealthDependenciesHandler skips dependencies with a nil Ping so optional
// stores that are not configured do not count against readiness.
func NewHealthDependenciesHandler(deps ...Dependency) *HealthDependenciesHandler {
	h := &HealthDependenciesHandler{}
	for _, d := range deps {
		if d.Ping != nil {
			h.deps = append(h.deps, d)
		}
	}
	return h
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.deps))
	healthy := true

	for _, d := range h.deps {
		if err := d.Ping(ctx); err != nil {
			deps[d.Name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[d.Name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
