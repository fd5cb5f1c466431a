package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/booking-system/docs"
	"github.com/99minutos/booking-system/internal/api/handler"
	"github.com/99minutos/booking-system/internal/api/middleware"
	"github.com/99minutos/booking-system/internal/core/ports"
	"github.com/99minutos/booking-system/internal/infrastructure/errtrack"
	"github.com/99minutos/booking-system/internal/infrastructure/http/handlers"
	"github.com/99minutos/booking-system/pkg/logger"
)

const metricsSubsystem = "booking"

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Logger         zerolog.Logger
	Reporter       *errtrack.Reporter
	RequestTimeout time.Duration

	Offices  ports.OfficeService
	Rooms    ports.RoomService
	Bookings ports.BookingService
	Auth     ports.AuthService

	Readiness *handlers.HealthDependenciesHandler

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger, deps.Reporter)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			c.SetRequest(c.Request().WithContext(ports.WithRequestID(c.Request().Context(), id)))
		},
	}))
	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	// Inside the metrics middleware: it renders errors, so the status
	// recorded above is the one sent to the client.
	e.Use(logger.RequestLogger(deps.Logger))
	if deps.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeoutWithConfig(echomiddleware.ContextTimeoutConfig{
			Timeout: deps.RequestTimeout,
		}))
	}

	// --- Dependencies ---
	officeHandler := handler.NewOfficeHandler(deps.Offices)
	roomHandler := handler.NewRoomHandler(deps.Rooms)
	bookingHandler := handler.NewBookingHandler(deps.Bookings)
	authHandler := handler.NewAuthHandler(deps.Auth)
	authMiddleware := middleware.Auth(deps.Auth)

	// --- Resource routes ---
	offices := e.Group("/offices")
	register(offices, echo.POST, "", officeHandler.Create)
	register(offices, echo.GET, "", officeHandler.List)
	offices.GET("/:id", officeHandler.Get)
	offices.PUT("/:id", officeHandler.Update)
	offices.DELETE("/:id", officeHandler.Delete)

	rooms := e.Group("/rooms")
	register(rooms, echo.POST, "", roomHandler.Create)
	register(rooms, echo.GET, "", roomHandler.List)
	rooms.GET("/:id", roomHandler.Get)
	rooms.PUT("/:id", roomHandler.Update)
	rooms.DELETE("/:id", roomHandler.Delete)
	rooms.GET("/:id/availability", roomHandler.Availability)

	bookings := e.Group("/bookings")
	register(bookings, echo.POST, "", bookingHandler.Create)
	register(bookings, echo.GET, "", bookingHandler.List)
	bookings.GET("/:id", bookingHandler.Get)
	bookings.PUT("/:id", bookingHandler.Update)
	bookings.DELETE("/:id", bookingHandler.Delete)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Health checks (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness  – is the process alive?
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness) // readiness – are dependencies up?
	}

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// register mounts a collection route both with and without the trailing slash.
func register(g *echo.Group, method, path string, h echo.HandlerFunc) {
	g.Add(method, path, h)
	g.Add(method, path+"/", h)
}
