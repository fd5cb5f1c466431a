// Command api serves the office booking HTTP API.
//
// @title                       Office Booking API
// @version                     1.0
// @description                 Offices, rooms and non-overlapping room bookings.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

//go:generate swag init -g cmd/api/main.go -d ../../ -o ../../docs

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/99minutos/booking-system/internal/api"
	"github.com/99minutos/booking-system/internal/core/ports"
	"github.com/99minutos/booking-system/internal/core/service"
	"github.com/99minutos/booking-system/internal/infrastructure/config"
	"github.com/99minutos/booking-system/internal/infrastructure/db/mongo"
	"github.com/99minutos/booking-system/internal/infrastructure/db/postgres"
	"github.com/99minutos/booking-system/internal/infrastructure/db/redis"
	"github.com/99minutos/booking-system/internal/infrastructure/errtrack"
	"github.com/99minutos/booking-system/internal/infrastructure/http/handlers"
	"github.com/99minutos/booking-system/internal/infrastructure/queue"
	"github.com/99minutos/booking-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		// config may not have loaded; fall back to defaults
		l := logger.New(logger.Options{Output: os.Stderr})
		l.Fatal().Err(err).Msg("api stopped")
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
		Env:    cfg.Env,
	})

	reporter, err := errtrack.New(cfg.ErrorTracking.SentryDSN, cfg.Env)
	if err != nil {
		return err
	}
	defer reporter.Flush(2 * time.Second)

	// --- Relational store ---
	db, err := postgres.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = postgres.Close(db) }()
	log.Info().Str("driver", cfg.Database.Driver).Msg("database ready")

	readiness := []handlers.Dependency{{
		Name: "database",
		Ping: func(ctx context.Context) error { return postgres.Ping(ctx, db) },
	}}

	// --- Audit trail (optional) ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	var audit ports.AuditSink = ports.NopAuditSink{}
	var dispatcher *queue.Dispatcher
	if cfg.Mongo.URI != "" {
		store, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = store.Close(closeCtx)
		}()

		dispatcher = queue.NewDispatcher(cfg.Mongo.AuditWorkers, mongo.NewAuditRepository(store.DB), log)
		dispatcher.Start(workerCtx)
		audit = dispatcher
		readiness = append(readiness, handlers.Dependency{Name: "mongo", Ping: store.Ping})
		log.Info().Int("workers", cfg.Mongo.AuditWorkers).Msg("audit trail enabled")
	}

	// --- Idempotency keys (optional) ---
	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		idem = redis.NewIdempotencyStore(client)
		readiness = append(readiness, handlers.Dependency{Name: "redis", Ping: pingRedis(client)})
		log.Info().Msg("idempotency keys enabled")
	}

	// --- Services ---
	bookingRepo := postgres.NewBookingRepository(db)
	e := api.NewRouter(api.Dependencies{
		Logger:         log,
		Reporter:       reporter,
		RequestTimeout: cfg.RequestTimeout,
		Offices:        service.NewOfficeService(postgres.NewOfficeRepository(db), audit, log),
		Rooms:          service.NewRoomService(postgres.NewRoomRepository(db), bookingRepo, audit, log),
		Bookings:       service.NewBookingService(bookingRepo, idem, audit, log),
		Auth: service.NewAuthService(postgres.NewUserRepository(db), cfg.Auth.SecretKey, cfg.Auth.AccessTokenTTL,
			service.WithBcryptCost(cfg.Auth.BcryptCost),
			service.WithAuditSink(audit),
			service.WithLogger(log),
		),
		Readiness: handlers.NewHealthDependenciesHandler(readiness...),
	})

	// --- Serve ---
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	if dispatcher != nil {
		cancelWorkers()
		dispatcher.Wait()
	}
	return nil
}

func pingRedis(client *goredis.Client) handlers.PingFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
