// Package postgres implements the relational repositories with gorm. The same
// code runs against PostgreSQL in production and SQLite for local runs and
// tests; only PostgreSQL gets the exclusion constraint on bookings.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/99minutos/booking-system/internal/infrastructure/config"
)

const slowQueryThreshold = 200 * time.Millisecond

// Open connects using the configured driver, bounds the pool and migrates the
// schema.
func Open(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		dialector = pgdriver.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(log),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		// rooms and bookings reference ids that may not exist
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	if err := Migrate(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(&officeRecord{}, &roomRecord{}, &bookingRecord{}, &userRecord{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	// The overlap check runs inside a transaction, but two concurrent
	// transactions can both see a free slot. The exclusion constraint makes
	// the second insert fail.
	for _, stmt := range []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
		ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (room_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&);
	END IF;
END $$`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate bookings constraint: %w", err)
		}
	}
	return nil
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping backs the readiness check.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// paginate applies the skip/limit window.
func paginate(skip, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("id").Offset(skip).Limit(limit)
	}
}

type zerologWriter struct {
	log zerolog.Logger
}

func (w zerologWriter) Printf(format string, args ...any) {
	w.log.Warn().Str("component", "gorm").Msgf(format, args...)
}

func newGormLogger(log zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(zerologWriter{log: log}, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
