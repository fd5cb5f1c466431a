package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "booking-system"
)

// Config captures the settings for the audit store connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store bundles the client with the selected database so callers can both
// query and disconnect.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect establishes a MongoDB client, verifies connectivity with a ping and
// makes sure the audit indexes exist.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	store := &Store{Client: client, DB: client.Database(cfg.Database)}
	if err := ensureAuditIndexes(connectCtx, store.DB); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, err
	}
	return store, nil
}

// Ping backs the readiness check.
func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
