package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/booking-system/internal/core/ports"
)

const (
	idempotencyTTL = 24 * time.Hour
	// A claim that is never completed (crash, lost connection) frees itself
	// after pendingTTL.
	pendingTTL = time.Minute
)

// IdempotencyStore ties an Idempotency-Key to the booking it produced.
// Key format: idem:booking:<key>, value: <booking id>:<payload fingerprint>
// with id 0 while the claiming request is still running.
type IdempotencyStore struct {
	client     *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL, pendingTTL: pendingTTL}
}

// Reserve claims key with SET NX. If the key is taken, the current record is
// read back; a key that expires between the two calls is claimed again.
func (s *IdempotencyStore) Reserve(ctx context.Context, key, fingerprint string) (bool, ports.IdempotencyRecord, error) {
	k := s.key(key)
	pending := encodeRecord(ports.IdempotencyRecord{Fingerprint: fingerprint})

	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.client.SetNX(ctx, k, pending, s.pendingTTL).Result()
		if err != nil {
			return false, ports.IdempotencyRecord{}, fmt.Errorf("idempotency reserve: %w", err)
		}
		if ok {
			return true, ports.IdempotencyRecord{}, nil
		}

		val, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return false, ports.IdempotencyRecord{}, fmt.Errorf("idempotency reserve: %w", err)
		}
		rec, err := decodeRecord(val)
		if err != nil {
			return false, ports.IdempotencyRecord{}, fmt.Errorf("idempotency reserve: %w", err)
		}
		return false, rec, nil
	}
	return false, ports.IdempotencyRecord{}, fmt.Errorf("idempotency reserve: key %q expired twice while claiming", key)
}

// Complete stores the created booking under key for idempotencyTTL.
func (s *IdempotencyStore) Complete(ctx context.Context, key, fingerprint string, bookingID int64) error {
	val := encodeRecord(ports.IdempotencyRecord{BookingID: bookingID, Fingerprint: fingerprint})
	if err := s.client.Set(ctx, s.key(key), val, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(key string) string {
	return "idem:booking:" + key
}

func encodeRecord(r ports.IdempotencyRecord) string {
	return strconv.FormatInt(r.BookingID, 10) + ":" + r.Fingerprint
}

func decodeRecord(val string) (ports.IdempotencyRecord, error) {
	idPart, fp, ok := strings.Cut(val, ":")
	if !ok {
		return ports.IdempotencyRecord{}, fmt.Errorf("corrupt value %q", val)
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return ports.IdempotencyRecord{}, fmt.Errorf("corrupt value %q: %w", val, err)
	}
	return ports.IdempotencyRecord{BookingID: id, Fingerprint: fp}, nil
}
