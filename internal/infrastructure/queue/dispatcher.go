package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/booking-system/internal/api/metrics"
	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher routes audit events to a fixed set of workers using consistent
// hashing on the entity key, guaranteeing per-entity write ordering.
type Dispatcher struct {
	workers []chan domain.AuditEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

var _ ports.AuditSink = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record enqueues an event on the worker responsible for its entity. It never
// blocks: when that worker's buffer is full the event is dropped and counted.
func (d *Dispatcher) Record(event domain.AuditEvent) {
	idx := d.shardIndex(event.Key())
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("key", event.Key()).Int("worker_id", idx).Msg("audit queue full, event dropped")
	}
}

// shardIndex maps an entity key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.write(ctx, id, event)
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, workerID int, event domain.AuditEvent) {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	start := time.Now()
	err := d.repo.Insert(writeCtx, event)
	metrics.AuditWriteDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("key", event.Key()).
			Str("action", string(event.Action)).
			Int("worker_id", workerID).
			Msg("audit write failed")
		return
	}
	metrics.AuditEventsTotal.WithLabelValues("stored").Inc()
}
