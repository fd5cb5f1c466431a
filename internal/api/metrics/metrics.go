// Package metrics defines and registers all custom Prometheus metrics for the
// booking API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts bookings written to the database. Idempotent
// replays are not counted.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created.",
	},
)

// BookingConflictsTotal counts create or update attempts rejected because the
// room was already booked.
var BookingConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_conflicts_total",
		Help:      "Total number of booking writes rejected by the overlap rule.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthLoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events handled by the dispatcher.
// Label:
//   - result: "stored", "failed" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events, labelled by outcome.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteDuration measures how long a single audit insert takes.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of audit event persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
