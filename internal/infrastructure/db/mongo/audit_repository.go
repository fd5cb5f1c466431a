package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

const auditCollection = "audit_events"

type auditDocument struct {
	Entity     string    `bson:"entity"`
	EntityID   int64     `bson:"entity_id"`
	Action     string    `bson:"action"`
	OccurredAt time.Time `bson:"occurred_at"`
	RequestID  string    `bson:"request_id,omitempty"`
	RecordedAt time.Time `bson:"recorded_at"`
}

func toAuditDocument(e domain.AuditEvent, now time.Time) auditDocument {
	return auditDocument{
		Entity:     e.Entity,
		EntityID:   e.EntityID,
		Action:     string(e.Action),
		OccurredAt: e.OccurredAt.UTC(),
		RequestID:  e.RequestID,
		RecordedAt: now.UTC(),
	}
}

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// Insert appends an event to the audit_events collection.
func (r *AuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	if _, err := r.coll.InsertOne(ctx, toAuditDocument(event, time.Now())); err != nil {
		return fmt.Errorf("insert audit event %s: %w", event.Key(), err)
	}
	return nil
}

// ensureAuditIndexes backs the usual lookup: the history of one entity in
// time order.
func ensureAuditIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(auditCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity", Value: 1},
			{Key: "entity_id", Value: 1},
			{Key: "occurred_at", Value: 1},
		},
		Options: options.Index().SetName("entity_history"),
	})
	if err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}
	return nil
}
