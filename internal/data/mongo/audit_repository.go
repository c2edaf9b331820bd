// Package mongo provides the MongoDB implementation of the payment audit
// trail. Each payment status transition is stored as an append-only record.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/corebank/payment-service/internal/domain/audit"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// AuditCollectionName is the name of the audit trail collection in MongoDB
	AuditCollectionName = "payment_audit_trail"
)

// AuditRepository implements the audit.Repository interface for MongoDB
type AuditRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewAuditRepository creates a new MongoDB audit trail repository
func NewAuditRepository(logger *slog.Logger, db *mongo.Database) audit.Repository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends a transition record to the audit trail
func (r *AuditRepository) Create(ctx context.Context, record *audit.Record) error {
	collection := r.db.Collection(AuditCollectionName)

	_, err := collection.InsertOne(ctx, record)
	if err != nil {
		r.logger.Error("Failed to create audit record",
			"payment_id", record.PaymentID.String(),
			"to_status", string(record.ToStatus),
			"error", err)
		return fmt.Errorf("failed to create audit record: %w", err)
	}

	return nil
}

// GetByPaymentID retrieves the transition history for a payment in
// chronological order
func (r *AuditRepository) GetByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*audit.Record, error) {
	collection := r.db.Collection(AuditCollectionName)

	filter := bson.M{"payment_id": paymentID}
	findOptions := options.Find().SetSort(bson.M{"recorded_at": 1})

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		r.logger.Error("Failed to query audit records",
			"payment_id", paymentID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*audit.Record
	if err := cursor.All(ctx, &records); err != nil {
		r.logger.Error("Failed to decode audit records",
			"payment_id", paymentID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode audit records: %w", err)
	}

	return records, nil
}
