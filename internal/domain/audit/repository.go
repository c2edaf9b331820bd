package audit

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages audit trail persistence. Writes happen on the payment
// workflow's side channel: callers log failures but never fail the payment.
type Repository interface {
	Create(ctx context.Context, record *Record) error

	// GetByPaymentID returns the transition history for a payment in
	// chronological order; empty slice when the payment has no records
	GetByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*Record, error)
}
