package audit

import (
	"time"

	"github.com/corebank/payment-service/internal/domain/payment"
	"github.com/google/uuid"
)

// Record captures a single payment status transition for the audit trail
type Record struct {
	PaymentID     uuid.UUID      `json:"payment_id" bson:"payment_id"`
	FromStatus    payment.Status `json:"from_status,omitempty" bson:"from_status,omitempty"`
	ToStatus      payment.Status `json:"to_status" bson:"to_status"`
	Reason        string         `json:"reason,omitempty" bson:"reason,omitempty"`
	CorrelationID string         `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	RecordedAt    time.Time      `json:"recorded_at" bson:"recorded_at"`
}

// NewRecord builds an audit record for a transition on the given payment
func NewRecord(paymentID uuid.UUID, from, to payment.Status, reason string) *Record {
	return &Record{
		PaymentID:  paymentID,
		FromStatus: from,
		ToStatus:   to,
		Reason:     reason,
		RecordedAt: time.Now(),
	}
}
