package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is the wire message published when a payment reaches a terminal status
type Event struct {
	PaymentID     uuid.UUID       `json:"payment_id"`
	FromAccountNo string          `json:"from_account_no,omitempty"`
	ToAccountNo   string          `json:"to_account_no,omitempty"`
	Type          Type            `json:"type"`
	Status        Status          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewEvent builds the event for a payment's current state
func NewEvent(p *Payment) *Event {
	return &Event{
		PaymentID:     p.ID,
		FromAccountNo: p.FromAccountNo,
		ToAccountNo:   p.ToAccountNo,
		Type:          p.Type,
		Status:        p.Status,
		Amount:        p.Amount,
		OccurredAt:    time.Now(),
	}
}
