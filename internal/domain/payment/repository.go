package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository manages durable payment record persistence
type Repository interface {
	// Create stores a new payment record and assigns its ID
	Create(ctx context.Context, p *Payment) error

	// GetByID retrieves a payment by its ID
	// Returns ErrPaymentNotFound if no record exists
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// GetByAccountNo retrieves every payment where the account appears as
	// either the from or the to side, in natural storage order
	GetByAccountNo(ctx context.Context, accountNo string) ([]*Payment, error)

	// UpdateStatus persists a lifecycle transition for the record
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	WithTx(tx pgx.Tx) Repository
}

// ErrPaymentNotFound indicates a missing payment record
type ErrPaymentNotFound struct {
	PaymentID uuid.UUID
}

func (e ErrPaymentNotFound) Error() string {
	return "payment not found: " + e.PaymentID.String()
}

// Is implements the errors.Is interface for ErrPaymentNotFound
func (e ErrPaymentNotFound) Is(target error) bool {
	t, ok := target.(ErrPaymentNotFound)
	if !ok {
		return false
	}
	// An empty target ID matches any ErrPaymentNotFound
	if t.PaymentID == uuid.Nil {
		return true
	}
	return e.PaymentID == t.PaymentID
}
