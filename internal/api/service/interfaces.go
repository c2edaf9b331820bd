package service

import (
	"context"

	"github.com/corebank/payment-service/internal/domain/audit"
	"github.com/corebank/payment-service/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService defines the interface for payment orchestration operations
type PaymentService interface {
	// CreatePayment validates both participant accounts, persists a PENDING
	// record, performs the balance mutations for the payment type and drives
	// the record to its terminal status.
	// Returns a payment.ValidationError when either account is closed or not
	// approved; the returned record carries FAILED status (not an error) when
	// a balance mutation did not apply.
	CreatePayment(ctx context.Context, fromAccountNo, toAccountNo string, amount decimal.Decimal, description string, paymentType payment.Type) (*payment.Payment, error)

	// GetPaymentByID retrieves a payment by its ID
	// Returns nil if the payment is not found
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error)

	// GetPaymentsForAccount retrieves every payment where the account appears
	// as either the from or the to side
	GetPaymentsForAccount(ctx context.Context, accountNo string) ([]*payment.Payment, error)

	// GetPaymentAuditTrail retrieves the status transition history for a payment
	GetPaymentAuditTrail(ctx context.Context, id uuid.UUID) ([]*audit.Record, error)
}

// AccountGateway is the boolean contract the orchestrator relies on. Remote
// failures never surface here: lookups fail closed, mutations fail soft.
type AccountGateway interface {
	IsApproved(ctx context.Context, accountNo string) bool
	IsClosed(ctx context.Context, accountNo string) bool
	AdjustBalance(ctx context.Context, accountNo string, signedAmount decimal.Decimal) bool
}

// EventNotifier publishes terminal payment events off the request path
type EventNotifier interface {
	PaymentFinalized(p *payment.Payment)
}
