package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type defines the supported payment operations
type Type string

const (
	TypeDebit    Type = "DEBIT"    // single account debited
	TypeCredit   Type = "CREDIT"   // single account credited
	TypeTransfer Type = "TRANSFER" // one account debited, another credited
)

// Status defines payment lifecycle states
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusComplete Status = "COMPLETE"
	StatusFailed   Status = "FAILED"
)

// Terminal reports whether no further transition may occur from this status
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// ValidationError indicates a payment intent that was rejected before any
// record was persisted or any balance mutation attempted.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// Is implements the errors.Is interface for ValidationError
func (e ValidationError) Is(target error) bool {
	t, ok := target.(ValidationError)
	if !ok {
		return false
	}
	// An empty target reason matches any validation error
	return t.Reason == "" || t.Reason == e.Reason
}

// Validation errors surfaced to the caller with their reason string
var (
	ErrAccountsClosed      = ValidationError{Reason: "one or both accounts are closed"}
	ErrAccountsNotApproved = ValidationError{Reason: "one or both accounts are not approved"}
	ErrInvalidType         = ValidationError{Reason: "invalid payment type"}
	ErrInvalidAmount       = ValidationError{Reason: "amount must be a positive decimal"}
)

// ErrTerminalStatus indicates an attempted transition out of a terminal status
type ErrTerminalStatus struct {
	PaymentID uuid.UUID
	Status    Status
}

func (e ErrTerminalStatus) Error() string {
	return "payment " + e.PaymentID.String() + " already in terminal status " + string(e.Status)
}

// Payment is the unit of work driven through the orchestration workflow.
// Amount always holds the positive magnitude supplied by the caller; the
// debit/credit direction is implied by Type.
type Payment struct {
	ID            uuid.UUID       `json:"id"`
	FromAccountNo string          `json:"from_account_no,omitempty"`
	ToAccountNo   string          `json:"to_account_no,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	Type          Type            `json:"type"`
	Status        Status          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewPayment builds a PENDING payment from a caller-supplied intent.
// Account numbers are not checked here: the account authority is the source
// of truth for both sides regardless of type, and an empty or unknown account
// fails the approval check during orchestration.
func NewPayment(fromAccountNo, toAccountNo string, amount decimal.Decimal, description string, paymentType Type) (*Payment, error) {
	switch paymentType {
	case TypeDebit, TypeCredit, TypeTransfer:
	default:
		return nil, ErrInvalidType
	}
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	now := time.Now()
	return &Payment{
		FromAccountNo: fromAccountNo,
		ToAccountNo:   toAccountNo,
		Amount:        amount,
		Description:   description,
		Type:          paymentType,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// MarkComplete transitions the payment to COMPLETE
func (p *Payment) MarkComplete() error {
	return p.transition(StatusComplete)
}

// MarkFailed transitions the payment to FAILED
func (p *Payment) MarkFailed() error {
	return p.transition(StatusFailed)
}

func (p *Payment) transition(next Status) error {
	if p.Status.Terminal() {
		return ErrTerminalStatus{PaymentID: p.ID, Status: p.Status}
	}
	p.Status = next
	p.UpdatedAt = time.Now()
	return nil
}

// Involves reports whether the account appears on either side of the payment
func (p *Payment) Involves(accountNo string) bool {
	return p.FromAccountNo == accountNo || p.ToAccountNo == accountNo
}
