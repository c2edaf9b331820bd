package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/corebank/payment-service/internal/api/middleware"
	"github.com/corebank/payment-service/internal/domain/audit"
	"github.com/corebank/payment-service/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrPaymentProcessing signals an unexpected failure during the mutation
// phase; the payment record was marked FAILED but the caller receives this
// error instead of the record.
var ErrPaymentProcessing = errors.New("failed to process payment")

// Failure reasons recorded on the audit trail
const (
	reasonMutationRejected = "balance mutation did not apply"
	reasonProcessingError  = "unexpected processing error"
)

// PaymentServiceImpl implements the PaymentService interface
type PaymentServiceImpl struct {
	paymentRepo payment.Repository
	auditRepo   audit.Repository
	gateway     AccountGateway
	notifier    EventNotifier
	logger      *slog.Logger
}

// NewPaymentService creates a new payment orchestration service
func NewPaymentService(logger *slog.Logger, paymentRepo payment.Repository, auditRepo audit.Repository, gateway AccountGateway, notifier EventNotifier) PaymentService {
	return &PaymentServiceImpl{
		paymentRepo: paymentRepo,
		auditRepo:   auditRepo,
		gateway:     gateway,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreatePayment drives a payment intent through the full lifecycle:
// validation, PENDING record, balance mutation, terminal status. Both
// supplied account numbers are validated against the authority regardless of
// payment type; validation rejects before anything is persisted.
func (s *PaymentServiceImpl) CreatePayment(ctx context.Context, fromAccountNo, toAccountNo string, amount decimal.Decimal, description string, paymentType payment.Type) (*payment.Payment, error) {
	p, err := payment.NewPayment(fromAccountNo, toAccountNo, amount, description, paymentType)
	if err != nil {
		return nil, err
	}

	if s.gateway.IsClosed(ctx, fromAccountNo) || s.gateway.IsClosed(ctx, toAccountNo) {
		s.logger.Info("Payment rejected: closed account",
			"from_account_no", fromAccountNo,
			"to_account_no", toAccountNo,
		)
		return nil, payment.ErrAccountsClosed
	}
	if !s.gateway.IsApproved(ctx, fromAccountNo) || !s.gateway.IsApproved(ctx, toAccountNo) {
		s.logger.Info("Payment rejected: unapproved account",
			"from_account_no", fromAccountNo,
			"to_account_no", toAccountNo,
		)
		return nil, payment.ErrAccountsNotApproved
	}

	// First durable write: the PENDING record guarantees an audit trail even
	// when the mutation phase fails.
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to persist pending payment", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentProcessing, err)
	}
	s.recordTransition(ctx, p.ID, "", payment.StatusPending, "")

	applied, err := s.applyBalanceMutations(ctx, p)
	if err != nil {
		s.logger.Error("Unexpected error during balance mutation",
			"payment_id", p.ID.String(),
			"type", string(p.Type),
			"error", err,
		)
		s.finalize(ctx, p, payment.StatusFailed, reasonProcessingError)
		return nil, fmt.Errorf("%w: %v", ErrPaymentProcessing, err)
	}

	if applied {
		s.finalize(ctx, p, payment.StatusComplete, "")
	} else {
		s.finalize(ctx, p, payment.StatusFailed, reasonMutationRejected)
	}

	s.logger.Info("Payment processed",
		"payment_id", p.ID.String(),
		"type", string(p.Type),
		"status", string(p.Status),
		"amount", p.Amount.String(),
	)

	return p, nil
}

// applyBalanceMutations dispatches the funds movement for the payment type.
// For TRANSFER both legs are always attempted: a failed debit does not
// short-circuit the credit, and a completed leg is never reversed.
func (s *PaymentServiceImpl) applyBalanceMutations(ctx context.Context, p *payment.Payment) (bool, error) {
	switch p.Type {
	case payment.TypeDebit:
		return s.gateway.AdjustBalance(ctx, p.FromAccountNo, p.Amount.Neg()), nil
	case payment.TypeCredit:
		return s.gateway.AdjustBalance(ctx, p.ToAccountNo, p.Amount), nil
	case payment.TypeTransfer:
		debited := s.gateway.AdjustBalance(ctx, p.FromAccountNo, p.Amount.Neg())
		credited := s.gateway.AdjustBalance(ctx, p.ToAccountNo, p.Amount)
		return debited && credited, nil
	default:
		return false, fmt.Errorf("unsupported payment type: %s", p.Type)
	}
}

// finalize transitions the record to its terminal status and persists it.
// Audit and event side channels must never alter the workflow outcome, so
// their failures are logged and swallowed here.
func (s *PaymentServiceImpl) finalize(ctx context.Context, p *payment.Payment, status payment.Status, reason string) {
	previous := p.Status

	var err error
	if status == payment.StatusComplete {
		err = p.MarkComplete()
	} else {
		err = p.MarkFailed()
	}
	if err != nil {
		s.logger.Error("Refused terminal transition", "payment_id", p.ID.String(), "error", err)
		return
	}

	if err := s.paymentRepo.UpdateStatus(ctx, p.ID, p.Status); err != nil {
		s.logger.Error("Failed to persist terminal payment status",
			"payment_id", p.ID.String(),
			"status", string(p.Status),
			"error", err,
		)
	}

	s.recordTransition(ctx, p.ID, previous, p.Status, reason)
	s.notifier.PaymentFinalized(p)
}

// recordTransition appends to the audit trail; failures are logged only
func (s *PaymentServiceImpl) recordTransition(ctx context.Context, paymentID uuid.UUID, from, to payment.Status, reason string) {
	record := audit.NewRecord(paymentID, from, to, reason)
	record.CorrelationID = middleware.CorrelationIDFromContext(ctx)
	if err := s.auditRepo.Create(ctx, record); err != nil {
		s.logger.Warn("Failed to record audit transition",
			"payment_id", paymentID.String(),
			"to_status", string(to),
			"error", err,
		)
	}
}

// GetPaymentByID retrieves a payment by its ID. Returns nil if not found
func (s *PaymentServiceImpl) GetPaymentByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound{}) {
			s.logger.Info("Payment not found", "payment_id", id.String())
			return nil, nil
		}
		s.logger.Error("Failed to get payment by ID", "payment_id", id.String(), "error", err)
		return nil, err
	}
	return p, nil
}

// GetPaymentsForAccount retrieves every payment involving the account
func (s *PaymentServiceImpl) GetPaymentsForAccount(ctx context.Context, accountNo string) ([]*payment.Payment, error) {
	return s.paymentRepo.GetByAccountNo(ctx, accountNo)
}

// GetPaymentAuditTrail retrieves the status transition history for a payment
func (s *PaymentServiceImpl) GetPaymentAuditTrail(ctx context.Context, id uuid.UUID) ([]*audit.Record, error) {
	return s.auditRepo.GetByPaymentID(ctx, id)
}
