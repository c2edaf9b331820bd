// Package postgres provides the PostgreSQL implementation of the payment
// record store. Every lifecycle transition of a payment is persisted here as
// a single-record write; there is no transaction spanning this store and the
// remote account authority.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corebank/payment-service/internal/domain/payment"
	"github.com/corebank/payment-service/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PaymentRepository implements the payment.Repository interface for PostgreSQL
type PaymentRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewPaymentRepository(logger *slog.Logger, db *persistence.PostgresDB) payment.Repository {
	return &PaymentRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction; the returned repository
// uses the provided transaction for all database operations.
func (r *PaymentRepository) WithTx(tx pgx.Tx) payment.Repository {
	return &PaymentRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new payment record and assigns its ID. The stored record
// is the first durable artifact of the workflow.
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	query := `
		INSERT INTO payments (id, from_account_no, to_account_no, amount, description, type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.querier.Exec(ctx, query,
		p.ID,
		p.FromAccountNo,
		p.ToAccountNo,
		p.Amount,
		p.Description,
		string(p.Type),
		string(p.Status),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create payment", "error", err)
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// GetByID retrieves a payment by its ID
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	query := `
		SELECT id, from_account_no, to_account_no, amount, description, type, status, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	p, err := scanPayment(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payment.ErrPaymentNotFound{PaymentID: id}
		}
		r.logger.Error("Failed to get payment", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return p, nil
}

// GetByAccountNo retrieves payments where the account appears as either the
// from or the to side, in natural storage order
func (r *PaymentRepository) GetByAccountNo(ctx context.Context, accountNo string) ([]*payment.Payment, error) {
	query := `
		SELECT id, from_account_no, to_account_no, amount, description, type, status, created_at, updated_at
		FROM payments
		WHERE from_account_no = $1 OR to_account_no = $1
		ORDER BY created_at
	`

	rows, err := r.querier.Query(ctx, query, accountNo)
	if err != nil {
		r.logger.Error("Failed to list payments for account", "account_no", accountNo, "error", err)
		return nil, fmt.Errorf("failed to list payments for account: %w", err)
	}
	defer rows.Close()

	var payments []*payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payment rows: %w", err)
	}

	return payments, nil
}

// UpdateStatus persists a lifecycle transition for the record
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status payment.Status) error {
	query := `
		UPDATE payments
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.querier.Exec(ctx, query, string(status), time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update payment status", "id", id.String(), "error", err)
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return payment.ErrPaymentNotFound{PaymentID: id}
	}

	return nil
}

func scanPayment(row pgx.Row) (*payment.Payment, error) {
	var p payment.Payment
	var paymentType, status string
	err := row.Scan(
		&p.ID,
		&p.FromAccountNo,
		&p.ToAccountNo,
		&p.Amount,
		&p.Description,
		&paymentType,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Type = payment.Type(paymentType)
	p.Status = payment.Status(status)
	return &p, nil
}
