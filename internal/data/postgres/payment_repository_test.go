package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/corebank/payment-service/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testPayment() *payment.Payment {
	now := time.Now()
	return &payment.Payment{
		ID:            uuid.New(),
		FromAccountNo: "ACC1",
		ToAccountNo:   "ACC2",
		Amount:        decimal.RequireFromString("100.00"),
		Description:   "test transfer",
		Type:          payment.TypeTransfer,
		Status:        payment.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func paymentColumns() []string {
	return []string{"id", "from_account_no", "to_account_no", "amount", "description", "type", "status", "created_at", "updated_at"}
}

func paymentRow(p *payment.Payment) []interface{} {
	return []interface{}{p.ID, p.FromAccountNo, p.ToAccountNo, p.Amount, p.Description, string(p.Type), string(p.Status), p.CreatedAt, p.UpdatedAt}
}

func TestPaymentRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &PaymentRepository{querier: mock, logger: logger}

	query := `
		INSERT INTO payments \(id, from_account_no, to_account_no, amount, description, type, status, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8, \$9\)
	`

	t.Run("success", func(t *testing.T) {
		p := testPayment()
		mock.ExpectExec(query).
			WithArgs(p.ID, p.FromAccountNo, p.ToAccountNo, p.Amount, p.Description, string(p.Type), string(p.Status), p.CreatedAt, p.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, p)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("assigns id when unset", func(t *testing.T) {
		p := testPayment()
		p.ID = uuid.Nil
		mock.ExpectExec(query).
			WithArgs(pgxmock.AnyArg(), p.FromAccountNo, p.ToAccountNo, p.Amount, p.Description, string(p.Type), string(p.Status), p.CreatedAt, p.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, p)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID, "Create must assign the record id")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		p := testPayment()
		expectedErr := errors.New("db error")
		mock.ExpectExec(query).
			WithArgs(p.ID, p.FromAccountNo, p.ToAccountNo, p.Amount, p.Description, string(p.Type), string(p.Status), p.CreatedAt, p.UpdatedAt).
			WillReturnError(expectedErr)

		err := repo.Create(ctx, p)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create payment")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &PaymentRepository{querier: mock, logger: logger}

	query := `
		SELECT id, from_account_no, to_account_no, amount, description, type, status, created_at, updated_at
		FROM payments
		WHERE id = \$1
	`

	t.Run("found", func(t *testing.T) {
		p := testPayment()
		mock.ExpectQuery(query).
			WithArgs(p.ID).
			WillReturnRows(pgxmock.NewRows(paymentColumns()).AddRow(paymentRow(p)...))

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, payment.TypeTransfer, got.Type)
		assert.Equal(t, payment.StatusPending, got.Status)
		assert.True(t, p.Amount.Equal(got.Amount))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(query).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound{PaymentID: id})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_GetByAccountNo(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &PaymentRepository{querier: mock, logger: logger}

	query := `
		SELECT id, from_account_no, to_account_no, amount, description, type, status, created_at, updated_at
		FROM payments
		WHERE from_account_no = \$1 OR to_account_no = \$1
		ORDER BY created_at
	`

	t.Run("returns matching payments", func(t *testing.T) {
		sent := testPayment()
		received := testPayment()
		received.FromAccountNo = "ACC3"
		received.ToAccountNo = "ACC1"

		mock.ExpectQuery(query).
			WithArgs("ACC1").
			WillReturnRows(pgxmock.NewRows(paymentColumns()).
				AddRow(paymentRow(sent)...).
				AddRow(paymentRow(received)...))

		got, err := repo.GetByAccountNo(ctx, "ACC1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, sent.ID, got[0].ID)
		assert.Equal(t, received.ID, got[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("NOBODY").
			WillReturnRows(pgxmock.NewRows(paymentColumns()))

		got, err := repo.GetByAccountNo(ctx, "NOBODY")
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectQuery(query).
			WithArgs("ACC1").
			WillReturnError(expectedErr)

		_, err := repo.GetByAccountNo(ctx, "ACC1")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &PaymentRepository{querier: mock, logger: logger}

	query := `
		UPDATE payments
		SET status = \$1, updated_at = \$2
		WHERE id = \$3
	`

	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectExec(query).
			WithArgs(string(payment.StatusComplete), pgxmock.AnyArg(), id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateStatus(ctx, id, payment.StatusComplete)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectExec(query).
			WithArgs(string(payment.StatusFailed), pgxmock.AnyArg(), id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateStatus(ctx, id, payment.StatusFailed)
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound{PaymentID: id})
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
