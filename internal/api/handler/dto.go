package handler

import (
	"time"

	"github.com/corebank/payment-service/internal/domain/audit"
	"github.com/corebank/payment-service/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest represents a request to create a new payment.
// Account numbers are optional at this boundary: the account authority
// decides whether the supplied sides are usable, whatever the type.
type CreatePaymentRequest struct {
	FromAccountNo string          `json:"from_account_no"`
	ToAccountNo   string          `json:"to_account_no"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description"`
	Type          string          `json:"type" binding:"required,oneof=DEBIT CREDIT TRANSFER"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            string          `json:"id"`
	FromAccountNo string          `json:"from_account_no,omitempty"`
	ToAccountNo   string          `json:"to_account_no,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// AuditRecordResponse represents one status transition in API responses
type AuditRecordResponse struct {
	PaymentID  string `json:"payment_id"`
	FromStatus string `json:"from_status,omitempty"`
	ToStatus   string `json:"to_status"`
	Reason     string `json:"reason,omitempty"`
	RecordedAt string `json:"recorded_at"`
}

// mapPaymentToResponse maps a payment entity to a response DTO
func mapPaymentToResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID.String(),
		FromAccountNo: p.FromAccountNo,
		ToAccountNo:   p.ToAccountNo,
		Amount:        p.Amount,
		Description:   p.Description,
		Type:          string(p.Type),
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}

// mapAuditRecordToResponse maps an audit record to a response DTO
func mapAuditRecordToResponse(r *audit.Record) AuditRecordResponse {
	return AuditRecordResponse{
		PaymentID:  r.PaymentID.String(),
		FromStatus: string(r.FromStatus),
		ToStatus:   string(r.ToStatus),
		Reason:     r.Reason,
		RecordedAt: r.RecordedAt.Format(time.RFC3339),
	}
}
