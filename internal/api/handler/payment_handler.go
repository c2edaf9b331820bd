package handler

import (
	"errors"
	"log/slog"

	"github.com/corebank/payment-service/internal/api/service"
	"github.com/corebank/payment-service/internal/domain/payment"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles HTTP requests for payment operations
type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *slog.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(logger *slog.Logger, paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// Create accepts a payment intent and runs it through the orchestration
// workflow. Validation failures return 400 with the reason string; an
// unexpected processing failure returns a generic 500. A payment whose
// balance mutation did not apply is still a success response carrying a
// FAILED record.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	p, err := h.paymentService.CreatePayment(
		c.Request.Context(),
		req.FromAccountNo,
		req.ToAccountNo,
		req.Amount,
		req.Description,
		payment.Type(req.Type),
	)
	if err != nil {
		var validationErr payment.ValidationError
		if errors.As(err, &validationErr) {
			h.logger.Info("Payment rejected", "reason", validationErr.Reason)
			RespondBadRequest(c, validationErr.Reason)
			return
		}
		h.logger.Error("Failed to process payment", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapPaymentToResponse(p))
}

// GetByID retrieves payment details by ID, returns 404 if not found
func (h *PaymentHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid payment ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid payment ID")
		return
	}

	p, err := h.paymentService.GetPaymentByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get payment", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	if p == nil {
		RespondNotFound(c, "Payment not found")
		return
	}

	RespondOK(c, mapPaymentToResponse(p))
}

// GetByAccountNo retrieves every payment involving an account; always a 200
// with a possibly empty list
func (h *PaymentHandler) GetByAccountNo(c *gin.Context) {
	accountNo := c.Param("accountNo")

	entries, err := h.paymentService.GetPaymentsForAccount(c.Request.Context(), accountNo)
	if err != nil {
		h.logger.Error("Failed to get payments for account", "account_no", accountNo, "error", err)
		RespondInternalError(c)
		return
	}

	payments := make([]PaymentResponse, 0, len(entries))
	for _, p := range entries {
		payments = append(payments, mapPaymentToResponse(p))
	}

	RespondOK(c, payments)
}

// GetAuditTrail retrieves the status transition history for a payment
func (h *PaymentHandler) GetAuditTrail(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid payment ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid payment ID")
		return
	}

	entries, err := h.paymentService.GetPaymentAuditTrail(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get payment audit trail", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	records := make([]AuditRecordResponse, 0, len(entries))
	for _, r := range entries {
		records = append(records, mapAuditRecordToResponse(r))
	}

	RespondOK(c, records)
}
