package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/corebank/payment-service/internal/api/handler"
	"github.com/corebank/payment-service/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	paymentHandler *handler.PaymentHandler,
) {
	// Correlation ID first so the logger and recovery handlers see it
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Payment operations
		payments := v1.Group("/payments")
		{
			payments.POST("", paymentHandler.Create)
			payments.GET("/:id", paymentHandler.GetByID)
			payments.GET("/:id/audit", paymentHandler.GetAuditTrail)
		}

		// Account-scoped payment history
		accounts := v1.Group("/accounts")
		{
			accounts.GET("/:accountNo/payments", paymentHandler.GetByAccountNo)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
