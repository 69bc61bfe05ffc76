package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/damaloy/marketplace-api/internal/payments"
	"github.com/damaloy/marketplace-api/internal/validation"
)

// RegisterPaymentsRoutes registers payment recording, history and the
// payment-intent passthrough.
func RegisterPaymentsRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	paymentsStore := payments.NewStore(cfg.DB.Payments, cfg.DB.Orders)

	r.POST("/create-payment-intent", func(c *gin.Context) {
		var req validation.CreateIntentRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		intent, err := cfg.Gateway.CreateIntent(c.Request.Context(), req.Amount)
		if err != nil {
			cfg.Logger.Error("payment intent creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"clientSecret":    intent.ClientSecret,
			"paymentIntentId": intent.PaymentIntentID,
		})
	})

	r.POST("/payments", func(c *gin.Context) {
		var req validation.RecordPaymentRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		result, err := paymentsStore.Record(c.Request.Context(), payments.RecordInput{
			OrderID:         req.OrderID,
			Email:           req.Email,
			Amount:          req.Amount,
			PaymentMethod:   req.PaymentMethod,
			TransactionID:   req.TransactionID,
			PaymentIntentID: req.PaymentIntentID,
			Status:          req.Status,
		})
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid payment", "Order not found", "Failed to record payment")
			return
		}

		if !result.OrderUpdated {
			// payment is stored either way; flag tells the client the order
			// reconciliation did not land
			cfg.Logger.Warn("payment recorded without matching order",
				zap.String("order_id", req.OrderID),
				zap.String("payment_id", result.PaymentID.Hex()))
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":      true,
			"paymentId":    result.PaymentID,
			"orderUpdated": result.OrderUpdated,
			"message":      "Payment recorded successfully",
		})
	})

	r.GET("/payments", func(c *gin.Context) {
		list, err := paymentsStore.List(c.Request.Context(), c.Query("email"))
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid request", "Payments not found", "Failed to get payments")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
	})
}
