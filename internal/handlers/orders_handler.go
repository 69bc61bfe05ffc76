package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/damaloy/marketplace-api/internal/orders"
	"github.com/damaloy/marketplace-api/internal/validation"
)

// RegisterOrdersRoutes registers routes for the orders API.
func RegisterOrdersRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	ordersStore := orders.NewStore(cfg.DB.Orders)

	r.POST("/api/orders", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		items := make([]orders.OrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, orders.OrderItem{
				ProductID:          it.ProductID,
				ProductName:        it.ProductName,
				Price:              it.Price,
				Quantity:           it.Quantity,
				Photo:              it.Photo,
				MarketName:         it.MarketName,
				ProductDescription: it.ProductDescription,
				TotalPrice:         it.TotalPrice,
			})
		}

		in := orders.CreateInput{
			Email:          req.Email,
			Items:          items,
			TotalAmount:    req.TotalAmount,
			DeliveryOption: req.DeliveryOption,
			PaymentMethod:  req.PaymentMethod,
			Subtotal:       req.Subtotal,
			DeliveryFee:    req.DeliveryFee,
			Status:         req.Status,
		}
		if req.ContactInfo != nil {
			in.ContactInfo = &orders.ContactInfo{Email: req.ContactInfo.Email, Phone: req.ContactInfo.Phone}
		}

		order, err := ordersStore.Create(ctx, in)
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid order", "Order not found", "Failed to create order")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"orderId": order.OrderID,
			"data":    order,
		})
	})

	r.GET("/api/orders", func(c *gin.Context) {
		page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

		result, err := ordersStore.List(c.Request.Context(), orders.ListFilter{
			Email:  c.Query("email"),
			Status: c.Query("status"),
			Page:   page,
			Limit:  limit,
		})
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid request", "Order not found", "Failed to fetch orders")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    result.Orders,
			"pagination": gin.H{
				"page":       result.Page,
				"limit":      result.Limit,
				"total":      result.Total,
				"totalPages": result.TotalPages,
			},
		})
	})

	r.GET("/api/orders/:id", func(c *gin.Context) {
		order, err := ordersStore.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid order ID", "Order not found", "Failed to fetch order")
			return
		}
		// order returned directly, not wrapped, to match client expectations
		c.JSON(http.StatusOK, order)
	})

	r.PATCH("/api/orders/:id", func(c *gin.Context) {
		var req validation.UpdateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		u := orders.StatusUpdate{Status: req.Status, Message: req.StatusMessage}
		if req.PaymentDetails != nil {
			u.PaymentDetails = &orders.PaymentDetails{
				PaymentID:       req.PaymentDetails.PaymentID,
				PaymentIntentID: req.PaymentDetails.PaymentIntentID,
				TransactionID:   req.PaymentDetails.TransactionID,
				PaymentMethod:   req.PaymentDetails.PaymentMethod,
			}
		}

		if err := ordersStore.UpdateStatus(c.Request.Context(), c.Param("id"), u); err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid order ID", "Order not found", "Failed to update order")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order updated successfully",
		})
	})

	r.GET("/user/orders/confirmation/:orderId", func(c *gin.Context) {
		order, err := ordersStore.GetByOrderID(c.Request.Context(), c.Param("orderId"))
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid order ID", "Order not found", "Failed to fetch order confirmation")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	})
}
