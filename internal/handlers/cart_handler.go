package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/damaloy/marketplace-api/internal/cart"
	"github.com/damaloy/marketplace-api/internal/validation"
)

// RegisterCartRoutes registers the shopping-cart routes.
func RegisterCartRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	cartStore := cart.NewStore(cfg.DB.Cart, cfg.DB.Products)

	r.POST("/user/cart", func(c *gin.Context) {
		var req validation.AddCartRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		id, err := cartStore.Add(c.Request.Context(), req.Email, req.ProductID, req.Quantity)
		if err != nil {
			if errors.Is(err, cart.ErrAlreadyInCart) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product already in cart"})
				return
			}
			writeStoreError(c, cfg.Logger, err, "Invalid product ID", "Product not found", "Failed to add to cart")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":    true,
			"message":    "Product added to cart",
			"insertedId": id,
		})
	})

	r.GET("/user/cart", func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
			return
		}

		items, err := cartStore.List(c.Request.Context(), email)
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid request", "Cart not found", "Failed to fetch cart items")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
	})

	r.PATCH("/user/cart/:productId", func(c *gin.Context) {
		var req validation.UpdateCartRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		modified, err := cartStore.UpdateQuantity(c.Request.Context(), req.Email, c.Param("productId"), req.Quantity)
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid product ID", "Cart item not found", "Failed to update cart item")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"message":       "Cart item updated",
			"modifiedCount": modified,
		})
	})

	r.DELETE("/user/cart/:productId", func(c *gin.Context) {
		var req validation.EmailRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		if err := cartStore.Remove(c.Request.Context(), req.Email, c.Param("productId")); err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid product ID", "Item not found in cart", "Failed to remove from cart")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      "Product removed from cart",
			"deletedCount": 1,
		})
	})

	// full-cart clear; email comes in the query so the route does not clash
	// with the per-item delete
	r.DELETE("/user/cart", func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
			return
		}

		deleted, err := cartStore.Clear(c.Request.Context(), email)
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid request", "No cart items found for this user", "Failed to clear cart")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      "Cart cleared successfully",
			"deletedCount": deleted,
		})
	})
}
