package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/damaloy/marketplace-api/internal/validation"
	"github.com/damaloy/marketplace-api/internal/watchlist"
)

// RegisterWatchlistRoutes registers the watchlist routes.
func RegisterWatchlistRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	watchlistStore := watchlist.NewStore(cfg.DB.Watchlists, cfg.DB.Products)

	r.POST("/user/watchlist", func(c *gin.Context) {
		var req validation.AddWatchlistRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		id, err := watchlistStore.Add(c.Request.Context(), req.Email, req.ProductID)
		if err != nil {
			if errors.Is(err, watchlist.ErrAlreadyWatched) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Product already in watchlist"})
				return
			}
			writeStoreError(c, cfg.Logger, err, "Invalid product ID format", "Product not found", "Failed to add to watchlist")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":    "Product added to watchlist",
			"insertedId": id,
		})
	})

	r.GET("/user/watchlist", func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
			return
		}

		list, err := watchlistStore.List(c.Request.Context(), email)
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid request", "Watchlist not found", "Failed to fetch watchlist")
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.DELETE("/user/watchlist/:productId", func(c *gin.Context) {
		var req validation.EmailRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		if err := watchlistStore.Remove(c.Request.Context(), req.Email, c.Param("productId")); err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid product ID format", "Item not found in watchlist", "Failed to remove from watchlist")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product removed from watchlist successfully"})
	})

	r.GET("/user/watchlist/check/:productId", func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
			return
		}

		watched, addedAt, err := watchlistStore.Check(c.Request.Context(), email, c.Param("productId"))
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid product ID format", "Item not found in watchlist", "Failed to check watchlist status")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"isInWatchlist": watched,
			"addedAt":       addedAt,
		})
	})

	r.GET("/user/watchlist/count", func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
			return
		}

		count, err := watchlistStore.Count(c.Request.Context(), email)
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid request", "Watchlist not found", "Failed to get watchlist count")
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	})
}
