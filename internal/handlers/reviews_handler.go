package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/damaloy/marketplace-api/internal/reviews"
	"github.com/damaloy/marketplace-api/internal/store"
	"github.com/damaloy/marketplace-api/internal/validation"
)

// RegisterReviewsRoutes registers the product-review routes.
func RegisterReviewsRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	reviewsStore := reviews.NewStore(cfg.DB.Reviews)

	r.POST("/reviews/:productId", func(c *gin.Context) {
		var req validation.CreateReviewRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		review, err := reviewsStore.Create(c.Request.Context(), reviews.CreateInput{
			ProductID:       c.Param("productId"),
			Rating:          req.Rating,
			Comment:         req.Comment,
			PriceAssessment: req.PriceAssessment,
			UserName:        req.User.Name,
			UserEmail:       req.User.Email,
			UserAvatar:      req.User.Avatar,
		})
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid review", "Review not found", "Failed to create review")
			return
		}

		c.JSON(http.StatusCreated, review)
	})

	r.GET("/reviews/:productId", func(c *gin.Context) {
		list, err := reviewsStore.ListByProduct(c.Request.Context(), c.Param("productId"))
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid product ID", "Reviews not found", "Failed to fetch reviews")
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.PUT("/user/reviews/:id", func(c *gin.Context) {
		var req validation.UpdateReviewRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		review, err := reviewsStore.Update(c.Request.Context(), c.Param("id"), reviews.UpdateInput{
			Rating:          req.Rating,
			Comment:         req.Comment,
			PriceAssessment: req.PriceAssessment,
			ProductID:       req.ProductID,
		})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
				return
			}
			writeStoreError(c, cfg.Logger, err, "Invalid review ID", "Review not found", "Failed to update review")
			return
		}
		c.JSON(http.StatusOK, review)
	})

	r.DELETE("/user/reviews/:id", func(c *gin.Context) {
		if err := reviewsStore.Delete(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Review not found"})
				return
			}
			writeStoreError(c, cfg.Logger, err, "Invalid review ID", "Review not found", "Failed to delete review")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted successfully"})
	})
}
