package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/damaloy/marketplace-api/internal/ads"
	"github.com/damaloy/marketplace-api/internal/validation"
)

// RegisterAdsRoutes registers the advertisement routes.
func RegisterAdsRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	adsStore := ads.NewStore(cfg.DB.Ads)

	r.POST("/ads", func(c *gin.Context) {
		var req validation.CreateAdRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		id, err := adsStore.Create(c.Request.Context(), ads.Ad{
			Title:          req.Title,
			Description:    req.Description,
			Photo:          req.Photo,
			TargetAudience: req.TargetAudience,
			Status:         req.Status,
			VendorID:       req.VendorID,
		})
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid advertisement", "Advertisement not found", "Failed to create advertisement")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":    true,
			"insertedId": id,
			"message":    "Advertisement created successfully",
		})
	})

	r.GET("/ads", func(c *gin.Context) {
		page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

		result, err := adsStore.List(c.Request.Context(), ads.ListFilter{
			Status: c.Query("status"),
			Search: c.Query("search"),
			Page:   page,
			Limit:  limit,
		})
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid request", "Advertisements not found", "Failed to get advertisements")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    result.Ads,
			"pagination": gin.H{
				"page":       result.Page,
				"limit":      result.Limit,
				"total":      result.Total,
				"totalPages": result.TotalPages,
			},
		})
	})

	r.GET("/ads/:id", func(c *gin.Context) {
		ad, err := adsStore.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid advertisement ID", "Advertisement not found", "Failed to get advertisement")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": ad})
	})

	r.PATCH("/ads/:id", func(c *gin.Context) {
		var req validation.UpdateAdRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		ad, err := adsStore.Update(c.Request.Context(), c.Param("id"), ads.UpdateInput{
			Title:          req.Title,
			Description:    req.Description,
			Photo:          req.Photo,
			TargetAudience: req.TargetAudience,
			Status:         req.Status,
		})
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid advertisement ID", "Advertisement not found", "Failed to update advertisement")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Advertisement updated successfully",
			"data":    ad,
		})
	})

	r.DELETE("/ads/:id", func(c *gin.Context) {
		if err := adsStore.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid advertisement ID", "Advertisement not found", "Failed to delete advertisement")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Advertisement deleted successfully"})
	})
}
