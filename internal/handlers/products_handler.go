package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/damaloy/marketplace-api/internal/products"
	"github.com/damaloy/marketplace-api/internal/validation"
)

// RegisterProductsRoutes registers the catalog routes.
func RegisterProductsRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	productsStore := products.NewStore(cfg.DB.Products, cfg.DB.Vendors)

	r.POST("/products", func(c *gin.Context) {
		var req validation.CreateProductRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		id, err := productsStore.Create(c.Request.Context(), products.CreateInput{
			Product: products.Product{
				ItemName:    req.ItemName,
				MarketName:  req.MarketName,
				Price:       req.Price,
				Date:        *req.Date,
				Category:    req.Category,
				Photo:       req.Photo,
				Description: req.Description,
				Status:      req.Status,
				VendorName:  req.VendorName,
			},
			VendorID:    req.VendorID,
			VendorEmail: req.Email,
		})
		if err != nil {
			switch {
			case errors.Is(err, products.ErrVendorRequired):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Vendor information is required"})
			case errors.Is(err, products.ErrVendorNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Vendor not found"})
			default:
				writeStoreError(c, cfg.Logger, err, "Invalid product", "Product not found", "Failed to create product")
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":    "Product created successfully",
			"insertedId": id,
		})
	})

	r.GET("/products", func(c *gin.Context) {
		page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

		f := products.ListFilter{
			Status: c.Query("status"),
			Search: c.Query("search"),
			SortBy: c.Query("sortBy"),
			Page:   page,
			Limit:  limit,
		}
		if raw := c.Query("startDate"); raw != "" {
			if d, err := time.Parse("2006-01-02", raw); err == nil {
				f.Date = &d
			} else if d, err := time.Parse(time.RFC3339, raw); err == nil {
				f.Date = &d
			}
		}

		result, err := productsStore.List(c.Request.Context(), f)
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid request", "Products not found", "Failed to get products")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    result.Products,
			"pagination": gin.H{
				"page":       result.Page,
				"limit":      result.Limit,
				"total":      result.Total,
				"totalPages": result.TotalPages,
			},
		})
	})

	r.GET("/products/:id", func(c *gin.Context) {
		product, err := productsStore.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid product ID", "Product not found", "Failed to get product")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	})

	r.PATCH("/products/:id", func(c *gin.Context) {
		var req validation.UpdateProductRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		product, err := productsStore.Update(c.Request.Context(), c.Param("id"), products.UpdateInput{
			ItemName:    req.ItemName,
			MarketName:  req.MarketName,
			Price:       req.Price,
			Category:    req.Category,
			Photo:       req.Photo,
			Description: req.Description,
			Status:      req.Status,
			UpdatedBy:   req.UpdatedBy,
		})
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid product ID", "Product not found", "Failed to update product")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product updated successfully",
			"data":    product,
		})
	})

	r.DELETE("/products/:id", func(c *gin.Context) {
		if err := productsStore.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid product ID", "Product not found", "Failed to delete product")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
	})

	r.GET("/products/:id/price-history", func(c *gin.Context) {
		history, err := productsStore.PriceHistory(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid product ID", "Product not found", "Failed to get price history")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": history})
	})
}
