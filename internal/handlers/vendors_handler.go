package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/damaloy/marketplace-api/internal/users"
	"github.com/damaloy/marketplace-api/internal/validation"
	"github.com/damaloy/marketplace-api/internal/vendors"
)

// RegisterVendorsRoutes registers vendor onboarding and lookup routes.
func RegisterVendorsRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	vendorsStore := vendors.NewStore(cfg.DB.Vendors)
	usersStore := users.NewStore(cfg.DB.Users)

	r.POST("/vendor", func(c *gin.Context) {
		var req validation.CreateVendorRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		id, err := vendorsStore.Create(c.Request.Context(), vendors.Vendor{
			Email:      req.Email,
			ShopName:   req.ShopName,
			MarketName: req.MarketName,
			Phone:      req.Phone,
			Address:    req.Address,
			Photo:      req.Photo,
		})
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid vendor", "Vendor not found", "Failed to create vendor")
			return
		}

		// a vendor record upgrades the matching account's role; missing
		// account is not an error, sign-up may come later
		if err := usersStore.SetRoleByEmail(c.Request.Context(), req.Email, users.RoleVendor); err != nil {
			cfg.Logger.Warn("vendor role upgrade failed", zap.String("email", req.Email), zap.Error(err))
		}

		c.JSON(http.StatusOK, gin.H{"insertedId": id, "acknowledged": true})
	})

	r.GET("/vendor", func(c *gin.Context) {
		list, err := vendorsStore.List(c.Request.Context())
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid request", "Vendors not found", "Failed to get vendors")
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/vendor/:email", func(c *gin.Context) {
		vendor, err := vendorsStore.GetByEmail(c.Request.Context(), c.Param("email"))
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid request", "Vendor not found", "Failed to get vendor data")
			return
		}
		c.JSON(http.StatusOK, vendor)
	})
}
