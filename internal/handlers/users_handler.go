package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/damaloy/marketplace-api/internal/auth"
	"github.com/damaloy/marketplace-api/internal/store"
	"github.com/damaloy/marketplace-api/internal/users"
	"github.com/damaloy/marketplace-api/internal/validation"
)

// RegisterUsersRoutes registers account routes. Listing and role changes are
// admin-only; creation and role lookup are open so sign-in flows can call
// them before the caller has a stored account.
func RegisterUsersRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	usersStore := users.NewStore(cfg.DB.Users)
	adminOnly := []gin.HandlerFunc{
		auth.RequireAuth(cfg.Verifier),
		auth.RequireAdmin(usersStore.RoleByEmail),
	}

	r.POST("/users", func(c *gin.Context) {
		var req validation.CreateUserRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		inserted, id, err := usersStore.Create(c.Request.Context(), req.Email, req.DisplayName, req.PhotoURL)
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid user", "User not found", "Failed to create user")
			return
		}
		if !inserted {
			c.JSON(http.StatusOK, gin.H{"message": "User already exists", "inserted": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"inserted": true, "insertedId": id})
	})

	r.GET("/users", append(adminOnly, func(c *gin.Context) {
		page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "5"), 10, 64)

		result, err := usersStore.List(c.Request.Context(), page, limit, c.Query("search"))
		if err != nil {
			writeStoreError(c, cfg.Logger, err, "Invalid request", "Users not found", "Failed to get users")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"data":       result.Users,
			"total":      result.Total,
			"page":       result.Page,
			"totalPages": result.TotalPages,
		})
	})...)

	r.PATCH("/users/:id", append(adminOnly, func(c *gin.Context) {
		var req validation.UpdateUserRoleRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		userID := c.Param("id")
		previousRole, err := usersStore.PromoteToVendor(c.Request.Context(), userID, req.Role)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrInvalidID):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			case errors.Is(err, store.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			case errors.Is(err, users.ErrRoleChangeNotAllowed):
				c.JSON(http.StatusBadRequest, gin.H{
					"message":    `Role can only be changed from "user" to "vendor"`,
					"validRoles": gin.H{"from": users.RoleUser, "to": users.RoleVendor},
				})
			case errors.Is(err, users.ErrNoChange):
				c.JSON(http.StatusBadRequest, gin.H{"message": "No changes made"})
			default:
				writeStoreError(c, cfg.Logger, err, "Invalid user ID", "User not found", "Failed to update user role")
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      "User role updated to vendor successfully",
			"userId":       userID,
			"previousRole": previousRole,
			"newRole":      users.RoleVendor,
		})
	})...)

	r.GET("/users/:email/role", func(c *gin.Context) {
		u, err := usersStore.GetByEmail(c.Request.Context(), c.Param("email"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			writeStoreError(c, cfg.Logger, err, "Invalid request", "User not found", "Failed to get role")
			return
		}
		role := u.Role
		if role == "" {
			role = users.RoleUser
		}
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
}
