package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextEmailKey is the gin context key under which RequireAuth stores the
// verified caller email.
const ContextEmailKey = "authEmail"

// RoleFunc resolves the stored role for an email. Unknown users resolve to
// the basic role.
type RoleFunc func(ctx context.Context, email string) (string, error)

// RequireAuth verifies the Authorization bearer token and stores the caller
// email in the request context.
func RequireAuth(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized access",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized access",
			})
			return
		}

		claims, err := v.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Forbidden access",
			})
			return
		}

		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}

// RequireAdmin allows only callers whose stored role is Admin. Must run after
// RequireAuth.
func RequireAdmin(roleFor RoleFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(ContextEmailKey)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized access",
			})
			return
		}

		role, err := roleFor(c.Request.Context(), email)
		if err != nil || role != "Admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin access required",
			})
			return
		}

		c.Next()
	}
}
