package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole returns middleware that allows the request only when the
// authenticated user's role is one of the given roles. Admin users pass
// every role check.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		if HasRole(c, roles...) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient role for this operation",
			},
		})
	}
}

// HasRole reports whether the authenticated user holds one of the given
// roles. The admin role always passes.
func HasRole(c *gin.Context, roles ...string) bool {
	role := GetJWTRole(c)
	if role == "" {
		return false
	}
	if role == "admin" {
		return true
	}
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}
