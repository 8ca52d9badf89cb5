package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"auto-diag.backend/pkg/jwt"
)

// Context keys set for authenticated admin requests
const (
	ContextKeyAdminID    = "adminID"
	ContextKeyAdminEmail = "adminEmail"
)

// JWTAuth guards the admin group with a Bearer token
func JWTAuth(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextKeyAdminID, claims.AdminID)
		c.Set(ContextKeyAdminEmail, claims.Email)
		c.Next()
	}
}
