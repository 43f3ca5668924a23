package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenValidator checks an admin bearer token.
type TokenValidator interface {
	ValidateAdminToken(token string) bool
}

// BearerToken extracts the token from an Authorization header.
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// AdminAuth rejects requests without a valid admin token.
func AdminAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !validator.ValidateAdminToken(BearerToken(c)) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
