package middleware

import (
	"context"
	"net/http"
	"strings"

	"devicehub-go/pkg/models"

	"github.com/gin-gonic/gin"
)

// UserLookup resolves an API key to its user.
type UserLookup interface {
	GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error)
}

func RequireAuth(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		// Extract API key from "Bearer <key>" or just "<key>"
		apiKey := strings.TrimPrefix(authHeader, "Bearer ")
		apiKey = strings.TrimSpace(apiKey)

		user, err := users.GetUserByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", user)
		c.Next()
	}
}
