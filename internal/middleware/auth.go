package middleware

import (
	"github.com/gin-gonic/gin"
)

// DevelopmentAuthMiddleware is a simple auth middleware for development.
// It resolves the acting user from the X-User-ID header and falls back
// to a fixed dev identity so local requests always carry an actor.
func DevelopmentAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = "00000000-0000-0000-0000-000000000001" // Valid UUID for dev
		}

		c.Set("userId", userID)
		c.Set("user_id", userID)
		c.Next()
	}
}
