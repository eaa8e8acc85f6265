package middleware

import (
	"net/http"
	"strings"

	"bookhub/internal/http-api/apperror"
	"bookhub/internal/http-api/models"
	"bookhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// AuthGate is a Gin middleware protecting routes with bearer-token
// authentication. It verifies the token and resolves it to a live user
// record; every failure mode rejects the request with its own message.
func AuthGate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token provided"})
			c.Abort()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token provided"})
			c.Abort()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(apperror.Status(err), gin.H{"message": apperror.UserMessage(err)})
			c.Abort()
			return
		}

		// Attach the resolved identity for handlers to use
		c.Set("currentUser", user)
		c.Set("userID", user.ID)

		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthGate, if any. Handlers
// must defend against an unresolved identity instead of assuming the
// gate ran.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("currentUser")
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil, false
	}
	return user, true
}
