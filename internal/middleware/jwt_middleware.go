package middleware

import (
	"strings"

	"tradefeed/internal/response"
	"tradefeed/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	localUserID   = "user_id"
	localUsername = "username"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return response.Fail(c, "Authorization header is required", nil, fiber.StatusUnauthorized)
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return response.Fail(c, "Authorization header format must be 'Bearer <token>'", nil, fiber.StatusUnauthorized)
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			logger.Debug("JWT validation failed", zap.String("path", c.Path()), zap.Error(err))
			return response.Fail(c, "Invalid or expired token", nil, fiber.StatusUnauthorized)
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			return response.Fail(c, "Invalid or expired token", nil, fiber.StatusUnauthorized)
		}

		// Store claims in Fiber context for subsequent handlers
		c.Locals(localUserID, userID)
		c.Locals(localUsername, claims["username"])

		return c.Next()
	}
}

// UserID returns the authenticated user's ID, or "" outside AuthRequired.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(localUserID).(string)
	return id
}
