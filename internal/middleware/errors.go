package middleware

import (
	"errors"

	"tradefeed/internal/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler renders any error that reaches Fiber as an error envelope.
// Fiber errors keep their code and message; anything else is a 500 whose
// details are only logged.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return response.Fail(c, fe.Message, nil, fe.Code)
		}

		logger.Error("unhandled request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return response.Fail(c, "Server Error", nil, fiber.StatusInternalServerError)
	}
}
