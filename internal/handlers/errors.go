package handlers

import (
	"errors"

	"tradefeed/internal/repositories"
	"tradefeed/internal/response"
	"tradefeed/internal/services"
	"tradefeed/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// fieldError builds a single-field validation error list.
func fieldError(field, msg string) *validation.Errors {
	errs := validation.NewErrors()
	errs.Add(field, msg)
	return errs
}

// respondError maps service errors onto error envelopes. Unknown errors
// are logged and rendered as a bare 500.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return response.Fail(c, "Resource not found", nil, fiber.StatusNotFound)
	case errors.Is(err, services.ErrInvalidCredentials):
		return response.Fail(c, "Invalid credentials",
			fieldError("email", "These credentials do not match our records."), fiber.StatusUnprocessableEntity)
	case errors.Is(err, services.ErrCannotFollowSelf):
		return response.Fail(c, "Validation failed",
			fieldError("user_id", "You cannot follow yourself."), fiber.StatusUnprocessableEntity)
	}

	logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return response.Fail(c, "Server Error", nil, fiber.StatusInternalServerError)
}
