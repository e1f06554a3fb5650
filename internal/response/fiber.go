package response

import (
	"github.com/gofiber/fiber/v2"
)

// RequestOf describes the current request for an error envelope.
func RequestOf(c *fiber.Ctx) FailedRequest {
	return FailedRequest{
		Method: c.Method(),
		URL:    c.BaseURL() + c.OriginalURL(),
	}
}

// Send serializes env onto the response with its status code.
func Send(c *fiber.Ctx, env Envelope) error {
	return c.Status(env.HTTPStatus()).JSON(env)
}

// OK sends a success envelope.
func OK(c *fiber.Ctx, message string, data any, statusCode int) error {
	return Send(c, NewSuccess(message, data, statusCode))
}

// Fail sends an error envelope describing the current request.
func Fail(c *fiber.Ctx, message string, errs any, statusCode int) error {
	return Send(c, NewError(RequestOf(c), message, errs, statusCode))
}
