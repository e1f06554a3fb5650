package validation

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"tradefeed/internal/response"
)

// ErrUnauthorized is returned when a request's authorization check fails.
var ErrUnauthorized = errors.New("this action is unauthorized")

const validatedKey = "validated_input"

// FormRequest declares who may make a request and how its fields are
// validated.
type FormRequest interface {
	Authorize(c *fiber.Ctx) bool
	Rules(c *fiber.Ctx) RuleSet
}

// ValidateRequest authorizes and validates the current request, returning
// only the fields the rule set names.
func (v *Validator) ValidateRequest(c *fiber.Ctx, req FormRequest) (Input, error) {
	if !req.Authorize(c) {
		return nil, ErrUnauthorized
	}
	in, err := InputFrom(c)
	if err != nil {
		return nil, err
	}
	rules := req.Rules(c)
	if err := v.Validate(c.UserContext(), in, rules); err != nil {
		return nil, err
	}
	return in.Only(rules), nil
}

// Middleware runs req before the next handler and stores the validated
// input for Validated. Failures short-circuit with an error envelope.
func (v *Validator) Middleware(req FormRequest) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := v.ValidateRequest(c, req)
		if err != nil {
			return Respond(c, err)
		}
		c.Locals(validatedKey, in)
		return c.Next()
	}
}

// Validated returns the input stored by Middleware.
func Validated(c *fiber.Ctx) Input {
	in, _ := c.Locals(validatedKey).(Input)
	if in == nil {
		return Input{}
	}
	return in
}

// Respond converts a ValidateRequest error into an error envelope. Errors
// it does not recognise are returned for the app's error handler.
func Respond(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	switch {
	case errors.Is(err, ErrUnauthorized):
		return response.Fail(c, "This action is unauthorized.", nil, http.StatusUnauthorized)
	case errors.As(err, &verr):
		return response.Fail(c, "Validation failed", verr.Errors, http.StatusUnprocessableEntity)
	case errors.Is(err, ErrMalformedBody):
		return response.Fail(c, "Invalid request body", []string{err.Error()}, http.StatusBadRequest)
	}
	return err
}
