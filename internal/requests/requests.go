// Package requests declares the validation rules and authorization of each
// write endpoint.
package requests

import (
	"tradefeed/internal/middleware"
	"tradefeed/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Upload limits in kilobytes.
const (
	MaxMediaKB        = 25600
	MaxProfileImageKB = 2048
)

var mediaTypes = []string{"png", "jpg", "jpeg", "gif"}

func authenticated(c *fiber.Ctx) bool {
	return middleware.UserID(c) != ""
}

// StoreComment validates a new comment. Content and media are each
// required when the other is missing.
type StoreComment struct{}

func (StoreComment) Authorize(c *fiber.Ctx) bool { return authenticated(c) }

func (StoreComment) Rules(*fiber.Ctx) validation.RuleSet {
	return validation.RuleSet{
		validation.On("post_id", validation.Required(), validation.Exists("posts", "id")),
		validation.On("content", validation.Nullable(), validation.String(), validation.Max(255), validation.RequiredWithout("media")),
		validation.On("media", validation.Nullable(), validation.File(), validation.Mimes(mediaTypes...), validation.Max(MaxMediaKB), validation.RequiredWithout("content")),
	}
}

// StorePost validates a new post.
type StorePost struct{}

func (StorePost) Authorize(c *fiber.Ctx) bool { return authenticated(c) }

func (StorePost) Rules(*fiber.Ctx) validation.RuleSet {
	return validation.RuleSet{
		validation.On("content", validation.Nullable(), validation.String(), validation.Max(255), validation.RequiredWithout("media")),
		validation.On("media", validation.Nullable(), validation.File(), validation.Mimes(mediaTypes...), validation.Max(MaxMediaKB), validation.RequiredWithout("content")),
	}
}

// UpdateUser validates a profile update of the authenticated user. Keeping
// one's own username is not a conflict.
type UpdateUser struct{}

func (UpdateUser) Authorize(c *fiber.Ctx) bool { return authenticated(c) }

func (UpdateUser) Rules(c *fiber.Ctx) validation.RuleSet {
	return validation.RuleSet{
		validation.On("username", validation.Sometimes(), validation.String(), validation.Max(255),
			validation.Unique("users", "username").Ignore(middleware.UserID(c))),
		validation.On("firstname", validation.Nullable(), validation.String(), validation.Max(255)),
		validation.On("lastname", validation.Nullable(), validation.String(), validation.Max(255)),
		validation.On("bio", validation.Nullable(), validation.String(), validation.Max(255)),
		validation.On("profile_image", validation.Nullable(), validation.Image(), validation.Max(MaxProfileImageKB)),
	}
}

// ToggleFollow validates a follow or unfollow of another user.
type ToggleFollow struct{}

func (ToggleFollow) Authorize(c *fiber.Ctx) bool { return authenticated(c) }

func (ToggleFollow) Rules(*fiber.Ctx) validation.RuleSet {
	return validation.RuleSet{
		validation.On("user_id", validation.Required(), validation.Exists("users", "id")),
	}
}

// Register validates a sign up.
type Register struct{}

func (Register) Authorize(*fiber.Ctx) bool { return true }

func (Register) Rules(*fiber.Ctx) validation.RuleSet {
	return validation.RuleSet{
		validation.On("username", validation.Required(), validation.String(), validation.Max(255), validation.Unique("users", "username")),
		validation.On("email", validation.Required(), validation.Email(), validation.Bail(), validation.Unique("users", "email")),
		validation.On("password", validation.Required(), validation.String(), validation.Min(8), validation.Confirmed()),
		validation.On("firstname", validation.Required(), validation.String(), validation.Max(255)),
		validation.On("lastname", validation.Required(), validation.String(), validation.Max(255)),
	}
}

// Login validates a sign in.
type Login struct{}

func (Login) Authorize(*fiber.Ctx) bool { return true }

func (Login) Rules(*fiber.Ctx) validation.RuleSet {
	return validation.RuleSet{
		validation.On("email", validation.Required(), validation.Email()),
		validation.On("password", validation.Required(), validation.String()),
	}
}
