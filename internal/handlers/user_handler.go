package handlers

import (
	"tradefeed/internal/middleware"
	"tradefeed/internal/models"
	"tradefeed/internal/requests"
	"tradefeed/internal/resources"
	"tradefeed/internal/response"
	"tradefeed/internal/services"
	"tradefeed/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for profiles and follows.
type UserHandler struct {
	service     *services.UserService
	validator   *validation.Validator
	transformer *resources.Transformer
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	service *services.UserService,
	validator *validation.Validator,
	transformer *resources.Transformer,
	logger *zap.Logger,
) *UserHandler {
	return &UserHandler{
		service:     service,
		validator:   validator,
		transformer: transformer,
		logger:      logger,
	}
}

// RegisterRoutes registers the user routes with the Fiber app. Every route
// runs auth first.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Put("/me", auth, h.validator.Middleware(requests.UpdateUser{}), h.HandleUpdateProfile)
	userRoutes.Post("/toggle-follow", auth, h.validator.Middleware(requests.ToggleFollow{}), h.HandleToggleFollow)
	userRoutes.Get("/:id", auth, h.HandleGetUser)
}

// HandleGetUser returns a profile with its counts.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.service.Profile(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.OK(c, "", h.transformer.User(*user), fiber.StatusOK)
}

// HandleUpdateProfile updates the authenticated user's profile. Fields
// sent as null are cleared; omitted fields are left untouched.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	in := validation.Validated(c)

	var update services.UpdateProfileInput
	if in.Filled("username") {
		update.Username = models.Some(in.String("username"))
	}
	if in.Has("firstname") {
		update.Firstname = models.Some(in.StringPtr("firstname"))
	}
	if in.Has("lastname") {
		update.Lastname = models.Some(in.StringPtr("lastname"))
	}
	if in.Has("bio") {
		update.Bio = models.Some(in.StringPtr("bio"))
	}
	if in.Has("profile_image") {
		update.ProfileImage = models.Some(in.File("profile_image"))
	}

	user, err := h.service.UpdateProfile(c.UserContext(), middleware.UserID(c), update)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.OK(c, "Profile updated successfully", h.transformer.User(*user), fiber.StatusOK)
}

// HandleToggleFollow follows or unfollows the user named by user_id.
func (h *UserHandler) HandleToggleFollow(c *fiber.Ctx) error {
	targetID := validation.Validated(c).String("user_id")

	following, err := h.service.ToggleFollow(c.UserContext(), middleware.UserID(c), targetID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	target, err := h.service.Profile(c.UserContext(), targetID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	message := "User unfollowed"
	if following {
		message = "User followed"
	}
	return response.OK(c, message, fiber.Map{
		"following": following,
		"user":      h.transformer.User(*target),
	}, fiber.StatusOK)
}
