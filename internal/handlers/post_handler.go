package handlers

import (
	"tradefeed/internal/middleware"
	"tradefeed/internal/requests"
	"tradefeed/internal/resources"
	"tradefeed/internal/response"
	"tradefeed/internal/services"
	"tradefeed/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service     *services.PostService
	validator   *validation.Validator
	transformer *resources.Transformer
	logger      *zap.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(
	service *services.PostService,
	validator *validation.Validator,
	transformer *resources.Transformer,
	logger *zap.Logger,
) *PostHandler {
	return &PostHandler{
		service:     service,
		validator:   validator,
		transformer: transformer,
		logger:      logger,
	}
}

// RegisterRoutes registers the post routes with the Fiber app. Every route
// runs auth first.
func (h *PostHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	postRoutes := router.Group("/posts")
	postRoutes.Post("/", auth, h.validator.Middleware(requests.StorePost{}), h.HandleCreatePost)
	postRoutes.Get("/:id", auth, h.HandleGetPost)
	postRoutes.Post("/:id/toggle-like", auth, h.HandleToggleLike)
}

// HandleCreatePost creates a post for the authenticated user.
func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	in := validation.Validated(c)
	post, err := h.service.Create(c.UserContext(), middleware.UserID(c), in.StringPtr("content"), in.File("media"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.OK(c, "Post created successfully", h.transformer.Post(*post), fiber.StatusCreated)
}

// HandleGetPost returns a post with its author, likes and comments.
func (h *PostHandler) HandleGetPost(c *fiber.Ctx) error {
	post, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.OK(c, "", h.transformer.Post(*post), fiber.StatusOK)
}

// HandleToggleLike likes or unlikes a post.
func (h *PostHandler) HandleToggleLike(c *fiber.Ctx) error {
	liked, post, err := h.service.ToggleLike(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	return response.OK(c, message, h.transformer.Post(*post), fiber.StatusOK)
}
