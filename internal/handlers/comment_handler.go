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

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	service     *services.CommentService
	validator   *validation.Validator
	transformer *resources.Transformer
	logger      *zap.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(
	service *services.CommentService,
	validator *validation.Validator,
	transformer *resources.Transformer,
	logger *zap.Logger,
) *CommentHandler {
	return &CommentHandler{
		service:     service,
		validator:   validator,
		transformer: transformer,
		logger:      logger,
	}
}

// RegisterRoutes registers the comment routes with the Fiber app. Every
// route runs auth first.
func (h *CommentHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/comments", auth, h.validator.Middleware(requests.StoreComment{}), h.HandleCreateComment)
	router.Post("/comments/:id/toggle-like", auth, h.HandleToggleLike)
	router.Get("/posts/:id/comments", auth, h.HandleListComments)
}

// HandleCreateComment adds a comment to a post.
func (h *CommentHandler) HandleCreateComment(c *fiber.Ctx) error {
	in := validation.Validated(c)
	comment, err := h.service.Create(c.UserContext(), middleware.UserID(c), services.CreateCommentInput{
		PostID:  in.String("post_id"),
		Content: in.StringPtr("content"),
		Media:   in.File("media"),
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.OK(c, "Comment created successfully", h.transformer.Comment(*comment), fiber.StatusCreated)
}

// HandleListComments lists a post's comments, oldest first.
func (h *CommentHandler) HandleListComments(c *fiber.Ctx) error {
	comments, err := h.service.ListByPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.OK(c, "", h.transformer.Comments(comments), fiber.StatusOK)
}

// HandleToggleLike likes or unlikes a comment.
func (h *CommentHandler) HandleToggleLike(c *fiber.Ctx) error {
	liked, comment, err := h.service.ToggleLike(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	message := "Comment unliked"
	if liked {
		message = "Comment liked"
	}
	return response.OK(c, message, h.transformer.Comment(*comment), fiber.StatusOK)
}
