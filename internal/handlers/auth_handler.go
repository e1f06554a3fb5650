package handlers

import (
	"tradefeed/internal/models"
	"tradefeed/internal/requests"
	"tradefeed/internal/resources"
	"tradefeed/internal/response"
	"tradefeed/internal/services"
	"tradefeed/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validator   *validation.Validator
	transformer *resources.Transformer
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *services.AuthService,
	validator *validation.Validator,
	transformer *resources.Transformer,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
		transformer: transformer,
		logger:      logger,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.validator.Middleware(requests.Register{}), h.HandleRegister)
	authRoutes.Post("/login", h.validator.Middleware(requests.Login{}), h.HandleLogin)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	in := validation.Validated(c)
	user, token, err := h.authService.Register(c.UserContext(), services.RegisterInput{
		Username:  in.String("username"),
		Email:     in.String("email"),
		Password:  rawPassword(in),
		Firstname: in.String("firstname"),
		Lastname:  in.String("lastname"),
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return h.sendAuth(c, "User registered successfully", user, token, fiber.StatusCreated)
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	in := validation.Validated(c)
	email := in.String("email")

	user, token, err := h.authService.Login(c.UserContext(), email, rawPassword(in))
	if err != nil {
		h.logger.Info("login failed", zap.String("email", email), zap.Error(err))
		return respondError(c, h.logger, err)
	}
	return h.sendAuth(c, "Login successful", user, token, fiber.StatusOK)
}

func (h *AuthHandler) sendAuth(c *fiber.Ctx, message string, user *models.User, token string, status int) error {
	view, err := h.transformer.Auth(resources.AuthSource{User: user, Token: token})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return response.OK(c, message, view, status)
}

// rawPassword skips the trimming Input.String applies.
func rawPassword(in validation.Input) string {
	password, _ := in["password"].(string)
	return password
}
