// Package app wires configuration, storage, repositories, services and
// handlers into a Fiber application.
package app

import (
	"context"
	"fmt"
	"time"

	"tradefeed/internal/config"
	"tradefeed/internal/handlers"
	"tradefeed/internal/middleware"
	"tradefeed/internal/models"
	"tradefeed/internal/repositories"
	"tradefeed/internal/resources"
	"tradefeed/internal/response"
	"tradefeed/internal/services"
	"tradefeed/internal/storage"
	"tradefeed/internal/validation"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// bodyLimit leaves room for the largest upload plus form overhead.
const bodyLimit = 30 * 1024 * 1024

// Deps are the long-lived resources the application is built from.
type Deps struct {
	Config config.Config
	DB     *gorm.DB
	// Publisher may be nil, in which case events are dropped.
	Publisher services.EventPublisher
	Logger    *zap.Logger
	Registry  *prometheus.Registry
	// AccessLog enables Fiber's request logger.
	AccessLog bool
}

// OpenDatabase connects to the configured database.
func OpenDatabase(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Follow{}, &models.Post{}, &models.Comment{}, &models.Like{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// New builds the Fiber application.
func New(d Deps) (*fiber.App, error) {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}

	store, err := storage.NewLocal(d.Config.StoragePath, d.Config.AppURL)
	if err != nil {
		return nil, err
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(d.DB)
	followRepo := repositories.NewGORMFollowRepository(d.DB)
	postRepo := repositories.NewGORMPostRepository(d.DB)
	commentRepo := repositories.NewGORMCommentRepository(d.DB)
	likeRepo := repositories.NewGORMLikeRepository(d.DB)

	// --- Services ---
	authService := services.NewAuthService(userRepo, d.Config.JWTSecret, d.Config.JWTTTL)
	userService := services.NewUserService(userRepo, followRepo, store, d.Publisher, d.Logger)
	postService := services.NewPostService(postRepo, likeRepo, store, d.Publisher, d.Logger)
	commentService := services.NewCommentService(commentRepo, postRepo, likeRepo, store, d.Publisher, d.Logger)

	// --- Handlers ---
	validator := validation.New(repositories.NewGORMPresenceVerifier(d.DB))
	transformer := resources.New(store.URL)
	authHandler := handlers.NewAuthHandler(authService, validator, transformer, d.Logger)
	userHandler := handlers.NewUserHandler(userService, validator, transformer, d.Logger)
	postHandler := handlers.NewPostHandler(postService, validator, transformer, d.Logger)
	commentHandler := handlers.NewCommentHandler(commentService, validator, transformer, d.Logger)

	metrics := middleware.NewMetrics("tradefeed", d.Registry)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(d.Logger),
		BodyLimit:    bodyLimit,
	})

	// --- Middleware ---
	app.Use(recover.New())
	if d.AccessLog {
		app.Use(fiberlogger.New())
	}
	app.Use(metrics.Middleware())

	app.Get("/health", health(d.DB))
	app.Get("/metrics", metrics.Handler())
	app.Static(storage.PublicPrefix, store.Root())

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	// Auth is attached per route so unknown paths still reach the 404 handler.
	auth := middleware.AuthRequired(authService, d.Logger)
	userHandler.RegisterRoutes(apiV1, auth)
	postHandler.RegisterRoutes(apiV1, auth)
	commentHandler.RegisterRoutes(apiV1, auth)

	return app, nil
}

func health(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			return response.Fail(c, "Service unavailable", []string{"database unreachable"}, fiber.StatusServiceUnavailable)
		}
		return response.OK(c, "", fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		}, fiber.StatusOK)
	}
}
