package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tradefeed/internal/app"
	"tradefeed/internal/config"
	"tradefeed/internal/logger"
	"tradefeed/internal/services"
	"tradefeed/pkg/rabbitmq"
)

// server is everything main starts and later shuts down.
type server struct {
	app    *fiber.App
	cfg    config.Config
	logger *zap.Logger
	db     *gorm.DB
	mq     *rabbitmq.Client
}

func main() {
	srv, err := setup(viper.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = srv.logger.Sync() }()

	// --- Start RabbitMQ Consumer ---
	if srv.mq != nil {
		if err := srv.mq.Consume("tradefeed.audit", "#", rabbitmq.LogEvents(srv.logger)); err != nil {
			srv.logger.Warn("failed to start RabbitMQ consumer", zap.Error(err))
		}
	}

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		srv.logger.Info("starting server", zap.String("addr", srv.cfg.AppPort))
		if err := srv.app.Listen(srv.cfg.AppPort); err != nil {
			srv.logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	srv.logger.Info("shutting down server")
	srv.shutdown()
	srv.logger.Info("server gracefully stopped")
}

// setup loads configuration from v and the environment and builds the
// application. RabbitMQ is optional: without RABBITMQ_URL, or when the
// broker is unreachable, events are not published.
func setup(v *viper.Viper) (*server, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	zapLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	db, err := app.OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	srv := &server{cfg: cfg, logger: zapLogger, db: db}
	if err := app.Migrate(db); err != nil {
		srv.shutdown()
		return nil, err
	}

	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, zapLogger)
		if err != nil {
			zapLogger.Warn("RabbitMQ unavailable, events disabled", zap.Error(err))
		} else {
			srv.mq = mq
			publisher = mq
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv.app, err = app.New(app.Deps{
		Config:    cfg,
		DB:        db,
		Publisher: publisher,
		Logger:    zapLogger,
		Registry:  registry,
		AccessLog: true,
	})
	if err != nil {
		srv.shutdown()
		return nil, err
	}
	return srv, nil
}

func (s *server) shutdown() {
	if s.app != nil {
		if err := s.app.Shutdown(); err != nil {
			s.logger.Error("error during Fiber shutdown", zap.Error(err))
		}
	}
	if s.mq != nil {
		if err := s.mq.Close(); err != nil {
			s.logger.Error("error closing RabbitMQ client", zap.Error(err))
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil {
			s.logger.Error("error closing database", zap.Error(err))
		}
	}
}
