package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/medication_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/medication_tracker/internal/core/services"
	"github.com/SscSPs/medication_tracker/internal/handlers"
	"github.com/SscSPs/medication_tracker/internal/middleware"
	"github.com/SscSPs/medication_tracker/internal/platform/config"
	"github.com/SscSPs/medication_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/medication_tracker/internal/repositories/file"
	"github.com/SscSPs/medication_tracker/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Medication Tracker API
// @version 1.0
// @description Tracks users' medication schedules behind cookie sessions.

// @host localhost:5000
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, closeStorage, err := newRepositoryProvider(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("backend", cfg.StorageBackend), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := services.NewServiceContainer(cfg, repos)

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("address", cfg.Address()), slog.String("storage", cfg.StorageBackend))
	if err := r.Run(cfg.Address()); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newRepositoryProvider opens the configured storage backend. The returned func releases it.
func newRepositoryProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			database.ClosePgxPool(dbPool)
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
	case config.StorageFile:
		repos, err := file.NewRepositoryProvider(cfg.StorageFilePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Using file storage", slog.String("path", cfg.StorageFilePath))
		return repos, func() {}, nil
	default:
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
