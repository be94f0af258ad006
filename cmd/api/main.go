package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/a-shrinked-org/plato-unchained/pkg/validator"

	"github.com/a-shrinked-org/plato-unchained/internal/adapter/handler"
	"github.com/a-shrinked-org/plato-unchained/internal/adapter/repository"
	"github.com/a-shrinked-org/plato-unchained/internal/infrastructure/cache"
	"github.com/a-shrinked-org/plato-unchained/internal/infrastructure/database"
	"github.com/a-shrinked-org/plato-unchained/internal/infrastructure/storage"
	"github.com/a-shrinked-org/plato-unchained/internal/usecase/pipeline"
	"github.com/a-shrinked-org/plato-unchained/internal/usecase/tokens"
	pkgai "github.com/a-shrinked-org/plato-unchained/pkg/ai"
	"github.com/a-shrinked-org/plato-unchained/pkg/config"
	pkgjwt "github.com/a-shrinked-org/plato-unchained/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if cfg.Server.Environment == "development" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Initialize Database
	logger.Info("connecting to database")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via scripts/migrate.go.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			logger.Fatal("AutoMigrate is enabled in production; disable DB_AUTO_MIGRATE and use scripts/migrate.go")
		}
		logger.Info("applying migrations (development only)")
		if err := database.AutoMigrate(db); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Document cache: Redis when configured, in-memory otherwise
	var store cache.Store = cache.NewMemoryStore()
	if cfg.Redis.Enabled {
		logger.Info("connecting to redis")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient, logger)
	}

	// Artifact storage is optional
	var artifacts *storage.MinIOClient
	if cfg.Storage.Enabled {
		logger.Info("connecting to object storage")
		artifacts, err = storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			logger.Fatal("failed to connect to object storage", zap.Error(err))
		}
	}

	// Initialize repositories
	runRepo := repository.NewRunRepository(db)
	docRepo := repository.NewDocumentRepository(db)

	// Initialize model clients and the pipeline
	var anthropicClient, groqClient pkgai.LanguageModel
	if cfg.Anthropic.APIKey != "" {
		anthropicClient = pkgai.NewAnthropicClient(&cfg.Anthropic)
	}
	if cfg.Groq.APIKey != "" {
		groqClient = pkgai.NewGroqClient(&cfg.Groq)
	}
	model := pkgai.NewRouter(anthropicClient, groqClient)

	limitOverrides, err := tokens.ParseOverrides(cfg.Pipeline.ModelLimits)
	if err != nil {
		logger.Fatal("invalid PIPELINE_MODEL_LIMITS", zap.Error(err))
	}
	estimator := tokens.NewEstimator(limitOverrides)
	processor := pipeline.NewProcessor(model, logger, cfg.Pipeline.Concurrency, cfg.Pipeline.ChunkTimeout)
	service := pipeline.NewService(runRepo, docRepo, processor, estimator, store, artifacts, cfg, logger)

	// Optional bearer auth
	var jwtManager *pkgjwt.Manager
	if cfg.Auth.JWTSecret != "" {
		jwtManager = pkgjwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	}

	// Setup routes
	summaryHandler := handler.NewSummaryHandler(service, logger)
	router := handler.NewRouter(cfg, summaryHandler, jwtManager)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("starting server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
}
