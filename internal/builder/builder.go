package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/personalab/chat-backend/internal/api"
	authapi "github.com/personalab/chat-backend/internal/api/auth"
	chatapi "github.com/personalab/chat-backend/internal/api/chat"
	conversationapi "github.com/personalab/chat-backend/internal/api/conversation"
	feedbackapi "github.com/personalab/chat-backend/internal/api/feedback"
	"github.com/personalab/chat-backend/internal/api/middleware"
	"github.com/personalab/chat-backend/internal/config"
	"github.com/personalab/chat-backend/internal/integration/identity"
	"github.com/personalab/chat-backend/internal/integration/inference"
	"github.com/personalab/chat-backend/internal/pkg/validator"
	"github.com/personalab/chat-backend/internal/repository"
	authuc "github.com/personalab/chat-backend/internal/usecase/auth"
	chatuc "github.com/personalab/chat-backend/internal/usecase/chat"
	conversationuc "github.com/personalab/chat-backend/internal/usecase/conversation"
	feedbackuc "github.com/personalab/chat-backend/internal/usecase/feedback"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserPostgres(db)
	conversationRepo := repository.NewConversationPostgres(db)
	feedbackRepo := repository.NewFeedbackPostgres(db)
	preferenceRepo := repository.NewPreferencePostgres(db)
	logger.Info("Repositories initialized")

	// Session state lives in Redis; with mocks enabled an in-memory
	// store is used instead so the server runs standalone.
	var sessionState repository.SessionStateRepository
	var redisClient *redis.Client
	if cfg.EnableMocks {
		logger.Info("Using in-memory session state store")
		sessionState = repository.NewSessionStateMemory()
	} else {
		redisClient, err = setupRedis(ctx, cfg, logger)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("setup redis: %w", err)
		}
		sessionState = repository.NewSessionStateRedis(redisClient, cfg.SessionStateTTL)
	}

	// Initialize external service connectors (with mock support)
	var identityConnector authuc.IdentityConnector
	var inferenceConnector chatuc.InferenceConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		identityConnector = identity.NewMockConnector(logger)
		inferenceConnector = inference.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		identityConnector = identity.NewConnector(cfg.IdentityConnectorCfg, logger)
		inferenceConnector = inference.NewConnector(cfg.InferenceConnectorCfg, logger)
	}

	// Initialize validators
	reqValidator := validator.NewValidator()

	// Initialize use cases
	authUC := authuc.NewUsecase(identityConnector, logger)
	chatUC := chatuc.NewUsecase(sessionState, inferenceConnector, logger)
	feedbackUC := feedbackuc.NewUsecase(
		sessionState,
		userRepo,
		conversationRepo,
		feedbackRepo,
		preferenceRepo,
		logger,
	)
	conversationUC := conversationuc.NewUsecase(conversationRepo, logger)
	logger.Info("Use cases initialized")

	// Setup API handlers
	authHandler := authapi.NewHandler(authUC, reqValidator)
	chatHandler := chatapi.NewHandler(chatUC, reqValidator)
	feedbackHandler := feedbackapi.NewHandler(feedbackUC, reqValidator)
	conversationHandler := conversationapi.NewHandler(conversationUC)
	logger.Info("API handlers initialized")

	// Auth middleware with a short-lived token cache
	userCache := cache.New(cfg.UserCacheTTL, cfg.UserCacheCleanup)
	authMW := middleware.Auth(identityConnector, userCache)

	// Setup router
	router := api.SetupRouter(authHandler, chatHandler, feedbackHandler, conversationHandler, authMW, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		redis:  redisClient,
		logger: logger,
	}, nil
}

func setupLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapCfg.Build()
}
