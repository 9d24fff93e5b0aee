package main

import (
	"context"
	"log"

	"nenmatch/internal/adapter/api"
	"nenmatch/internal/adapter/client"
	"nenmatch/internal/adapter/store"
	"nenmatch/internal/config"
	"nenmatch/internal/domain/repository"
	"nenmatch/internal/logging"
	"nenmatch/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	genaiClient, err := client.NewGenAIClient(ctx, cfg.GoogleAPIKey, cfg.GoogleCloudProject, cfg.GoogleCloudLocation)
	if err != nil {
		logger.Fatal("failed to init genai client", zap.Error(err))
	}

	invoker := usecase.NewResilientInvoker(
		usecase.WithMaxRetries(cfg.MaxRetries),
		usecase.WithBaseDelay(cfg.RetryBaseDelay),
		usecase.WithLogger(logger),
	)

	quizPipeline := usecase.NewQuizPipeline(
		client.NewGeminiQuizGenerator(genaiClient, cfg.QuizModel, cfg.QuizTemperature),
		invoker, cfg.Themes, cfg.ThemeCount, logger)
	diagnosisPipeline := usecase.NewDiagnosisPipeline(
		client.NewGeminiDiagnoser(genaiClient, cfg.DiagnosisModel, cfg.DiagnosisTemperature),
		invoker, logger)

	// Qdrant holds diagnosed players for matching; optional.
	var playerIndex repository.PlayerIndex
	if cfg.QdrantHost != "" {
		qClient, err := qdrant.NewClient(&qdrant.Config{
			Host: cfg.QdrantHost,
			Port: cfg.QdrantPort,
		})
		if err != nil {
			logger.Fatal("failed to connect to qdrant", zap.Error(err))
		}
		index := store.NewQdrantPlayerIndex(qClient, cfg.QdrantCollection, logger)
		if err := index.InitCollection(ctx); err != nil {
			logger.Fatal("failed to init qdrant collection", zap.Error(err))
		}
		playerIndex = index
	}

	// Redis for rate limiting; optional.
	var limiter repository.RateLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = store.NewRedisLimiter(rdb, cfg.RateLimit, cfg.RateWindow)
	}

	app := fiber.New(fiber.Config{
		AppName: "nenmatch",
	})

	handler := api.NewQuizHandler(quizPipeline, diagnosisPipeline, usecase.NewMatcher(playerIndex), cfg.RequestTimeout, logger)
	api.SetupRouter(app, handler, limiter)

	logger.Info("nenmatch API listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
