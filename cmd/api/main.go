package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/litdebate/backend/internal/analyzer"
	"github.com/litdebate/backend/internal/api/handlers"
	"github.com/litdebate/backend/internal/catalog"
	"github.com/litdebate/backend/internal/jobs"
	"github.com/litdebate/backend/internal/llm"
	"github.com/litdebate/backend/internal/metrics"
	"github.com/litdebate/backend/internal/middleware/ratelimit"
	"github.com/litdebate/backend/internal/middleware/security"
	"github.com/litdebate/backend/internal/storage/sqlite"
	"github.com/litdebate/backend/internal/topics"
	"github.com/litdebate/backend/pkg/config"
	appLogger "github.com/litdebate/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Literature Debate API Server")

	metrics.Init()

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		appLogger.Fatal("Failed to create output directory", zap.Error(err))
	}

	sqliteClient, err := sqlite.NewClient(cfg.SQLite.Path)
	if err != nil {
		appLogger.Fatal("Failed to create SQLite client", zap.Error(err))
	}
	defer sqliteClient.Close()

	if err := sqliteClient.InitSchema(); err != nil {
		appLogger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	var store jobs.Store
	if cfg.Redis.Enabled {
		redisStore, err := jobs.NewRedisStore(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		store = jobs.NewMemoryStore()
	}

	llmClient := llm.NewClient(
		cfg.LLM.APIKey,
		cfg.LLM.Model,
		time.Duration(cfg.LLM.TimeoutSec)*time.Second,
	)

	var enricher *catalog.Enricher
	if cfg.Catalog.Enabled {
		enricher = catalog.NewEnricher(cfg.Catalog.BaseURL, llmClient)
	}

	bookAnalyzer := analyzer.New(llmClient, cfg.Jobs.TopicsPerArea)
	materialsGenerator := topics.NewGenerator(llmClient, cfg.Jobs.EnrichmentConcurrency)

	runner := jobs.NewRunner(store, bookAnalyzer, materialsGenerator, enricher, sqliteClient, cfg.Output.Dir)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{}))

	limiter := ratelimit.New(ratelimit.Config{
		Logger: appLogger.GetLogger(),
	})
	defer limiter.Stop()
	app.Use(limiter.Middleware())

	analysisHandler := handlers.NewAnalysisHandler(runner)
	tasksHandler := handlers.NewTasksHandler(runner, sqliteClient)
	wsHandler := handlers.NewWebSocketHandler(runner)

	api := app.Group("/api/v1")

	api.Post("/books/analyze", analysisHandler.SubmitAnalysis)
	api.Get("/books/analyze/:id/status", analysisHandler.GetStatus)
	api.Get("/books/analyze/:id/result", analysisHandler.GetResult)
	api.Get("/books/analyze/:id/csv", analysisHandler.DownloadCSV)

	api.Get("/tasks", tasksHandler.ListTasks)
	api.Delete("/tasks/cleanup", tasksHandler.CleanupTasks)
	api.Get("/history", tasksHandler.GetHistory)
	api.Get("/health", tasksHandler.HealthCheck)

	app.Get("/metrics", metrics.MetricsHandler())

	app.Use("/api/v1/books/analyze/:id/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	api.Get("/books/analyze/:id/ws", websocket.New(wsHandler.HandleConnection))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}
