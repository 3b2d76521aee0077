package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"airport-api/cmd"
	"airport-api/internal/data/repository"
	"airport-api/internal/usecase"
	"airport-api/internal/wire"
	"airport-api/migrations"
	"airport-api/pkg/cache"
	"airport-api/pkg/database"
	"airport-api/pkg/queue"
	"airport-api/pkg/storage"
	"airport-api/pkg/utils"

	"go.uber.org/zap"
)

const sessionCleanupInterval = time.Hour

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.App.MigrateOnStart {
		if err := migrations.Apply(ctx, db.Pool(), logger); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// Optional infrastructure, the API keeps working without it
	infra := usecase.Infra{Images: storage.NewImageStore(config.Media, logger)}

	redisClient, err := cache.NewRedisClient(ctx, config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, seat availability cache disabled", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		infra.Cache = cache.New(redisClient, config.Redis.TTL, logger)
	}

	publisher, err := queue.NewPublisher(config.AMQP.URL, config.AMQP.Queue, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, order events disabled", zap.Error(err))
		publisher = queue.NopPublisher{}
	}
	defer publisher.Close()
	infra.Events = publisher

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, infra, db, config, logger)

	go cmd.RunSessionCleanup(ctx, app.Service.Auth, sessionCleanupInterval, logger)

	// Start server
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}
