package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/agsdb/internal/auth"
	"github.com/localnerve/agsdb/internal/config"
	"github.com/localnerve/agsdb/internal/database"
	"github.com/localnerve/agsdb/internal/handlers"
	"github.com/localnerve/agsdb/internal/logging"
	"github.com/localnerve/agsdb/internal/storage"
	"go.uber.org/zap"

	_ "github.com/localnerve/agsdb/docs/api" // Swagger docs
)

// Set at build time with -ldflags "-X main.version=..."
var version = "dev"

// @title agsdb API
// @version 1.0.0
// @description Project and AGS4 field data service. The HTML pages are not listed; these are the JSON endpoints.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/agsdb
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name agsdb_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Connect to database
	db, err := database.Connect(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()

	// Sessions live in Redis when configured, in memory otherwise
	var sessionStorage fiber.Storage
	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		zlog.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisClient != nil {
		redisStorage := database.NewRedisStorage(redisClient, "")
		defer redisStorage.Close()
		sessionStorage = redisStorage
		zlog.Info("Sessions stored in Redis")
	} else {
		zlog.Warn("REDIS_URL not set, sessions are kept in memory")
	}

	authenticator, err := auth.New(ctx, cfg.Auth0)
	if err != nil {
		zlog.Fatal("Failed to initialize Auth0", zap.Error(err))
	}

	files, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		zlog.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	// Create Fiber app
	app := handlers.NewApp(cfg, zlog)

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("agsdb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	handlers.RegisterRoutes(app, handlers.Dependencies{
		DB:       db,
		Sessions: auth.NewSessionStore(cfg, sessionStorage),
		Auth:     authenticator,
		Files:    files,
		Config:   cfg,
		Logger:   zlog,
		Version:  version,
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		zlog.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	zlog.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.String("version", version),
		zap.String("db_type", cfg.DBType))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}

	zlog.Info("Server stopped")
}
