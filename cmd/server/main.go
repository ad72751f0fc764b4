package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/vortex-console/internal/config"
	"github.com/localnerve/vortex-console/internal/database"
	"github.com/localnerve/vortex-console/internal/handlers"
	"github.com/localnerve/vortex-console/internal/heartbeat"
	"github.com/localnerve/vortex-console/internal/services"
	"github.com/localnerve/vortex-console/internal/session"
	"github.com/localnerve/vortex-console/internal/store"
	"github.com/localnerve/vortex-console/pkg/logger"

	_ "github.com/localnerve/vortex-console/docs/api" // Swagger docs
)

// @title Vortex Console API
// @version 1.0.0
// @description Storefront and admin console for streaming and gaming subscriptions
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/vortex-console
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name vortex_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Options{Level: "error"})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Options{
		Level:       cfg.LogLevel,
		Development: cfg.Development(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	blobs := database.NewBlobRepository(db)

	// A failed read still yields a usable store holding the defaults
	st, err := store.Open(ctx, blobs, store.Options{
		Key:    cfg.DocumentKey,
		LogCap: cfg.LogCap,
		Logger: log,
	})
	if err != nil {
		log.Error().Err(err).Msg("Document could not be read, running on defaults")
	}

	console := services.NewConsole(st, log)
	sessions := session.NewManager(blobs, log)

	monitor := heartbeat.NewMonitor(cfg.HeartbeatURL, cfg.HeartbeatInterval, cfg.HeartbeatTimeout, log)
	go monitor.Run(ctx)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: !cfg.Development(),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("vortex_console")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	handlers.Register(app, handlers.Deps{
		Config:   cfg,
		DB:       db,
		Console:  console,
		Sessions: sessions,
		Monitor:  monitor,
		Log:      log,
	})

	// 404 handler
	app.Use(handlers.NotFound)

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Info().Msg("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Str("db", cfg.DBType).Uint64("revision", st.Revision()).Msg("Starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}

	// Write changes whose save failed earlier
	if err := st.Flush(context.Background()); err != nil {
		log.Error().Err(err).Msg("Final save failed")
	}
	log.Info().Msg("Server stopped")
}
