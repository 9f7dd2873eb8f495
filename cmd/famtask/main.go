package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/spf13/cobra"

	"github.com/famtask/famtask-backend/internal/config"
	"github.com/famtask/famtask-backend/internal/database"
	"github.com/famtask/famtask-backend/internal/events"
	"github.com/famtask/famtask-backend/internal/handlers"
	"github.com/famtask/famtask-backend/internal/logging"
	"github.com/famtask/famtask-backend/internal/middleware"
	"github.com/famtask/famtask-backend/internal/routes"
	"github.com/famtask/famtask-backend/internal/seed"
	"github.com/famtask/famtask-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

func main() {
	root := &cobra.Command{
		Use:   "famtask",
		Short: "Family task management backend",
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Run database migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := openDB()
				if err != nil {
					return err
				}
				return database.Migrate(db)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Migrate and insert the baseline achievement catalog",
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := openDB()
				if err != nil {
					return err
				}
				if err := database.Migrate(db); err != nil {
					return err
				}
				return seed.Run(db)
			},
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDB() (*gorm.DB, error) {
	logging.Setup()
	cfg := config.Load()
	return database.Connect(cfg)
}

func runServe() error {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if cfg.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required")
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		dbLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cleanupDone)

	// Achievement catalog must exist before completions can award it
	if err := seed.Run(db); err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	// Kafka producer (no-op when KAFKA_BROKER is unset)
	producer := events.NewProducer(cfg)

	// Services
	achievementService := services.NewAchievementService(db)
	familyService := services.NewFamilyService(db)
	authService := services.NewAuthService(db, cfg, familyService, producer)
	taskService := services.NewTaskService(db, achievementService, producer)
	groupService := services.NewGroupService(db)
	userService := services.NewUserService(db)
	settingService := services.NewSettingService(db)
	notificationService := services.NewNotificationService(db)
	reportService := services.NewReportService(db)

	// Handlers
	h := routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		Task:         handlers.NewTaskHandler(taskService),
		Group:        handlers.NewGroupHandler(groupService),
		Family:       handlers.NewFamilyHandler(familyService),
		User:         handlers.NewUserHandler(userService),
		Setting:      handlers.NewSettingHandler(settingService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Achievement:  handlers.NewAchievementHandler(achievementService),
		Report:       handlers.NewReportHandler(reportService),
		Admin:        handlers.NewAdminHandler(userService, db),
		Health:       handlers.NewHealthHandler(db),
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, db, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	dbLogHandler.Stop()
	producer.Close()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
	return nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
