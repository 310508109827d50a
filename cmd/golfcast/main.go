package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/golfcast/internal/api/http"
	"github.com/i474232898/golfcast/internal/config"
	"github.com/i474232898/golfcast/internal/engine"
	"github.com/i474232898/golfcast/internal/monitor"
	"github.com/i474232898/golfcast/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenMeteoProvider(httpClient, providers.Options{
		ForecastURL: cfg.ForecastURL,
		AlertsURL:   cfg.AlertsURL,
		RPS:         cfg.ProviderRPS,
		Burst:       cfg.ProviderBurst,
	})

	// The engine owns both caches; everything downstream gets this handle.
	eng := engine.New(provider, engine.Config{
		CurrentTTL:  cfg.CurrentTTL,
		ForecastTTL: cfg.ForecastTTL,
		MaxEntries:  cfg.CacheMaxEntries,
		MaxBytes:    cfg.CacheMaxBytes,
	})

	// Background monitor keeping configured coordinates fresh.
	mon := monitor.New(cfg.MonitorCoordinates, cfg.MonitorInterval, eng)
	if err := mon.Start(); err != nil {
		log.Fatalf("failed to start monitor: %v", err)
	}
	defer mon.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "golfcast",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "golfcast",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, eng)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
