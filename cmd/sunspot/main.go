package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/draganm/sunspot/internal/api/http"
	"github.com/draganm/sunspot/internal/config"
	"github.com/draganm/sunspot/internal/scheduler"
	"github.com/draganm/sunspot/internal/search"
	"github.com/draganm/sunspot/internal/session"
	"github.com/draganm/sunspot/internal/store"
	"github.com/draganm/sunspot/internal/venue"
	"github.com/draganm/sunspot/internal/weather"
	"github.com/draganm/sunspot/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.WeatherAPIKey == "" {
		log.Println("WARN: WEATHER_API_KEY not set; all weather will come from the deterministic mock")
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Weather pipeline: resilient provider fetch, normalization, mock
	// fallback, in-memory history.
	provider := providers.NewOpenWeatherProvider(httpClient, cfg.WeatherAPIKey)
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)
	weatherSvc := weather.NewService(provider, memStore)

	// Session owns the venue collection, the control clock, and the
	// sun-light animation; Close releases every timer it started.
	sess := session.Open(session.Config{
		Weather: weatherSvc,
		Venues:  venue.NewStore(venue.Seed()),
		Center:  cfg.Center,
	})
	defer sess.Close()

	// Initial per-venue weather attachment.
	func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		sess.AttachWeather(ctx)
	}()

	// Periodic refresh.
	sched := scheduler.New(sess, cfg.FetchInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "sunspot",
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
	app.Use(cors.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "sunspot",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Session:  sess,
		Weather:  weatherSvc,
		Ingestor: search.NewIngestor(cfg.GeocoderAPIKey),
	})

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
