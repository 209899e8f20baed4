package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/fintrack/fintrack-backend/db"
	_ "github.com/dafibh/fintrack/fintrack-backend/docs"
	"github.com/dafibh/fintrack/fintrack-backend/internal/config"
	"github.com/dafibh/fintrack/fintrack-backend/internal/events"
	"github.com/dafibh/fintrack/fintrack-backend/internal/handler"
	"github.com/dafibh/fintrack/fintrack-backend/internal/middleware"
	"github.com/dafibh/fintrack/fintrack-backend/internal/repository/postgres"
	"github.com/dafibh/fintrack/fintrack-backend/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title FinTrack API
// @version 1.0
// @description Personal finance tracker: transactions, monthly budgets, analytics and insights.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Create the pool; connections are opened lazily
	pool, err := postgres.NewPool(context.Background(), cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure database pool")
	}
	defer pool.Close()

	// An unreachable store is not fatal: reads degrade and writes answer 503 until it returns
	ping := func(ctx context.Context) error {
		return postgres.Ping(ctx, pool, cfg.Store.ConnectTimeout)
	}
	if err := ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Database unreachable at startup, serving degraded reads")
	} else {
		log.Info().Msg("Connected to database")
	}

	// Migrations are retried in the background until the store answers
	if cfg.Store.MigrateOnStart {
		migrationWorker := db.NewMigrationWorker(ping, func() (uint, error) {
			return db.RunMigrations(pool)
		}, log.Logger, cfg.Store.MigrateRetryInterval)
		migrationWorker.Start(context.Background())
		defer migrationWorker.Stop()
	}

	// Initialize repositories
	transactionRepo := postgres.NewTransactionRepository(pool, cfg.Store.QueryTimeout)
	budgetRepo := postgres.NewBudgetRepository(pool, cfg.Store.QueryTimeout)
	syncRepo := postgres.NewSyncRepository(pool, cfg.Store.QueryTimeout)

	// Initialize services
	transactionService := service.NewTransactionService(transactionRepo)
	budgetService := service.NewBudgetService(budgetRepo, transactionRepo)
	analyticsService := service.NewAnalyticsService(transactionRepo)
	insightService := service.NewInsightService(transactionRepo, budgetRepo, cfg.HighAverageThreshold)
	syncService := service.NewSyncService(syncRepo)

	// Change-event feed
	var publisher events.EventPublisher = &events.NoOpPublisher{}
	if cfg.AMQP.Enabled() {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to AMQP broker, change events disabled")
		} else {
			defer amqpPublisher.Close()
			publisher = amqpPublisher
			log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("Publishing change events")
		}
	}
	transactionService.SetEventPublisher(publisher)
	budgetService.SetEventPublisher(publisher)

	// Initialize handlers
	policy := handler.ReadPolicy{DegradeOnStoreUnavailable: cfg.DegradeReadsOnStoreUnavailable}
	handlers := handler.Handlers{
		Transaction: handler.NewTransactionHandler(transactionService, policy),
		Budget:      handler.NewBudgetHandler(budgetService, policy),
		Analytics:   handler.NewAnalyticsHandler(analyticsService, policy),
		Insight:     handler.NewInsightHandler(insightService, policy),
		Category:    handler.NewCategoryHandler(),
		Sync:        handler.NewSyncHandler(syncService, policy),
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	defer rateLimiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		ExposeHeaders: []string{handler.DegradedHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint reports the store state without failing
	e.GET("/health", healthHandler(pool, cfg.Store.ConnectTimeout))

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", handler.ServeOpenAPI3Spec)

	// Register API routes behind the per-client rate limit
	handler.RegisterRoutes(e, handlers, middleware.RateLimitMiddleware(rateLimiter))

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func healthHandler(pool *pgxpool.Pool, timeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		store := "ok"
		if err := postgres.Ping(c.Request().Context(), pool, timeout); err != nil {
			store = "unavailable"
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "store": store})
	}
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Warn()
			}
			if degraded := res.Header().Get(handler.DegradedHeader); degraded != "" {
				event = event.Str("degraded", degraded)
			}

			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
