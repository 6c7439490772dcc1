package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "gastos/internal/adapter/http"
	"gastos/internal/adapter/http/handler"
	postgresRepo "gastos/internal/adapter/repository/postgres"
	redisRepo "gastos/internal/adapter/repository/redis"
	"gastos/internal/domain"
	"gastos/internal/infrastructure/config"
	"gastos/internal/infrastructure/logger"
	"gastos/internal/infrastructure/metrics"
	"gastos/internal/infrastructure/postgres"
	"gastos/internal/infrastructure/redis"
	"gastos/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger
	zerolog.SetGlobalLevel(appLogger.GetLevel())

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Bring the schema up (no-op when already current)
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis when configured; without it, creates are still
	// correct but replayed requests are not deduplicated.
	var idempotencyStore usecase.IdempotencyStore
	var healthHandler *handler.HealthHandler
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		healthHandler = handler.NewHealthHandler(pool, redisClient)
	} else {
		log.Warn().Msg("REDIS_URL not set, idempotency replay protection disabled")
		healthHandler = handler.NewHealthHandler(pool, nil)
	}

	// Initialize metrics, repository, use case, handlers
	m := metrics.New()
	rules := domain.NewRules(cfg.Categories, cfg.MaxInstallments)
	expenseRepo := postgresRepo.NewExpenseRepository(pool, m)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, rules, m)
	expenseHandler := handler.NewExpenseHandler(expenseUC)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ExpenseHandler:   expenseHandler,
		HealthHandler:    healthHandler,
		Logger:           appLogger,
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
