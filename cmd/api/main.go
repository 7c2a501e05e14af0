package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"receipt-ledger/config"
	httpHandler "receipt-ledger/internal/adapter/http/handler"
	pgStorage "receipt-ledger/internal/adapter/storage/postgres"
	redisStorage "receipt-ledger/internal/adapter/storage/redis"
	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"
	"receipt-ledger/internal/service"
	"receipt-ledger/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Receipt Ledger")

	defaultCurrency, err := domain.ParseCurrency(cfg.Ledger.DefaultCurrency)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid default currency")
	}

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure database schema")
	}
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize stores
	snapshotStore := pgStorage.NewSnapshotStore(pool)
	userStore := pgStorage.NewUserStore(pool)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	hashSvc := service.NewBcryptHashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	authSvc := service.NewAuthService(userStore, hashSvc, tokenSvc)

	ledgerSvc := service.NewLedgerService(snapshotStore, logger.Component(log, "ledger"))
	if err := ledgerSvc.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load ledger snapshot")
	}
	if cfg.Ledger.Seed {
		if err := service.Seed(ctx, ledgerSvc, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	analyticsSvc := service.NewAnalyticsService(ledgerSvc)
	orderSvc := service.NewOrderService(ledgerSvc)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:         authSvc,
		LedgerSvc:       ledgerSvc,
		AnalyticsSvc:    analyticsSvc,
		OrderSvc:        orderSvc,
		TokenSvc:        tokenSvc,
		DefaultCurrency: defaultCurrency,
		RateLimitStore:  rateLimitStore,
		HealthCheckers:  []ports.HealthChecker{pgHealth, redisHealth},
		Logger:          log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
