package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-sync-gateway/config"
	"inventory-sync-gateway/internal/adapter/delivery"
	httpHandler "inventory-sync-gateway/internal/adapter/http/handler"
	pgStorage "inventory-sync-gateway/internal/adapter/storage/postgres"
	redisStorage "inventory-sync-gateway/internal/adapter/storage/redis"
	"inventory-sync-gateway/internal/core/ports"
	"inventory-sync-gateway/internal/service"
	"inventory-sync-gateway/pkg/logger"
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

	deviceID := cfg.Device.ResolveID()
	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("device_id", deviceID).
		Msg("Starting Inventory Sync Gateway")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	txRepo := pgStorage.NewTransactionRepo(pool)
	webhookRepo := pgStorage.NewWebhookRepo(pool)
	credRepo := pgStorage.NewCredentialRepo(pool)

	// Initialize Redis stores
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)
	probeCache := redisStorage.NewProbeCache(rdb)

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry, cfg.Auth.Issuer)
	deliveryClient := delivery.NewClient(&http.Client{Timeout: cfg.Delivery.Timeout}, log)

	// Initialize business services
	syncSvc := service.NewSyncService(txRepo, webhookRepo, deliveryClient, log)
	intakeSvc := service.NewIntakeService(txRepo, syncSvc, deviceID, log)
	registrySvc := service.NewRegistryService(webhookRepo, deliveryClient, probeCache, log)
	authSvc := service.NewAuthService(credRepo, hashSvc, tokenSvc, deviceID, cfg.Auth.DefaultPassword)

	// Background recovery sweep: retries transactions left unsynced by
	// failed passes.
	if cfg.Sync.SweepInterval > 0 {
		go syncSvc.RunSweeper(ctx, cfg.Sync.SweepInterval)
	}

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		IntakeSvc:      intakeSvc,
		SyncSvc:        syncSvc,
		RegistrySvc:    registrySvc,
		AuthSvc:        authSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
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
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
