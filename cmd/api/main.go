// Copyright (c) 2026 Pressgate. All rights reserved.
// Author: dev@pressgate.app

// Command api is the entry point for the Pressgate content gateway.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Select the response cache (in-process, or Redis when REDIS_URL is set).
//  4. Build the backend transports and the schema registry.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressgate/pressgate/internal/api"
	"github.com/pressgate/pressgate/internal/backend/document"
	"github.com/pressgate/pressgate/internal/backend/graphql"
	"github.com/pressgate/pressgate/internal/content"
	"github.com/pressgate/pressgate/internal/options"
	"github.com/pressgate/pressgate/internal/platform/cache"
	"github.com/pressgate/pressgate/internal/platform/config"
	"github.com/pressgate/pressgate/internal/platform/constants"
	"github.com/pressgate/pressgate/internal/platform/httpx"
	"github.com/pressgate/pressgate/internal/revalidate"
	"github.com/pressgate/pressgate/internal/schema"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Pressgate] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("backend_configured", cfg.BackendConfigured()),
	)
	if !cfg.BackendConfigured() {
		log.Warn("no content backend configured; serving empty fallbacks")
	}

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Response Cache ─────────────────────────────────────────────────
	var store cache.Store = cache.NewMemory()
	var checkCache func() error
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		store = cache.NewRedis(rdb)
		checkCache = func() error {
			return cache.PingRedis(context.Background(), rdb)
		}
	}

	// ── 4. Backend Transports ─────────────────────────────────────────────
	httpClient := httpx.NewClient(&httpx.ClientConfig{
		Timeout:      constants.BackendRequestTimeout,
		MaxRetries:   constants.BackendMaxRetries,
		RetryBackoff: constants.BackendRetryBackoff,
	})
	gqlClient := graphql.NewClient(cfg.BackendBaseURL, httpClient, store, cfg.CacheTTL)
	docClient := document.NewClient(cfg.BackendBaseURL, httpClient, store, cfg.CacheTTL)
	registry := schema.NewRegistry(gqlClient)

	// ── 5. Health handlers (wired with real dependency checkers) ─────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCache:        checkCache,
		BackendConfigured: cfg.BackendConfigured,
	}, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	contentService := content.NewService(gqlClient, docClient, registry, cfg.CountQueryCap)
	optionsService := options.NewService(docClient)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Content:    content.NewHandler(contentService),
		Options:    options.NewHandler(optionsService),
		Schema:     schema.NewHandler(registry),
		Revalidate: revalidate.NewHandler(store, cfg.WebhookSecret, cfg.WebhookRateLimit),
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
