// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command web is the entry point for the BGPiesa web front.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis (admin sessions).
//  4. Build the catalog backend client.
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

	"github.com/taibuivan/bgpiesa/internal/api"
	"github.com/taibuivan/bgpiesa/internal/client"
	"github.com/taibuivan/bgpiesa/internal/platform/config"
	"github.com/taibuivan/bgpiesa/internal/platform/constants"
	"github.com/taibuivan/bgpiesa/internal/platform/metrics"
	redisstore "github.com/taibuivan/bgpiesa/internal/platform/redis"
	"github.com/taibuivan/bgpiesa/internal/richtext"
	"github.com/taibuivan/bgpiesa/internal/session"
	"github.com/taibuivan/bgpiesa/internal/views"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

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
		slog.String("backend", cfg.APIBaseURL),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 4. Catalog Backend ────────────────────────────────────────────────
	registry := metrics.New()
	catalogClient, err := client.New(cfg.APIBaseURL, client.Options{
		Timeout:  cfg.HTTPTimeout,
		Observer: registry,
		Logger:   log,
	})
	must(log, err, "build catalog client")

	// ── 5. Handlers ───────────────────────────────────────────────────────
	sessions := session.NewRedisStore(rdb)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
		CheckBackend: func(ctx context.Context) error {
			_, err := catalogClient.Health(ctx)
			return err
		},
	}, log)

	viewHandler := views.NewHandler(views.Options{
		Catalog:      catalogClient,
		Sessions:     sessions,
		Renderer:     richtext.New(),
		SessionTTL:   cfg.SessionTTL,
		SecureCookie: cfg.IsProduction(),
	})

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Views:     viewHandler,
		Sessions:  sessions,
		Metrics:   registry,
	})

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
