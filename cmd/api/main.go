// Package main is the entry point for the SURGE congestion API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/surgeproject/surge/internal/config"
	"github.com/surgeproject/surge/internal/domain"
	"github.com/surgeproject/surge/internal/handler"
	"github.com/surgeproject/surge/internal/middleware"
	"github.com/surgeproject/surge/internal/service"
	"github.com/surgeproject/surge/internal/store"
)

// maxScanBodyBytes bounds POST /scan payloads; a scan request is a token ID
// and a zone name, so 64 KiB is already generous.
const maxScanBodyBytes = 64 << 10

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Store ------------------------------------------------------------
	// The shared ephemeral store holds token liveness entries and scan
	// histories; everything in it dies with its TTL.
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DialTimeout:  cfg.StoreTimeout,
		ReadTimeout:  cfg.StoreTimeout,
		WriteTimeout: cfg.StoreTimeout,
	})
	defer client.Close()

	// Verify the store is reachable before accepting traffic.
	if err := client.Ping(context.Background()).Err(); err != nil {
		slog.Error("failed to connect to store", "error", err)
		os.Exit(1)
	}
	slog.Info("store connection established")

	// --- Services ---------------------------------------------------------
	st := store.NewRedisStore(client, cfg.StoreTimeout)
	zones := domain.NewZoneSet(cfg.Zones)

	lifecycle := service.NewLifecycleService(st, cfg.TokenTTL)
	recorder := service.NewRecorderService(st, lifecycle, zones)
	classifier := service.NewClassifier(cfg.LowMax, cfg.MediumMax)
	aggregator := service.NewAggregatorService(
		st, zones, time.Duration(cfg.WindowMinutes)*time.Minute, classifier, logger)

	// Aggregation trigger: per query by default, or a periodic background
	// refresh when AGGREGATE_INTERVAL is set. Ticks never overlap.
	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()

	var congestion handler.CongestionProvider = aggregator
	if cfg.AggregateInterval > 0 {
		refresher := service.NewRefresher(aggregator, cfg.AggregateInterval, logger)
		go refresher.Run(refreshCtx)
		congestion = refresher
		slog.Info("periodic aggregation enabled", "interval", cfg.AggregateInterval)
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxScanBodyBytes))

	srvHandler := handler.NewServer(lifecycle, recorder, congestion, cfg.QRBaseURL, cfg.QRSize)
	r.Mount("/", srvHandler.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")
	stopRefresh()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
