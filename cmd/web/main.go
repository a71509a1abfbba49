package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"roomdesk/internal/audit"
	"roomdesk/internal/backend"
	"roomdesk/internal/config"
	"roomdesk/internal/handler"
	"roomdesk/internal/inflight"
	"roomdesk/internal/metrics"
	"roomdesk/internal/middleware"
	"roomdesk/internal/router"
	"roomdesk/internal/session"
)

func main() {
	// Initialize logger
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("ROOMDESK_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	api := backend.New(cfg.API.BaseURL, cfg.APITimeout())
	if cfg.API.CacheTTLSeconds > 0 {
		api.UseRedisCache(rdb, cfg.CacheTTL())
	}

	auditDB, err := audit.NewDB(cfg.Audit.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("open audit db error")
	}
	defer auditDB.Close()

	sessions := session.NewStore(rdb, cfg.SessionTTL(), logger)
	guard := inflight.NewGuard()
	loginLimiter := middleware.NewLoginLimiter(cfg.Login.RatePerMinute, cfg.Login.Burst)

	h := handler.New(api, sessions, guard, auditDB, rdb, handler.CookieConfig{
		Name:   cfg.Server.CookieName,
		Secure: cfg.Server.CookieSecure,
	}, logger)

	e, err := router.New(h, sessions, cfg.Server.CookieName, loginLimiter, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("router setup error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	logger.Info().Int("port", cfg.Server.Port).Str("backend", cfg.API.BaseURL).Msg("roomdesk started")
	if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
