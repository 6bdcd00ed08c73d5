package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paycheckout/config"
	"paycheckout/internal/logger"
	"paycheckout/internal/metrics"
	"paycheckout/internal/middleware"
	"paycheckout/internal/repository"
	"paycheckout/internal/router"
	"paycheckout/pkg/payment"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Logger.Level, cfg.Server.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	sessions := repository.NewSessionRepository(cfg.Session.TTL)
	sessions.OnChange(m.SessionsActive)
	go sessions.Run(ctx, time.Minute)

	limiter := middleware.NewInMemoryRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	go limiter.Cleanup(ctx)

	provider := payment.NewBackendHashProvider(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)

	engine := router.Setup(cfg, router.Deps{
		Sessions: sessions,
		Provider: provider,
		Limiter:  limiter,
		Metrics:  m,
		Log:      log,
	})
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Server.Env),
			zap.String("gateway", cfg.Gateway.CheckoutURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
		return
	}
	log.Info("server stopped")
}
