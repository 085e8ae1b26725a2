package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ucrmp/claims-platform/internal/gateway"
	"github.com/ucrmp/claims-platform/internal/pkg/config"
	"github.com/ucrmp/claims-platform/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.New("gateway", cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := gateway.NewRouter(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("gateway setup failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().
		Str("port", cfg.Port).
		Str("auth_upstream", cfg.Gateway.AuthURL).
		Str("claim_upstream", cfg.Gateway.ClaimURL).
		Msg("gateway listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
