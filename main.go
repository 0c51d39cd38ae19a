package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/valyala/fasthttp"

	"tax-simulation/internal/config"
	"tax-simulation/internal/engine"
	"tax-simulation/internal/handler"
	"tax-simulation/internal/logging"
	"tax-simulation/internal/taxclient"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("load config: %v", err)
	}
	log := logging.New(cfg.LogLevel, os.Stdout)

	client := taxclient.New(cfg.TaxServiceURL, cfg.RequestTimeout)
	h := handler.New(func(sessionID string) *engine.Controller {
		return engine.New(client, engine.WithLogger(log.With().Str("session_id", sessionID).Logger()))
	}, log)

	srv := &fasthttp.Server{
		Handler: h.HandleRequest,
		Name:    "tax-simulation",
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("tax_service", client.URL()).Msg("tax simulation starting")
	if err := srv.ListenAndServe(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
