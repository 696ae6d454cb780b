package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"roombook/config"
	"roombook/di"
	"roombook/helper"
	"roombook/shared/logger"
)

const (
	closeTimeout = 10 * time.Second
)

// @title roombook API
// @version 1.0
// @description Room reservation service.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.Store.Driver == config.StoreDriverPostgres && cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	app, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	ctx := context.Background()

	serveErr := app.HTTP.Serve(ctx)

	closeCtx, cancel := context.WithTimeout(ctx, closeTimeout)
	app.Close(closeCtx)
	cancel()

	if serveErr != nil {
		log.Fatal().Err(serveErr).Msg("HTTP server stopped unexpectedly")
	}
}
