package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"roombook/config"
	"roombook/infras/kafka"
	"roombook/infras/otel"
	"roombook/internal/notifier"
	"roombook/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, nothing to consume")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otl := otel.New(cfg)
	client := kafka.New(cfg)

	worker := notifier.NewWorker(cfg, client, otl, notifier.NewLog())

	log.Info().Str("topic", cfg.Kafka.Topics.BookingConfirmed).Msg("Notifier started")

	worker.Run(ctx)

	if err := client.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close kafka client")
	}

	if err := otl.Shutdown(context.WithoutCancel(ctx)); err != nil {
		log.Error().Err(err).Msg("Failed to shut down tracer provider")
	}

	log.Info().Msg("Notifier stopped")
}
