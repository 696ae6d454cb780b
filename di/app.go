package di

import (
	"context"

	"github.com/rs/zerolog/log"

	"roombook/infras/kafka"
	"roombook/infras/otel"
	"roombook/infras/postgres"
	"roombook/transport/http"
)

// App is the assembled service together with the infrastructure it must release on exit.
type App struct {
	HTTP  *http.HTTP
	Otel  otel.Otel
	Kafka kafka.Client
	DB    *postgres.Connection
}

// Close releases infrastructure in reverse order of acquisition.
func (a *App) Close(ctx context.Context) {
	if err := a.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close kafka client")
	}

	if a.DB != nil {
		a.DB.Close()
	}

	if err := a.Otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down tracer provider")
	}
}
