package handler

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"roombook/config"
	"roombook/di"
	"roombook/shared/failure"
	"roombook/shared/logger"
	"roombook/transport/http/response"
)

var (
	once    sync.Once
	app     *di.App
	initErr error
)

// Handler is the serverless entrypoint. The service is assembled once per warm instance
// so the in-memory store survives between invocations of that instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		app, initErr = di.InitializeService()
		if initErr != nil {
			log.Error().Err(initErr).Msg("Failed to initialize service")
		}
	})

	if initErr != nil {
		response.WithError(w, failure.InternalError(initErr))

		return
	}

	app.HTTP.Handler().ServeHTTP(w, r)
}
