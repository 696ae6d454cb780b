//go:build wireinject
// +build wireinject

package di

import (
	"roombook/config"
	"roombook/infras/kafka"
	"roombook/infras/otel"
	"roombook/infras/postgres"
	"roombook/infras/redis"
	"roombook/internal/store"
	"roombook/shared/cache"
	"roombook/shared/timezone"
	"roombook/transport/http"
	"roombook/transport/http/middleware"
	"roombook/transport/http/router"

	"github.com/google/wire"

	bookingService "roombook/internal/domains/booking/service"
	customerService "roombook/internal/domains/customer/service"
	roomService "roombook/internal/domains/room/service"
	bookingHandler "roombook/internal/handlers/booking"
	customerHandler "roombook/internal/handlers/customer"
	roomHandler "roombook/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	timezone.NewClock,
	store.New,
)

var domains = wire.NewSet(
	roomService.New,
	bookingService.New,
	customerService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	bookingHandler.New,
	customerHandler.New,
	router.New,
)

func InitializeService() (*App, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}, nil
}
