//go:build wireinject
// +build wireinject

package di

import (
	"rendezvous/config"
	"rendezvous/infras/downstream"
	"rendezvous/infras/jwt"
	"rendezvous/infras/kafka"
	"rendezvous/infras/otel"
	"rendezvous/infras/postgres"
	"rendezvous/infras/redis"
	"rendezvous/infras/s3"
	adminHandler "rendezvous/internal/handlers/admin"
	bookingHandler "rendezvous/internal/handlers/booking"
	"rendezvous/permissions"
	"rendezvous/shared/cache"
	"rendezvous/shared/qrcode"
	"rendezvous/shared/timezone"
	"rendezvous/transport/http"
	"rendezvous/transport/http/middleware"
	"rendezvous/transport/http/router"

	bookingRepository "rendezvous/internal/domains/booking/repository"
	bookingService "rendezvous/internal/domains/booking/service"
	credentialService "rendezvous/internal/domains/credential/service"
	notificationService "rendezvous/internal/domains/notification/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	downstream.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	qrcode.New,
	timezone.NewClock,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var credentialDomain = wire.NewSet(
	notificationService.New,
	credentialService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	credentialDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	adminHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

// InitializeBookingService wires the booking service without the HTTP layer, for maintenance commands.
func InitializeBookingService() bookingService.Booking {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		domains,
	)

	return nil
}
