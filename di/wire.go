//go:build wireinject
// +build wireinject

package di

import (
	"hotelos/config"
	"hotelos/infras/jwt"
	"hotelos/infras/kafka"
	"hotelos/infras/mailer"
	"hotelos/infras/otel"
	"hotelos/infras/postgres"
	"hotelos/infras/redis"
	"hotelos/infras/s3"
	"hotelos/permissions"
	"hotelos/shared/cache"
	gRepo "hotelos/shared/repository"
	"hotelos/transport/event"
	"hotelos/transport/http"
	"hotelos/transport/http/middleware"
	"hotelos/transport/http/router"

	authService "hotelos/internal/domains/auth/service"
	availabilityService "hotelos/internal/domains/availability/service"
	bookingRepository "hotelos/internal/domains/booking/repository"
	bookingService "hotelos/internal/domains/booking/service"
	checkoutService "hotelos/internal/domains/checkout/service"
	guestRepository "hotelos/internal/domains/guest/repository"
	guestService "hotelos/internal/domains/guest/service"
	"hotelos/internal/domains/invoice/delivery"
	invoiceRepository "hotelos/internal/domains/invoice/repository"
	invoiceService "hotelos/internal/domains/invoice/service"
	ledgerRepository "hotelos/internal/domains/ledger/repository"
	ledgerService "hotelos/internal/domains/ledger/service"
	roomRepository "hotelos/internal/domains/room/repository"
	roomService "hotelos/internal/domains/room/service"
	userRepository "hotelos/internal/domains/user/repository"

	authHandler "hotelos/internal/handlers/auth"
	availabilityHandler "hotelos/internal/handlers/availability"
	bookingHandler "hotelos/internal/handlers/booking"
	checkoutHandler "hotelos/internal/handlers/checkout"
	guestHandler "hotelos/internal/handlers/guest"
	healthHandler "hotelos/internal/handlers/health"
	invoiceHandler "hotelos/internal/handlers/invoice"
	ledgerHandler "hotelos/internal/handlers/ledger"
	roomHandler "hotelos/internal/handlers/room"

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
	kafka.New,
	s3.New,
	mailer.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewServiceLog,
	roomService.New,
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	guestService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	availabilityService.New,
)

var ledgerDomain = wire.NewSet(
	ledgerRepository.NewCharge,
	ledgerRepository.NewPayment,
	ledgerService.New,
)

var invoiceDomain = wire.NewSet(
	invoiceRepository.New,
	invoiceRepository.NewItem,
	invoiceRepository.NewSequence,
	delivery.New,
	delivery.NewPublisher,
	invoiceService.New,
)

var checkoutDomain = wire.NewSet(
	wire.Struct(new(checkoutService.Repositories), "*"),
	checkoutService.New,
)

var domains = wire.NewSet(
	authDomain,
	roomDomain,
	guestDomain,
	bookingDomain,
	ledgerDomain,
	invoiceDomain,
	checkoutDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	availabilityHandler.New,
	roomHandler.New,
	guestHandler.New,
	bookingHandler.New,
	ledgerHandler.New,
	checkoutHandler.New,
	invoiceHandler.New,
	healthHandler.New,
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

func InitializeWorker() *event.Consumer {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		invoiceDomain,
		event.New,
	)

	return &event.Consumer{}
}
