//go:build wireinject
// +build wireinject

package di

import (
	"innkeeper/config"
	"innkeeper/infras/jwt"
	"innkeeper/infras/kafka"
	"innkeeper/infras/otel"
	"innkeeper/infras/postgres"
	"innkeeper/infras/redis"
	"innkeeper/infras/s3"
	"innkeeper/shared/cache"
	"innkeeper/transport/http"
	"innkeeper/transport/http/middleware"
	"innkeeper/transport/http/router"

	"github.com/google/wire"

	authService "innkeeper/internal/domains/auth/service"
	bookingRepository "innkeeper/internal/domains/booking/repository"
	bookingService "innkeeper/internal/domains/booking/service"
	hotelRepository "innkeeper/internal/domains/hotel/repository"
	hotelService "innkeeper/internal/domains/hotel/service"
	mediaRepository "innkeeper/internal/domains/media/repository"
	mediaService "innkeeper/internal/domains/media/service"
	oplogRepository "innkeeper/internal/domains/oplog/repository"
	oplogService "innkeeper/internal/domains/oplog/service"
	paymentProvider "innkeeper/internal/domains/payment/provider"
	paymentRepository "innkeeper/internal/domains/payment/repository"
	paymentService "innkeeper/internal/domains/payment/service"
	roomRepository "innkeeper/internal/domains/room/repository"
	roomService "innkeeper/internal/domains/room/service"
	userRepository "innkeeper/internal/domains/user/repository"
	userService "innkeeper/internal/domains/user/service"

	authHandler "innkeeper/internal/handlers/auth"
	bookingHandler "innkeeper/internal/handlers/booking"
	hotelHandler "innkeeper/internal/handlers/hotel"
	mediaHandler "innkeeper/internal/handlers/media"
	oplogHandler "innkeeper/internal/handlers/oplog"
	opsHandler "innkeeper/internal/handlers/ops"
	paymentHandler "innkeeper/internal/handlers/payment"
	roomHandler "innkeeper/internal/handlers/room"
	userHandler "innkeeper/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var hotelDomain = wire.NewSet(
	hotelRepository.New,
	hotelService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentProvider.NewRegistry,
	paymentService.New,
)

var oplogDomain = wire.NewSet(
	oplogRepository.NewGeneratorLog,
	oplogRepository.NewAttendanceLog,
	oplogService.New,
)

var mediaDomain = wire.NewSet(
	mediaRepository.New,
	mediaService.New,
)

var domains = wire.NewSet(
	hotelDomain,
	roomDomain,
	bookingDomain,
	userDomain,
	authDomain,
	paymentDomain,
	oplogDomain,
	mediaDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	hotelHandler.New,
	roomHandler.New,
	bookingHandler.New,
	userHandler.New,
	paymentHandler.New,
	oplogHandler.New,
	mediaHandler.New,
	opsHandler.New,
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

// InitializeSweeper wires only what the hold sweeper needs.
func InitializeSweeper() bookingService.Booking {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		bookingDomain,
		roomRepository.New,
	)

	return nil
}
