//go:build wireinject
// +build wireinject

package di

import (
	"bunkhouse/config"
	"bunkhouse/infras/jwt"
	"bunkhouse/infras/kafka"
	"bunkhouse/infras/otel"
	"bunkhouse/infras/postgres"
	"bunkhouse/infras/redis"
	"bunkhouse/infras/s3"
	"bunkhouse/permissions"
	"bunkhouse/shared/cache"
	"bunkhouse/transport/http"
	"bunkhouse/transport/http/middleware"
	"bunkhouse/transport/http/router"

	"github.com/google/wire"

	authService "bunkhouse/internal/domains/auth/service"
	bookingRepository "bunkhouse/internal/domains/booking/repository"
	bookingService "bunkhouse/internal/domains/booking/service"
	documentRepository "bunkhouse/internal/domains/document/repository"
	documentService "bunkhouse/internal/domains/document/service"
	housekeepingRepository "bunkhouse/internal/domains/housekeeping/repository"
	housekeepingService "bunkhouse/internal/domains/housekeeping/service"
	roomRepository "bunkhouse/internal/domains/room/repository"
	roomService "bunkhouse/internal/domains/room/service"
	userRepository "bunkhouse/internal/domains/user/repository"
	userService "bunkhouse/internal/domains/user/service"

	authHandler "bunkhouse/internal/handlers/auth"
	bookingHandler "bunkhouse/internal/handlers/booking"
	documentHandler "bunkhouse/internal/handlers/document"
	housekeepingHandler "bunkhouse/internal/handlers/housekeeping"
	roomHandler "bunkhouse/internal/handlers/room"
	userHandler "bunkhouse/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	permissions.Get,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewBed,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var housekeepingDomain = wire.NewSet(
	housekeepingRepository.New,
	housekeepingRepository.NewTask,
	housekeepingService.New,
)

var documentDomain = wire.NewSet(
	documentRepository.New,
	documentService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	roomDomain,
	bookingDomain,
	housekeepingDomain,
	documentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	bookingHandler.New,
	housekeepingHandler.New,
	documentHandler.New,
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
