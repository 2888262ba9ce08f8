//go:build wireinject
// +build wireinject

package di

import (
	"haunters/config"
	"haunters/infras/jwt"
	"haunters/infras/kafka"
	"haunters/infras/otel"
	"haunters/infras/postgres"
	"haunters/infras/redis"
	"haunters/infras/s3"
	"haunters/internal/scheduler"
	"haunters/permissions"
	"haunters/shared/cache"
	"haunters/transport/http"
	"haunters/transport/http/middleware"
	"haunters/transport/http/router"

	"github.com/google/wire"

	alternativeRepository "haunters/internal/domains/alternative/repository"
	alternativeService "haunters/internal/domains/alternative/service"
	bookingRepository "haunters/internal/domains/booking/repository"
	bookingService "haunters/internal/domains/booking/service"
	disputeRepository "haunters/internal/domains/dispute/repository"
	disputeService "haunters/internal/domains/dispute/service"
	earningsRepository "haunters/internal/domains/earnings/repository"
	earningsService "haunters/internal/domains/earnings/service"
	notificationRepository "haunters/internal/domains/notification/repository"
	notificationService "haunters/internal/domains/notification/service"
	propertyRepository "haunters/internal/domains/property/repository"
	rescheduleRepository "haunters/internal/domains/reschedule/repository"
	rescheduleService "haunters/internal/domains/reschedule/service"
	viewingRepository "haunters/internal/domains/viewing/repository"
	viewingService "haunters/internal/domains/viewing/service"

	bookingHandler "haunters/internal/handlers/booking"
	disputeHandler "haunters/internal/handlers/dispute"
	earningsHandler "haunters/internal/handlers/earnings"
	notificationHandler "haunters/internal/handlers/notification"
	viewingHandler "haunters/internal/handlers/viewing"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
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

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.New,
)

var viewingDomain = wire.NewSet(
	viewingRepository.New,
	viewingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewMeetingPoint,
	propertyRepository.New,
	bookingService.New,
)

var rescheduleDomain = wire.NewSet(
	rescheduleRepository.New,
	rescheduleService.New,
)

var alternativeDomain = wire.NewSet(
	alternativeRepository.New,
	alternativeService.New,
)

var disputeDomain = wire.NewSet(
	disputeRepository.New,
	disputeService.New,
)

var earningsDomain = wire.NewSet(
	earningsRepository.New,
	earningsService.New,
)

var domains = wire.NewSet(
	notificationDomain,
	viewingDomain,
	bookingDomain,
	rescheduleDomain,
	alternativeDomain,
	disputeDomain,
	earningsDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	viewingHandler.New,
	bookingHandler.New,
	disputeHandler.New,
	earningsHandler.New,
	notificationHandler.New,
	router.New,
)

var background = wire.NewSet(
	ProvideSchedulerJobs,
	scheduler.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		background,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
