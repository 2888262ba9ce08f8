package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"haunters/config"
	"haunters/infras/otel"
	"haunters/infras/postgres"
	"haunters/internal/domains/booking/model"
	"haunters/internal/domains/booking/model/dto"
	"haunters/internal/domains/booking/repository"
	disputeRepo "haunters/internal/domains/dispute/repository"
	earningsRepo "haunters/internal/domains/earnings/repository"
	notificationSvc "haunters/internal/domains/notification/service"
	propertyRepo "haunters/internal/domains/property/repository"
	"haunters/shared"
	"haunters/shared/cache"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/failure"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	ShareMeetingPoint(ctx context.Context, bookingID string, req dto.ShareMeetingPointRequest) (dto.MeetingPointResponse, error)
	RespondMeetingPoint(ctx context.Context, bookingID string, req dto.RespondMeetingPointRequest) error
	ConfirmMeeting(ctx context.Context, bookingID string) (dto.ConfirmMeetingResponse, error)
	SubmitOutcome(ctx context.Context, bookingID string, req dto.SubmitOutcomeRequest) error
	ConfirmCompleted(ctx context.Context, bookingID string) error
	Cancel(ctx context.Context, bookingID string, req dto.CancelBookingRequest) error
	ReportNoShow(ctx context.Context, bookingID string, req dto.ReportNoShowRequest) error
	ReleaseEscrowTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking, extra map[string]any, actor string) error
	RefundEscrowTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking, actor string) error
	SweepAutoRelease(ctx context.Context) (int, error)
	SendDailyReminders(ctx context.Context) (int, error)
	ExpireStale(ctx context.Context) error
}

type serviceImpl struct {
	repo             repository.Booking
	meetingPointRepo repository.MeetingPoint
	propertyRepo     propertyRepo.Property
	earningsRepo     earningsRepo.Earnings
	disputeRepo      disputeRepo.Dispute
	notifier         notificationSvc.Notification
	txer             postgres.Transactor
	cfg              *config.Config
	cache            cache.RedisCache
	otel             otel.Otel
}

func New(
	repo repository.Booking,
	meetingPointRepo repository.MeetingPoint,
	propertyRepo propertyRepo.Property,
	earningsRepo earningsRepo.Earnings,
	disputeRepo disputeRepo.Dispute,
	notifier notificationSvc.Notification,
	txer postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:             repo,
		meetingPointRepo: meetingPointRepo,
		propertyRepo:     propertyRepo,
		earningsRepo:     earningsRepo,
		disputeRepo:      disputeRepo,
		notifier:         notifier,
		txer:             txer,
		cfg:              cfg,
		cache:            cache,
		otel:             otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// GetMine lists bookings where the caller is either side of the deal.
func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldTenantID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName, ArgName: "mine_tenant_id"},
			gDto.Filter{Field: model.FieldHunterID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName, ArgName: "mine_hunter_id"},
		},
	}

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// getBookingForParty loads the booking and ensures the caller is one of its
// parties. It returns the caller's user id alongside the booking.
func (s *serviceImpl) getBookingForParty(ctx context.Context, id string) (model.Booking, string, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return booking, constant.Empty, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if !booking.IsParty(user) {
		return booking, user, failure.Forbidden("you are not a party to this booking") // nolint:wrapcheck
	}

	return booking, user, nil
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetBooking, id))
		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
