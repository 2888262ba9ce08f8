package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"haunters/config"
	"haunters/infras/otel"
	"haunters/infras/postgres"
	bookingModel "haunters/internal/domains/booking/model"
	bookingDto "haunters/internal/domains/booking/model/dto"
	bookingRepo "haunters/internal/domains/booking/repository"
	notificationModel "haunters/internal/domains/notification/model"
	notificationSvc "haunters/internal/domains/notification/service"
	propertyModel "haunters/internal/domains/property/model"
	propertyRepo "haunters/internal/domains/property/repository"
	"haunters/internal/domains/viewing/model"
	"haunters/internal/domains/viewing/model/dto"
	"haunters/internal/domains/viewing/repository"
	"haunters/shared"
	"haunters/shared/cache"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/escrow"
	"haunters/shared/failure"
	gModel "haunters/shared/model"
	"haunters/shared/timezone"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Viewing=MockViewingService

const cacheBookingPrefix = "booking:"

type Viewing interface {
	Create(ctx context.Context, req dto.CreateViewingRequest) (dto.ViewingRequestResponse, error)
	Respond(ctx context.Context, id string, req dto.RespondViewingRequest) (dto.ViewingRequestResponse, error)
	Pay(ctx context.Context, id string) (bookingDto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.ViewingRequestResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetViewingRequestsResponse, error)
}

type serviceImpl struct {
	repo         repository.Viewing
	bookingRepo  bookingRepo.Booking
	propertyRepo propertyRepo.Property
	notifier     notificationSvc.Notification
	txer         postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Viewing,
	bookingRepo bookingRepo.Booking,
	propertyRepo propertyRepo.Property,
	notifier notificationSvc.Notification,
	txer postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Viewing {
	return &serviceImpl{
		repo:         repo,
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		notifier:     notifier,
		txer:         txer,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create opens a viewing request against a property, invoiced by package.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateViewingRequest) (res dto.ViewingRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	property, err := s.propertyRepo.Get(ctx, shared.FilterByID(req.PropertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("property_id", req.PropertyID).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound("property not found") // nolint:wrapcheck
	}

	request, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse viewing request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid proposed dates: %v", err)) // nolint:wrapcheck
	}

	request.HunterID = property.HunterID

	if err = s.repo.Insert(ctx, request); err != nil {
		log.Error().Err(err).Msg("failed to create viewing request")

		return res, fmt.Errorf("failed to create viewing request: %w", err)
	}

	s.notifier.Notify(ctx, property.HunterID,
		"New viewing request",
		fmt.Sprintf("A tenant requested a viewing of %s.", property.Title),
		notificationModel.TypeViewingRequest, request.ID)

	res.FromModel(request)

	return res, nil
}

// Respond lets the hunter accept, reject or counter a pending viewing request.
// Countering replaces the proposed slots with the hunter's ones.
func (s *serviceImpl) Respond(ctx context.Context, id string, req dto.RespondViewingRequest) (res dto.ViewingRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Respond")
	defer scope.End()
	defer scope.TraceIfError(err)

	request, err := s.getRequest(ctx, id)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user != request.HunterID {
		return res, failure.Forbidden("only the hunter can respond to a viewing request") // nolint:wrapcheck
	}

	if request.Status != model.StatusPending {
		return res, failure.InvalidState("viewing request has already been answered") // nolint:wrapcheck
	}

	now := timezone.Now()

	mod := map[string]any{
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	var notification string

	switch req.Action {
	case "accept":
		mod[model.FieldStatus] = model.StatusAccepted
		notification = "The hunter accepted your viewing request. You can now pay to confirm the booking."
	case "reject":
		mod[model.FieldStatus] = model.StatusRejected
		notification = "The hunter rejected your viewing request."
	case "counter":
		for _, slot := range req.CounterDates {
			if _, err := time.Parse(model.ScheduleLayout, slot); err != nil {
				return res, failure.BadRequestFromString(fmt.Sprintf("invalid counter dates: %v", err)) // nolint:wrapcheck
			}
		}

		counterDates, err := json.Marshal(req.CounterDates)
		if err != nil {
			return res, fmt.Errorf("failed to encode counter dates: %w", err)
		}

		mod[model.FieldStatus] = model.StatusCountered
		mod[model.FieldProposedDates] = string(counterDates)
		notification = "The hunter proposed different viewing times."
	default:
		return res, failure.BadRequestFromString("unknown viewing request action") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, mod, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("viewing_request_id", id).Msg("failed to respond to viewing request")

		return res, fmt.Errorf("failed to respond to viewing request: %w", err)
	}

	s.notifier.Notify(ctx, request.TenantID, "Viewing request update", notification,
		notificationModel.TypeViewingResponse, id)

	return s.freshResponse(ctx, id)
}

// Pay simulates the escrow payment for an accepted viewing request. In one
// transaction it marks the invoice paid, creates the confirmed booking and
// claims the property lock; a held lock rejects the payment with a conflict.
func (s *serviceImpl) Pay(ctx context.Context, id string) (res bookingDto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pay")
	defer scope.End()
	defer scope.TraceIfError(err)

	request, err := s.getRequest(ctx, id)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user != request.TenantID {
		return res, failure.Forbidden("only the tenant can pay for a viewing request") // nolint:wrapcheck
	}

	if request.Status != model.StatusAccepted {
		return res, failure.InvalidState("only an accepted viewing request can be paid") // nolint:wrapcheck
	}

	if request.PaymentStatus != model.PaymentUnpaid {
		return res, failure.Conflict("viewing request has already been paid") // nolint:wrapcheck
	}

	scheduledDate, scheduledTime, err := model.ParseFirstSchedule(request.ProposedDates)
	if err != nil {
		log.Error().Err(err).Str("viewing_request_id", id).Msg("failed to parse proposed schedule")

		return res, fmt.Errorf("failed to parse proposed schedule: %w", err)
	}

	now := timezone.Now()
	startAt := escrow.CombineDateTime(scheduledDate, scheduledTime)

	booking := bookingModel.Booking{
		ID:               uuid.NewString(),
		ViewingRequestID: request.ID,
		PropertyID:       request.PropertyID,
		TenantID:         request.TenantID,
		HunterID:         request.HunterID,
		Amount:           request.InvoiceAmount,
		PaymentStatus:    bookingModel.PaymentEscrow,
		Status:           bookingModel.StatusConfirmed,
		ScheduledDate:    scheduledDate,
		ScheduledTime:    scheduledTime,
		ScheduledEndTime: escrow.EndTime(s.cfg, scheduledTime),
		AutoReleaseAt:    escrow.AutoReleaseAt(s.cfg, startAt),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		rows, err := s.repo.UpdateCountTx(ctx, tx, map[string]any{
			model.FieldPaymentStatus: model.PaymentEscrow,
			model.FieldInvoiceStatus: model.InvoicePaid,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: id, Table: model.TableName, ArgName: "guard_request_id"},
				gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusAccepted, Table: model.TableName, ArgName: "guard_status"},
				gDto.Filter{Field: model.FieldPaymentStatus, Operator: gDto.FilterOperatorEq, Value: model.PaymentUnpaid, Table: model.TableName, ArgName: "guard_payment_status"},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to mark viewing request paid: %w", err)
		}

		if rows == 0 {
			return failure.Conflict("viewing request has already been paid") // nolint:wrapcheck
		}

		claimed, err := s.propertyRepo.ClaimLockTx(ctx, tx, request.PropertyID, booking.ID)
		if err != nil {
			return fmt.Errorf("failed to claim property lock: %w", err)
		}

		if !claimed {
			return failure.Conflict("property is currently locked by another booking") // nolint:wrapcheck
		}

		if err := s.bookingRepo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("viewing_request_id", id).Msg("failed to pay viewing request")

		return res, err
	}

	s.invalidateBookingCaches(ctx)

	s.notifier.Notify(ctx, request.HunterID,
		"Booking confirmed",
		"The tenant paid for the viewing. The booking is confirmed and the payment is held in escrow.",
		notificationModel.TypeBookingCreated, booking.ID)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ViewingRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	request, err := s.getRequest(ctx, id)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if user != request.TenantID && user != request.HunterID && role != constant.RoleAdmin {
		return res, failure.Forbidden("you are not a party to this viewing request") // nolint:wrapcheck
	}

	res.FromModel(request)

	return res, nil
}

// GetAll lists viewing requests. Non-admin callers only see their own side.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetViewingRequestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdmin {
		ownSide := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldTenantID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName, ArgName: "own_tenant_id"},
				gDto.Filter{Field: model.FieldHunterID, Operator: gDto.FilterOperatorEq, Value: user, Table: model.TableName, ArgName: "own_hunter_id"},
			},
		}

		if len(filter.Filters) == 0 {
			filter = ownSide
		} else {
			filter = gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters:  []any{filter, ownSide},
			}
		}
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count viewing requests")

		return res, fmt.Errorf("failed to count viewing requests: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get viewing requests")

		return res, fmt.Errorf("failed to get viewing requests: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) getRequest(ctx context.Context, id string) (model.ViewingRequest, error) {
	request, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("viewing_request_id", id).Msg("failed to get viewing request")

		return request, fmt.Errorf("failed to get viewing request: %w", err)
	}

	if request.ID == constant.Empty {
		return request, failure.NotFound("viewing request not found") // nolint:wrapcheck
	}

	return request, nil
}

func (s *serviceImpl) freshResponse(ctx context.Context, id string) (res dto.ViewingRequestResponse, err error) {
	request, err := s.getRequest(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(request)

	return res, nil
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheBookingPrefix)
	}()
}
