package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"haunters/config"
	"haunters/infras/otel"
	"haunters/infras/postgres"
	bookingModel "haunters/internal/domains/booking/model"
	bookingRepo "haunters/internal/domains/booking/repository"
	notificationModel "haunters/internal/domains/notification/model"
	notificationSvc "haunters/internal/domains/notification/service"
	"haunters/internal/domains/reschedule/model"
	"haunters/internal/domains/reschedule/model/dto"
	"haunters/internal/domains/reschedule/repository"
	"haunters/shared"
	"haunters/shared/cache"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/escrow"
	"haunters/shared/failure"
	"haunters/shared/timezone"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reschedule=MockRescheduleService

const cacheBookingPrefix = "booking:"

type Reschedule interface {
	Request(ctx context.Context, bookingID string, req dto.CreateRescheduleRequest) (dto.RescheduleResponse, error)
	Respond(ctx context.Context, bookingID, rescheduleID string, req dto.RespondRescheduleRequest) (dto.RescheduleResponse, error)
	AcceptCounter(ctx context.Context, bookingID, rescheduleID string) (dto.RescheduleResponse, error)
}

type serviceImpl struct {
	repo        repository.Reschedule
	bookingRepo bookingRepo.Booking
	notifier    notificationSvc.Notification
	txer        postgres.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Reschedule,
	bookingRepo bookingRepo.Booking,
	notifier notificationSvc.Notification,
	txer postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reschedule {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		notifier:    notifier,
		txer:        txer,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Request opens a reschedule request for a confirmed booking. Only one request
// may be pending per booking at a time.
func (s *serviceImpl) Request(ctx context.Context, bookingID string, req dto.CreateRescheduleRequest) (res dto.RescheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Request")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, user, err := s.getBookingForParty(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.Status != bookingModel.StatusConfirmed {
		return res, failure.InvalidState("only a confirmed booking can be rescheduled") // nolint:wrapcheck
	}

	pending, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to check pending reschedule requests")

		return res, fmt.Errorf("failed to check pending reschedule requests: %w", err)
	}

	if pending {
		return res, failure.Conflict("a reschedule request is already pending for this booking") // nolint:wrapcheck
	}

	request, err := req.ToModel(bookingID, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse reschedule request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	request.ProposedEndTime = escrow.EndTime(s.cfg, request.ProposedTime)

	if err = s.repo.Insert(ctx, request); err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to create reschedule request")

		return res, fmt.Errorf("failed to create reschedule request: %w", err)
	}

	s.notifier.Notify(ctx, booking.Counterparty(user),
		"Reschedule requested",
		fmt.Sprintf("The other party asked to move the viewing to %s at %s.", req.Date, req.Time),
		notificationModel.TypeRescheduleRequested, bookingID)

	res.FromModel(request)

	return res, nil
}

// Respond lets the non-requesting party accept, reject or counter a pending
// reschedule request. Acceptance rewrites the booking schedule in the same
// transaction.
func (s *serviceImpl) Respond(ctx context.Context, bookingID, rescheduleID string, req dto.RespondRescheduleRequest) (res dto.RescheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Respond")
	defer scope.End()
	defer scope.TraceIfError(err)

	_, user, err := s.getBookingForParty(ctx, bookingID)
	if err != nil {
		return res, err
	}

	request, err := s.getRequest(ctx, bookingID, rescheduleID)
	if err != nil {
		return res, err
	}

	if user == request.RequestedBy {
		return res, failure.Forbidden("the requester cannot respond to their own reschedule request") // nolint:wrapcheck
	}

	if request.Status != model.StatusPending {
		return res, failure.InvalidState("reschedule request has already been answered") // nolint:wrapcheck
	}

	now := timezone.Now()

	switch req.Action {
	case "accept":
		err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
			if err := s.answerRequestTx(ctx, tx, rescheduleID, model.StatusPending, map[string]any{
				model.FieldStatus:        model.StatusAccepted,
				model.FieldRespondedBy:   user,
				model.FieldRespondedAt:   now,
				constant.FieldModifiedAt: now,
				constant.FieldModifiedBy: user,
			}); err != nil {
				return err
			}

			return s.applyScheduleTx(ctx, tx, bookingID, user, request.ProposedDate, request.ProposedTime)
		})
		if err != nil {
			log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to accept reschedule request")

			return res, err
		}

		s.invalidateBookingCaches(ctx)

		s.notifier.Notify(ctx, request.RequestedBy,
			"Reschedule accepted",
			"Your reschedule request was accepted. The viewing has been moved.",
			notificationModel.TypeRescheduleResponse, bookingID)
	case "reject":
		err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
			return s.answerRequestTx(ctx, tx, rescheduleID, model.StatusPending, map[string]any{
				model.FieldStatus:        model.StatusRejected,
				model.FieldRespondedBy:   user,
				model.FieldRespondedAt:   now,
				constant.FieldModifiedAt: now,
				constant.FieldModifiedBy: user,
			})
		})
		if err != nil {
			log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to reject reschedule request")

			return res, err
		}

		s.notifier.Notify(ctx, request.RequestedBy,
			"Reschedule rejected",
			"Your reschedule request was rejected. The original schedule stands.",
			notificationModel.TypeRescheduleResponse, bookingID)
	case "counter":
		counterDate, err := time.Parse(constant.DateOnlyFormat, req.CounterDate)
		if err != nil {
			return res, failure.BadRequestFromString(fmt.Sprintf("invalid counter date: %v", err)) // nolint:wrapcheck
		}

		counterTime, err := time.Parse(constant.TimeOnlyFormat, req.CounterTime)
		if err != nil {
			return res, failure.BadRequestFromString(fmt.Sprintf("invalid counter time: %v", err)) // nolint:wrapcheck
		}

		mod := map[string]any{
			model.FieldStatus:         model.StatusCountered,
			model.FieldCounterDate:    counterDate,
			model.FieldCounterTime:    counterTime,
			model.FieldCounterEndTime: escrow.EndTime(s.cfg, counterTime),
			model.FieldRespondedBy:    user,
			model.FieldRespondedAt:    now,
			constant.FieldModifiedAt:  now,
			constant.FieldModifiedBy:  user,
		}
		if req.CounterReason != constant.Empty {
			mod[model.FieldCounterReason] = req.CounterReason
		}

		err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
			return s.answerRequestTx(ctx, tx, rescheduleID, model.StatusPending, mod)
		})
		if err != nil {
			log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to counter reschedule request")

			return res, err
		}

		s.notifier.Notify(ctx, request.RequestedBy,
			"Reschedule countered",
			fmt.Sprintf("The other party proposed %s at %s instead.", req.CounterDate, req.CounterTime),
			notificationModel.TypeRescheduleResponse, bookingID)
	default:
		return res, failure.BadRequestFromString("unknown reschedule action") // nolint:wrapcheck
	}

	return s.freshResponse(ctx, bookingID, rescheduleID)
}

// AcceptCounter lets the original requester apply the countered schedule.
func (s *serviceImpl) AcceptCounter(ctx context.Context, bookingID, rescheduleID string) (res dto.RescheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AcceptCounter")
	defer scope.End()
	defer scope.TraceIfError(err)

	_, user, err := s.getBookingForParty(ctx, bookingID)
	if err != nil {
		return res, err
	}

	request, err := s.getRequest(ctx, bookingID, rescheduleID)
	if err != nil {
		return res, err
	}

	if user != request.RequestedBy {
		return res, failure.Forbidden("only the requester can accept a counter proposal") // nolint:wrapcheck
	}

	if request.Status != model.StatusCountered || request.CounterDate == nil || request.CounterTime == nil {
		return res, failure.InvalidState("reschedule request has no counter proposal to accept") // nolint:wrapcheck
	}

	now := timezone.Now()

	err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.answerRequestTx(ctx, tx, rescheduleID, model.StatusCountered, map[string]any{
			model.FieldStatus:        model.StatusAccepted,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}); err != nil {
			return err
		}

		return s.applyScheduleTx(ctx, tx, bookingID, user, *request.CounterDate, *request.CounterTime)
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to accept counter proposal")

		return res, err
	}

	s.invalidateBookingCaches(ctx)

	if request.RespondedBy != nil {
		s.notifier.Notify(ctx, *request.RespondedBy,
			"Counter proposal accepted",
			"Your counter proposal was accepted. The viewing has been moved.",
			notificationModel.TypeRescheduleResponse, bookingID)
	}

	return s.freshResponse(ctx, bookingID, rescheduleID)
}

// answerRequestTx moves the request out of fromStatus, guarded so two answers
// cannot both win.
func (s *serviceImpl) answerRequestTx(ctx context.Context, tx *sqlx.Tx, rescheduleID, fromStatus string, mod map[string]any) error {
	rows, err := s.repo.UpdateCountTx(ctx, tx, mod, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: rescheduleID, Table: model.TableName, ArgName: "guard_reschedule_id"},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: fromStatus, Table: model.TableName, ArgName: "guard_status"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to answer reschedule request: %w", err)
	}

	if rows == 0 {
		return failure.InvalidState("reschedule request has already been answered") // nolint:wrapcheck
	}

	return nil
}

// applyScheduleTx rewrites the booking's schedule and resets every meeting
// confirmation flag, so the new appointment starts from a clean slate. The
// auto-release deadline follows the new start.
func (s *serviceImpl) applyScheduleTx(ctx context.Context, tx *sqlx.Tx, bookingID, actor string, date, start time.Time) error {
	now := timezone.Now()
	startAt := escrow.CombineDateTime(date, start)

	rows, err := s.bookingRepo.UpdateCountTx(ctx, tx, map[string]any{
		bookingModel.FieldScheduledDate:      date,
		bookingModel.FieldScheduledTime:      start,
		bookingModel.FieldScheduledEndTime:   escrow.EndTime(s.cfg, start),
		bookingModel.FieldAutoReleaseAt:      escrow.AutoReleaseAt(s.cfg, startAt),
		bookingModel.FieldHunterMetConfirmed: false,
		bookingModel.FieldTenantMetConfirmed: false,
		bookingModel.FieldPhysicalConfirmed:  false,
		constant.FieldModifiedAt:             now,
		constant.FieldModifiedBy:             actor,
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: bookingModel.TableName, ArgName: "guard_booking_id"},
			gDto.Filter{Field: bookingModel.FieldStatus, Operator: gDto.FilterOperatorEq, Value: bookingModel.StatusConfirmed, Table: bookingModel.TableName, ArgName: "guard_booking_status"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to apply new schedule: %w", err)
	}

	if rows == 0 {
		return failure.InvalidState("only a confirmed booking can be rescheduled") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) getBookingForParty(ctx context.Context, bookingID string) (bookingModel.Booking, string, error) {
	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking")

		return booking, constant.Empty, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, constant.Empty, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if !booking.IsParty(user) {
		return booking, user, failure.Forbidden("you are not a party to this booking") // nolint:wrapcheck
	}

	return booking, user, nil
}

func (s *serviceImpl) getRequest(ctx context.Context, bookingID, rescheduleID string) (model.RescheduleRequest, error) {
	request, err := s.repo.Get(ctx, shared.FilterByID(rescheduleID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("reschedule_id", rescheduleID).Msg("failed to get reschedule request")

		return request, fmt.Errorf("failed to get reschedule request: %w", err)
	}

	if request.ID == constant.Empty || request.BookingID != bookingID {
		return request, failure.NotFound("reschedule request not found") // nolint:wrapcheck
	}

	return request, nil
}

func (s *serviceImpl) freshResponse(ctx context.Context, bookingID, rescheduleID string) (res dto.RescheduleResponse, err error) {
	request, err := s.getRequest(ctx, bookingID, rescheduleID)
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
