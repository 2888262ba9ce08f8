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
	"haunters/internal/domains/alternative/model"
	"haunters/internal/domains/alternative/model/dto"
	"haunters/internal/domains/alternative/repository"
	bookingModel "haunters/internal/domains/booking/model"
	bookingDto "haunters/internal/domains/booking/model/dto"
	bookingRepo "haunters/internal/domains/booking/repository"
	disputeModel "haunters/internal/domains/dispute/model"
	disputeRepo "haunters/internal/domains/dispute/repository"
	notificationModel "haunters/internal/domains/notification/model"
	notificationSvc "haunters/internal/domains/notification/service"
	propertyModel "haunters/internal/domains/property/model"
	propertyRepo "haunters/internal/domains/property/repository"
	viewingModel "haunters/internal/domains/viewing/model"
	viewingRepo "haunters/internal/domains/viewing/repository"
	"haunters/shared"
	"haunters/shared/cache"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/escrow"
	"haunters/shared/failure"
	gModel "haunters/shared/model"
	"haunters/shared/timezone"
)

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Alternative=MockAlternativeService

const cacheBookingPrefix = "booking:"

type Alternative interface {
	Request(ctx context.Context, bookingID string) error
	Offer(ctx context.Context, bookingID string, req dto.OfferAlternativeRequest) (dto.AlternativeOfferResponse, error)
	Accept(ctx context.Context, bookingID string) (bookingDto.BookingResponse, error)
	Decline(ctx context.Context, bookingID string, req dto.DeclineAlternativeRequest) error
}

type serviceImpl struct {
	repo         repository.Alternative
	bookingRepo  bookingRepo.Booking
	viewingRepo  viewingRepo.Viewing
	propertyRepo propertyRepo.Property
	disputeRepo  disputeRepo.Dispute
	notifier     notificationSvc.Notification
	txer         postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Alternative,
	bookingRepo bookingRepo.Booking,
	viewingRepo viewingRepo.Viewing,
	propertyRepo propertyRepo.Property,
	disputeRepo disputeRepo.Dispute,
	notifier notificationSvc.Notification,
	txer postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Alternative {
	return &serviceImpl{
		repo:         repo,
		bookingRepo:  bookingRepo,
		viewingRepo:  viewingRepo,
		propertyRepo: propertyRepo,
		disputeRepo:  disputeRepo,
		notifier:     notifier,
		txer:         txer,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Request formally asks the hunter for an alternative property. The tenant
// must have submitted an ALTERNATIVE_REQUESTED outcome first.
func (s *serviceImpl) Request(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Request")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user != booking.TenantID {
		return failure.Forbidden("only the tenant can request an alternative") // nolint:wrapcheck
	}

	if booking.Status != bookingModel.StatusConfirmed {
		return failure.InvalidState("an alternative can only be requested for a confirmed booking") // nolint:wrapcheck
	}

	if !booking.OutcomeIs(bookingModel.OutcomeAlternativeRequested) {
		return failure.InvalidState("submit an alternative-requested viewing outcome first") // nolint:wrapcheck
	}

	s.notifier.Notify(ctx, booking.HunterID,
		"Alternative requested",
		"The tenant asked you to offer an alternative property for their booking.",
		notificationModel.TypeAlternativeRequested, bookingID)

	return nil
}

// Offer lets the hunter propose a substitute property. It creates the viewing
// request for the offered property and the pending offer in one transaction.
func (s *serviceImpl) Offer(ctx context.Context, bookingID string, req dto.OfferAlternativeRequest) (res dto.AlternativeOfferResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Offer")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user != booking.HunterID {
		return res, failure.Forbidden("only the hunter can offer an alternative") // nolint:wrapcheck
	}

	if booking.Status != bookingModel.StatusConfirmed {
		return res, failure.InvalidState("an alternative can only be offered for a confirmed booking") // nolint:wrapcheck
	}

	if !booking.OutcomeIs(bookingModel.OutcomeAlternativeRequested) {
		return res, failure.InvalidState("the tenant has not requested an alternative") // nolint:wrapcheck
	}

	if req.PropertyID == booking.PropertyID {
		return res, failure.BadRequestFromString("the alternative must be a different property") // nolint:wrapcheck
	}

	if _, err = time.Parse(viewingModel.ScheduleLayout, req.Date+" "+req.Time); err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	property, err := s.propertyRepo.Get(ctx, shared.FilterByID(req.PropertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("property_id", req.PropertyID).Msg("failed to get offered property")

		return res, fmt.Errorf("failed to get offered property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound("offered property not found") // nolint:wrapcheck
	}

	if property.HunterID != user {
		return res, failure.Forbidden("you can only offer your own property") // nolint:wrapcheck
	}

	now := timezone.Now()

	proposedDates, err := json.Marshal([]string{req.Date + " " + req.Time})
	if err != nil {
		return res, fmt.Errorf("failed to encode proposed dates: %w", err)
	}

	viewingRequest := viewingModel.ViewingRequest{
		ID:            uuid.NewString(),
		PropertyID:    req.PropertyID,
		TenantID:      booking.TenantID,
		HunterID:      user,
		Package:       viewingModel.PackageStandard,
		ProposedDates: string(proposedDates),
		Message:       req.Message,
		Status:        viewingModel.StatusAccepted,
		PaymentStatus: viewingModel.PaymentUnpaid,
		InvoiceAmount: booking.Amount,
		InvoiceStatus: viewingModel.InvoicePending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	offer := model.AlternativeOffer{
		ID:               uuid.NewString(),
		BookingID:        bookingID,
		PropertyID:       req.PropertyID,
		ViewingRequestID: viewingRequest.ID,
		Message:          req.Message,
		Status:           model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.viewingRepo.InsertTx(ctx, tx, viewingRequest); err != nil {
			return fmt.Errorf("failed to create viewing request for offer: %w", err)
		}

		if err := s.repo.InsertTx(ctx, tx, offer); err != nil {
			return fmt.Errorf("failed to create alternative offer: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to offer alternative")

		return res, err
	}

	s.notifier.Notify(ctx, booking.TenantID,
		"Alternative offered",
		fmt.Sprintf("The hunter offered an alternative property: %s.", property.Title),
		notificationModel.TypeAlternativeOffered, bookingID)

	res.FromModel(offer)

	return res, nil
}

// Accept carries the original escrow over to a new booking on the offered
// property. The old booking completes without an earnings line, its lock is
// freed and the new property's lock is claimed, all in one transaction.
func (s *serviceImpl) Accept(ctx context.Context, bookingID string) (res bookingDto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Accept")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user != booking.TenantID {
		return res, failure.Forbidden("only the tenant can accept an alternative offer") // nolint:wrapcheck
	}

	offer, err := s.getPendingOffer(ctx, bookingID)
	if err != nil {
		return res, err
	}

	viewingRequest, err := s.viewingRepo.Get(ctx, shared.FilterByID(offer.ViewingRequestID, viewingModel.FieldID, viewingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("viewing_request_id", offer.ViewingRequestID).Msg("failed to get offer viewing request")

		return res, fmt.Errorf("failed to get offer viewing request: %w", err)
	}

	scheduledDate, scheduledTime, err := viewingModel.ParseFirstSchedule(viewingRequest.ProposedDates)
	if err != nil {
		log.Error().Err(err).Str("viewing_request_id", viewingRequest.ID).Msg("failed to parse offered schedule")

		return res, fmt.Errorf("failed to parse offered schedule: %w", err)
	}

	now := timezone.Now()
	startAt := escrow.CombineDateTime(scheduledDate, scheduledTime)

	newBooking := bookingModel.Booking{
		ID:               uuid.NewString(),
		ViewingRequestID: viewingRequest.ID,
		PropertyID:       offer.PropertyID,
		TenantID:         booking.TenantID,
		HunterID:         booking.HunterID,
		Amount:           booking.Amount,
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
		if err := s.answerOfferTx(ctx, tx, offer.ID, model.StatusAccepted, user, now); err != nil {
			return err
		}

		rows, err := s.bookingRepo.UpdateCountTx(ctx, tx, map[string]any{
			bookingModel.FieldStatus:        bookingModel.StatusCompleted,
			bookingModel.FieldPaymentStatus: bookingModel.PaymentReleased,
			bookingModel.FieldCompletedAt:   now,
			constant.FieldModifiedAt:        now,
			constant.FieldModifiedBy:        user,
		}, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: bookingModel.FieldID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: bookingModel.TableName, ArgName: "guard_booking_id"},
				gDto.Filter{Field: bookingModel.FieldPaymentStatus, Operator: gDto.FilterOperatorEq, Value: bookingModel.PaymentEscrow, Table: bookingModel.TableName, ArgName: "guard_payment_status"},
				gDto.Filter{Field: bookingModel.FieldStatus, Operator: gDto.FilterOperatorEq, Value: bookingModel.StatusConfirmed, Table: bookingModel.TableName, ArgName: "guard_status"},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to close original booking: %w", err)
		}

		if rows == 0 {
			return failure.InvalidState("the original booking's escrow is no longer transferable") // nolint:wrapcheck
		}

		if err := s.viewingRepo.UpdateTx(ctx, tx, map[string]any{
			viewingModel.FieldPaymentStatus: viewingModel.PaymentEscrow,
			viewingModel.FieldInvoiceStatus: viewingModel.InvoicePaid,
			constant.FieldModifiedAt:        now,
			constant.FieldModifiedBy:        user,
		}, shared.FilterByID(viewingRequest.ID, viewingModel.FieldID, viewingModel.TableName)); err != nil {
			return fmt.Errorf("failed to mark viewing request paid: %w", err)
		}

		if err := s.bookingRepo.InsertTx(ctx, tx, newBooking); err != nil {
			return fmt.Errorf("failed to create replacement booking: %w", err)
		}

		if _, err := s.propertyRepo.ReleaseLockTx(ctx, tx, booking.PropertyID, booking.ID); err != nil {
			return fmt.Errorf("failed to release original property lock: %w", err)
		}

		claimed, err := s.propertyRepo.ClaimLockTx(ctx, tx, offer.PropertyID, newBooking.ID)
		if err != nil {
			return fmt.Errorf("failed to claim offered property lock: %w", err)
		}

		if !claimed {
			return failure.Conflict("the offered property is already locked by another booking") // nolint:wrapcheck
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to accept alternative offer")

		return res, err
	}

	s.invalidateBookingCaches(ctx)

	s.notifier.Notify(ctx, booking.HunterID,
		"Alternative accepted",
		"The tenant accepted your alternative offer. A new booking has been scheduled.",
		notificationModel.TypeAlternativeResponse, newBooking.ID)

	res.FromModel(newBooking)

	return res, nil
}

// Decline turns the offer down, cancels the original booking and opens a
// misrepresentation dispute for the escrow still held on it.
func (s *serviceImpl) Decline(ctx context.Context, bookingID string, req dto.DeclineAlternativeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Decline")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user != booking.TenantID {
		return failure.Forbidden("only the tenant can decline an alternative offer") // nolint:wrapcheck
	}

	offer, err := s.getPendingOffer(ctx, bookingID)
	if err != nil {
		return err
	}

	now := timezone.Now()

	description := "The tenant declined the alternative offer after reporting the property as not as described."
	if req.Reason != constant.Empty {
		description = req.Reason
	}

	dispute := disputeModel.Dispute{
		ID:          uuid.NewString(),
		Title:       "Alternative offer declined",
		Description: description,
		Category:    disputeModel.CategoryMisrepresentation,
		ReporterID:  user,
		AgainstID:   booking.HunterID,
		BookingID:   bookingID,
		PropertyID:  booking.PropertyID,
		Status:      disputeModel.StatusOpen,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.answerOfferTx(ctx, tx, offer.ID, model.StatusDeclined, user, now); err != nil {
			return err
		}

		rows, err := s.bookingRepo.UpdateCountTx(ctx, tx, map[string]any{
			bookingModel.FieldStatus:          bookingModel.StatusCancelled,
			bookingModel.FieldCancelledReason: "alternative offer declined",
			constant.FieldModifiedAt:          now,
			constant.FieldModifiedBy:          user,
		}, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: bookingModel.FieldID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: bookingModel.TableName, ArgName: "guard_booking_id"},
				gDto.Filter{Field: bookingModel.FieldStatus, Operator: gDto.FilterOperatorEq, Value: bookingModel.StatusConfirmed, Table: bookingModel.TableName, ArgName: "guard_status"},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to cancel original booking: %w", err)
		}

		if rows == 0 {
			return failure.InvalidState("the original booking is no longer confirmed") // nolint:wrapcheck
		}

		if err := s.disputeRepo.InsertTx(ctx, tx, dispute); err != nil {
			return fmt.Errorf("failed to open misrepresentation dispute: %w", err)
		}

		if _, err := s.propertyRepo.ReleaseLockTx(ctx, tx, booking.PropertyID, booking.ID); err != nil {
			return fmt.Errorf("failed to release property lock: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to decline alternative offer")

		return err
	}

	s.invalidateBookingCaches(ctx)

	s.notifier.Notify(ctx, booking.HunterID,
		"Alternative declined",
		"The tenant declined your alternative offer. A dispute has been opened over the held payment.",
		notificationModel.TypeAlternativeResponse, bookingID)

	return nil
}

func (s *serviceImpl) answerOfferTx(ctx context.Context, tx *sqlx.Tx, offerID, status, actor string, now time.Time) error {
	rows, err := s.repo.UpdateCountTx(ctx, tx, map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actor,
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: offerID, Table: model.TableName, ArgName: "guard_offer_id"},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName, ArgName: "guard_offer_status"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to answer alternative offer: %w", err)
	}

	if rows == 0 {
		return failure.InvalidState("alternative offer has already been answered") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) getBooking(ctx context.Context, bookingID string) (bookingModel.Booking, error) {
	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) getPendingOffer(ctx context.Context, bookingID string) (model.AlternativeOffer, error) {
	offer, err := s.repo.Get(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get alternative offer")

		return offer, fmt.Errorf("failed to get alternative offer: %w", err)
	}

	if offer.ID == constant.Empty {
		return offer, failure.NotFound("no pending alternative offer for this booking") // nolint:wrapcheck
	}

	return offer, nil
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheBookingPrefix)
	}()
}
