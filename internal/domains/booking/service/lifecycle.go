package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"haunters/internal/domains/booking/model"
	"haunters/internal/domains/booking/model/dto"
	disputeModel "haunters/internal/domains/dispute/model"
	notificationModel "haunters/internal/domains/notification/model"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/failure"
	gModel "haunters/shared/model"
	"haunters/shared/timezone"
)

// SubmitOutcome records how the viewing went, from the tenant's side. A
// satisfied outcome releases the escrow; a reported issue opens a dispute and
// leaves the booking as it is; an alternative request arms the alternative
// offer flow.
func (s *serviceImpl) SubmitOutcome(ctx context.Context, bookingID string, req dto.SubmitOutcomeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SubmitOutcome")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user != booking.TenantID {
		return failure.Forbidden("only the tenant can submit a viewing outcome") // nolint:wrapcheck
	}

	if booking.Status != model.StatusConfirmed {
		return failure.InvalidState("outcome can only be submitted for a confirmed booking") // nolint:wrapcheck
	}

	if !booking.PhysicalConfirmed {
		return failure.InvalidState("outcome cannot be submitted before the meeting is confirmed") // nolint:wrapcheck
	}

	now := timezone.Now()

	switch req.Outcome {
	case model.OutcomeCompletedSatisfied:
		extra := map[string]any{
			model.FieldViewingOutcome:     req.Outcome,
			model.FieldOutcomeSubmittedAt: now,
			model.FieldTenantConfirmed:    true,
			model.FieldActualEndTime:      now,
		}
		if req.Feedback != constant.Empty {
			extra[model.FieldTenantFeedback] = req.Feedback
		}

		err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
			return s.ReleaseEscrowTx(ctx, tx, booking, extra, user)
		})
		if err != nil {
			log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to complete booking from outcome")

			return err
		}

		s.notifier.Notify(ctx, booking.HunterID,
			"Payment released",
			"The tenant confirmed the viewing. Your payment has been released.",
			notificationModel.TypePaymentReleased, bookingID)
	case model.OutcomeIssueReported:
		mod := map[string]any{
			model.FieldViewingOutcome:     req.Outcome,
			model.FieldOutcomeSubmittedAt: now,
			constant.FieldModifiedAt:      now,
			constant.FieldModifiedBy:      user,
		}
		if req.Feedback != constant.Empty {
			mod[model.FieldTenantFeedback] = req.Feedback
		}
		if req.Evidence != constant.Empty {
			mod[model.FieldIssueEvidence] = req.Evidence
		}

		err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
			rows, err := s.repo.UpdateCountTx(ctx, tx, mod, confirmedBookingFilter(bookingID))
			if err != nil {
				return fmt.Errorf("failed to record viewing issue: %w", err)
			}

			if rows == 0 {
				return failure.InvalidState("outcome can only be submitted for a confirmed booking") // nolint:wrapcheck
			}

			return s.disputeRepo.InsertTx(ctx, tx, s.newDispute(booking, disputeModel.CategoryViewingIssue,
				"Viewing issue reported", req.Feedback, user, booking.HunterID, req.Evidence, now))
		})
		if err != nil {
			log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to report viewing issue")

			return err
		}

		s.notifier.Notify(ctx, booking.HunterID,
			"Issue reported",
			"The tenant reported an issue with the viewing. A dispute has been opened.",
			notificationModel.TypeIssueReported, bookingID)
	case model.OutcomeAlternativeRequested:
		mod := map[string]any{
			model.FieldViewingOutcome:     req.Outcome,
			model.FieldOutcomeSubmittedAt: now,
			constant.FieldModifiedAt:      now,
			constant.FieldModifiedBy:      user,
		}
		if req.Feedback != constant.Empty {
			mod[model.FieldTenantFeedback] = req.Feedback
		}

		err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
			rows, err := s.repo.UpdateCountTx(ctx, tx, mod, confirmedBookingFilter(bookingID))
			if err != nil {
				return fmt.Errorf("failed to record alternative request: %w", err)
			}

			if rows == 0 {
				return failure.InvalidState("outcome can only be submitted for a confirmed booking") // nolint:wrapcheck
			}

			return nil
		})
		if err != nil {
			log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to record alternative request")

			return err
		}

		s.notifier.Notify(ctx, booking.HunterID,
			"Alternative requested",
			"The tenant was not satisfied with the property and asked for an alternative.",
			notificationModel.TypeAlternativeRequested, bookingID)
	default:
		return failure.BadRequestFromString("unknown viewing outcome") // nolint:wrapcheck
	}

	s.invalidateBookingCaches(ctx, bookingID)

	return nil
}

// ConfirmCompleted is the legacy completion path kept for older clients. It
// releases the escrow the same way a satisfied outcome does, with an
// idempotency guard on tenant_confirmed.
func (s *serviceImpl) ConfirmCompleted(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmCompleted")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user != booking.TenantID {
		return failure.Forbidden("only the tenant can confirm completion") // nolint:wrapcheck
	}

	if booking.TenantConfirmed {
		return failure.Conflict("viewing has already been confirmed") // nolint:wrapcheck
	}

	if booking.Status != model.StatusConfirmed {
		return failure.InvalidState("only a confirmed booking can be completed") // nolint:wrapcheck
	}

	now := timezone.Now()

	err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		return s.ReleaseEscrowTx(ctx, tx, booking, map[string]any{
			model.FieldTenantConfirmed: true,
			model.FieldActualEndTime:   now,
		}, user)
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to confirm completion")

		return err
	}

	s.invalidateBookingCaches(ctx, bookingID)

	s.notifier.Notify(ctx, booking.HunterID,
		"Payment released",
		"The tenant confirmed the viewing. Your payment has been released.",
		notificationModel.TypePaymentReleased, bookingID)

	return nil
}

// Cancel voids a confirmed booking. Either party or an admin may cancel; the
// escrow is not refunded here, refunds only happen through dispute resolution.
func (s *serviceImpl) Cancel(ctx context.Context, bookingID string, req dto.CancelBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if !booking.IsParty(user) && role != constant.RoleAdmin {
		return failure.Forbidden("you are not allowed to cancel this booking") // nolint:wrapcheck
	}

	now := timezone.Now()

	err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		rows, err := s.repo.UpdateCountTx(ctx, tx, map[string]any{
			model.FieldStatus:          model.StatusCancelled,
			model.FieldCancelledReason: req.Reason,
			constant.FieldModifiedAt:   now,
			constant.FieldModifiedBy:   user,
		}, confirmedBookingFilter(bookingID))
		if err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		if rows == 0 {
			return failure.InvalidState("only a confirmed booking can be cancelled") // nolint:wrapcheck
		}

		if _, err = s.propertyRepo.ReleaseLockTx(ctx, tx, booking.PropertyID, booking.ID); err != nil {
			return fmt.Errorf("failed to release property lock: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to cancel booking")

		return err
	}

	s.invalidateBookingCaches(ctx, bookingID)

	message := fmt.Sprintf("The booking was cancelled: %s", req.Reason)

	if booking.IsParty(user) {
		s.notifier.Notify(ctx, booking.Counterparty(user), "Booking cancelled", message,
			notificationModel.TypeBookingCancelled, bookingID)
	} else {
		s.notifier.Notify(ctx, booking.TenantID, "Booking cancelled", message,
			notificationModel.TypeBookingCancelled, bookingID)
		s.notifier.Notify(ctx, booking.HunterID, "Booking cancelled", message,
			notificationModel.TypeBookingCancelled, bookingID)
	}

	return nil
}

// ReportNoShow cancels the booking and opens a no-show dispute against the
// party that failed to appear.
func (s *serviceImpl) ReportNoShow(ctx context.Context, bookingID string, req dto.ReportNoShowRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReportNoShow")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, user, err := s.getBookingForParty(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.Status != model.StatusConfirmed {
		return failure.InvalidState("a no-show can only be reported for a confirmed booking") // nolint:wrapcheck
	}

	category := disputeModel.CategoryNoShowHunter
	against := booking.HunterID

	if user == booking.HunterID {
		category = disputeModel.CategoryNoShowTenant
		against = booking.TenantID
	}

	now := timezone.Now()

	err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		rows, err := s.repo.UpdateCountTx(ctx, tx, map[string]any{
			model.FieldStatus:          model.StatusCancelled,
			model.FieldViewingOutcome:  model.OutcomeIssueReported,
			model.FieldCancelledReason: "no-show reported",
			constant.FieldModifiedAt:   now,
			constant.FieldModifiedBy:   user,
		}, confirmedBookingFilter(bookingID))
		if err != nil {
			return fmt.Errorf("failed to cancel booking for no-show: %w", err)
		}

		if rows == 0 {
			return failure.InvalidState("a no-show can only be reported for a confirmed booking") // nolint:wrapcheck
		}

		if err = s.disputeRepo.InsertTx(ctx, tx, s.newDispute(booking, category,
			"No-show reported", req.Description, user, against, constant.Empty, now)); err != nil {
			return fmt.Errorf("failed to open no-show dispute: %w", err)
		}

		if _, err = s.propertyRepo.ReleaseLockTx(ctx, tx, booking.PropertyID, booking.ID); err != nil {
			return fmt.Errorf("failed to release property lock: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to report no-show")

		return err
	}

	s.invalidateBookingCaches(ctx, bookingID)

	s.notifier.Notify(ctx, booking.Counterparty(user),
		"No-show reported",
		"The other party reported a no-show. The booking was cancelled and a dispute opened.",
		notificationModel.TypeNoShowReported, bookingID)

	return nil
}

func (s *serviceImpl) newDispute(booking model.Booking, category, title, description, reporter, against, evidence string, now time.Time) disputeModel.Dispute {
	dispute := disputeModel.Dispute{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Category:    category,
		ReporterID:  reporter,
		AgainstID:   against,
		BookingID:   booking.ID,
		PropertyID:  booking.PropertyID,
		Status:      disputeModel.StatusOpen,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  reporter,
			ModifiedBy: reporter,
		},
	}

	if evidence != constant.Empty {
		dispute.EvidenceKeys = &evidence
	}

	return dispute
}

func confirmedBookingFilter(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: model.TableName, ArgName: "guard_booking_id"},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusConfirmed, Table: model.TableName, ArgName: "guard_status"},
		},
	}
}
