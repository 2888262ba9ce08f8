package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"haunters/internal/domains/booking/model"
	"haunters/internal/domains/booking/model/dto"
	notificationModel "haunters/internal/domains/notification/model"
	"haunters/shared"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/failure"
	"haunters/shared/timezone"
)

// ShareMeetingPoint lets the hunter propose (or re-propose) where the viewing
// starts. Re-sharing overwrites the previous proposal and resets the tenant's
// viewed marker.
func (s *serviceImpl) ShareMeetingPoint(ctx context.Context, bookingID string, req dto.ShareMeetingPointRequest) (res dto.MeetingPointResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ShareMeetingPoint")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user != booking.HunterID {
		return res, failure.Forbidden("only the hunter can share a meeting point") // nolint:wrapcheck
	}

	if booking.Status != model.StatusConfirmed {
		return res, failure.InvalidState("meeting point can only be shared for a confirmed booking") // nolint:wrapcheck
	}

	existing, err := s.meetingPointRepo.Get(ctx, shared.FilterByID(bookingID, model.FieldMeetingPointBookingID, model.MeetingPointTableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get meeting point")

		return res, fmt.Errorf("failed to get meeting point: %w", err)
	}

	if existing.ID == constant.Empty {
		point := req.ToModel(bookingID, user)

		if err = s.meetingPointRepo.Insert(ctx, point); err != nil {
			log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to share meeting point")

			return res, fmt.Errorf("failed to share meeting point: %w", err)
		}

		res.FromModel(point)
	} else {
		err = s.meetingPointRepo.Update(ctx, map[string]any{
			model.FieldMeetingPointType:     req.Type,
			model.FieldMeetingPointLocation: req.Location,
			model.FieldMeetingPointStatus:   model.MeetingPointPending,
			model.FieldMeetingPointSharedBy: user,
			model.FieldTenantViewed:         false,
			model.FieldTenantViewedAt:       nil,
			constant.FieldModifiedAt:        timezone.Now(),
			constant.FieldModifiedBy:        user,
		}, shared.FilterByID(existing.ID, model.FieldID, model.MeetingPointTableName))
		if err != nil {
			log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to update meeting point")

			return res, fmt.Errorf("failed to update meeting point: %w", err)
		}

		updated, err := s.meetingPointRepo.Get(ctx, shared.FilterByID(existing.ID, model.FieldID, model.MeetingPointTableName))
		if err != nil {
			log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to reload meeting point")

			return res, fmt.Errorf("failed to reload meeting point: %w", err)
		}

		res.FromModel(updated)
	}

	s.notifier.Notify(ctx, booking.TenantID,
		"Meeting point shared",
		"The hunter shared a meeting point for your upcoming viewing.",
		notificationModel.TypeMeetingPointShared, bookingID)

	return res, nil
}

// RespondMeetingPoint records the tenant's accept or reject of the shared
// meeting point and marks it viewed.
func (s *serviceImpl) RespondMeetingPoint(ctx context.Context, bookingID string, req dto.RespondMeetingPointRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RespondMeetingPoint")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user != booking.TenantID {
		return failure.Forbidden("only the tenant can respond to a meeting point") // nolint:wrapcheck
	}

	point, err := s.meetingPointRepo.Get(ctx, shared.FilterByID(bookingID, model.FieldMeetingPointBookingID, model.MeetingPointTableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get meeting point")

		return fmt.Errorf("failed to get meeting point: %w", err)
	}

	if point.ID == constant.Empty {
		return failure.NotFound("no meeting point has been shared for this booking") // nolint:wrapcheck
	}

	status := model.MeetingPointRejected
	message := "The tenant rejected the proposed meeting point."

	if req.Accept {
		status = model.MeetingPointAccepted
		message = "The tenant accepted the proposed meeting point."
	} else if req.Reason != constant.Empty {
		message = fmt.Sprintf("The tenant rejected the proposed meeting point: %s", req.Reason)
	}

	err = s.meetingPointRepo.Update(ctx, map[string]any{
		model.FieldMeetingPointStatus: status,
		model.FieldTenantViewed:       true,
		model.FieldTenantViewedAt:     timezone.Now(),
		constant.FieldModifiedAt:      timezone.Now(),
		constant.FieldModifiedBy:      user,
	}, shared.FilterByID(point.ID, model.FieldID, model.MeetingPointTableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to respond to meeting point")

		return fmt.Errorf("failed to respond to meeting point: %w", err)
	}

	s.notifier.Notify(ctx, booking.HunterID,
		"Meeting point response", message,
		notificationModel.TypeMeetingPointResponse, bookingID)

	return nil
}

// ConfirmMeeting records the caller's own "we met" flag. The booking moves to
// physically-confirmed in the same transaction the moment both flags are true;
// the conditional update on the physical flag makes sure only one of two racing
// confirmations sets actual_start_time.
func (s *serviceImpl) ConfirmMeeting(ctx context.Context, bookingID string) (res dto.ConfirmMeetingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmMeeting")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, user, err := s.getBookingForParty(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.Status != model.StatusConfirmed {
		return res, failure.InvalidState("meeting can only be confirmed for a confirmed booking") // nolint:wrapcheck
	}

	ownFlag := model.FieldTenantMetConfirmed
	if user == booking.HunterID {
		ownFlag = model.FieldHunterMetConfirmed
	}

	now := timezone.Now()
	transitioned := false

	err = s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		rows, err := s.repo.UpdateCountTx(ctx, tx, map[string]any{
			ownFlag:                  true,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: model.TableName, ArgName: "guard_booking_id"},
				gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusConfirmed, Table: model.TableName, ArgName: "guard_status"},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to set meeting flag: %w", err)
		}

		if rows == 0 {
			return failure.InvalidState("meeting can only be confirmed for a confirmed booking") // nolint:wrapcheck
		}

		rows, err = s.repo.UpdateCountTx(ctx, tx, map[string]any{
			model.FieldPhysicalConfirmed: true,
			model.FieldActualStartTime:   now,
			constant.FieldModifiedAt:     now,
			constant.FieldModifiedBy:     user,
		}, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: model.TableName, ArgName: "guard_booking_id"},
				gDto.Filter{Field: model.FieldHunterMetConfirmed, Operator: gDto.FilterOperatorEq, Value: true, Table: model.TableName, ArgName: "guard_hunter_met"},
				gDto.Filter{Field: model.FieldTenantMetConfirmed, Operator: gDto.FilterOperatorEq, Value: true, Table: model.TableName, ArgName: "guard_tenant_met"},
				gDto.Filter{Field: model.FieldPhysicalConfirmed, Operator: gDto.FilterOperatorEq, Value: false, Table: model.TableName, ArgName: "guard_physical"},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to confirm physical meeting: %w", err)
		}

		transitioned = rows > 0

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to confirm meeting")

		return res, err
	}

	s.invalidateBookingCaches(ctx, bookingID)

	if transitioned {
		s.notifier.Notify(ctx, booking.TenantID,
			"Meeting confirmed",
			"Both parties confirmed the meeting. The viewing has started.",
			notificationModel.TypeMeetingConfirmed, bookingID)
		s.notifier.Notify(ctx, booking.HunterID,
			"Meeting confirmed",
			"Both parties confirmed the meeting. The viewing has started.",
			notificationModel.TypeMeetingConfirmed, bookingID)
	} else {
		s.notifier.Notify(ctx, booking.Counterparty(user),
			"Arrival confirmed",
			"The other party confirmed they arrived at the meeting point.",
			notificationModel.TypeMeetingConfirmed, bookingID)
	}

	current, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	res.FromModel(current)

	return res, nil
}
