package service

import (
	"context"
	"fmt"
	"maps"
	"net/http"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"haunters/internal/domains/booking/model"
	earningsModel "haunters/internal/domains/earnings/model"
	notificationModel "haunters/internal/domains/notification/model"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/escrow"
	"haunters/shared/failure"
	gModel "haunters/shared/model"
	"haunters/shared/timezone"
)

// ReleaseEscrowTx is the single release path for every way a booking's escrow
// can be paid out: tenant outcome, legacy tenant confirm, the auto-release
// sweep and dispute resolution all go through it. Inside the given transaction
// it completes the booking guarded on payment still being in escrow, writes the
// hunter's earnings line and frees the property lock. The unique index on
// hunter_earnings(booking_id) backstops the guard.
func (s *serviceImpl) ReleaseEscrowTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking, extra map[string]any, actor string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReleaseEscrowTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()

	mod := map[string]any{
		model.FieldStatus:        model.StatusCompleted,
		model.FieldPaymentStatus: model.PaymentReleased,
		model.FieldCompletedAt:   now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actor,
	}
	maps.Copy(mod, extra)

	rows, err := s.repo.UpdateCountTx(ctx, tx, mod, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: booking.ID, Table: model.TableName, ArgName: "guard_booking_id"},
			gDto.Filter{Field: model.FieldPaymentStatus, Operator: gDto.FilterOperatorEq, Value: model.PaymentEscrow, Table: model.TableName, ArgName: "guard_payment_status"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to release escrow: %w", err)
	}

	if rows == 0 {
		return failure.InvalidState("payment is not in escrow") // nolint:wrapcheck
	}

	split := escrow.SplitCommission(s.cfg, booking.Amount)

	err = s.earningsRepo.InsertTx(ctx, tx, earningsModel.HunterEarnings{
		ID:        uuid.NewString(),
		HunterID:  booking.HunterID,
		BookingID: booking.ID,
		Amount:    split.HunterShare,
		Status:    earningsModel.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to record hunter earnings: %w", err)
	}

	if _, err = s.propertyRepo.ReleaseLockTx(ctx, tx, booking.PropertyID, booking.ID); err != nil {
		return fmt.Errorf("failed to release property lock: %w", err)
	}

	return nil
}

// RefundEscrowTx cancels the booking and refunds its escrow, guarded the same
// way as release. No earnings line is written.
func (s *serviceImpl) RefundEscrowTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking, actor string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefundEscrowTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()

	rows, err := s.repo.UpdateCountTx(ctx, tx, map[string]any{
		model.FieldStatus:          model.StatusCancelled,
		model.FieldPaymentStatus:   model.PaymentRefunded,
		model.FieldCancelledReason: "payment refunded after dispute resolution",
		constant.FieldModifiedAt:   now,
		constant.FieldModifiedBy:   actor,
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: booking.ID, Table: model.TableName, ArgName: "guard_booking_id"},
			gDto.Filter{Field: model.FieldPaymentStatus, Operator: gDto.FilterOperatorEq, Value: model.PaymentEscrow, Table: model.TableName, ArgName: "guard_payment_status"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to refund escrow: %w", err)
	}

	if rows == 0 {
		return failure.InvalidState("payment is not in escrow") // nolint:wrapcheck
	}

	if _, err = s.propertyRepo.ReleaseLockTx(ctx, tx, booking.PropertyID, booking.ID); err != nil {
		return fmt.Errorf("failed to release property lock: %w", err)
	}

	return nil
}

// SweepAutoRelease pays out every booking whose auto-release deadline passed
// without the tenant confirming. Each booking gets its own transaction so one
// bad row never stalls the rest of the sweep.
func (s *serviceImpl) SweepAutoRelease(ctx context.Context) (released int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".SweepAutoRelease")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()

	overdue, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusConfirmed, Table: model.TableName},
			gDto.Filter{Field: model.FieldPaymentStatus, Operator: gDto.FilterOperatorEq, Value: model.PaymentEscrow, Table: model.TableName},
			gDto.Filter{Field: model.FieldTenantConfirmed, Operator: gDto.FilterOperatorEq, Value: false, Table: model.TableName},
			gDto.Filter{Field: model.FieldAutoReleaseAt, Operator: gDto.FilterOperatorLessEq, Value: now, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list overdue bookings")

		return 0, fmt.Errorf("failed to list overdue bookings: %w", err)
	}

	for _, booking := range overdue {
		err := s.txer.WithTransaction(ctx, func(tx *sqlx.Tx) error {
			return s.ReleaseEscrowTx(ctx, tx, booking, map[string]any{
				model.FieldActualEndTime: now,
			}, "system")
		})
		if err != nil {
			// A racing manual release makes this a no-op, not a failure.
			if failure.GetCode(err) == http.StatusUnprocessableEntity {
				log.Info().Str("booking_id", booking.ID).Msg("booking released before sweep reached it")
			} else {
				log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to auto-release booking")
			}

			continue
		}

		released++

		s.invalidateBookingCaches(ctx, booking.ID)

		s.notifier.Notify(ctx, booking.HunterID,
			"Payment released",
			"The escrow payment for your viewing was released automatically.",
			notificationModel.TypePaymentReleased, booking.ID)
		s.notifier.Notify(ctx, booking.TenantID,
			"Viewing completed",
			"Your viewing was marked completed and the payment was released to the hunter.",
			notificationModel.TypePaymentReleased, booking.ID)
	}

	if released > 0 {
		log.Info().Int("released", released).Msg("auto-release sweep finished")
	}

	return released, nil
}

// SendDailyReminders notifies both parties of every booking scheduled today.
func (s *serviceImpl) SendDailyReminders(ctx context.Context) (sent int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".SendDailyReminders")
	defer scope.End()
	defer scope.TraceIfError(err)

	today := timezone.Now().Format(constant.DateOnlyFormat)

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusConfirmed, Table: model.TableName},
			gDto.Filter{Field: model.FieldScheduledDate, Operator: gDto.FilterOperatorEq, Value: today, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list today's bookings")

		return 0, fmt.Errorf("failed to list today's bookings: %w", err)
	}

	for _, booking := range bookings {
		message := fmt.Sprintf("You have a property viewing today at %s.", booking.ScheduledTime.Format(constant.TimeOnlyFormat))

		s.notifier.Notify(ctx, booking.TenantID, "Viewing reminder", message, notificationModel.TypeBookingReminder, booking.ID)
		s.notifier.Notify(ctx, booking.HunterID, "Viewing reminder", message, notificationModel.TypeBookingReminder, booking.ID)

		sent++
	}

	return sent, nil
}

// ExpireStale is the daily expiration hook. No expiration rule is defined yet,
// so it only reports that it ran.
func (s *serviceImpl) ExpireStale(ctx context.Context) error {
	_, scope := s.otel.NewScope(ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".ExpireStale")
	defer scope.End()

	log.Debug().Msg("booking expiration check ran; no expiration rule is defined")

	return nil
}
