package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"haunters/config"
	"haunters/infras/otel/mocks"
	pgMocks "haunters/infras/postgres/mocks"
	bookingMocks "haunters/internal/domains/booking/mocks"
	"haunters/internal/domains/booking/model"
	"haunters/internal/domains/booking/model/dto"
	disputeMocks "haunters/internal/domains/dispute/mocks"
	disputeModel "haunters/internal/domains/dispute/model"
	earningsMocks "haunters/internal/domains/earnings/mocks"
	earningsModel "haunters/internal/domains/earnings/model"
	notificationMocks "haunters/internal/domains/notification/mocks"
	propertyMocks "haunters/internal/domains/property/mocks"
	cacheMocks "haunters/shared/cache/mocks"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/failure"
	gModel "haunters/shared/model"
	"haunters/shared/timezone"

	"haunters/internal/domains/booking/service"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Escrow.HunterShare = 0.85
	cfg.Escrow.ViewingDurationMin = 60
	cfg.Escrow.ReleaseGraceMin = 10
	cfg.Cache.TTL = 60

	return cfg
}

func confirmedBooking() model.Booking {
	return model.Booking{
		ID:               "booking-1",
		ViewingRequestID: "viewing-1",
		PropertyID:       "property-1",
		TenantID:         "tenant-1",
		HunterID:         "hunter-1",
		Amount:           2000,
		PaymentStatus:    model.PaymentEscrow,
		Status:           model.StatusConfirmed,
		ScheduledDate:    timezone.Now(),
		ScheduledTime:    timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "tenant-1",
			ModifiedBy: "tenant-1",
		},
	}
}

func ctxWithUser(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func ctxWithRole(userID, role string) context.Context {
	return context.WithValue(ctxWithUser(userID), constant.ContextKeyUserRole, role)
}

func TestBookingService_ShareMeetingPoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockMeetingPoint := bookingMocks.NewMockMeetingPoint(ctrl)
	mockProperty := propertyMocks.NewMockProperty(ctrl)
	mockEarnings := earningsMocks.NewMockEarnings(ctrl)
	mockDispute := disputeMocks.NewMockDispute(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockMeetingPoint, mockProperty, mockEarnings, mockDispute,
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	existingPoint := model.MeetingPoint{
		ID:        "point-1",
		BookingID: "booking-1",
		Type:      model.MeetingPointTypeLandmark,
		Location:  "Coffee shop across the street",
		Status:    model.MeetingPointPending,
		SharedBy:  "hunter-1",
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.ShareMeetingPointRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "first share inserts a new meeting point",
			ctx:  ctxWithUser("hunter-1"),
			req: dto.ShareMeetingPointRequest{
				Type:     model.MeetingPointTypeProperty,
				Location: "At the property entrance",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				mockMeetingPoint.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.MeetingPoint{}, nil)

				mockMeetingPoint.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "tenant-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name: "re-share overwrites the previous proposal",
			ctx:  ctxWithUser("hunter-1"),
			req: dto.ShareMeetingPointRequest{
				Type:     model.MeetingPointTypeLandmark,
				Location: "Coffee shop across the street",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				mockMeetingPoint.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingPoint, nil)

				mockMeetingPoint.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockMeetingPoint.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existingPoint, nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "tenant-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name: "tenant cannot share a meeting point",
			ctx:  ctxWithUser("tenant-1"),
			req: dto.ShareMeetingPointRequest{
				Type:     model.MeetingPointTypeProperty,
				Location: "At the property entrance",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "completed booking rejects sharing",
			ctx:  ctxWithUser("hunter-1"),
			req: dto.ShareMeetingPointRequest{
				Type:     model.MeetingPointTypeProperty,
				Location: "At the property entrance",
			},
			setupMock: func() {
				booking := confirmedBooking()
				booking.Status = model.StatusCompleted

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown booking",
			ctx:  ctxWithUser("hunter-1"),
			req: dto.ShareMeetingPointRequest{
				Type:     model.MeetingPointTypeProperty,
				Location: "At the property entrance",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.ShareMeetingPoint(tt.ctx, "booking-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "booking-1", res.BookingID)
			}
		})
	}
}

func TestBookingService_RespondMeetingPoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockMeetingPoint := bookingMocks.NewMockMeetingPoint(ctrl)
	mockProperty := propertyMocks.NewMockProperty(ctrl)
	mockEarnings := earningsMocks.NewMockEarnings(ctrl)
	mockDispute := disputeMocks.NewMockDispute(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockMeetingPoint, mockProperty, mockEarnings, mockDispute,
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	sharedPoint := model.MeetingPoint{
		ID:        "point-1",
		BookingID: "booking-1",
		Type:      model.MeetingPointTypeProperty,
		Location:  "At the property entrance",
		Status:    model.MeetingPointPending,
		SharedBy:  "hunter-1",
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.RespondMeetingPointRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "tenant accepts the meeting point",
			ctx:  ctxWithUser("tenant-1"),
			req:  dto.RespondMeetingPointRequest{Accept: true},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				mockMeetingPoint.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(sharedPoint, nil)

				mockMeetingPoint.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.MeetingPointAccepted, req[model.FieldMeetingPointStatus])
						assert.Equal(t, true, req[model.FieldTenantViewed])

						return nil
					})

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name: "tenant rejects with a reason",
			ctx:  ctxWithUser("tenant-1"),
			req:  dto.RespondMeetingPointRequest{Accept: false, Reason: "too far from the station"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				mockMeetingPoint.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(sharedPoint, nil)

				mockMeetingPoint.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.MeetingPointRejected, req[model.FieldMeetingPointStatus])

						return nil
					})

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name: "hunter cannot respond",
			ctx:  ctxWithUser("hunter-1"),
			req:  dto.RespondMeetingPointRequest{Accept: true},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "nothing shared yet",
			ctx:  ctxWithUser("tenant-1"),
			req:  dto.RespondMeetingPointRequest{Accept: true},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				mockMeetingPoint.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.MeetingPoint{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.RespondMeetingPoint(tt.ctx, "booking-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_ConfirmMeeting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockMeetingPoint := bookingMocks.NewMockMeetingPoint(ctrl)
	mockProperty := propertyMocks.NewMockProperty(ctrl)
	mockEarnings := earningsMocks.NewMockEarnings(ctrl)
	mockDispute := disputeMocks.NewMockDispute(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockMeetingPoint, mockProperty, mockEarnings, mockDispute,
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "first arrival records the flag without starting the viewing",
			ctx:  ctxWithUser("hunter-1"),
			setupMock: func() {
				booking := confirmedBooking()

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, true, req[model.FieldHunterMetConfirmed])

						return 1, nil
					})

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "tenant-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")

				booking.HunterMetConfirmed = true

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
		},
		{
			name: "second arrival confirms the physical meeting",
			ctx:  ctxWithUser("tenant-1"),
			setupMock: func() {
				booking := confirmedBooking()
				booking.HunterMetConfirmed = true

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, true, req[model.FieldTenantMetConfirmed])

						return 1, nil
					})

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, true, req[model.FieldPhysicalConfirmed])
						assert.NotNil(t, req[model.FieldActualStartTime])

						return 1, nil
					})

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "tenant-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")

				started := timezone.Now()
				booking.TenantMetConfirmed = true
				booking.PhysicalConfirmed = true
				booking.ActualStartTime = &started

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
		},
		{
			name: "booking left the confirmed state mid-flight",
			ctx:  ctxWithUser("tenant-1"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "stranger cannot confirm",
			ctx:  ctxWithUser("someone-else"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.ConfirmMeeting(tt.ctx, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)

				if tt.name == "second arrival confirms the physical meeting" {
					assert.True(t, res.PhysicalMeetingConfirmed)
					assert.NotNil(t, res.ActualStartTime)
				}
			}
		})
	}
}

func TestBookingService_SubmitOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockMeetingPoint := bookingMocks.NewMockMeetingPoint(ctrl)
	mockProperty := propertyMocks.NewMockProperty(ctrl)
	mockEarnings := earningsMocks.NewMockEarnings(ctrl)
	mockDispute := disputeMocks.NewMockDispute(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockMeetingPoint, mockProperty, mockEarnings, mockDispute,
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	metBooking := func() model.Booking {
		booking := confirmedBooking()
		booking.HunterMetConfirmed = true
		booking.TenantMetConfirmed = true
		booking.PhysicalConfirmed = true

		return booking
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.SubmitOutcomeRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "satisfied outcome releases the escrow",
			ctx:  ctxWithUser("tenant-1"),
			req:  dto.SubmitOutcomeRequest{Outcome: model.OutcomeCompletedSatisfied, Feedback: "great place"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(metBooking(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, model.StatusCompleted, req[model.FieldStatus])
						assert.Equal(t, model.PaymentReleased, req[model.FieldPaymentStatus])
						assert.Equal(t, true, req[model.FieldTenantConfirmed])

						return 1, nil
					})

				mockEarnings.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, earning earningsModel.HunterEarnings) error {
						assert.Equal(t, "hunter-1", earning.HunterID)
						assert.Equal(t, "booking-1", earning.BookingID)
						assert.InDelta(t, 1700.0, earning.Amount, 0.001)
						assert.Equal(t, earningsModel.StatusPending, earning.Status)

						return nil
					})

				mockProperty.EXPECT().
					ReleaseLockTx(gomock.Any(), gomock.Any(), "property-1", "booking-1").
					Return(true, nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name: "issue reported opens a dispute",
			ctx:  ctxWithUser("tenant-1"),
			req:  dto.SubmitOutcomeRequest{Outcome: model.OutcomeIssueReported, Feedback: "unit was nothing like the photos"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(metBooking(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockDispute.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, dispute disputeModel.Dispute) error {
						assert.Equal(t, disputeModel.CategoryViewingIssue, dispute.Category)
						assert.Equal(t, "tenant-1", dispute.ReporterID)
						assert.Equal(t, "hunter-1", dispute.AgainstID)
						assert.Equal(t, disputeModel.StatusOpen, dispute.Status)

						return nil
					})

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name: "alternative requested arms the offer flow",
			ctx:  ctxWithUser("tenant-1"),
			req:  dto.SubmitOutcomeRequest{Outcome: model.OutcomeAlternativeRequested},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(metBooking(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name: "outcome before the meeting is confirmed",
			ctx:  ctxWithUser("tenant-1"),
			req:  dto.SubmitOutcomeRequest{Outcome: model.OutcomeCompletedSatisfied},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "hunter cannot submit an outcome",
			ctx:  ctxWithUser("hunter-1"),
			req:  dto.SubmitOutcomeRequest{Outcome: model.OutcomeCompletedSatisfied},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(metBooking(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.SubmitOutcome(tt.ctx, "booking-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_ConfirmCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockMeetingPoint := bookingMocks.NewMockMeetingPoint(ctrl)
	mockProperty := propertyMocks.NewMockProperty(ctrl)
	mockEarnings := earningsMocks.NewMockEarnings(ctrl)
	mockDispute := disputeMocks.NewMockDispute(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockMeetingPoint, mockProperty, mockEarnings, mockDispute,
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "completion releases the escrow",
			ctx:  ctxWithUser("tenant-1"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockEarnings.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockProperty.EXPECT().
					ReleaseLockTx(gomock.Any(), gomock.Any(), "property-1", "booking-1").
					Return(true, nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name: "already confirmed is a conflict",
			ctx:  ctxWithUser("tenant-1"),
			setupMock: func() {
				booking := confirmedBooking()
				booking.TenantConfirmed = true

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "escrow already paid out mid-flight",
			ctx:  ctxWithUser("tenant-1"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "hunter cannot confirm completion",
			ctx:  ctxWithUser("hunter-1"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.ConfirmCompleted(tt.ctx, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockMeetingPoint := bookingMocks.NewMockMeetingPoint(ctrl)
	mockProperty := propertyMocks.NewMockProperty(ctrl)
	mockEarnings := earningsMocks.NewMockEarnings(ctrl)
	mockDispute := disputeMocks.NewMockDispute(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockMeetingPoint, mockProperty, mockEarnings, mockDispute,
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	req := dto.CancelBookingRequest{Reason: "schedule conflict"}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "tenant cancels and the counterparty is notified",
			ctx:  ctxWithUser("tenant-1"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, model.StatusCancelled, req[model.FieldStatus])

						return 1, nil
					})

				mockProperty.EXPECT().
					ReleaseLockTx(gomock.Any(), gomock.Any(), "property-1", "booking-1").
					Return(true, nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name: "admin cancels and both parties are notified",
			ctx:  ctxWithRole("admin-1", constant.RoleAdmin),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockProperty.EXPECT().
					ReleaseLockTx(gomock.Any(), gomock.Any(), "property-1", "booking-1").
					Return(true, nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "tenant-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name: "stranger cannot cancel",
			ctx:  ctxWithUser("someone-else"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "booking already terminal",
			ctx:  ctxWithUser("tenant-1"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Cancel(tt.ctx, "booking-1", req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_ReportNoShow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockMeetingPoint := bookingMocks.NewMockMeetingPoint(ctrl)
	mockProperty := propertyMocks.NewMockProperty(ctrl)
	mockEarnings := earningsMocks.NewMockEarnings(ctrl)
	mockDispute := disputeMocks.NewMockDispute(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockMeetingPoint, mockProperty, mockEarnings, mockDispute,
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	req := dto.ReportNoShowRequest{Description: "waited 30 minutes, nobody came"}

	tests := []struct {
		name         string
		ctx          context.Context
		wantCategory string
		wantAgainst  string
		setupMock    func(category, against string)
		wantErr      bool
		wantCode     int
	}{
		{
			name:         "tenant reports the hunter",
			ctx:          ctxWithUser("tenant-1"),
			wantCategory: disputeModel.CategoryNoShowHunter,
			wantAgainst:  "hunter-1",
			setupMock: func(category, against string) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockDispute.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, dispute disputeModel.Dispute) error {
						assert.Equal(t, category, dispute.Category)
						assert.Equal(t, against, dispute.AgainstID)

						return nil
					})

				mockProperty.EXPECT().
					ReleaseLockTx(gomock.Any(), gomock.Any(), "property-1", "booking-1").
					Return(true, nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name:         "hunter reports the tenant",
			ctx:          ctxWithUser("hunter-1"),
			wantCategory: disputeModel.CategoryNoShowTenant,
			wantAgainst:  "tenant-1",
			setupMock: func(category, against string) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockDispute.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, dispute disputeModel.Dispute) error {
						assert.Equal(t, category, dispute.Category)
						assert.Equal(t, against, dispute.AgainstID)

						return nil
					})

				mockProperty.EXPECT().
					ReleaseLockTx(gomock.Any(), gomock.Any(), "property-1", "booking-1").
					Return(true, nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "tenant-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name: "stranger cannot report",
			ctx:  ctxWithUser("someone-else"),
			setupMock: func(_, _ string) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock(tt.wantCategory, tt.wantAgainst)

			err := svc.ReportNoShow(tt.ctx, "booking-1", req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_SweepAutoRelease(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockMeetingPoint := bookingMocks.NewMockMeetingPoint(ctrl)
	mockProperty := propertyMocks.NewMockProperty(ctrl)
	mockEarnings := earningsMocks.NewMockEarnings(ctrl)
	mockDispute := disputeMocks.NewMockDispute(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockMeetingPoint, mockProperty, mockEarnings, mockDispute,
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	first := confirmedBooking()
	second := confirmedBooking()
	second.ID = "booking-2"
	second.PropertyID = "property-2"

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{first, second}, nil)

	// First booking pays out normally.
	mockRepo.EXPECT().
		UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int64(1), nil)
	mockEarnings.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	mockProperty.EXPECT().
		ReleaseLockTx(gomock.Any(), gomock.Any(), "property-1", "booking-1").
		Return(true, nil)
	mockNotifier.EXPECT().
		Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
	mockNotifier.EXPECT().
		Notify(gomock.Any(), "tenant-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")

	// Second booking was released manually while the sweep ran.
	mockRepo.EXPECT().
		UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int64(0), nil)

	released, err := svc.SweepAutoRelease(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, released)
}

func TestBookingService_SendDailyReminders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockMeetingPoint := bookingMocks.NewMockMeetingPoint(ctrl)
	mockProperty := propertyMocks.NewMockProperty(ctrl)
	mockEarnings := earningsMocks.NewMockEarnings(ctrl)
	mockDispute := disputeMocks.NewMockDispute(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockMeetingPoint, mockProperty, mockEarnings, mockDispute,
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	first := confirmedBooking()
	second := confirmedBooking()
	second.ID = "booking-2"
	second.TenantID = "tenant-2"
	second.HunterID = "hunter-2"

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{first, second}, nil)

	mockNotifier.EXPECT().
		Notify(gomock.Any(), gomock.Any(), "Viewing reminder", gomock.Any(), gomock.Any(), gomock.Any()).
		Times(4)

	sent, err := svc.SendDailyReminders(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, sent)
}

func TestBookingService_GetMine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockMeetingPoint := bookingMocks.NewMockMeetingPoint(ctrl)
	mockProperty := propertyMocks.NewMockProperty(ctrl)
	mockEarnings := earningsMocks.NewMockEarnings(ctrl)
	mockDispute := disputeMocks.NewMockDispute(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockMeetingPoint, mockProperty, mockEarnings, mockDispute,
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, gDto.FilterGroupOperatorOr, filter.Operator)
			assert.Len(t, filter.Filters, 2)

			return []model.Booking{confirmedBooking()}, nil
		})

	res, err := svc.GetMine(ctxWithUser("tenant-1"), gDto.QueryParams{Limit: 10, Page: 1})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Bookings, 1)
	assert.Equal(t, "booking-1", res.Bookings[0].ID)
}
