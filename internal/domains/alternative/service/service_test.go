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
	alternativeMocks "haunters/internal/domains/alternative/mocks"
	"haunters/internal/domains/alternative/model"
	"haunters/internal/domains/alternative/model/dto"
	"haunters/internal/domains/alternative/service"
	bookingMocks "haunters/internal/domains/booking/mocks"
	bookingModel "haunters/internal/domains/booking/model"
	disputeMocks "haunters/internal/domains/dispute/mocks"
	disputeModel "haunters/internal/domains/dispute/model"
	notificationMocks "haunters/internal/domains/notification/mocks"
	propertyMocks "haunters/internal/domains/property/mocks"
	propertyModel "haunters/internal/domains/property/model"
	viewingMocks "haunters/internal/domains/viewing/mocks"
	viewingModel "haunters/internal/domains/viewing/model"
	cacheMocks "haunters/shared/cache/mocks"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/failure"
	"haunters/shared/timezone"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Escrow.HunterShare = 0.85
	cfg.Escrow.ViewingDurationMin = 60
	cfg.Escrow.ReleaseGraceMin = 10
	cfg.Cache.TTL = 60

	return cfg
}

func bookingAwaitingAlternative() bookingModel.Booking {
	outcome := bookingModel.OutcomeAlternativeRequested

	return bookingModel.Booking{
		ID:                "booking-1",
		ViewingRequestID:  "viewing-1",
		PropertyID:        "property-1",
		TenantID:          "tenant-1",
		HunterID:          "hunter-1",
		Amount:            2000,
		PaymentStatus:     bookingModel.PaymentEscrow,
		Status:            bookingModel.StatusConfirmed,
		ScheduledDate:     timezone.Now(),
		ScheduledTime:     timezone.Now(),
		PhysicalConfirmed: true,
		ViewingOutcome:    &outcome,
	}
}

func pendingOffer() model.AlternativeOffer {
	return model.AlternativeOffer{
		ID:               "offer-1",
		BookingID:        "booking-1",
		PropertyID:       "property-2",
		ViewingRequestID: "viewing-2",
		Message:          "similar unit two blocks away",
		Status:           model.StatusPending,
	}
}

func ctxWithUser(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func TestAlternativeService_Request(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := alternativeMocks.NewMockAlternative(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockViewingRepo := viewingMocks.NewMockViewing(ctrl)
	mockPropertyRepo := propertyMocks.NewMockProperty(ctrl)
	mockDisputeRepo := disputeMocks.NewMockDispute(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockBookingRepo, mockViewingRepo, mockPropertyRepo, mockDisputeRepo,
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "tenant asks for an alternative",
			ctx:  ctxWithUser("tenant-1"),
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingAwaitingAlternative(), nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name: "no alternative-requested outcome yet",
			ctx:  ctxWithUser("tenant-1"),
			setupMock: func() {
				booking := bookingAwaitingAlternative()
				booking.ViewingOutcome = nil

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "hunter cannot request",
			ctx:  ctxWithUser("hunter-1"),
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingAwaitingAlternative(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Request(tt.ctx, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAlternativeService_Offer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := alternativeMocks.NewMockAlternative(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockViewingRepo := viewingMocks.NewMockViewing(ctrl)
	mockPropertyRepo := propertyMocks.NewMockProperty(ctrl)
	mockDisputeRepo := disputeMocks.NewMockDispute(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockBookingRepo, mockViewingRepo, mockPropertyRepo, mockDisputeRepo,
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	ownProperty := propertyModel.Property{
		ID:       "property-2",
		HunterID: "hunter-1",
		Title:    "Bright studio near the park",
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.OfferAlternativeRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "hunter offers a substitute property",
			ctx:  ctxWithUser("hunter-1"),
			req: dto.OfferAlternativeRequest{
				PropertyID: "property-2",
				Message:    "similar unit two blocks away",
				Date:       "2026-09-12",
				Time:       "10:00",
			},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingAwaitingAlternative(), nil)

				mockPropertyRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownProperty, nil)

				mockViewingRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, request viewingModel.ViewingRequest) error {
						assert.Equal(t, "property-2", request.PropertyID)
						assert.Equal(t, "tenant-1", request.TenantID)
						assert.Equal(t, viewingModel.StatusAccepted, request.Status)
						assert.Equal(t, viewingModel.PaymentUnpaid, request.PaymentStatus)
						assert.Equal(t, 2000.0, request.InvoiceAmount)

						return nil
					})

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, offer model.AlternativeOffer) error {
						assert.Equal(t, "booking-1", offer.BookingID)
						assert.Equal(t, "property-2", offer.PropertyID)
						assert.Equal(t, model.StatusPending, offer.Status)

						return nil
					})

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "tenant-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name: "same property is not an alternative",
			ctx:  ctxWithUser("hunter-1"),
			req: dto.OfferAlternativeRequest{
				PropertyID: "property-1",
				Date:       "2026-09-12",
				Time:       "10:00",
			},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingAwaitingAlternative(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "cannot offer someone else's property",
			ctx:  ctxWithUser("hunter-1"),
			req: dto.OfferAlternativeRequest{
				PropertyID: "property-2",
				Date:       "2026-09-12",
				Time:       "10:00",
			},
			setupMock: func() {
				other := ownProperty
				other.HunterID = "hunter-2"

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingAwaitingAlternative(), nil)

				mockPropertyRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(other, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "tenant cannot offer",
			ctx:  ctxWithUser("tenant-1"),
			req: dto.OfferAlternativeRequest{
				PropertyID: "property-2",
				Date:       "2026-09-12",
				Time:       "10:00",
			},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingAwaitingAlternative(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Offer(tt.ctx, "booking-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusPending, res.Status)
				assert.Equal(t, "property-2", res.PropertyID)
			}
		})
	}
}

func TestAlternativeService_Accept(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := alternativeMocks.NewMockAlternative(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockViewingRepo := viewingMocks.NewMockViewing(ctrl)
	mockPropertyRepo := propertyMocks.NewMockProperty(ctrl)
	mockDisputeRepo := disputeMocks.NewMockDispute(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockBookingRepo, mockViewingRepo, mockPropertyRepo, mockDisputeRepo,
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	offerViewing := viewingModel.ViewingRequest{
		ID:            "viewing-2",
		PropertyID:    "property-2",
		TenantID:      "tenant-1",
		HunterID:      "hunter-1",
		Package:       viewingModel.PackageStandard,
		ProposedDates: `["2026-09-12 10:00"]`,
		Status:        viewingModel.StatusAccepted,
		PaymentStatus: viewingModel.PaymentUnpaid,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "escrow moves to a replacement booking",
			ctx:  ctxWithUser("tenant-1"),
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingAwaitingAlternative(), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOffer(), nil)

				mockViewingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(offerViewing, nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockBookingRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, bookingModel.StatusCompleted, req[bookingModel.FieldStatus])
						assert.Equal(t, bookingModel.PaymentReleased, req[bookingModel.FieldPaymentStatus])

						return 1, nil
					})

				mockViewingRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockBookingRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking bookingModel.Booking) error {
						assert.Equal(t, "property-2", booking.PropertyID)
						assert.Equal(t, "viewing-2", booking.ViewingRequestID)
						assert.Equal(t, bookingModel.PaymentEscrow, booking.PaymentStatus)
						assert.Equal(t, bookingModel.StatusConfirmed, booking.Status)
						assert.Equal(t, 2000.0, booking.Amount)

						return nil
					})

				mockPropertyRepo.EXPECT().
					ReleaseLockTx(gomock.Any(), gomock.Any(), "property-1", "booking-1").
					Return(true, nil)

				mockPropertyRepo.EXPECT().
					ClaimLockTx(gomock.Any(), gomock.Any(), "property-2", gomock.Any()).
					Return(true, nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
			},
		},
		{
			name: "offered property already locked",
			ctx:  ctxWithUser("tenant-1"),
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingAwaitingAlternative(), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOffer(), nil)

				mockViewingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(offerViewing, nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockBookingRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockViewingRepo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockBookingRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockPropertyRepo.EXPECT().
					ReleaseLockTx(gomock.Any(), gomock.Any(), "property-1", "booking-1").
					Return(true, nil)

				mockPropertyRepo.EXPECT().
					ClaimLockTx(gomock.Any(), gomock.Any(), "property-2", gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "escrow no longer transferable",
			ctx:  ctxWithUser("tenant-1"),
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingAwaitingAlternative(), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOffer(), nil)

				mockViewingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(offerViewing, nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockBookingRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "no pending offer",
			ctx:  ctxWithUser("tenant-1"),
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingAwaitingAlternative(), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.AlternativeOffer{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "hunter cannot accept",
			ctx:  ctxWithUser("hunter-1"),
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingAwaitingAlternative(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Accept(tt.ctx, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "property-2", res.PropertyID)
				assert.Equal(t, bookingModel.PaymentEscrow, res.PaymentStatus)
			}
		})
	}
}

func TestAlternativeService_Decline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := alternativeMocks.NewMockAlternative(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockViewingRepo := viewingMocks.NewMockViewing(ctrl)
	mockPropertyRepo := propertyMocks.NewMockProperty(ctrl)
	mockDisputeRepo := disputeMocks.NewMockDispute(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockBookingRepo, mockViewingRepo, mockPropertyRepo, mockDisputeRepo,
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.DeclineAlternativeRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "decline cancels the booking and opens a dispute",
			ctx:  ctxWithUser("tenant-1"),
			req:  dto.DeclineAlternativeRequest{Reason: "the offered unit is even smaller"},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingAwaitingAlternative(), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOffer(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, model.StatusDeclined, req[model.FieldStatus])

						return 1, nil
					})

				mockBookingRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, bookingModel.StatusCancelled, req[bookingModel.FieldStatus])

						return 1, nil
					})

				mockDisputeRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, dispute disputeModel.Dispute) error {
						assert.Equal(t, disputeModel.CategoryMisrepresentation, dispute.Category)
						assert.Equal(t, "the offered unit is even smaller", dispute.Description)
						assert.Equal(t, "hunter-1", dispute.AgainstID)

						return nil
					})

				mockPropertyRepo.EXPECT().
					ReleaseLockTx(gomock.Any(), gomock.Any(), "property-1", "booking-1").
					Return(true, nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "booking-1")
			},
		},
		{
			name: "offer already answered",
			ctx:  ctxWithUser("tenant-1"),
			req:  dto.DeclineAlternativeRequest{},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingAwaitingAlternative(), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOffer(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "hunter cannot decline",
			ctx:  ctxWithUser("hunter-1"),
			req:  dto.DeclineAlternativeRequest{},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingAwaitingAlternative(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Decline(tt.ctx, "booking-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
