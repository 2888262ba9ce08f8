package service_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"haunters/config"
	"haunters/infras/otel/mocks"
	pgMocks "haunters/infras/postgres/mocks"
	s3Mocks "haunters/infras/s3/mocks"
	bookingMocks "haunters/internal/domains/booking/mocks"
	bookingModel "haunters/internal/domains/booking/model"
	disputeMocks "haunters/internal/domains/dispute/mocks"
	"haunters/internal/domains/dispute/model"
	"haunters/internal/domains/dispute/model/dto"
	"haunters/internal/domains/dispute/service"
	notificationMocks "haunters/internal/domains/notification/mocks"
	cacheMocks "haunters/shared/cache/mocks"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/failure"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Escrow.HunterShare = 0.85
	cfg.Cache.TTL = 60
	cfg.External.S3.EvidenceDir = "dispute-evidence"

	return cfg
}

func escrowedBooking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:            "booking-1",
		PropertyID:    "property-1",
		TenantID:      "tenant-1",
		HunterID:      "hunter-1",
		Amount:        2000,
		PaymentStatus: bookingModel.PaymentEscrow,
		Status:        bookingModel.StatusConfirmed,
	}
}

func openDispute() model.Dispute {
	return model.Dispute{
		ID:          "dispute-1",
		Title:       "Viewing issue reported",
		Description: "the apartment was occupied",
		Category:    model.CategoryViewingIssue,
		ReporterID:  "tenant-1",
		AgainstID:   "hunter-1",
		BookingID:   "booking-1",
		PropertyID:  "property-1",
		Status:      model.StatusOpen,
	}
}

func ctxWithUser(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func ctxWithRole(userID, role string) context.Context {
	return context.WithValue(ctxWithUser(userID), constant.ContextKeyUserRole, role)
}

func TestDisputeService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := disputeMocks.NewMockDispute(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockBookingSvc := bookingMocks.NewMockBookingService(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockBookingRepo, mockBookingSvc, s3Mocks.NewS3(),
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateDisputeRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "tenant opens a dispute against the hunter",
			ctx:  ctxWithUser("tenant-1"),
			req: dto.CreateDisputeRequest{
				BookingID:    "booking-1",
				Title:        "Property misrepresented",
				Description:  "listing photos were of a different unit",
				Category:     model.CategoryMisrepresentation,
				EvidenceKeys: []string{"photo-1.jpg", "photo-2.jpg"},
			},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(escrowedBooking(), nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, dispute model.Dispute) error {
						assert.Equal(t, "tenant-1", dispute.ReporterID)
						assert.Equal(t, "hunter-1", dispute.AgainstID)
						assert.Equal(t, model.StatusOpen, dispute.Status)
						assert.NotNil(t, dispute.EvidenceKeys)

						return nil
					})

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
			},
		},
		{
			name: "stranger cannot open a dispute",
			ctx:  ctxWithUser("someone-else"),
			req: dto.CreateDisputeRequest{
				BookingID:   "booking-1",
				Title:       "Property misrepresented",
				Description: "listing photos were of a different unit",
				Category:    model.CategoryMisrepresentation,
			},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(escrowedBooking(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "unknown booking",
			ctx:  ctxWithUser("tenant-1"),
			req: dto.CreateDisputeRequest{
				BookingID:   "booking-9",
				Title:       "Property misrepresented",
				Description: "listing photos were of a different unit",
				Category:    model.CategoryMisrepresentation,
			},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(tt.ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusOpen, res.Status)
				assert.Len(t, res.EvidenceURLs, 2)
			}
		})
	}
}

func TestDisputeService_UploadEvidence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := disputeMocks.NewMockDispute(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockBookingSvc := bookingMocks.NewMockBookingService(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockBookingRepo, mockBookingSvc, s3Mocks.NewS3(),
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	t.Run("stores a data URL file and returns its key", func(t *testing.T) {
		res, err := svc.UploadEvidence(ctxWithUser("tenant-1"), dto.UploadEvidenceRequest{
			FileName: "leak.png",
			File:     "data:image/png;base64,SGVsbG8gV29ybGQ=",
		})

		assert.NoError(t, err)
		assert.True(t, strings.HasSuffix(res.Key, ".png"))
		assert.Equal(t, "https://storage.test/dispute-evidence/"+res.Key, res.URL)
	})

	t.Run("a plain string is not a data URL", func(t *testing.T) {
		_, err := svc.UploadEvidence(ctxWithUser("tenant-1"), dto.UploadEvidenceRequest{
			FileName: "leak.png",
			File:     "just some text",
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("an empty payload is rejected", func(t *testing.T) {
		_, err := svc.UploadEvidence(ctxWithUser("tenant-1"), dto.UploadEvidenceRequest{
			FileName: "leak.png",
			File:     "data:image/png;base64,",
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestDisputeService_Respond(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := disputeMocks.NewMockDispute(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockBookingSvc := bookingMocks.NewMockBookingService(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockBookingRepo, mockBookingSvc, s3Mocks.NewS3(),
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "accused party responds",
			ctx:  ctxWithUser("hunter-1"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openDispute(), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusInProgress, req[model.FieldStatus])

						return nil
					})

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "tenant-1", gomock.Any(), gomock.Any(), gomock.Any(), "dispute-1")
			},
		},
		{
			name: "reporter cannot respond to their own dispute",
			ctx:  ctxWithUser("tenant-1"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openDispute(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "resolved dispute takes no response",
			ctx:  ctxWithUser("hunter-1"),
			setupMock: func() {
				resolved := openDispute()
				resolved.Status = model.StatusResolved

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(resolved, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Respond(tt.ctx, "dispute-1", dto.RespondDisputeRequest{Response: "the tenant arrived an hour late"})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDisputeService_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := disputeMocks.NewMockDispute(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockBookingSvc := bookingMocks.NewMockBookingService(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockBookingRepo, mockBookingSvc, s3Mocks.NewS3(),
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	resolvedDispute := func() model.Dispute {
		resolved := openDispute()
		resolved.Status = model.StatusResolved

		return resolved
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.ResolveDisputeRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "refund verdict refunds the escrow",
			ctx:  ctxWithRole("admin-1", constant.RoleAdmin),
			req:  dto.ResolveDisputeRequest{Resolution: "hunter failed to appear", Action: model.ActionRefund},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openDispute(), nil)

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(escrowedBooking(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, model.StatusResolved, req[model.FieldStatus])

						return 1, nil
					})

				mockBookingSvc.EXPECT().
					RefundEscrowTx(gomock.Any(), gomock.Any(), gomock.Any(), "admin-1").
					Return(nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "tenant-1", gomock.Any(), gomock.Any(), gomock.Any(), "dispute-1")
				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "dispute-1")

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(resolvedDispute(), nil)
			},
		},
		{
			name: "release verdict pays the hunter",
			ctx:  ctxWithRole("admin-1", constant.RoleAdmin),
			req:  dto.ResolveDisputeRequest{Resolution: "viewing took place as agreed", Action: model.ActionReleasePayment},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openDispute(), nil)

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(escrowedBooking(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockBookingSvc.EXPECT().
					ReleaseEscrowTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil(), "admin-1").
					Return(nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "tenant-1", gomock.Any(), gomock.Any(), gomock.Any(), "dispute-1")
				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "dispute-1")

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(resolvedDispute(), nil)
			},
		},
		{
			name: "verdict without escrow action settles nothing",
			ctx:  ctxWithRole("admin-1", constant.RoleAdmin),
			req:  dto.ResolveDisputeRequest{Resolution: "both parties withdrew the claim", Action: model.ActionNone},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openDispute(), nil)

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(escrowedBooking(), nil)

				mockRepo.EXPECT().
					UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				mockNotifier.EXPECT().
					Notify(gomock.Any(), "tenant-1", gomock.Any(), gomock.Any(), gomock.Any(), "dispute-1")
				mockNotifier.EXPECT().
					Notify(gomock.Any(), "hunter-1", gomock.Any(), gomock.Any(), gomock.Any(), "dispute-1")

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(resolvedDispute(), nil)
			},
		},
		{
			name: "non-admin cannot resolve",
			ctx:  ctxWithRole("hunter-1", constant.RoleHunter),
			req:  dto.ResolveDisputeRequest{Resolution: "done", Action: model.ActionNone},
			setupMock: func() {
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "second verdict loses the guard",
			ctx:  ctxWithRole("admin-1", constant.RoleAdmin),
			req:  dto.ResolveDisputeRequest{Resolution: "duplicate", Action: model.ActionNone},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openDispute(), nil)

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(escrowedBooking(), nil)

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

			res, err := svc.Resolve(tt.ctx, "dispute-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusResolved, res.Status)
			}
		})
	}
}

func TestDisputeService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := disputeMocks.NewMockDispute(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockBookingSvc := bookingMocks.NewMockBookingService(ctrl)
	mockNotifier := notificationMocks.NewMockNotificationService(ctrl)

	svc := service.New(mockRepo, mockBookingRepo, mockBookingSvc, s3Mocks.NewS3(),
		mockNotifier, pgMocks.NewTransactor(), testConfig(), cacheMocks.NewMissCache(), mocks.NewOtel())

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
	}{
		{
			name: "non-admin is scoped to their own disputes",
			ctx:  ctxWithRole("hunter-1", constant.RoleHunter),
			setupMock: func() {
				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
						assert.Equal(t, gDto.FilterGroupOperatorOr, filter.Operator)
						assert.Len(t, filter.Filters, 2)

						return 1, nil
					})

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Dispute{openDispute()}, nil)
			},
		},
		{
			name: "admin sees everything",
			ctx:  ctxWithRole("admin-1", constant.RoleAdmin),
			setupMock: func() {
				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
						assert.Empty(t, filter.Filters)

						return 1, nil
					})

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Dispute{openDispute()}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetAll(tt.ctx, gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

			assert.NoError(t, err)
			assert.Equal(t, 1, res.TotalData)
			assert.Len(t, res.Disputes, 1)
		})
	}
}
