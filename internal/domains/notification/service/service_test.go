package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"haunters/config"
	"haunters/infras/otel/mocks"
	notificationMocks "haunters/internal/domains/notification/mocks"
	"haunters/internal/domains/notification/model"
	"haunters/internal/domains/notification/service"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/failure"
)

func testConfig() *config.Config {
	return &config.Config{}
}

func unreadNotification() model.Notification {
	return model.Notification{
		ID:        "notification-1",
		UserID:    "tenant-1",
		Title:     "Viewing reminder",
		Message:   "Your viewing is scheduled today",
		Type:      model.TypeBookingReminder,
		Reference: "booking-1",
		Read:      false,
	}
}

func TestNotificationService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := notificationMocks.NewMockNotification(ctrl)
	svc := service.New(mockRepo, nil, testConfig(), mocks.NewOtel())

	t.Run("lists notifications with paging totals", func(t *testing.T) {
		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Notification{unreadNotification()}, nil)

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Notifications, 1)
		assert.Equal(t, 1, res.TotalData)
		assert.Equal(t, "notification-1", res.Notifications[0].ID)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		setupMock func(mockRepo *notificationMocks.MockNotification)
		wantErr   int
	}{
		{
			name:   "the recipient marks their notification read",
			userID: "tenant-1",
			setupMock: func(mockRepo *notificationMocks.MockNotification) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(unreadNotification(), nil)
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mod map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, true, mod[model.FieldRead])
						assert.Equal(t, "tenant-1", mod[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name:   "someone else's notification is restricted",
			userID: "hunter-1",
			setupMock: func(mockRepo *notificationMocks.MockNotification) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(unreadNotification(), nil)
			},
			wantErr: http.StatusForbidden,
		},
		{
			name:   "an unknown notification is not found",
			userID: "tenant-1",
			setupMock: func(mockRepo *notificationMocks.MockNotification) {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Notification{}, nil)
			},
			wantErr: http.StatusNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := notificationMocks.NewMockNotification(ctrl)
			test.setupMock(mockRepo)

			svc := service.New(mockRepo, nil, testConfig(), mocks.NewOtel())

			err := svc.MarkRead(context.Background(), "notification-1", test.userID)

			if test.wantErr == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, test.wantErr, failure.GetCode(err))
		})
	}
}
