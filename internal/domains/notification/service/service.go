package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Notification=MockNotificationService

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"haunters/config"
	"haunters/infras/kafka"
	"haunters/infras/otel"
	"haunters/internal/domains/notification/model"
	"haunters/internal/domains/notification/model/dto"
	"haunters/internal/domains/notification/repository"
	"haunters/shared"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/failure"
	gModel "haunters/shared/model"
	"haunters/shared/timezone"
)

// Event is what gets published to the notification topic alongside the
// persisted record.
type Event struct {
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Reference string `json:"reference"`
}

// Notification persists and dispatches user notifications. Dispatch is
// best-effort: failures are logged and never surfaced to the caller, so a
// booking transition can't be failed by its notification.
type Notification interface {
	Notify(ctx context.Context, userID, title, message, eventType, reference string)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetNotificationsResponse, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type serviceImpl struct {
	repo  repository.Notification
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func New(repo repository.Notification, kafkaClient kafka.Client, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		repo:  repo,
		kafka: kafkaClient,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) Notify(ctx context.Context, userID, title, message, eventType, reference string) {
	_, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Notify")
	defer scope.End()

	record := model.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      eventType,
		Reference: reference,
		Read:      false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.repo.Insert(c, record); err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("type", eventType).Msg("failed to persist notification")
		}

		if s.kafka == nil {
			return
		}

		err := s.kafka.SendMessages(c, s.cfg.Kafka.NotificationTopic, kafka.Message{
			Key: userID,
			Value: Event{
				UserID:    userID,
				Title:     title,
				Message:   message,
				Type:      eventType,
				Reference: reference,
			},
		})
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("type", eventType).Msg("failed to publish notification event")
		}
	}()
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetNotificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count notifications")

		return res, fmt.Errorf("failed to count notifications: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return res, fmt.Errorf("failed to get notifications: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) MarkRead(ctx context.Context, id, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	notification, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get notification")

		return fmt.Errorf("failed to get notification: %w", err)
	}

	if notification.ID == constant.Empty {
		return failure.NotFound("notification not found") //nolint:wrapcheck
	}

	if notification.UserID != userID {
		return failure.ResourceRestrictedError //nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, map[string]any{
		model.FieldRead:          true,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: userID,
	}, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to mark notification read")

		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	return nil
}
