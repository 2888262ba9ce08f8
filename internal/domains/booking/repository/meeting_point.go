package repository

//go:generate go run go.uber.org/mock/mockgen -source=./meeting_point.go -destination=../mocks/meeting_point_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"haunters/infras/otel"
	"haunters/infras/postgres"
	"haunters/internal/domains/booking/model"
	gDto "haunters/shared/dto"
	gRepo "haunters/shared/repository"
)

type MeetingPoint interface {
	Insert(ctx context.Context, model model.MeetingPoint) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.MeetingPoint) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.MeetingPoint, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type meetingPointImpl struct {
	gRepo.Repository[model.MeetingPoint]
	db   *postgres.Connection
	otel otel.Otel
}

func NewMeetingPoint(db *postgres.Connection, otel otel.Otel) MeetingPoint {
	return &meetingPointImpl{
		Repository: gRepo.NewRepository[model.MeetingPoint](model.MeetingPointEntityName, model.MeetingPointTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
