package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"haunters/infras/otel"
	"haunters/infras/postgres"
	"haunters/internal/domains/alternative/model"
	gDto "haunters/shared/dto"
	gRepo "haunters/shared/repository"
)

type Alternative interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.AlternativeOffer) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.AlternativeOffer, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	UpdateCountTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.AlternativeOffer]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Alternative {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AlternativeOffer](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
