package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"haunters/infras/otel"
	"haunters/infras/postgres"
	"haunters/internal/domains/dispute/model"
	gDto "haunters/shared/dto"
	gRepo "haunters/shared/repository"
)

type Dispute interface {
	Insert(ctx context.Context, model model.Dispute) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Dispute) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Dispute, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Dispute, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateCountTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Dispute]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Dispute {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Dispute](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
