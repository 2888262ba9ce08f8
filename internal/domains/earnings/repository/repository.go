package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"haunters/infras/otel"
	"haunters/infras/postgres"
	"haunters/internal/domains/earnings/model"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	"haunters/shared/failure"
	gRepo "haunters/shared/repository"
)

type Earnings interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.HunterEarnings) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.HunterEarnings, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.HunterEarnings]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Earnings {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.HunterEarnings](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertTx writes a ledger line inside the release transaction. The unique
// index on booking_id turns a second release of the same booking into a
// Conflict instead of a duplicate payout.
func (repo *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, earnings model.HunterEarnings) error {
	err := repo.Repository.InsertTx(ctx, tx, earnings)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("earnings already recorded for this booking") //nolint:wrapcheck
		}

		return err
	}

	return nil
}
