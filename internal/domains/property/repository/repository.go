package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"haunters/infras/otel"
	"haunters/infras/postgres"
	"haunters/internal/domains/property/model"
	"haunters/shared/constant"
	gDto "haunters/shared/dto"
	gRepo "haunters/shared/repository"
	"haunters/shared/timezone"
)

type Property interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Property, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ClaimLockTx(ctx context.Context, tx *sqlx.Tx, propertyID, bookingID string) (bool, error)
	ReleaseLockTx(ctx context.Context, tx *sqlx.Tx, propertyID, bookingID string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Property]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Property {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Property](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ClaimLockTx marks the property as held by the given booking. The update is
// conditional on the lock being free; a false return means another booking
// holds it.
func (repo *repositoryImpl) ClaimLockTx(ctx context.Context, tx *sqlx.Tx, propertyID, bookingID string) (bool, error) {
	rows, err := repo.UpdateCountTx(ctx, tx, map[string]any{
		model.FieldIsLocked:        true,
		model.FieldLockedByBooking: bookingID,
		constant.FieldModifiedAt:   timezone.Now(),
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: propertyID, Table: model.TableName, ArgName: "property_id"},
			gDto.Filter{Field: model.FieldIsLocked, Operator: gDto.FilterOperatorEq, Value: false, Table: model.TableName, ArgName: "lock_state"},
		},
	})
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// ReleaseLockTx clears the lock only if it is still held by the given booking.
func (repo *repositoryImpl) ReleaseLockTx(ctx context.Context, tx *sqlx.Tx, propertyID, bookingID string) (bool, error) {
	rows, err := repo.UpdateCountTx(ctx, tx, map[string]any{
		model.FieldIsLocked:        false,
		model.FieldLockedByBooking: nil,
		constant.FieldModifiedAt:   timezone.Now(),
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: propertyID, Table: model.TableName, ArgName: "property_id"},
			gDto.Filter{Field: model.FieldLockedByBooking, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: model.TableName, ArgName: "holder_booking_id"},
		},
	})
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
