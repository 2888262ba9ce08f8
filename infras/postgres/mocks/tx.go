package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"haunters/infras/postgres"
)

type transactorImpl struct {
}

// WithTransaction implements postgres.Transactor. It runs the function with a
// nil transaction; repository calls inside are expected to be mocked.
func (t *transactorImpl) WithTransaction(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func NewTransactor() postgres.Transactor {
	return &transactorImpl{}
}
