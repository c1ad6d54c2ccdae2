package repository

import (
	"context"

	"cinema-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
)

// Transactor runs a unit of work atomically.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type transactor struct {
	db database.PgxIface
}

func NewTransactor(db database.PgxIface) Transactor {
	return &transactor{db: db}
}

func (t *transactor) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return database.WithTx(ctx, t.db, fn)
}
