package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// UnitOfWork scopes one storage session. The callback receives a DBTX
// backed by a *sqlx.Tx; callers create tx-scoped repositories from it.
// The transaction is finished on every exit path, so the underlying
// connection is always handed back to the pool.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork implements UnitOfWork using sqlx transactions.
type SQLiteUnitOfWork struct {
	db *sqlx.DB
}

// NewSQLiteUnitOfWork creates a UnitOfWork backed by the given *sqlx.DB.
func NewSQLiteUnitOfWork(db *sqlx.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (cause: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (u *SQLiteUnitOfWork) Ping(ctx context.Context) error {
	return u.db.PingContext(ctx)
}
