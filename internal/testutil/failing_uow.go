package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/todod/internal/db"
	"github.com/jmoiron/sqlx"
)

// FailOnNthExecUoW is a test UoW that injects an error on the Nth write
// (ExecContext or NamedExecContext) within a transaction. Reads pass
// through normally. FailOn counts from 1; zero never fails.
type FailOnNthExecUoW struct {
	DB     *sqlx.DB
	FailOn int32
	Err    error

	// Calls counts WithinTx invocations.
	Calls atomic.Int32
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	u.Calls.Add(1)
	tx, err := u.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) hit() bool {
	return f.count.Add(1) == f.failOn
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.hit() {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

func (f *failOnNthExec) NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error) {
	if f.hit() {
		return nil, f.err
	}
	return f.DBTX.NamedExecContext(ctx, query, arg)
}
