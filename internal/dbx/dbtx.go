// Package dbx lets taskcal repositories run against either the connection
// pool or an open transaction, so a service can group writes such as
// "create user, then issue its first refresh token" into one commit.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is what every PostgresRepository is built on; *sql.DB and *sql.Tx
// both satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside one transaction. A nil return commits; an error or
// a panic rolls back, and the panic is re-raised. Refresh token rotation
// relies on this so the old token is never deleted without a replacement:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    if err := repos.RefreshTokens(tx).Delete(ctx, old); err != nil {
//	        return err
//	    }
//	    return repos.RefreshTokens(tx).Create(ctx, next)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, tx)
}
