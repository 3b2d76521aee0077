package repository

import (
	"context"
	"errors"
	"fmt"

	"airport-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type txKey struct{}

// Querier is satisfied by both the pool and an open pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Transactor runs fn inside one database transaction. Repositories called
// with the ctx passed to fn share that transaction. A nested WithTx joins the
// outer transaction instead of opening a new one.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type pgTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTransactor(db database.PgxIface, log *zap.Logger) Transactor {
	return &pgTransactor{
		db:  db,
		log: log.With(zap.String("repository", "tx")),
	}
}

func (t *pgTransactor) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// any exit without a commit, a panic in fn included, rolls back
	committed := false
	defer func() {
		if committed {
			return
		}
		// rollback must run even when ctx is already cancelled
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			t.log.Warn("Failed to rollback transaction", zap.Error(rbErr))
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

func txFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db database.PgxIface) Querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
