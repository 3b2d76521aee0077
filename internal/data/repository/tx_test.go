package repository

import (
	"context"
	"errors"
	"testing"

	"airport-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type recordingTx struct {
	pgx.Tx
	commits   int
	rollbacks int
}

func (tx *recordingTx) Commit(context.Context) error {
	tx.commits++
	return nil
}

func (tx *recordingTx) Rollback(context.Context) error {
	tx.rollbacks++
	return nil
}

type recordingDB struct {
	database.PgxIface
	tx     *recordingTx
	begins int
}

func (db *recordingDB) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	db.begins++
	return db.tx, nil
}

func TestWithTx(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	tests := []struct {
		name          string
		fn            func(ctx context.Context) error
		wantErr       error
		wantPanic     bool
		wantCommits   int
		wantRollbacks int
	}{
		{
			name:        "commit on success",
			fn:          func(context.Context) error { return nil },
			wantCommits: 1,
		},
		{
			name:          "rollback on error",
			fn:            func(context.Context) error { return errBoom },
			wantErr:       errBoom,
			wantRollbacks: 1,
		},
		{
			name:          "rollback on panic",
			fn:            func(context.Context) error { panic("fn exploded") },
			wantPanic:     true,
			wantRollbacks: 1,
		},
		{
			name: "carries the tx in ctx",
			fn: func(ctx context.Context) error {
				if txFromContext(ctx) == nil {
					return errors.New("no tx in ctx")
				}
				return nil
			},
			wantCommits: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			db := &recordingDB{tx: &recordingTx{}}
			tr := NewTransactor(db, zap.NewNop())

			var err error
			panicked := func() (p bool) {
				defer func() {
					if recover() != nil {
						p = true
					}
				}()
				err = tr.WithTx(context.Background(), tt.fn)
				return false
			}()

			if panicked != tt.wantPanic {
				t.Fatalf("panicked = %v, want %v", panicked, tt.wantPanic)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if db.tx.commits != tt.wantCommits || db.tx.rollbacks != tt.wantRollbacks {
				t.Fatalf("commits/rollbacks = %d/%d, want %d/%d",
					db.tx.commits, db.tx.rollbacks, tt.wantCommits, tt.wantRollbacks)
			}
		})
	}
}

func TestWithTx_NestedJoinsOuter(t *testing.T) {
	t.Parallel()
	db := &recordingDB{tx: &recordingTx{}}
	tr := NewTransactor(db, zap.NewNop())

	err := tr.WithTx(context.Background(), func(ctx context.Context) error {
		return tr.WithTx(ctx, func(inner context.Context) error {
			if txFromContext(inner) != txFromContext(ctx) {
				return errors.New("inner call opened its own tx")
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("nested tx: %v", err)
	}
	if db.begins != 1 || db.tx.commits != 1 {
		t.Fatalf("begins/commits = %d/%d, want 1/1", db.begins, db.tx.commits)
	}
}
