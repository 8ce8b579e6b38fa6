package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VisitScheduler/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
	firstErr   error
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

func (t *fakeTx) FirstError() error {
	return t.firstErr
}

type fakeBeginner struct {
	txs     []*fakeTx
	options []*sql.TxOptions
	next    func(n int) *fakeTx
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	var tx *fakeTx
	if b.next != nil {
		tx = b.next(len(b.txs))
	} else {
		tx = &fakeTx{}
	}
	b.txs = append(b.txs, tx)
	b.options = append(b.options, opts)
	return tx, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001", Message: "could not serialize access"}
}

func TestManager_DoSerializable_Commits(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithBackoff(0))

	var sawTx bool
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		sawTx = dbmetrics.IsInTransaction(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawTx)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.Equal(t, sql.LevelSerializable, db.options[0].Isolation)
}

func TestManager_DoSerializable_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithBackoff(0))
	businessErr := errors.New("slot taken")

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return businessErr
	})

	require.ErrorIs(t, err, businessErr)
	require.Len(t, db.txs, 1, "business errors are not retried")
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestManager_DoSerializable_RetriesSerializationFailure(t *testing.T) {
	db := &fakeBeginner{
		next: func(n int) *fakeTx {
			if n == 0 {
				return &fakeTx{firstErr: serializationFailure()}
			}
			return &fakeTx{}
		},
	}
	m := NewTransactionManager(db, WithBackoff(0))

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			// the repository flattens the driver error
			return fmt.Errorf("repository: failed to execute query: %v", serializationFailure())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.True(t, db.txs[0].rolledBack)
	assert.True(t, db.txs[1].committed)
}

func TestManager_DoSerializable_RetriesCommitFailure(t *testing.T) {
	db := &fakeBeginner{
		next: func(n int) *fakeTx {
			return &fakeTx{commitErr: serializationFailure()}
		},
	}
	m := NewTransactionManager(db, WithBackoff(0), WithMaxAttempts(2))

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.Error(t, err)
	assert.True(t, IsRetryable(err))
	assert.Equal(t, 2, calls)
}

func TestManager_NestedCallJoinsOuterTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error {
			return nil
		})
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(serializationFailure()))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", &pq.Error{Code: "40P01"})))
	assert.False(t, IsRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(nil))
}
