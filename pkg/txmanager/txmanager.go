// Package txmanager runs functions inside database transactions.
// The transaction is put into the context (see dbmetrics.WithTx) so repositories
// pick it up through dbmetrics.GetExecutor. Nested calls join the outer transaction.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-VisitScheduler/pkg/dbmetrics"
)

const (
	// DefaultMaxAttempts number of attempts for serialization failures
	DefaultMaxAttempts = 3

	defaultRetryBackoff = 20 * time.Millisecond
)

// serialization_failure and deadlock_detected
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

// Beginner starts transactions; implemented by *dbmetrics.DB
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Manager transaction manager
type Manager struct {
	db          Beginner
	maxAttempts int
	backoff     time.Duration
}

// Option configures Manager
type Option func(*Manager)

// WithMaxAttempts sets how many times a serializable transaction is retried
func WithMaxAttempts(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

// WithBackoff sets the base pause between retries
func WithBackoff(d time.Duration) Option {
	return func(m *Manager) {
		m.backoff = d
	}
}

// NewTransactionManager creates a manager over db
func NewTransactionManager(db Beginner, opts ...Option) *Manager {
	m := &Manager{
		db:          db,
		maxAttempts: DefaultMaxAttempts,
		backoff:     defaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do runs fn in a READ COMMITTED transaction
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoReadOnly runs fn in a read-only REPEATABLE READ transaction
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable runs fn in a SERIALIZABLE transaction.
// On serialization failure or deadlock the whole fn is re-run, up to maxAttempts times,
// so fn must not have side effects outside the transaction.
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		var stmtErr error
		err = m.runTracked(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn, &stmtErr)
		if err == nil || !(IsRetryable(err) || IsRetryable(stmtErr)) {
			return err
		}
		if attempt == m.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.backoff * time.Duration(attempt)):
		}
	}
	return err
}

// firstErrorer is implemented by *dbmetrics.Tx
type firstErrorer interface {
	FirstError() error
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	return m.runTracked(ctx, opts, fn, nil)
}

// runTracked runs fn in a transaction and, when stmtErr is not nil, stores there the
// first statement error seen by the transaction.
func (m *Manager) runTracked(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error, stmtErr *error) (err error) {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if fe, ok := tx.(firstErrorer); ok && stmtErr != nil {
		defer func() { *stmtErr = fe.FirstError() }()
	}

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit: %w", err)
	}
	return nil
}

// IsRetryable reports whether err is a serialization failure or a deadlock
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	code := string(pqErr.Code)
	return code == sqlStateSerializationFailure || code == sqlStateDeadlockDetected
}
