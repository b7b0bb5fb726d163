package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"gymcore/internal/logger"
)

// Transactor runs fn as one unit of work: everything fn writes commits
// together or not at all.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(q Querier) error) error
}

type TxManager struct {
	db         *sqlx.DB
	opts       *sql.TxOptions
	maxRetries uint
}

// NewTxManager uses SERIALIZABLE isolation on Postgres so that two requests
// cannot both pass a read-then-write conflict scan for the same resource.
// Serialization failures are retried up to maxRetries times.
func NewTxManager(db *sqlx.DB, maxRetries uint) *TxManager {
	var opts *sql.TxOptions
	if db.DriverName() == DriverPostgres {
		opts = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	return &TxManager{db: db, opts: opts, maxRetries: maxRetries}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(q Querier) error) error {
	attempt := 0
	op := func() (struct{}, error) {
		attempt++
		err := m.runOnce(ctx, fn)
		if err == nil {
			return struct{}{}, nil
		}
		if isRetryable(err) {
			logger.WithError(err).Warn("transaction retry", "attempt", attempt)
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond

	_, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(m.maxRetries+1),
	)
	return err
}

func (m *TxManager) runOnce(ctx context.Context, fn func(q Querier) error) error {
	tx, err := m.db.BeginTxx(ctx, m.opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// serialization_failure, deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_BUSY
	}
	return false
}
