package db

import (
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrContention is returned when a transaction keeps losing the write lock
// after all retries. Callers may safely retry the whole operation.
var ErrContention = errors.New("database contention, retry")

const txRetries = 3

// Transact runs fn inside a transaction. Commit errors caused by a busy
// store (SQLite write-lock contention) are retried a bounded number of
// times with backoff; anything else rolls back and propagates unchanged.
func Transact(db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	var err error
	for attempt := 0; attempt < txRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 10 * time.Millisecond)
		}

		err = runOnce(db, fn)
		if err == nil {
			return nil
		}
		if !isBusy(err) {
			return err
		}
	}
	return ErrContention
}

func runOnce(db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = fn(tx)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// isBusy reports whether err is a lock-contention error. Matches both the
// modernc sqlite driver ("database is locked", SQLITE_BUSY) and pgx
// serialization failures.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "sqlite_busy") ||
		strings.Contains(msg, "could not serialize access")
}
