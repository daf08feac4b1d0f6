package database

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"campushub_backend/internals/helpers/apperr"
)

const txMaxAttempts = 3

// WithRetry runs fn inside a transaction and retries transparently on
// serialization failure (40001) or deadlock (40P01), a bounded number of
// times. Exhausted retries surface as a Transient app error; every other
// error passes through unchanged.
func WithRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var lastErr error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		lastErr = db.Transaction(fn)
		if lastErr == nil || !isRetryable(lastErr) {
			return lastErr
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return apperr.Transient("storage conflict, retries exhausted", lastErr)
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
