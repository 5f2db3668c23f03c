package database

import (
	"errors"
	"fmt"

	"github.com/DioGolang/GoUniversity/internal/application/port/outbound"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// classify tags driver errors with the outbound sentinels so callers can tell a
// concurrency conflict or a constraint violation from a transport failure.
func classify(err error) error {
	if err == nil ||
		errors.Is(err, outbound.ErrConcurrencyConflict) ||
		errors.Is(err, outbound.ErrConstraintViolation) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "40001", pqErr.Code == "40P01":
			return fmt.Errorf("%w: %w", outbound.ErrConcurrencyConflict, err)
		case pqErr.Code.Class() == "23":
			return fmt.Errorf("%w: %w", outbound.ErrConstraintViolation, err)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %w", outbound.ErrConcurrencyConflict, err)
		case sqlite3.SQLITE_CONSTRAINT:
			return fmt.Errorf("%w: %w", outbound.ErrConstraintViolation, err)
		}
	}
	return err
}
