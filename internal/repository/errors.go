package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Sentinel errors returned by the repositories. Callers match them with
// errors.Is; the wrapped chain keeps the underlying driver error.
var (
	// ErrNotFound is returned when the target record does not exist
	// within the caller's scope.
	ErrNotFound = errors.New("record not found")
	// ErrConstraint is returned on foreign-key or uniqueness violations.
	ErrConstraint = errors.New("constraint violation")
	// ErrUnavailable is returned on connectivity or other transient
	// storage failures. The repository never retries; retry policy is a
	// caller concern.
	ErrUnavailable = errors.New("storage unavailable")
)

// classify maps a driver error onto the repository error taxonomy.
// SQLSTATE class 23 covers integrity constraint violations.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
