package etl

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDatabase means the legacy store does not exist. Fatal.
	ErrMissingDatabase = errors.New("legacy database not found")
	// ErrMissingTable means a legacy table is absent. The table is skipped.
	ErrMissingTable = errors.New("legacy table not found")
	// ErrDuplicateKey means the target already holds a row with the same key.
	ErrDuplicateKey = errors.New("duplicate key")
)

// MissingFieldError reports a legacy row lacking a column the inclusion
// policy requires.
type MissingFieldError struct {
	Table string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Table, e.Field)
}
