package normalizer

import (
	"errors"
	"fmt"

	"metprep/internal/table"
)

// Validation errors.
var (
	ErrNilTable      = errors.New("invalid input: table is nil")
	ErrMissingColumn = errors.New("source column not found in header")
)

// Validator checks that a table can be normalized.
type Validator struct {
	column string
}

// NewValidator creates a validator requiring column in the header.
func NewValidator(column string) *Validator {
	return &Validator{column: column}
}

// Validate checks if the table meets requirements.
func (v *Validator) Validate(t *table.Table) error {
	if t == nil {
		return ErrNilTable
	}

	if !t.Has(v.column) {
		return fmt.Errorf("%w: %q", ErrMissingColumn, v.column)
	}

	return nil
}
