package combine

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when no yearly tables are supplied.
	ErrEmptyInput = errors.New("no combine tables to normalize")
	// ErrMissingColumn is returned when a table lacks a column the pipeline needs.
	ErrMissingColumn = errors.New("missing column")
)

// MalformedNumericValueError reports a weight or metric cell that is neither
// empty nor a number.
type MalformedNumericValueError struct {
	Year   int
	Row    int
	Column string
	Value  string
}

func (e *MalformedNumericValueError) Error() string {
	return fmt.Sprintf("combine %d row %d: column %q: malformed numeric value %q", e.Year, e.Row, e.Column, e.Value)
}
