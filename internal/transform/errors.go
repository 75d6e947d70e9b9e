package transform

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput means there was nothing to transform.
	ErrEmptyInput = errors.New("transform: empty input table")
	// ErrColumnNotFound means a stage expected a column the table lacks.
	ErrColumnNotFound = errors.New("column not found")
)

// StageError wraps a structural failure raised by one pipeline stage.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("transform stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// CoercionError reports a cell that cannot take its column's canonical type.
type CoercionError struct {
	Column string
	Row    int
	Kind   Kind
	Err    error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("coerce %s row %d (%s): %v", e.Column, e.Row, e.Kind, e.Err)
	}
	return fmt.Sprintf("coerce %s row %d: unexpected %s value", e.Column, e.Row, e.Kind)
}

func (e *CoercionError) Unwrap() error { return e.Err }
