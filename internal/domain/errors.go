package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrValidation      = errors.New("validation error")
	ErrMalformedRecord = errors.New("malformed record")
	ErrArtifactHeader  = errors.New("unexpected artifact header")
)

// RecordError describes a problem with a single line of an input artifact.
type RecordError struct {
	Line   int
	Fields int
	Err    error
}

func (e *RecordError) Error() string {
	if e.Fields > 0 {
		return fmt.Sprintf("line %d: %d fields: %v", e.Line, e.Fields, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// NewMalformedRecordError reports a raw line whose field count is wrong.
func NewMalformedRecordError(line, fields int) *RecordError {
	return &RecordError{Line: line, Fields: fields, Err: ErrMalformedRecord}
}
