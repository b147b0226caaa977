package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent conversion failures.
// Infrastructure errors (file I/O) are wrapped, never replaced.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown platform or output format.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidDate indicates a filter bound that is not a YYYY-MM-DD date.
	ErrInvalidDate = errors.New("invalid date")

	// Parse Errors.

	// ErrStructure indicates the export's top-level shape is unrecognisable.
	// It is always fatal for the whole file.
	ErrStructure = errors.New("malformed export structure")

	// ErrInvalidRecord indicates one message inside a valid export is malformed.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrEmptySender indicates a message with no author.
	ErrEmptySender = errors.New("empty sender")

	// ErrInvalidTimestamp indicates a message whose send time cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// Output Errors.

	// ErrWriterClosed indicates a write after the record writer was closed.
	ErrWriterClosed = errors.New("writer closed")
)

// RecordError reports a malformed message at a position in the export.
// In streaming mode the source stays usable after returning one.
type RecordError struct {
	// Platform is the export's platform.
	Platform Platform

	// Index is the 1-based position of the message in the export.
	Index int

	// Err is the underlying cause.
	Err error
}

// NewRecordError wraps err with its record position.
func NewRecordError(p Platform, index int, err error) *RecordError {
	return &RecordError{Platform: p, Index: index, Err: err}
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	return fmt.Sprintf("%s record %d: %v", e.Platform, e.Index, e.Err)
}

// Unwrap exposes the cause.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// Is makes every RecordError match ErrInvalidRecord.
func (e *RecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}

// IsRecordError reports whether err carries a RecordError and returns it.
func IsRecordError(err error) (*RecordError, bool) {
	var re *RecordError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// Stage names a step of the conversion pipeline.
type Stage string

const (
	StageRead   Stage = "read"
	StageParse  Stage = "parse"
	StageFilter Stage = "filter"
	StageMerge  Stage = "merge"
	StageWrite  Stage = "write"
)

// StageError attributes a failure to the pipeline stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap exposes the cause.
func (e *StageError) Unwrap() error {
	return e.Err
}

// AtStage wraps err with its stage, or returns nil for a nil err.
func AtStage(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
