package driven

import (
	"io"

	"github.com/custodia-labs/chatpack/internal/core/domain"
)

// Writer serialises messages in one output format.
type Writer interface {
	// Format returns the output format this writer produces.
	Format() domain.OutputFormat

	// Open starts a document on w. Nothing is guaranteed to be valid on w
	// until Close returns nil.
	Open(w io.Writer, cfg domain.OutputConfig) (RecordWriter, error)
}

// RecordWriter writes the records of one open document.
type RecordWriter interface {
	// Write appends one message to the document.
	Write(msg domain.Message) error

	// Close terminates the document and flushes buffered output.
	// Writes after Close return ErrWriterClosed.
	Close() error
}

// WriterRegistry maps output formats to their writers.
type WriterRegistry interface {
	// Register adds or replaces the writer for its format.
	Register(w Writer)

	// Get returns the writer for a format.
	// Returns ErrUnsupportedType if none is registered.
	Get(format domain.OutputFormat) (Writer, error)
}
