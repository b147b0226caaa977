// Package jsonl writes messages as newline-delimited JSON objects.
package jsonl

import (
	"bufio"
	"io"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/writers/fields"
)

// Ensure Writer implements the interface.
var _ driven.Writer = (*Writer)(nil)

// Writer produces JSON Lines documents. Every line ends in a newline.
type Writer struct{}

// New creates a new JSONL writer.
func New() *Writer {
	return &Writer{}
}

// Format returns the output format this writer produces.
func (w *Writer) Format() domain.OutputFormat {
	return domain.FormatJSONL
}

// Open starts a document on out. An empty document has no lines.
func (w *Writer) Open(out io.Writer, cfg domain.OutputConfig) (driven.RecordWriter, error) {
	return &recordWriter{w: bufio.NewWriter(out), fields: fields.Active(cfg)}, nil
}

type recordWriter struct {
	w      *bufio.Writer
	fields []fields.Field
	line   []byte
	closed bool
}

func (r *recordWriter) Write(msg domain.Message) error {
	if r.closed {
		return domain.ErrWriterClosed
	}
	var err error
	r.line, err = fields.AppendObject(r.line[:0], r.fields, msg)
	if err != nil {
		return err
	}
	r.line = append(r.line, '\n')
	_, err = r.w.Write(r.line)
	return err
}

func (r *recordWriter) Close() error {
	if r.closed {
		return domain.ErrWriterClosed
	}
	r.closed = true
	return r.w.Flush()
}
