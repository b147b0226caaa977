// Package csv writes messages as comma-separated values with a header row.
package csv

import (
	"encoding/csv"
	"io"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/writers/fields"
)

// Ensure Writer implements the interface.
var _ driven.Writer = (*Writer)(nil)

// Writer produces CSV documents.
type Writer struct{}

// New creates a new CSV writer.
func New() *Writer {
	return &Writer{}
}

// Format returns the output format this writer produces.
func (w *Writer) Format() domain.OutputFormat {
	return domain.FormatCSV
}

// Open writes the header row. It is written even when no record follows.
func (w *Writer) Open(out io.Writer, cfg domain.OutputConfig) (driven.RecordWriter, error) {
	cw := csv.NewWriter(out)
	fs := fields.Active(cfg)
	if err := cw.Write(fields.Names(fs)); err != nil {
		return nil, err
	}
	return &recordWriter{cw: cw, fields: fs}, nil
}

type recordWriter struct {
	cw     *csv.Writer
	fields []fields.Field
	closed bool
}

func (r *recordWriter) Write(msg domain.Message) error {
	if r.closed {
		return domain.ErrWriterClosed
	}
	return r.cw.Write(fields.Row(r.fields, msg))
}

func (r *recordWriter) Close() error {
	if r.closed {
		return domain.ErrWriterClosed
	}
	r.closed = true
	r.cw.Flush()
	return r.cw.Error()
}
