// Package json writes messages as one indented JSON array.
package json

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/writers/fields"
)

// Ensure Writer implements the interface.
var _ driven.Writer = (*Writer)(nil)

const indent = "  "

// Writer produces JSON array documents.
type Writer struct{}

// New creates a new JSON writer.
func New() *Writer {
	return &Writer{}
}

// Format returns the output format this writer produces.
func (w *Writer) Format() domain.OutputFormat {
	return domain.FormatJSON
}

// Open starts an array on out. The array is terminated by Close.
func (w *Writer) Open(out io.Writer, cfg domain.OutputConfig) (driven.RecordWriter, error) {
	return &recordWriter{w: bufio.NewWriter(out), fields: fields.Active(cfg)}, nil
}

type recordWriter struct {
	w      *bufio.Writer
	fields []fields.Field
	count  int
	closed bool
	obj    []byte
	pretty bytes.Buffer
}

func (r *recordWriter) Write(msg domain.Message) error {
	if r.closed {
		return domain.ErrWriterClosed
	}

	var err error
	r.obj, err = fields.AppendObject(r.obj[:0], r.fields, msg)
	if err != nil {
		return err
	}
	r.pretty.Reset()
	if err := json.Indent(&r.pretty, r.obj, indent, indent); err != nil {
		return err
	}

	sep := ",\n" + indent
	if r.count == 0 {
		sep = "[\n" + indent
	}
	r.count++
	if _, err := r.w.WriteString(sep); err != nil {
		return err
	}
	_, err = r.w.Write(r.pretty.Bytes())
	return err
}

func (r *recordWriter) Close() error {
	if r.closed {
		return domain.ErrWriterClosed
	}
	r.closed = true

	tail := "\n]\n"
	if r.count == 0 {
		tail = "[]\n"
	}
	if _, err := r.w.WriteString(tail); err != nil {
		return err
	}
	return r.w.Flush()
}
