// Package fields projects messages onto the output columns an
// OutputConfig selects.
package fields

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/custodia-labs/chatpack/internal/core/domain"
)

// Column names, in output order.
const (
	Sender    = "sender"
	Content   = "content"
	Timestamp = "timestamp"
	ID        = "id"
	ReplyTo   = "reply_to"
	Edited    = "edited"
)

// TimeLayout renders every time value.
const TimeLayout = time.RFC3339

// Field is one output column.
type Field struct {
	Name  string
	value func(domain.Message) (string, bool)
}

// Value returns the column value, or false when the message has none.
// Invalid UTF-8 is replaced with U+FFFD so every format writes the same text.
func (f Field) Value(m domain.Message) (string, bool) {
	v, ok := f.value(m)
	return strings.ToValidUTF8(v, "\uFFFD"), ok
}

var (
	senderField    = Field{Sender, func(m domain.Message) (string, bool) { return m.Sender, true }}
	contentField   = Field{Content, func(m domain.Message) (string, bool) { return m.Content, true }}
	timestampField = Field{Timestamp, func(m domain.Message) (string, bool) { return FormatTime(m.Timestamp), true }}
	idField        = Field{ID, func(m domain.Message) (string, bool) { return deref(m.ID) }}
	replyToField   = Field{ReplyTo, func(m domain.Message) (string, bool) { return deref(m.ReplyTo) }}
	editedField    = Field{Edited, func(m domain.Message) (string, bool) {
		if m.EditedAt == nil {
			return "", false
		}
		return FormatTime(*m.EditedAt), true
	}}
)

// Active returns the columns cfg enables, sender and content always first.
func Active(cfg domain.OutputConfig) []Field {
	fs := []Field{senderField, contentField}
	if cfg.Timestamps {
		fs = append(fs, timestampField)
	}
	if cfg.IDs {
		fs = append(fs, idField)
	}
	if cfg.Replies {
		fs = append(fs, replyToField)
	}
	if cfg.Edited {
		fs = append(fs, editedField)
	}
	return fs
}

// Names returns the column names of fs.
func Names(fs []Field) []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}

// Row renders m as one value per column. Absent values are empty.
func Row(fs []Field, m domain.Message) []string {
	row := make([]string, len(fs))
	for i, f := range fs {
		row[i], _ = f.Value(m)
	}
	return row
}

// AppendObject appends m as a compact JSON object with keys in column order.
// Absent values are null. HTML characters are left unescaped.
func AppendObject(dst []byte, fs []Field, m domain.Message) ([]byte, error) {
	dst = append(dst, '{')
	for i, f := range fs {
		if i > 0 {
			dst = append(dst, ',')
		}
		var err error
		if dst, err = appendString(dst, f.Name); err != nil {
			return nil, err
		}
		dst = append(dst, ':')
		v, ok := f.Value(m)
		if !ok {
			dst = append(dst, "null"...)
			continue
		}
		if dst, err = appendString(dst, v); err != nil {
			return nil, err
		}
	}
	return append(dst, '}'), nil
}

// FormatTime renders t in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func appendString(dst []byte, s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return append(dst, bytes.TrimSuffix(buf.Bytes(), []byte("\n"))...), nil
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
