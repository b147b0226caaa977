package discord

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/chatpack/internal/core/domain"
)

const (
	colAuthor      = "Author"
	colDate        = "Date"
	colContent     = "Content"
	colAttachments = "Attachments"
)

// columns locates the fields we read; -1 marks an absent optional column.
type columns struct {
	author, date, content, attachments int
}

func columnIndex(header []string, name string) (int, bool) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, true
		}
	}
	return -1, false
}

func newColumns(header []string) (columns, error) {
	var c columns
	var ok bool
	if c.author, ok = columnIndex(header, colAuthor); !ok {
		return c, fmt.Errorf("%w: csv header has no %s column", domain.ErrStructure, colAuthor)
	}
	if c.date, ok = columnIndex(header, colDate); !ok {
		return c, fmt.Errorf("%w: csv header has no %s column", domain.ErrStructure, colDate)
	}
	c.content, _ = columnIndex(header, colContent)
	c.attachments, _ = columnIndex(header, colAttachments)
	return c, nil
}

func (c columns) field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// extractRow maps one CSV record.
func (c columns) extractRow(row []string) (domain.Message, error) {
	if c.author >= len(row) || c.date >= len(row) {
		return domain.Message{}, fmt.Errorf("%w: row has %d fields", domain.ErrInvalidRecord, len(row))
	}
	sender := row[c.author]
	if sender == "" {
		return domain.Message{}, domain.ErrEmptySender
	}
	ts, err := parseTime(row[c.date])
	if err != nil {
		return domain.Message{}, err
	}

	var urls []string
	for _, u := range strings.Split(c.field(row, c.attachments), ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return domain.NewMessage(sender, withAttachments(c.field(row, c.content), urls), ts), nil
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return cr
}

func csvStructural(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("%w: %v", domain.ErrStructure, err)
	}
	return err
}

// readCSVHeader consumes the header row.
func readCSVHeader(cr *csv.Reader) (columns, error) {
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return columns{}, fmt.Errorf("%w: empty csv export", domain.ErrStructure)
	}
	if err != nil {
		return columns{}, csvStructural(err)
	}
	return newColumns(header)
}

// collectCSV reads every row into memory before extracting any.
func collectCSV(ctx context.Context, r io.Reader) ([]domain.Message, error) {
	cr := newCSVReader(r)
	cols, err := readCSVHeader(cr)
	if err != nil {
		return nil, err
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, csvStructural(err)
	}

	msgs := make([]domain.Message, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		msg, err := cols.extractRow(row)
		if err != nil {
			return nil, domain.NewRecordError(domain.PlatformDiscord, i+1, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// csvSource extracts one row per pull.
type csvSource struct {
	ctx   context.Context
	cr    *csv.Reader
	cols  columns
	index int
	err   error
}

func newCSVSource(ctx context.Context, r io.Reader) (*csvSource, error) {
	cr := newCSVReader(r)
	cols, err := readCSVHeader(cr)
	if err != nil {
		return nil, err
	}
	return &csvSource{ctx: ctx, cr: cr, cols: cols}, nil
}

func (s *csvSource) Next() (domain.Message, error) {
	if s.err != nil {
		return domain.Message{}, s.err
	}
	if err := s.ctx.Err(); err != nil {
		s.err = err
		return domain.Message{}, err
	}
	row, err := s.cr.Read()
	if err != nil {
		s.err = csvStructural(err)
		return domain.Message{}, s.err
	}
	s.index++
	msg, err := s.cols.extractRow(row)
	if err != nil {
		return domain.Message{}, domain.NewRecordError(domain.PlatformDiscord, s.index, err)
	}
	return msg, nil
}
