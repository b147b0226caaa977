// Package whatsapp parses the text files produced by WhatsApp's
// "Export chat" on iOS and Android.
package whatsapp

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/parsers/collect"
	"github.com/custodia-labs/chatpack/internal/parsers/lines"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// editedMarker trails the text of edited messages.
const editedMarker = "<This message was edited>"

// Parser handles WhatsApp chat exports.
type Parser struct{}

// New creates a new WhatsApp parser.
func New() *Parser {
	return &Parser{}
}

// Platform returns the platform this parser handles.
func (p *Parser) Platform() domain.Platform {
	return domain.PlatformWhatsApp
}

// Parse reads the whole export into memory, then assembles messages.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]domain.Message, error) {
	all, err := lines.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return collect.All(ctx, newSource(ctx, lines.Slice(all)))
}

// Stream assembles messages while reading.
func (p *Parser) Stream(ctx context.Context, r io.Reader) (driven.MessageSource, error) {
	return newSource(ctx, lines.Scan(r)), nil
}

// pending is the message being assembled from its header and continuation lines.
type pending struct {
	sender string
	ts     time.Time
	body   []string
}

// source is a two-state machine: idle, or holding one pending message.
// Non-header lines extend the pending message and are dropped when idle.
type source struct {
	ctx    context.Context
	in     lines.Reader
	ahead  []string
	primed bool
	order  dateOrder

	cur    *pending
	queued error
	index  int
	err    error
}

func newSource(ctx context.Context, in lines.Reader) *source {
	return &source{ctx: ctx, in: in}
}

func (s *source) Next() (domain.Message, error) {
	if s.err != nil {
		return domain.Message{}, s.err
	}
	if !s.primed {
		if err := s.prime(); err != nil {
			s.err = err
			return domain.Message{}, err
		}
	}
	if s.queued != nil {
		err := s.queued
		s.queued = nil
		return domain.Message{}, err
	}

	for {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return domain.Message{}, err
		}

		line, err := s.readLine()
		if errors.Is(err, io.EOF) {
			s.err = io.EOF
			if s.cur != nil {
				return s.release(), nil
			}
			return domain.Message{}, io.EOF
		}
		if err != nil {
			s.err = err
			return domain.Message{}, err
		}

		h, ok := parseHeader(line)
		if !ok {
			if s.cur != nil {
				s.cur.body = append(s.cur.body, line)
			}
			continue
		}

		var done *domain.Message
		if s.cur != nil {
			msg := s.release()
			done = &msg
		}

		if recErr := s.open(h); recErr != nil {
			if done == nil {
				return domain.Message{}, recErr
			}
			s.queued = recErr
		}
		if done != nil {
			return *done, nil
		}
	}
}

// open starts a pending message from h. System lines leave the machine idle.
func (s *source) open(h header) error {
	sender, text, ok := h.split()
	if !ok {
		return nil
	}
	s.index++
	ts, err := h.instant(s.order)
	if err != nil {
		return domain.NewRecordError(domain.PlatformWhatsApp, s.index, err)
	}
	s.cur = &pending{sender: sender, ts: ts, body: []string{text}}
	return nil
}

// release finishes the pending message and returns to idle.
func (s *source) release() domain.Message {
	p := s.cur
	s.cur = nil

	content := strings.Join(p.body, "\n")
	trimmed := strings.TrimRight(content, " \t")
	if strings.HasSuffix(trimmed, editedMarker) {
		content = strings.TrimRight(strings.TrimSuffix(trimmed, editedMarker), " \t\n\u200e")
		return domain.NewMessage(p.sender, content, p.ts).WithEditedAt(p.ts)
	}
	return domain.NewMessage(p.sender, content, p.ts)
}

// prime reads ahead until DetectWindow headers or DetectBytes of text are
// seen, fixing the date order for the rest of the export.
func (s *source) prime() error {
	s.primed = true
	var hs []header
	size := 0
	for len(hs) < DetectWindow && size < DetectBytes {
		line, err := s.in.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		s.ahead = append(s.ahead, line)
		size += len(line) + 1
		if h, ok := parseHeader(line); ok {
			hs = append(hs, h)
		}
	}
	s.order = detectOrder(hs)
	return nil
}

func (s *source) readLine() (string, error) {
	if len(s.ahead) > 0 {
		line := s.ahead[0]
		s.ahead = s.ahead[1:]
		return line, nil
	}
	return s.in.Next()
}
