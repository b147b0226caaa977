package discord

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/parsers/lines"
)

// [1/15/2024 10:00 AM] Alice
var txtHeader = regexp.MustCompile(`^\[([^\]]+)\]\s+(\S.*)$`)

// sections are the block markers the exporter writes inside a message.
var sections = map[string]bool{
	"{Attachments}": true,
	"{Reactions}":   true,
	"{Embed}":       true,
	"{Stickers}":    true,
}

type txtMessage struct {
	sender string
	ts     time.Time
	body   []string
}

// txtSource assembles messages from a plain-text export. Lines before the
// first header, and the ruled footer banner, belong to no message.
type txtSource struct {
	ctx context.Context
	in  lines.Reader
	cur *txtMessage
	err error

	// rule holds a ruled line seen inside a message until the next line
	// shows whether it opens the footer banner or is message text.
	rule  string
	ruled bool
}

func newTXTSource(ctx context.Context, in lines.Reader) *txtSource {
	return &txtSource{ctx: ctx, in: in}
}

func (s *txtSource) Next() (domain.Message, error) {
	for {
		if s.err != nil {
			return domain.Message{}, s.err
		}
		if err := s.ctx.Err(); err != nil {
			s.err = err
			continue
		}

		line, err := s.in.Next()
		if errors.Is(err, io.EOF) {
			s.err = io.EOF
			s.ruled = false
			if s.cur != nil {
				return s.release(), nil
			}
			continue
		}
		if err != nil {
			s.err = err
			continue
		}

		if s.ruled {
			s.ruled = false
			if isFooter(line) {
				return s.release(), nil
			}
			s.cur.body = append(s.cur.body, s.rule)
		}

		if sender, ts, ok := parseTXTHeader(line); ok {
			var done *domain.Message
			if s.cur != nil {
				msg := s.release()
				done = &msg
			}
			s.cur = &txtMessage{sender: sender, ts: ts}
			if done != nil {
				return *done, nil
			}
			continue
		}

		if isRule(line) {
			if s.cur != nil {
				s.rule, s.ruled = line, true
			}
			continue
		}

		if s.cur != nil && !sections[strings.TrimSpace(line)] {
			s.cur.body = append(s.cur.body, line)
		}
	}
}

func (s *txtSource) release() domain.Message {
	m := s.cur
	s.cur = nil

	body := m.body
	for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
		body = body[:len(body)-1]
	}
	return domain.NewMessage(m.sender, strings.Join(body, "\n"), m.ts)
}

// parseTXTHeader accepts a bracketed line only when the bracket holds a time,
// so message text that starts with a bracket stays text.
func parseTXTHeader(line string) (string, time.Time, bool) {
	m := txtHeader.FindStringSubmatch(line)
	if m == nil {
		return "", time.Time{}, false
	}
	ts, err := parseTime(m[1])
	if err != nil {
		return "", time.Time{}, false
	}
	return strings.TrimSpace(m[2]), ts, true
}

// Exported 2 message(s)
var footer = regexp.MustCompile(`^Exported \d+ message\(s\)$`)

func isFooter(line string) bool {
	return footer.MatchString(strings.TrimSpace(line))
}

func isRule(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) >= 10 && strings.Trim(line, "=") == ""
}
