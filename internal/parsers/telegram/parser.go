// Package telegram parses Telegram Desktop JSON exports (result.json).
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/parsers/jsonstream"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// dateLayout is the local-time form of "date" and "edited", read as UTC.
const dateLayout = "2006-01-02T15:04:05"

// Parser handles Telegram exports.
type Parser struct{}

// New creates a new Telegram parser.
func New() *Parser {
	return &Parser{}
}

// Platform returns the platform this parser handles.
func (p *Parser) Platform() domain.Platform {
	return domain.PlatformTelegram
}

// Parse reads the whole export.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]domain.Message, error) {
	elems, err := jsonstream.ReadAll(r, "messages")
	if err != nil {
		return nil, err
	}
	return jsonstream.Collect(ctx, domain.PlatformTelegram, elems, extract)
}

// Stream opens the export for one-at-a-time reading.
func (p *Parser) Stream(ctx context.Context, r io.Reader) (driven.MessageSource, error) {
	arr, err := jsonstream.Open(r, "messages")
	if err != nil {
		return nil, err
	}
	return jsonstream.Source(ctx, domain.PlatformTelegram, arr, extract), nil
}

// event is the subset of a Telegram message object we read.
type event struct {
	ID             json.RawMessage `json:"id"`
	Type           string          `json:"type"`
	Date           string          `json:"date"`
	DateUnixtime   string          `json:"date_unixtime"`
	Edited         string          `json:"edited"`
	EditedUnixtime string          `json:"edited_unixtime"`
	From           *string         `json:"from"`
	FromID         json.RawMessage `json:"from_id"`
	Text           json.RawMessage `json:"text"`
	ReplyTo        json.RawMessage `json:"reply_to_message_id"`
}

func extract(raw json.RawMessage) (domain.Message, bool, error) {
	var ev event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return domain.Message{}, false, fmt.Errorf("decode message: %w", err)
	}
	if ev.Type != "message" {
		return domain.Message{}, false, nil
	}

	sender := ""
	if ev.From != nil {
		sender = *ev.From
	}
	if sender == "" {
		sender = scalar(ev.FromID)
	}
	if sender == "" {
		return domain.Message{}, false, domain.ErrEmptySender
	}

	ts, err := timestamp(ev.DateUnixtime, ev.Date)
	if err != nil {
		return domain.Message{}, false, err
	}

	content, err := text(ev.Text)
	if err != nil {
		return domain.Message{}, false, err
	}

	msg := domain.NewMessage(sender, content, ts)
	if id := scalar(ev.ID); id != "" {
		msg = msg.WithID(id)
	}
	if reply := scalar(ev.ReplyTo); reply != "" {
		msg = msg.WithReplyTo(reply)
	}
	if ev.EditedUnixtime != "" || ev.Edited != "" {
		edited, err := timestamp(ev.EditedUnixtime, ev.Edited)
		if err != nil {
			return domain.Message{}, false, fmt.Errorf("edited: %w", err)
		}
		msg = msg.WithEditedAt(edited)
	}
	return msg, true, nil
}

// timestamp prefers the unix form, falling back to the local form as UTC.
func timestamp(unix, local string) (time.Time, error) {
	if unix != "" {
		sec, err := strconv.ParseInt(unix, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidTimestamp, unix)
		}
		return time.Unix(sec, 0).UTC(), nil
	}
	t, err := time.ParseInLocation(dateLayout, local, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidTimestamp, local)
	}
	return t, nil
}

// text flattens "text", which is a string or an array of strings and
// entity objects carrying their own "text".
func text(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return "", fmt.Errorf("text: %w", err)
	}
	var b strings.Builder
	for _, part := range parts {
		var piece string
		if err := json.Unmarshal(part, &piece); err == nil {
			b.WriteString(piece)
			continue
		}
		var entity struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(part, &entity); err != nil {
			return "", fmt.Errorf("text entity: %w", err)
		}
		b.WriteString(entity.Text)
	}
	return b.String(), nil
}

// scalar renders a JSON string or number as text; anything else is "".
func scalar(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
