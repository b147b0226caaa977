// Package instagram parses message files from the Instagram data download.
package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/parsers/jsonstream"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// Parser handles Instagram message_N.json files.
type Parser struct{}

// New creates a new Instagram parser.
func New() *Parser {
	return &Parser{}
}

// Platform returns the platform this parser handles.
func (p *Parser) Platform() domain.Platform {
	return domain.PlatformInstagram
}

// Parse reads the whole export.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]domain.Message, error) {
	elems, err := jsonstream.ReadAll(r, "messages")
	if err != nil {
		return nil, err
	}
	return jsonstream.Collect(ctx, domain.PlatformInstagram, elems, extract)
}

// Stream opens the export for one-at-a-time reading.
func (p *Parser) Stream(ctx context.Context, r io.Reader) (driven.MessageSource, error) {
	arr, err := jsonstream.Open(r, "messages")
	if err != nil {
		return nil, err
	}
	return jsonstream.Source(ctx, domain.PlatformInstagram, arr, extract), nil
}

// extract reads the loosely-shaped message object. Every field but the
// sender and the timestamp is optional in this export family.
func extract(raw json.RawMessage) (domain.Message, bool, error) {
	m := gjson.ParseBytes(raw)
	if !m.IsObject() {
		return domain.Message{}, false, fmt.Errorf("%w: message is not an object", domain.ErrInvalidRecord)
	}

	sender := repair(m.Get("sender_name").String())
	if sender == "" {
		return domain.Message{}, false, domain.ErrEmptySender
	}

	ms := m.Get("timestamp_ms")
	if ms.Type != gjson.Number {
		return domain.Message{}, false, fmt.Errorf("%w: timestamp_ms %q", domain.ErrInvalidTimestamp, ms.Raw)
	}

	content := repair(m.Get("content").String())
	if content == "" {
		content = m.Get("share.link").String()
	}

	return domain.NewMessage(sender, content, time.UnixMilli(ms.Int()).UTC()), true, nil
}
