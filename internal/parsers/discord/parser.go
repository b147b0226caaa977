// Package discord parses DiscordChatExporter exports. The exporter writes
// JSON, plain text or CSV; the shape is sniffed from the content.
package discord

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/parsers/collect"
	"github.com/custodia-labs/chatpack/internal/parsers/jsonstream"
	"github.com/custodia-labs/chatpack/internal/parsers/lines"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// Parser handles Discord exports in any of the exporter's formats.
type Parser struct{}

// New creates a new Discord parser.
func New() *Parser {
	return &Parser{}
}

// Platform returns the platform this parser handles.
func (p *Parser) Platform() domain.Platform {
	return domain.PlatformDiscord
}

// Parse reads the whole export.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]domain.Message, error) {
	br, format, err := open(r)
	if err != nil {
		return nil, err
	}

	switch format {
	case formatJSON:
		elems, err := jsonstream.ReadAll(br, "messages")
		if err != nil {
			return nil, err
		}
		return jsonstream.Collect(ctx, domain.PlatformDiscord, elems, extractJSON)
	case formatCSV:
		return collectCSV(ctx, br)
	default:
		all, err := lines.ReadAll(br)
		if err != nil {
			return nil, err
		}
		return collect.All(ctx, newTXTSource(ctx, lines.Slice(all)))
	}
}

// Stream opens the export for one-at-a-time reading.
func (p *Parser) Stream(ctx context.Context, r io.Reader) (driven.MessageSource, error) {
	br, format, err := open(r)
	if err != nil {
		return nil, err
	}

	switch format {
	case formatJSON:
		arr, err := jsonstream.Open(br, "messages")
		if err != nil {
			return nil, err
		}
		return jsonstream.Source(ctx, domain.PlatformDiscord, arr, extractJSON), nil
	case formatCSV:
		src, err := newCSVSource(ctx, br)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return newTXTSource(ctx, lines.Scan(br)), nil
	}
}

// open sniffs the head of r without consuming it, minus any byte order mark.
func open(r io.Reader) (*bufio.Reader, subformat, error) {
	br := bufio.NewReaderSize(r, SniffSize)
	head, err := br.Peek(SniffSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, formatTXT, err
	}
	if bytes.HasPrefix(head, bom) {
		if _, err := br.Discard(len(bom)); err != nil {
			return nil, formatTXT, err
		}
	}
	return br, sniff(head), nil
}
