package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/chatpack/internal/core/domain"
)

// Parser converts one platform export into canonical messages.
// Each platform (Telegram, WhatsApp, Instagram, Discord) implements this interface.
// Parse and Stream apply the same extraction rules and yield the same messages;
// they differ only in when the work happens.
type Parser interface {
	// Platform returns the platform this parser handles.
	Platform() domain.Platform

	// Parse reads the whole export and returns every message in source order.
	// Any malformed record aborts the parse; no partial result is returned.
	Parse(ctx context.Context, r io.Reader) ([]domain.Message, error)

	// Stream opens the export for lazy, one-at-a-time reading.
	// A malformed top-level structure detected while opening is returned here.
	Stream(ctx context.Context, r io.Reader) (MessageSource, error)
}

// ParserRegistry maps platforms to their parsers.
type ParserRegistry interface {
	// Register adds or replaces the parser for its platform.
	Register(p Parser)

	// Get returns the parser for a platform.
	// Returns ErrUnsupportedType if none is registered.
	Get(platform domain.Platform) (Parser, error)

	// Platforms returns the registered platforms.
	Platforms() []domain.Platform
}
