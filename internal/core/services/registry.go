package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/parsers/discord"
	"github.com/custodia-labs/chatpack/internal/parsers/instagram"
	"github.com/custodia-labs/chatpack/internal/parsers/telegram"
	"github.com/custodia-labs/chatpack/internal/parsers/whatsapp"
	csvwriter "github.com/custodia-labs/chatpack/internal/writers/csv"
	jsonwriter "github.com/custodia-labs/chatpack/internal/writers/json"
	jsonlwriter "github.com/custodia-labs/chatpack/internal/writers/jsonl"
)

// Ensure registries implement the interfaces.
var (
	_ driven.ParserRegistry = (*ParserRegistry)(nil)
	_ driven.WriterRegistry = (*WriterRegistry)(nil)
)

// ParserRegistry maps platforms to parsers.
type ParserRegistry struct {
	mu      sync.RWMutex
	parsers map[domain.Platform]driven.Parser
}

// NewParserRegistry creates a registry holding the given parsers.
func NewParserRegistry(parsers ...driven.Parser) *ParserRegistry {
	r := &ParserRegistry{parsers: make(map[domain.Platform]driven.Parser)}
	for _, p := range parsers {
		r.Register(p)
	}
	return r
}

// NewDefaultParserRegistry creates a registry with every built-in platform.
func NewDefaultParserRegistry() *ParserRegistry {
	return NewParserRegistry(telegram.New(), whatsapp.New(), instagram.New(), discord.New())
}

// Register adds or replaces the parser for its platform.
func (r *ParserRegistry) Register(p driven.Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[p.Platform()] = p
}

// Get returns the parser for a platform.
func (r *ParserRegistry) Get(platform domain.Platform) (driven.Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[platform]
	if !ok {
		return nil, fmt.Errorf("%w: no parser for platform %q", domain.ErrUnsupportedType, platform)
	}
	return p, nil
}

// Platforms returns the registered platforms in sorted order.
func (r *ParserRegistry) Platforms() []domain.Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Platform, 0, len(r.parsers))
	for p := range r.parsers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// WriterRegistry maps output formats to writers.
type WriterRegistry struct {
	mu      sync.RWMutex
	writers map[domain.OutputFormat]driven.Writer
}

// NewWriterRegistry creates a registry holding the given writers.
func NewWriterRegistry(writers ...driven.Writer) *WriterRegistry {
	r := &WriterRegistry{writers: make(map[domain.OutputFormat]driven.Writer)}
	for _, w := range writers {
		r.Register(w)
	}
	return r
}

// NewDefaultWriterRegistry creates a registry with CSV, JSON and JSONL.
func NewDefaultWriterRegistry() *WriterRegistry {
	return NewWriterRegistry(csvwriter.New(), jsonwriter.New(), jsonlwriter.New())
}

// Register adds or replaces the writer for its format.
func (r *WriterRegistry) Register(w driven.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writers[w.Format()] = w
}

// Get returns the writer for a format.
func (r *WriterRegistry) Get(format domain.OutputFormat) (driven.Writer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.writers[format]
	if !ok {
		return nil, fmt.Errorf("%w: no writer for format %q", domain.ErrUnsupportedType, format)
	}
	return w, nil
}
