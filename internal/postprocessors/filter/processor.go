// Package filter provides the date range and sender filter stage.
package filter

import (
	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
)

// Name is the registry name of the filter processor.
const Name = "filter"

// Ensure Processor implements the interface.
var _ driven.Processor = (*Processor)(nil)

// Processor drops messages that do not satisfy a FilterConfig.
// It keeps no state between messages.
type Processor struct {
	cfg domain.FilterConfig
}

// New creates a filter processor for cfg.
func New(cfg domain.FilterConfig) *Processor {
	return &Processor{cfg: cfg}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process emits msg only if it matches every configured constraint.
func (p *Processor) Process(msg domain.Message, emit driven.Emit) error {
	if !p.cfg.Matches(msg) {
		return nil
	}
	return emit(msg)
}

// Flush holds nothing.
func (p *Processor) Flush(driven.Emit) error {
	return nil
}

// Apply returns the messages of msgs that match cfg, in order.
func Apply(msgs []domain.Message, cfg domain.FilterConfig) []domain.Message {
	out := make([]domain.Message, 0, len(msgs))
	for _, msg := range msgs {
		if cfg.Matches(msg) {
			out = append(out, msg)
		}
	}
	return out
}
