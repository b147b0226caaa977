package postprocessors

import (
	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
)

// Ensure Tap implements the interface.
var _ driven.Processor = (*Tap)(nil)

// Tap passes every message through unchanged after showing it to a callback.
type Tap struct {
	name string
	fn   func(domain.Message)
}

// NewTap creates a tap with the given name and observer.
func NewTap(name string, fn func(domain.Message)) *Tap {
	return &Tap{name: name, fn: fn}
}

// Name returns the processor name.
func (t *Tap) Name() string {
	return t.name
}

// Process observes msg and emits it.
func (t *Tap) Process(msg domain.Message, emit driven.Emit) error {
	if t.fn != nil {
		t.fn(msg)
	}
	return emit(msg)
}

// Flush holds nothing.
func (t *Tap) Flush(driven.Emit) error {
	return nil
}
