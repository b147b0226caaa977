// Package merge folds consecutive messages from the same sender into one.
package merge

import (
	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
)

// Name is the registry name of the merge processor.
const Name = "merge"

// DefaultSeparator joins the contents of folded messages.
const DefaultSeparator = "\n"

// Ensure Processor implements the interface.
var _ driven.Processor = (*Processor)(nil)

// Processor merges runs of messages with the same sender.
// It carries exactly one message of state, the accumulator, and never
// looks ahead, so it behaves the same over a slice and over a stream.
//
// The merged record keeps the first message's ID, timestamp and reply
// reference. The edit time tracks the latest edited message in the run.
type Processor struct {
	separator string
	acc       *domain.Message
}

// Option configures the merge processor.
type Option func(*Processor)

// WithSeparator sets the string placed between folded contents.
func WithSeparator(sep string) Option {
	return func(p *Processor) {
		p.separator = sep
	}
}

// New creates a merge processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{separator: DefaultSeparator}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process folds msg into the accumulator or releases the accumulator
// and starts a new one.
func (p *Processor) Process(msg domain.Message, emit driven.Emit) error {
	if p.acc != nil && p.acc.Sender == msg.Sender {
		folded := p.fold(*p.acc, msg)
		p.acc = &folded
		return nil
	}

	prev := p.acc
	p.acc = &msg
	if prev != nil {
		return emit(*prev)
	}
	return nil
}

// Flush releases the accumulator, if any.
func (p *Processor) Flush(emit driven.Emit) error {
	if p.acc == nil {
		return nil
	}
	last := *p.acc
	p.acc = nil
	return emit(last)
}

// fold builds a new message; neither input is modified.
func (p *Processor) fold(acc, next domain.Message) domain.Message {
	out := acc
	out.Content = acc.Content + p.separator + next.Content
	if next.EditedAt != nil {
		out.EditedAt = next.EditedAt
	}
	return out
}

// Consecutive merges msgs in one pass and returns the merged sequence.
func Consecutive(msgs []domain.Message) []domain.Message {
	p := New()
	out := make([]domain.Message, 0, len(msgs))
	collect := func(msg domain.Message) error {
		out = append(out, msg)
		return nil
	}
	for _, msg := range msgs {
		_ = p.Process(msg, collect)
	}
	_ = p.Flush(collect)
	return out
}
