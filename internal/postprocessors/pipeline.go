// Package postprocessors provides the message processing stages that run
// between parsing and writing.
package postprocessors

import (
	"fmt"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.ProcessorPipeline = (*Pipeline)(nil)

// Pipeline chains multiple Processors and runs them in order.
// Messages are pushed through one at a time, so the same pipeline serves
// a fully loaded slice and a lazy source identically.
type Pipeline struct {
	processors []driven.Processor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.Processor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Push runs one message through all processors in order.
// Messages that reach the end of the chain are passed to emit.
func (p *Pipeline) Push(msg domain.Message, emit driven.Emit) error {
	return p.push(0, msg, emit)
}

func (p *Pipeline) push(stage int, msg domain.Message, emit driven.Emit) error {
	if stage == len(p.processors) {
		return emit(msg)
	}

	processor := p.processors[stage]
	var downstream error
	err := processor.Process(msg, func(out domain.Message) error {
		downstream = p.push(stage+1, out, emit)
		return downstream
	})
	if err != nil && err != downstream {
		return fmt.Errorf("processor %s: %w", processor.Name(), err)
	}
	return err
}

// Flush flushes each processor in order. Whatever a processor releases
// still runs through the processors after it.
func (p *Pipeline) Flush(emit driven.Emit) error {
	for i, processor := range p.processors {
		var downstream error
		err := processor.Flush(func(out domain.Message) error {
			downstream = p.push(i+1, out, emit)
			return downstream
		})
		if err != nil {
			if err != downstream {
				return fmt.Errorf("processor %s: %w", processor.Name(), err)
			}
			return err
		}
	}
	return nil
}

// Run pushes every message, flushes, and returns the collected output.
func (p *Pipeline) Run(msgs []domain.Message) ([]domain.Message, error) {
	out := make([]domain.Message, 0, len(msgs))
	collect := func(msg domain.Message) error {
		out = append(out, msg)
		return nil
	}

	for _, msg := range msgs {
		if err := p.Push(msg, collect); err != nil {
			return nil, err
		}
	}
	if err := p.Flush(collect); err != nil {
		return nil, err
	}

	return out, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.Processor) {
	p.processors = append(p.processors, processor)
}
