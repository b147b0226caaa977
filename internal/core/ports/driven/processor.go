package driven

import "github.com/custodia-labs/chatpack/internal/core/domain"

// Emit receives messages produced by a processor.
type Emit func(domain.Message) error

// Processor is one stage between parsing and writing (e.g., filter, merge).
// Processors are pushed one message at a time and may hold back a bounded
// amount of state, which they release on Flush. This makes the same stage
// usable over a fully loaded slice and over a lazy MessageSource.
type Processor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process consumes one message and emits zero or more messages.
	Process(msg domain.Message, emit Emit) error

	// Flush emits anything still held after the last message.
	Flush(emit Emit) error
}

// ProcessorPipeline chains multiple Processors.
type ProcessorPipeline interface {
	// Push runs one message through all processors in order.
	Push(msg domain.Message, emit Emit) error

	// Flush flushes every processor in order, feeding each one's
	// remaining output through the processors after it.
	Flush(emit Emit) error

	// Run pushes every message and flushes, returning the collected output.
	Run(msgs []domain.Message) ([]domain.Message, error)
}

// PipelineSpec describes the processing stages of one conversion run.
type PipelineSpec struct {
	// Filter is applied first. The zero value passes everything.
	Filter domain.FilterConfig

	// Merge folds consecutive messages from the same sender.
	Merge bool

	// OnFiltered, when set, observes each message that passed the filter.
	OnFiltered func(domain.Message)
}

// PipelineFactory builds a fresh pipeline for each run.
// Pipelines hold per-run state (the merge accumulator) and are not reused.
type PipelineFactory interface {
	Build(spec PipelineSpec) (ProcessorPipeline, error)
}
