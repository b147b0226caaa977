package postprocessors

import (
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/postprocessors/filter"
	"github.com/custodia-labs/chatpack/internal/postprocessors/merge"
)

// Ensure Factory implements the interface.
var _ driven.PipelineFactory = (*Factory)(nil)

// Factory assembles filter and merge pipelines from a registry.
type Factory struct {
	registry *Registry
}

// NewFactory creates a factory over the given registry.
// A nil registry gets the built-in processors.
func NewFactory(registry *Registry) *Factory {
	if registry == nil {
		registry = NewRegistry()
		RegisterDefaults(registry)
	}
	return &Factory{registry: registry}
}

// Build returns a fresh pipeline: filter, an optional observer, then merge.
// Filtering runs before merging so that merged records only ever
// combine messages that individually passed the filter.
func (f *Factory) Build(spec driven.PipelineSpec) (driven.ProcessorPipeline, error) {
	pipeline := NewPipeline()

	proc, err := f.registry.Build(filter.Name, map[string]any{"config": spec.Filter})
	if err != nil {
		return nil, err
	}
	pipeline.Add(proc)

	if spec.OnFiltered != nil {
		pipeline.Add(NewTap("observe", spec.OnFiltered))
	}

	if spec.Merge {
		proc, err := f.registry.Build(merge.Name, nil)
		if err != nil {
			return nil, err
		}
		pipeline.Add(proc)
	}

	return pipeline, nil
}
