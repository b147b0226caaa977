package postprocessors

import (
	"fmt"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/postprocessors/filter"
	"github.com/custodia-labs/chatpack/internal/postprocessors/merge"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(filter.Name, buildFilter)
	r.Register(merge.Name, buildMerge)
}

// buildFilter creates a filter processor from generic config.
// Supported config keys:
//   - config (domain.FilterConfig): A pre-built filter, used as the base
//   - after (string): Inclusive lower bound, YYYY-MM-DD
//   - before (string): Inclusive upper bound, YYYY-MM-DD
//   - from (string): Exact sender name
func buildFilter(cfg map[string]any) (driven.Processor, error) {
	fc := domain.NewFilterConfig()
	if cfg == nil {
		return filter.New(fc), nil
	}

	if base, ok := cfg["config"].(domain.FilterConfig); ok {
		fc = base
	}

	var err error
	if after := getStringFromConfig(cfg, "after"); after != "" {
		if fc, err = fc.WithDateFrom(after); err != nil {
			return nil, fmt.Errorf("filter after: %w", err)
		}
	}
	if before := getStringFromConfig(cfg, "before"); before != "" {
		if fc, err = fc.WithDateTo(before); err != nil {
			return nil, fmt.Errorf("filter before: %w", err)
		}
	}
	if from := getStringFromConfig(cfg, "from"); from != "" {
		fc = fc.WithSender(from)
	}

	return filter.New(fc), nil
}

// buildMerge creates a merge processor from generic config.
// Supported config keys:
//   - separator (string): Joins folded contents (default: "\n")
func buildMerge(cfg map[string]any) (driven.Processor, error) {
	var opts []merge.Option
	if sep, ok := cfg["separator"].(string); ok {
		opts = append(opts, merge.WithSeparator(sep))
	}
	return merge.New(opts...), nil
}

// getStringFromConfig safely extracts a string from generic config map.
func getStringFromConfig(cfg map[string]any, key string) string {
	val, ok := cfg[key]
	if !ok {
		return ""
	}
	s, ok := val.(string)
	if !ok {
		return ""
	}
	return s
}
