package postprocessors

import (
	"errors"
	"testing"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/postprocessors/filter"
	"github.com/custodia-labs/chatpack/internal/postprocessors/merge"
)

// registryMockProcessor is a simple mock for testing registry functionality.
type registryMockProcessor struct {
	name string
}

func (m *registryMockProcessor) Name() string { return m.name }
func (m *registryMockProcessor) Process(msg domain.Message, emit driven.Emit) error {
	return emit(msg)
}
func (m *registryMockProcessor) Flush(driven.Emit) error { return nil }

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if len(r.builders) != 0 {
		t.Errorf("expected empty builders, got %d", len(r.builders))
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	builder := func(_ map[string]any) (driven.Processor, error) {
		return &registryMockProcessor{name: "test"}, nil
	}

	r.Register("test", builder)

	if _, ok := r.builders["test"]; !ok {
		t.Error("expected 'test' to be registered")
	}
}

func TestRegistry_Build_Unknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build("nonexistent", nil)
	if err == nil {
		t.Error("expected error for unknown processor")
	}
}

func TestRegistry_Build_BuilderError(t *testing.T) {
	r := NewRegistry()
	wantErr := errors.New("bad config")
	r.Register("broken", func(map[string]any) (driven.Processor, error) { return nil, wantErr })

	_, err := r.Build("broken", nil)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected builder error, got %v", err)
	}
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	if len(r.builders) != 2 {
		t.Errorf("expected 2 default processors, got %d", len(r.builders))
	}
	for _, name := range []string{filter.Name, merge.Name} {
		if _, ok := r.builders[name]; !ok {
			t.Errorf("expected %s to be registered", name)
		}
	}
}

func TestBuildFilter_FromStrings(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	proc, err := r.Build(filter.Name, map[string]any{
		"after": "2024-01-15",
		"from":  "Alice",
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	p := NewPipeline(proc)
	out, err := p.Run([]domain.Message{msg("Alice", "kept"), msg("Bob", "dropped")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Sender != "Alice" {
		t.Errorf("unexpected output: %v", out)
	}
}

func TestBuildFilter_InvalidDate(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	_, err := r.Build(filter.Name, map[string]any{"before": "yesterday"})
	if !errors.Is(err, domain.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestBuildMerge_Separator(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	proc, err := r.Build(merge.Name, map[string]any{"separator": " | "})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	out, err := NewPipeline(proc).Run([]domain.Message{msg("Alice", "a"), msg("Alice", "b")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Content != "a | b" {
		t.Errorf("unexpected output: %v", out)
	}
}
