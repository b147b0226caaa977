package postprocessors

import (
	"testing"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
)

func TestFactory_Build_FilterThenMerge(t *testing.T) {
	f := NewFactory(nil)

	observed := 0
	pipeline, err := f.Build(driven.PipelineSpec{
		Filter:     domain.NewFilterConfig().WithSender("Alice"),
		Merge:      true,
		OnFiltered: func(domain.Message) { observed++ },
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Bob sits between the two Alice messages; once filtered out they become adjacent.
	out, err := pipeline.Run([]domain.Message{
		msg("Alice", "one"),
		msg("Bob", "interrupt"),
		msg("Alice", "two"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if observed != 2 {
		t.Errorf("expected 2 filtered messages observed, got %d", observed)
	}
	if len(out) != 1 || out[0].Content != "one\ntwo" {
		t.Errorf("unexpected output: %v", out)
	}
}

func TestFactory_Build_NoMerge(t *testing.T) {
	f := NewFactory(nil)

	pipeline, err := f.Build(driven.PipelineSpec{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	out, err := pipeline.Run([]domain.Message{msg("Alice", "one"), msg("Alice", "two")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected messages left unmerged, got %d", len(out))
	}
}

func TestFactory_Build_FreshStatePerRun(t *testing.T) {
	f := NewFactory(nil)
	spec := driven.PipelineSpec{Merge: true}

	first, _ := f.Build(spec)
	second, _ := f.Build(spec)

	if err := first.Push(msg("Alice", "held"), func(domain.Message) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := second.Run([]domain.Message{msg("Alice", "fresh")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Content != "fresh" {
		t.Errorf("pipelines must not share merge state, got %v", out)
	}
}
