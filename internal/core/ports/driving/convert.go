package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/chatpack/internal/core/domain"
)

// ConvertService turns a chat export into an LLM-friendly document.
type ConvertService interface {
	// Convert reads req.InputPath and writes req.OutputPath.
	// The output file is replaced only when the whole conversion succeeds.
	Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error)

	// ConvertTo reads req.InputPath and writes the document to w.
	// req.OutputPath is ignored.
	ConvertTo(ctx context.Context, req ConvertRequest, w io.Writer) (*ConvertResult, error)
}

// ConvertRequest describes one conversion run.
// Paths are already resolved and the input is known to exist.
type ConvertRequest struct {
	// Platform selects the parser.
	Platform domain.Platform

	// InputPath is the export file.
	InputPath string

	// OutputPath is the destination file.
	OutputPath string

	// Format selects the writer.
	Format domain.OutputFormat

	// Filter holds already-validated filter bounds.
	Filter domain.FilterConfig

	// Output selects optional output fields.
	Output domain.OutputConfig

	// Merge folds consecutive messages from the same sender.
	Merge bool

	// Streaming reads the export lazily instead of loading it whole.
	Streaming bool

	// SkipInvalid continues past malformed records in streaming mode.
	// Without it the first malformed record aborts the run.
	SkipInvalid bool

	// Progress, when set, is called every ProgressEvery parsed messages
	// and once more at the end.
	Progress func(parsed int)

	// ProgressEvery defaults to 10000.
	ProgressEvery int
}

// ConvertResult reports what a conversion did.
type ConvertResult struct {
	// Stats holds the message counts.
	Stats domain.Stats

	// OutputPath is where the document was written, empty for ConvertTo.
	OutputPath string
}
