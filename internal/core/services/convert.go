package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/core/ports/driving"
	"github.com/custodia-labs/chatpack/internal/logger"
)

// Ensure ConvertService implements the interface.
var _ driving.ConvertService = (*ConvertService)(nil)

// DefaultProgressEvery is how many parsed messages pass between progress reports.
const DefaultProgressEvery = 10000

// ConvertService runs parse, filter, merge and write for one export.
type ConvertService struct {
	parsers   driven.ParserRegistry
	writers   driven.WriterRegistry
	pipelines driven.PipelineFactory
}

// NewConvertService creates a new conversion service.
func NewConvertService(
	parsers driven.ParserRegistry,
	writers driven.WriterRegistry,
	pipelines driven.PipelineFactory,
) *ConvertService {
	return &ConvertService{
		parsers:   parsers,
		writers:   writers,
		pipelines: pipelines,
	}
}

// Convert writes the document to a temporary file beside req.OutputPath and
// renames it into place once complete. On failure the destination is untouched.
func (s *ConvertService) Convert(ctx context.Context, req driving.ConvertRequest) (*driving.ConvertResult, error) {
	if req.OutputPath == "" {
		return nil, fmt.Errorf("%w: output path is required", domain.ErrInvalidInput)
	}
	// Resolve both ends before creating anything on disk.
	if _, err := s.parsers.Get(req.Platform); err != nil {
		return nil, err
	}
	if _, err := s.writers.Get(req.Format); err != nil {
		return nil, err
	}

	dir, name := filepath.Split(req.OutputPath)
	tmpPath := filepath.Join(dir, "."+name+"."+uuid.New().String()+".tmp")
	logger.Debug("Writing to temporary file %s", tmpPath)

	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, domain.AtStage(domain.StageWrite, err)
	}

	stats, err := s.run(ctx, req, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = domain.AtStage(domain.StageWrite, closeErr)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return nil, err
	}

	if err := os.Rename(tmpPath, req.OutputPath); err != nil {
		_ = os.Remove(tmpPath)
		return nil, domain.AtStage(domain.StageWrite, err)
	}

	return &driving.ConvertResult{Stats: stats, OutputPath: req.OutputPath}, nil
}

// ConvertTo writes the document to w. A failed run may leave partial output on w.
func (s *ConvertService) ConvertTo(ctx context.Context, req driving.ConvertRequest, w io.Writer) (*driving.ConvertResult, error) {
	stats, err := s.run(ctx, req, w)
	if err != nil {
		return nil, err
	}
	return &driving.ConvertResult{Stats: stats}, nil
}

func (s *ConvertService) run(ctx context.Context, req driving.ConvertRequest, w io.Writer) (domain.Stats, error) {
	logger.Section("Convert")
	logger.Debug("Platform: %s, format: %s, streaming: %t, merge: %t",
		req.Platform, req.Format, req.Streaming, req.Merge)

	var stats domain.Stats

	parser, err := s.parsers.Get(req.Platform)
	if err != nil {
		return stats, err
	}
	writer, err := s.writers.Get(req.Format)
	if err != nil {
		return stats, err
	}

	pipeline, err := s.pipelines.Build(driven.PipelineSpec{
		Filter:     req.Filter,
		Merge:      req.Merge,
		OnFiltered: func(domain.Message) { stats.Filtered++ },
	})
	if err != nil {
		return stats, err
	}

	in, err := os.Open(req.InputPath)
	if err != nil {
		return stats, domain.AtStage(domain.StageRead, err)
	}
	defer in.Close()

	rw, err := writer.Open(w, req.Output)
	if err != nil {
		return stats, domain.AtStage(domain.StageWrite, err)
	}
	emit := func(msg domain.Message) error {
		if err := rw.Write(msg); err != nil {
			return domain.AtStage(domain.StageWrite, err)
		}
		stats.Written++
		return nil
	}

	p := progress{report: req.Progress, every: req.ProgressEvery}
	if req.Streaming {
		err = s.stream(ctx, req, parser, in, pipeline, emit, &stats, &p)
	} else {
		err = s.eager(ctx, req, parser, in, pipeline, emit, &stats)
	}
	if err != nil {
		return stats, err
	}

	if err := rw.Close(); err != nil {
		return stats, domain.AtStage(domain.StageWrite, err)
	}
	p.done(stats.Parsed)

	logger.Debug("Parsed %d, filtered %d, written %d, skipped %d",
		stats.Parsed, stats.Filtered, stats.Written, stats.Skipped)
	return stats, nil
}

// eager loads every message before any is filtered or written.
func (s *ConvertService) eager(
	ctx context.Context,
	req driving.ConvertRequest,
	parser driven.Parser,
	in io.Reader,
	pipeline driven.ProcessorPipeline,
	emit driven.Emit,
	stats *domain.Stats,
) error {
	msgs, err := parser.Parse(ctx, in)
	if err != nil {
		return domain.AtStage(domain.StageParse, err)
	}
	stats.Parsed = len(msgs)
	logger.Debug("Loaded %d messages", len(msgs))

	out, err := pipeline.Run(msgs)
	if err != nil {
		return processErr(req, err)
	}
	for _, msg := range out {
		if err := emit(msg); err != nil {
			return err
		}
	}
	return nil
}

// stream pulls one message at a time through the pipeline into the writer.
func (s *ConvertService) stream(
	ctx context.Context,
	req driving.ConvertRequest,
	parser driven.Parser,
	in io.Reader,
	pipeline driven.ProcessorPipeline,
	emit driven.Emit,
	stats *domain.Stats,
	p *progress,
) error {
	src, err := parser.Stream(ctx, in)
	if err != nil {
		return domain.AtStage(domain.StageParse, err)
	}

	for {
		msg, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if re, ok := domain.IsRecordError(err); ok {
			if !req.SkipInvalid {
				return domain.AtStage(domain.StageParse, re)
			}
			stats.Skipped++
			logger.Warn("Skipping message %d: %v", re.Index, re.Err)
			continue
		}
		if err != nil {
			return domain.AtStage(domain.StageParse, err)
		}

		stats.Parsed++
		p.tick(stats.Parsed)
		if err := pipeline.Push(msg, emit); err != nil {
			return processErr(req, err)
		}
	}

	if err := pipeline.Flush(emit); err != nil {
		return processErr(req, err)
	}
	return nil
}

// processErr attributes a pipeline failure to its stage. Writer failures
// surfacing through emit already carry theirs.
func processErr(req driving.ConvertRequest, err error) error {
	var se *domain.StageError
	if errors.As(err, &se) {
		return err
	}
	if req.Merge {
		return domain.AtStage(domain.StageMerge, err)
	}
	return domain.AtStage(domain.StageFilter, err)
}

// progress calls report every `every` messages and once at the end.
type progress struct {
	report func(int)
	every  int
	last   int
}

func (p *progress) tick(n int) {
	if p.report == nil {
		return
	}
	every := p.every
	if every <= 0 {
		every = DefaultProgressEvery
	}
	if n%every == 0 {
		p.report(n)
		p.last = n
	}
}

func (p *progress) done(n int) {
	if p.report != nil && (p.last != n || n == 0) {
		p.report(n)
	}
}
