package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driving"
	"github.com/custodia-labs/chatpack/internal/logger"
)

// DefaultOutputName is the output file stem used when -o is not given.
const DefaultOutputName = "optimized_chat"

// Config keys read as defaults for the convert flags.
const (
	keyFormat      = "output.format"
	keyTimestamps  = "output.timestamps"
	keyReplies     = "output.replies"
	keyEdited      = "output.edited"
	keyIDs         = "output.ids"
	keyMerge       = "pipeline.merge"
	keyStreaming   = "pipeline.streaming"
	keySkipInvalid = "pipeline.skip_invalid"
)

var convertOpts struct {
	output      string
	format      string
	timestamps  bool
	replies     bool
	edited      bool
	ids         bool
	noMerge     bool
	after       string
	before      string
	from        string
	noStreaming bool
	skipInvalid bool
	progress    bool
}

func addConvertFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&convertOpts.output, "output", "o", "", "output file (default optimized_chat.<format>)")
	f.StringVarP(&convertOpts.format, "format", "f", string(domain.FormatCSV), "output format: csv, json or jsonl")
	f.BoolVarP(&convertOpts.timestamps, "timestamps", "t", false, "include message timestamps")
	f.BoolVarP(&convertOpts.replies, "replies", "r", false, "include reply references")
	f.BoolVarP(&convertOpts.edited, "edited", "e", false, "include edit timestamps")
	f.BoolVar(&convertOpts.ids, "ids", false, "include message ids")
	f.BoolVar(&convertOpts.noMerge, "no-merge", false, "keep consecutive messages from one sender separate")
	f.StringVar(&convertOpts.after, "after", "", "only messages on or after this date (YYYY-MM-DD)")
	f.StringVar(&convertOpts.before, "before", "", "only messages on or before this date (YYYY-MM-DD)")
	f.StringVar(&convertOpts.from, "from", "", "only messages from this sender")
	f.BoolVar(&convertOpts.noStreaming, "no-streaming", false, "load the whole export into memory")
	f.BoolVar(&convertOpts.skipInvalid, "skip-invalid", false, "skip malformed messages instead of failing (streaming only)")
	f.BoolVarP(&convertOpts.progress, "progress", "p", false, "report progress while parsing")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if convertService == nil {
		return errors.New("convert service not configured")
	}

	req, err := buildRequest(cmd, args)
	if err != nil {
		return err
	}

	logger.Info("Parsing %s export: %s", req.Platform.DisplayName(), req.InputPath)
	logger.Debug("converting %s export %s to %s (streaming=%t merge=%t)",
		req.Platform.DisplayName(), req.InputPath, req.Format, req.Streaming, req.Merge)

	result, err := convertService.Convert(cmd.Context(), req)
	logger.EndProgress()
	if err != nil {
		return describeError(req.Platform, err)
	}

	if !quiet {
		printSummary(cmd.ErrOrStderr(), req, result)
	}
	return nil
}

// buildRequest resolves arguments, flags and config defaults into a request.
// Flags set on the command line win over config values.
func buildRequest(cmd *cobra.Command, args []string) (driving.ConvertRequest, error) {
	platform, err := domain.ParsePlatform(args[0])
	if err != nil {
		return driving.ConvertRequest{}, fmt.Errorf("unknown platform '%s', expected one of: %s", args[0], platformList())
	}

	input := args[1]
	if info, err := os.Stat(input); err != nil || info.IsDir() {
		return driving.ConvertRequest{}, fmt.Errorf("Input file not found: %s", input)
	}

	formatName := convertOpts.format
	if !cmd.Flags().Changed("format") {
		if v := configStore.GetString(keyFormat); v != "" {
			formatName = v
		}
	}
	format, err := domain.ParseOutputFormat(formatName)
	if err != nil {
		return driving.ConvertRequest{}, fmt.Errorf("unknown format '%s', expected csv, json or jsonl", formatName)
	}

	filter, err := buildFilter()
	if err != nil {
		return driving.ConvertRequest{}, err
	}

	output := domain.OutputConfig{
		Timestamps: setting(cmd, "timestamps", keyTimestamps, convertOpts.timestamps, false),
		Replies:    setting(cmd, "replies", keyReplies, convertOpts.replies, false),
		Edited:     setting(cmd, "edited", keyEdited, convertOpts.edited, false),
		IDs:        setting(cmd, "ids", keyIDs, convertOpts.ids, false),
	}

	outputPath := convertOpts.output
	if outputPath == "" {
		outputPath = DefaultOutputName + format.Extension()
	}

	req := driving.ConvertRequest{
		Platform:    platform,
		InputPath:   input,
		OutputPath:  outputPath,
		Format:      format,
		Filter:      filter,
		Output:      output,
		Merge:       !setting(cmd, "no-merge", keyMerge, convertOpts.noMerge, true),
		Streaming:   !setting(cmd, "no-streaming", keyStreaming, convertOpts.noStreaming, true),
		SkipInvalid: setting(cmd, "skip-invalid", keySkipInvalid, convertOpts.skipInvalid, false),
	}
	if convertOpts.progress {
		req.Progress = func(parsed int) {
			logger.Progress("Processed %s messages", humanize.Comma(int64(parsed)))
		}
	}
	return req, nil
}

func buildFilter() (domain.FilterConfig, error) {
	filter := domain.NewFilterConfig()
	var err error
	if convertOpts.after != "" {
		if filter, err = filter.WithDateFrom(convertOpts.after); err != nil {
			return filter, fmt.Errorf("Invalid --after date format: '%s'. Expected YYYY-MM-DD", convertOpts.after)
		}
	}
	if convertOpts.before != "" {
		if filter, err = filter.WithDateTo(convertOpts.before); err != nil {
			return filter, fmt.Errorf("Invalid --before date format: '%s'. Expected YYYY-MM-DD", convertOpts.before)
		}
	}
	if convertOpts.from != "" {
		filter = filter.WithSender(convertOpts.from)
	}
	return filter, nil
}

// setting returns the flag value when it was given, else the config value.
// invert is set for --no-* flags whose config key holds the positive form.
func setting(cmd *cobra.Command, flag, key string, flagValue, invert bool) bool {
	if cmd.Flags().Changed(flag) {
		return flagValue
	}
	if _, ok := configStore.Get(key); !ok {
		return flagValue
	}
	v := configStore.GetBool(key)
	if invert {
		return !v
	}
	return v
}

// describeError renders a conversion failure with the context users act on.
func describeError(p domain.Platform, err error) error {
	var stageErr *domain.StageError
	if !errors.As(err, &stageErr) {
		return err
	}
	switch stageErr.Stage {
	case domain.StageParse:
		if re, ok := domain.IsRecordError(err); ok {
			return fmt.Errorf("Failed to parse %s export: Error at message %d: %w", p.DisplayName(), re.Index, re.Err)
		}
		return fmt.Errorf("Failed to parse %s export: %w", p.DisplayName(), stageErr.Err)
	case domain.StageRead:
		return fmt.Errorf("Failed to read input: %w", stageErr.Err)
	case domain.StageWrite:
		return fmt.Errorf("Failed to write output: %w", stageErr.Err)
	default:
		return fmt.Errorf("%s failed: %w", stageErr.Stage, stageErr.Err)
	}
}

func platformList() string {
	names := make([]string, 0, len(domain.Platforms()))
	for _, p := range domain.Platforms() {
		names = append(names, fmt.Sprintf("%s (%s)", p, p.Alias()))
	}
	return strings.Join(names, ", ")
}
