package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/core/ports/driving"
	"github.com/custodia-labs/chatpack/internal/postprocessors"
)

var fixtures = map[domain.Platform]string{
	domain.PlatformTelegram: `{"name": "chat", "messages": [
		{"id": 1, "type": "message", "date_unixtime": "1705312800", "from": "Alice", "text": "Hi"},
		{"id": 2, "type": "message", "date_unixtime": "1705312860", "from": "Alice", "text": "there"},
		{"id": 3, "type": "service", "date_unixtime": "1705312870", "actor": "Bob", "text": ""},
		{"id": 4, "type": "message", "date_unixtime": "1705399200", "from": "Bob", "reply_to_message_id": 2,
		 "edited_unixtime": "1705399300", "text": ["see ", {"type": "link", "text": "x.com"}]},
		{"id": 5, "type": "message", "date_unixtime": "1705485600", "from": "Alice", "text": "bye, all"}
	]}`,
	domain.PlatformWhatsApp: "[15/01/2024, 10:00:00] Alice: Hi\n" +
		"[15/01/2024, 10:01:00] Alice: there\n" +
		"and more\n" +
		"[16/01/2024, 10:00:00] Bob: see x.com <This message was edited>\n" +
		"[16/01/2024, 10:05:00] Bob left\n" +
		"[17/01/2024, 10:00:00] Alice: bye, all\n",
	domain.PlatformInstagram: `{"participants": [], "messages": [
		{"sender_name": "Alice", "timestamp_ms": 1705312800000, "content": "Hi"},
		{"sender_name": "Alice", "timestamp_ms": 1705312860000, "content": "there"},
		{"sender_name": "Bob", "timestamp_ms": 1705399200000, "share": {"link": "https://x.com"}},
		{"sender_name": "Alice", "timestamp_ms": 1705485600000, "content": "bye, all"}
	]}`,
	domain.PlatformDiscord: `{"guild": {"name": "g"}, "messages": [
		{"id": "1", "type": "Default", "timestamp": "2024-01-15T10:00:00+00:00", "content": "Hi", "author": {"name": "Alice"}},
		{"id": "2", "type": "Default", "timestamp": "2024-01-15T10:01:00+00:00", "content": "there", "author": {"name": "Alice"}},
		{"id": "3", "type": "Reply", "timestamp": "2024-01-16T10:00:00+00:00", "timestampEdited": "2024-01-16T10:01:40+00:00",
		 "content": "see", "author": {"name": "Bob"}, "reference": {"messageId": "2"},
		 "attachments": [{"url": "https://cdn/x.png"}]},
		{"id": "4", "type": "Default", "timestamp": "2024-01-17T10:00:00+00:00", "content": "bye, all", "author": {"name": "Alice"}}
	]}`,
}

// discordVariants are the other exporter shapes, checked for equivalence too.
var discordVariants = map[string]string{
	"txt": "==============================================================\n" +
		"Guild: g\nChannel: c\n" +
		"==============================================================\n\n" +
		"[1/15/2024 10:00 AM] Alice\nHi\n\n" +
		"[1/15/2024 10:01 AM] Alice\nthere\n\n" +
		"[1/16/2024 10:00 AM] Bob\nsee\n\n",
	"csv": "AuthorID,Author,Date,Content,Attachments,Reactions\n" +
		"1,Alice,2024-01-15T10:00:00+00:00,Hi,,\n" +
		"1,Alice,2024-01-15T10:01:00+00:00,there,,\n" +
		"2,Bob,2024-01-16T10:00:00+00:00,see,https://cdn/x.png,\n",
}

func newService() *ConvertService {
	return NewConvertService(NewDefaultParserRegistry(), NewDefaultWriterRegistry(), postprocessors.NewFactory(nil))
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func convertTo(t *testing.T, req driving.ConvertRequest) (string, *driving.ConvertResult) {
	t.Helper()
	var buf bytes.Buffer
	res, err := newService().ConvertTo(context.Background(), req, &buf)
	require.NoError(t, err)
	return buf.String(), res
}

func TestConvert_CrossModeByteEquality(t *testing.T) {
	afterFilter, err := domain.NewFilterConfig().WithDateFrom("2024-01-16")
	require.NoError(t, err)

	filters := map[string]domain.FilterConfig{
		"none":   domain.NewFilterConfig(),
		"sender": domain.NewFilterConfig().WithSender("Alice"),
		"after":  afterFilter,
	}
	outputs := map[string]domain.OutputConfig{
		"minimal": domain.NewOutputConfig(),
		"all":     domain.AllFields(),
	}

	inputs := map[string]struct {
		platform domain.Platform
		content  string
	}{}
	for p, content := range fixtures {
		inputs[string(p)] = struct {
			platform domain.Platform
			content  string
		}{p, content}
	}
	for name, content := range discordVariants {
		inputs["discord-"+name] = struct {
			platform domain.Platform
			content  string
		}{domain.PlatformDiscord, content}
	}

	for inputName, input := range inputs {
		path := writeInput(t, input.content)
		for _, format := range domain.OutputFormats() {
			for filterName, filter := range filters {
				for outputName, output := range outputs {
					for _, merge := range []bool{true, false} {
						name := strings.Join([]string{inputName, string(format), filterName, outputName, fmt.Sprint("merge=", merge)}, "/")
						t.Run(name, func(t *testing.T) {
							req := driving.ConvertRequest{
								Platform:  input.platform,
								InputPath: path,
								Format:    format,
								Filter:    filter,
								Output:    output,
								Merge:     merge,
							}
							eager, eagerRes := convertTo(t, req)
							req.Streaming = true
							lazy, lazyRes := convertTo(t, req)

							assert.Equal(t, eager, lazy)
							assert.Equal(t, eagerRes.Stats, lazyRes.Stats)
						})
					}
				}
			}
		}
	}
}

func TestConvert_MergedCSVScenario(t *testing.T) {
	path := writeInput(t, fixtures[domain.PlatformTelegram])

	out, res := convertTo(t, driving.ConvertRequest{
		Platform:  domain.PlatformTelegram,
		InputPath: path,
		Format:    domain.FormatCSV,
		Merge:     true,
		Streaming: true,
	})

	assert.Equal(t, "sender,content\nAlice,\"Hi\nthere\"\nBob,see x.com\nAlice,\"bye, all\"\n", out)
	assert.Equal(t, domain.Stats{Parsed: 4, Filtered: 4, Written: 3}, res.Stats)
	assert.Equal(t, 1, res.Stats.MergedAway())
}

func TestConvert_SenderFilterKeepsOrder(t *testing.T) {
	path := writeInput(t, fixtures[domain.PlatformWhatsApp])

	out, res := convertTo(t, driving.ConvertRequest{
		Platform:  domain.PlatformWhatsApp,
		InputPath: path,
		Format:    domain.FormatJSONL,
		Filter:    domain.NewFilterConfig().WithSender("Alice"),
		Output:    domain.NewOutputConfig().WithEdited(),
	})

	assert.Equal(t,
		`{"sender":"Alice","content":"Hi","edited":null}`+"\n"+
			`{"sender":"Alice","content":"there\nand more","edited":null}`+"\n"+
			`{"sender":"Alice","content":"bye, all","edited":null}`+"\n",
		out)
	assert.Equal(t, 4, res.Stats.Parsed)
	assert.Equal(t, 3, res.Stats.Filtered)
}

func TestConvert_WritesFileAtomically(t *testing.T) {
	input := writeInput(t, fixtures[domain.PlatformInstagram])
	dir := t.TempDir()
	output := filepath.Join(dir, "out.json")

	res, err := newService().Convert(context.Background(), driving.ConvertRequest{
		Platform:   domain.PlatformInstagram,
		InputPath:  input,
		OutputPath: output,
		Format:     domain.FormatJSON,
		Merge:      true,
		Streaming:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, output, res.OutputPath)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file is renamed away")
	assert.Equal(t, "out.json", entries[0].Name())
}

func TestConvert_FailureLeavesDestinationUntouched(t *testing.T) {
	input := writeInput(t, `{"messages": [
		{"sender_name": "Alice", "timestamp_ms": 1},
		{"sender_name": "Bob", "timestamp_ms": "never"}
	]}`)
	dir := t.TempDir()
	output := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(output, []byte("previous"), 0o600))

	for _, streaming := range []bool{false, true} {
		_, err := newService().Convert(context.Background(), driving.ConvertRequest{
			Platform:   domain.PlatformInstagram,
			InputPath:  input,
			OutputPath: output,
			Format:     domain.FormatCSV,
			Streaming:  streaming,
		})

		require.Error(t, err)
		var se *domain.StageError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, domain.StageParse, se.Stage)
		re, ok := domain.IsRecordError(err)
		require.True(t, ok)
		assert.Equal(t, 2, re.Index)
	}

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is removed")
}

func TestConvert_SkipInvalid(t *testing.T) {
	input := writeInput(t, `{"messages": [
		{"sender_name": "Alice", "timestamp_ms": 1000, "content": "a"},
		{"sender_name": "Bob", "timestamp_ms": "never"},
		{"sender_name": "Carol", "timestamp_ms": 3000, "content": "c"}
	]}`)

	out, res := convertTo(t, driving.ConvertRequest{
		Platform:    domain.PlatformInstagram,
		InputPath:   input,
		Format:      domain.FormatCSV,
		Streaming:   true,
		SkipInvalid: true,
	})

	assert.Equal(t, "sender,content\nAlice,a\nCarol,c\n", out)
	assert.Equal(t, domain.Stats{Parsed: 2, Filtered: 2, Written: 2, Skipped: 1}, res.Stats)
}

func TestConvert_StructuralErrorIsFatal(t *testing.T) {
	input := writeInput(t, `{"not": "an export"}`)

	for _, streaming := range []bool{false, true} {
		_, err := newService().ConvertTo(context.Background(), driving.ConvertRequest{
			Platform:    domain.PlatformTelegram,
			InputPath:   input,
			Format:      domain.FormatJSON,
			Streaming:   streaming,
			SkipInvalid: true,
		}, io.Discard)

		assert.ErrorIs(t, err, domain.ErrStructure)
	}
}

func TestConvert_MissingInput(t *testing.T) {
	_, err := newService().ConvertTo(context.Background(), driving.ConvertRequest{
		Platform:  domain.PlatformTelegram,
		InputPath: filepath.Join(t.TempDir(), "missing.json"),
		Format:    domain.FormatCSV,
	}, io.Discard)

	var se *domain.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, domain.StageRead, se.Stage)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConvert_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	_, err := newService().Convert(context.Background(), driving.ConvertRequest{
		Platform:   domain.PlatformTelegram,
		InputPath:  writeInput(t, fixtures[domain.PlatformTelegram]),
		OutputPath: filepath.Join(dir, "out.xml"),
		Format:     domain.OutputFormat("xml"),
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("pipe closed") }

func TestConvertTo_WriteErrorCarriesStage(t *testing.T) {
	_, err := newService().ConvertTo(context.Background(), driving.ConvertRequest{
		Platform:  domain.PlatformTelegram,
		InputPath: writeInput(t, fixtures[domain.PlatformTelegram]),
		Format:    domain.FormatJSONL,
	}, brokenWriter{})

	var se *domain.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, domain.StageWrite, se.Stage)
}

func TestConvert_Progress(t *testing.T) {
	input := writeInput(t, fixtures[domain.PlatformTelegram])

	var reports []int
	_, res := convertTo(t, driving.ConvertRequest{
		Platform:      domain.PlatformTelegram,
		InputPath:     input,
		Format:        domain.FormatCSV,
		Streaming:     true,
		ProgressEvery: 2,
		Progress:      func(n int) { reports = append(reports, n) },
	})

	assert.Equal(t, []int{2, 4}, reports, "final count is not repeated")
	assert.Equal(t, 4, res.Stats.Parsed)
}

type failingProcessor struct{}

func (failingProcessor) Name() string { return "failing" }
func (failingProcessor) Process(domain.Message, driven.Emit) error {
	return errors.New("processor broke")
}
func (failingProcessor) Flush(driven.Emit) error { return nil }

type failingFactory struct{}

func (failingFactory) Build(driven.PipelineSpec) (driven.ProcessorPipeline, error) {
	return postprocessors.NewPipeline(failingProcessor{}), nil
}

func TestConvert_ProcessorErrorCarriesStage(t *testing.T) {
	svc := NewConvertService(NewDefaultParserRegistry(), NewDefaultWriterRegistry(), failingFactory{})

	_, err := svc.ConvertTo(context.Background(), driving.ConvertRequest{
		Platform:  domain.PlatformTelegram,
		InputPath: writeInput(t, fixtures[domain.PlatformTelegram]),
		Format:    domain.FormatCSV,
		Merge:     true,
	}, io.Discard)

	var se *domain.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, domain.StageMerge, se.Stage)
	assert.Contains(t, err.Error(), "processor failing")
}
