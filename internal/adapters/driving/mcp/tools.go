package mcp

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driving"
)

// ConvertInput is the input schema for the convert_chat tool.
type ConvertInput struct {
	Platform   string `json:"platform" jsonschema:"export platform: telegram, whatsapp, instagram, discord (or tg, wa, ig, dc)"`
	Path       string `json:"path" jsonschema:"path to the export file"`
	Format     string `json:"format,omitempty" jsonschema:"output format: csv (default), json or jsonl"`
	Timestamps bool   `json:"timestamps,omitempty" jsonschema:"include message timestamps"`
	Replies    bool   `json:"replies,omitempty" jsonschema:"include reply references"`
	Edited     bool   `json:"edited,omitempty" jsonschema:"include edit timestamps"`
	IDs        bool   `json:"ids,omitempty" jsonschema:"include message ids"`
	Merge      *bool  `json:"merge,omitempty" jsonschema:"merge consecutive messages from one sender (default true)"`
	After      string `json:"after,omitempty" jsonschema:"only messages on or after this date (YYYY-MM-DD)"`
	Before     string `json:"before,omitempty" jsonschema:"only messages on or before this date (YYYY-MM-DD)"`
	From       string `json:"from,omitempty" jsonschema:"only messages from this sender"`
}

// ConvertOutput is the output schema for the convert_chat tool.
type ConvertOutput struct {
	Content  string `json:"content"`
	Format   string `json:"format"`
	Messages int    `json:"messages"`
	Parsed   int    `json:"parsed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "convert_chat",
		Description: "Convert a Telegram, WhatsApp, Instagram or Discord export into compact CSV, JSON or JSONL",
	}, s.handleConvert)
}

// handleConvert handles the convert_chat tool invocation.
func (s *Server) handleConvert(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConvertInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	req, err := convertRequest(input)
	if err != nil {
		return nil, ConvertOutput{}, err
	}

	var buf bytes.Buffer
	result, err := s.ports.Convert.ConvertTo(ctx, req, &buf)
	if err != nil {
		return nil, ConvertOutput{}, fmt.Errorf("converting %s export: %w", req.Platform.DisplayName(), err)
	}

	return nil, ConvertOutput{
		Content:  buf.String(),
		Format:   string(req.Format),
		Messages: result.Stats.Written,
		Parsed:   result.Stats.Parsed,
	}, nil
}

func convertRequest(input ConvertInput) (driving.ConvertRequest, error) {
	platform, err := domain.ParsePlatform(input.Platform)
	if err != nil {
		return driving.ConvertRequest{}, err
	}

	if input.Path == "" {
		return driving.ConvertRequest{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}
	if info, err := os.Stat(input.Path); err != nil || info.IsDir() {
		return driving.ConvertRequest{}, fmt.Errorf("%w: input file not found: %s", domain.ErrInvalidInput, input.Path)
	}

	format := domain.FormatCSV
	if input.Format != "" {
		if format, err = domain.ParseOutputFormat(input.Format); err != nil {
			return driving.ConvertRequest{}, err
		}
	}

	filter := domain.NewFilterConfig()
	if input.After != "" {
		if filter, err = filter.WithDateFrom(input.After); err != nil {
			return driving.ConvertRequest{}, err
		}
	}
	if input.Before != "" {
		if filter, err = filter.WithDateTo(input.Before); err != nil {
			return driving.ConvertRequest{}, err
		}
	}
	if input.From != "" {
		filter = filter.WithSender(input.From)
	}

	merge := true
	if input.Merge != nil {
		merge = *input.Merge
	}

	return driving.ConvertRequest{
		Platform:  platform,
		InputPath: input.Path,
		Format:    format,
		Filter:    filter,
		Output: domain.OutputConfig{
			Timestamps: input.Timestamps,
			Replies:    input.Replies,
			Edited:     input.Edited,
			IDs:        input.IDs,
		},
		Merge:     merge,
		Streaming: true,
	}, nil
}
