package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chatpack/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for chatpack resources.
	uriScheme = "chatpack://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "platforms",
		Name:        "platforms",
		Description: "Supported export platforms and output formats",
		MIMEType:    "application/json",
	}, s.handlePlatformsResource)
}

type platformInfo struct {
	Name  string `json:"name"`
	Alias string `json:"alias"`
	Label string `json:"label"`
}

type capabilities struct {
	Platforms []platformInfo `json:"platforms"`
	Formats   []string       `json:"formats"`
}

// handlePlatformsResource lists what convert_chat accepts.
func (s *Server) handlePlatformsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(listCapabilities(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling platforms: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func listCapabilities() capabilities {
	var c capabilities
	for _, p := range domain.Platforms() {
		c.Platforms = append(c.Platforms, platformInfo{
			Name:  string(p),
			Alias: p.Alias(),
			Label: p.DisplayName(),
		})
	}
	for _, f := range domain.OutputFormats() {
		c.Formats = append(c.Formats, string(f))
	}
	return c
}
