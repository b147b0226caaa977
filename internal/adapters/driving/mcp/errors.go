// Package mcp provides an MCP (Model Context Protocol) server adapter for chatpack.
// It lets AI assistants convert chat exports without writing files.
package mcp

import "errors"

// ErrMissingConvertService is returned when the convert service is not provided.
var ErrMissingConvertService = errors.New("mcp: convert service is required")
