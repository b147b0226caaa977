package mcp

import (
	"github.com/custodia-labs/chatpack/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Convert runs conversions.
	Convert driving.ConvertService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Convert == nil {
		return ErrMissingConvertService
	}
	return nil
}
