// Package domain defines the core entities for chatpack.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Message: A chat message normalised from any supported export
//   - Platform: The chat platform an export came from
//   - OutputFormat: The serialisation produced by a conversion
//   - FilterConfig: Date range and sender constraints
//   - OutputConfig: Optional fields included in the output
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
