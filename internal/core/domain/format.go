package domain

import (
	"fmt"
	"strings"
)

// OutputFormat is the serialisation written by a conversion.
type OutputFormat string

const (
	// FormatCSV is comma-separated values with a header row.
	FormatCSV OutputFormat = "csv"
	// FormatJSON is a single JSON array.
	FormatJSON OutputFormat = "json"
	// FormatJSONL is one JSON object per line.
	FormatJSONL OutputFormat = "jsonl"
)

// OutputFormats returns all supported formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatCSV, FormatJSON, FormatJSONL}
}

// ParseOutputFormat resolves a format name, case-insensitively.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatCSV, FormatJSON, FormatJSONL:
		return f, nil
	default:
		return "", fmt.Errorf("%w: output format %q", ErrUnsupportedType, name)
	}
}

// Extension returns the conventional file extension including the dot.
func (f OutputFormat) Extension() string {
	return "." + string(f)
}

// DisplayName returns the upper-case format name used in summaries.
func (f OutputFormat) DisplayName() string {
	return strings.ToUpper(string(f))
}
