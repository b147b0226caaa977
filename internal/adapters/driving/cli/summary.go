package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/chatpack/internal/core/ports/driving"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")).Width(10)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
)

// printSummary writes the post-conversion report. The CLI sends it to
// stderr so stdout stays free for command output.
func printSummary(w io.Writer, req driving.ConvertRequest, res *driving.ConvertResult) {
	stats := res.Stats
	line := func(style lipgloss.Style, label, value string) {
		fmt.Fprintf(w, "  %s%s\n", labelStyle.Render(label), style.Render(value))
	}

	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("Converted %s export", req.Platform.DisplayName())))
	line(valueStyle, "Parsed", humanize.Comma(int64(stats.Parsed))+" messages")
	if req.Filter.IsActive() {
		line(valueStyle, "Filtered", humanize.Comma(int64(stats.Filtered))+" messages")
	}
	if req.Merge && stats.MergedAway() > 0 {
		line(valueStyle, "Merged", humanize.Comma(int64(stats.Written))+" entries")
	}
	if stats.Skipped > 0 {
		line(warnStyle, "Skipped", humanize.Comma(int64(stats.Skipped))+" invalid messages")
	}
	line(valueStyle, "Output", fmt.Sprintf("%s (%s)", res.OutputPath, req.Format.DisplayName()))
}
