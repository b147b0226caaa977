package discord

import (
	"bytes"
	"encoding/csv"

	"github.com/gabriel-vasile/mimetype"
)

// SniffSize is how much of the export is inspected to pick a sub-format.
const SniffSize = 3 << 10

// subformat is one of DiscordChatExporter's output shapes.
type subformat int

const (
	formatTXT subformat = iota
	formatJSON
	formatCSV
)

func (f subformat) String() string {
	switch f {
	case formatJSON:
		return "json"
	case formatCSV:
		return "csv"
	default:
		return "txt"
	}
}

var bom = []byte("\xef\xbb\xbf")

// sniff picks the sub-format from the head of the content.
// MIME detection recognises complete JSON documents; a truncated head is
// caught by its opening brace. CSV is recognised by its header row.
func sniff(head []byte) subformat {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(head, bom), " \t\r\n")
	if mimetype.Detect(trimmed).Is("application/json") {
		return formatJSON
	}
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return formatJSON
	}
	if isCSVHeader(trimmed) {
		return formatCSV
	}
	return formatTXT
}

// isCSVHeader reports whether the first row names both Author and Date columns.
func isCSVHeader(head []byte) bool {
	line := head
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		line = head[:i]
	}
	r := csv.NewReader(bytes.NewReader(bytes.TrimSuffix(line, []byte("\r"))))
	fields, err := r.Read()
	if err != nil {
		return false
	}
	_, author := columnIndex(fields, colAuthor)
	_, date := columnIndex(fields, colDate)
	return author && date
}
