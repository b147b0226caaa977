package instagram

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// repair undoes the export's double encoding: UTF-8 bytes written out as
// one \u00XX escape per byte. The string is narrowed back to Latin-1 and kept
// only when the resulting bytes are valid UTF-8. Text holding runes outside
// Latin-1 was never mangled and is returned as is.
func repair(s string) string {
	if isASCII(s) {
		return s
	}
	b, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil || !utf8.ValidString(b) {
		return s
	}
	return b
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
