package whatsapp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/chatpack/internal/core/domain"
)

const (
	// space matches the separators WhatsApp puts before AM/PM.
	space    = `[ \x{00A0}\x{202F}]`
	datePart = `(\d{1,4})([./-])(\d{1,2})[./-](\d{1,4})`
	timePart = `(\d{1,2}):(\d{2})(?::(\d{2}))?(?:` + space + `?([AaPp])\.?` + space + `?[Mm]\.?)?`
)

var (
	// [15/01/2024, 10:00:00] Alice: Hello
	iosHeader = regexp.MustCompile(`^\[` + datePart + `,?` + space + timePart + `\]` + space + `(.*)$`)

	// 15/01/2024, 10:00 - Alice: Hello
	androidHeader = regexp.MustCompile(`^` + datePart + `,?` + space + timePart + space + `-` + space + `(.*)$`)
)

// header is a parsed message or system line prefix.
type header struct {
	stamp   string
	a, b, c int
	yearLen int
	sep     byte
	hour    int
	minute  int
	second  int
	meridem byte // 'a', 'p' or 0 for 24-hour clocks
	rest    string
}

// parseHeader recognises a line that opens a new entry.
func parseHeader(line string) (header, bool) {
	line = strings.TrimLeft(line, "\u200e\ufeff")
	m := iosHeader.FindStringSubmatch(line)
	if m == nil {
		m = androidHeader.FindStringSubmatch(line)
	}
	if m == nil {
		return header{}, false
	}

	h := header{
		stamp:   strings.Trim(line[:len(line)-len(m[9])], " -[]\u00a0\u202f"),
		a:       atoi(m[1]),
		sep:     m[2][0],
		b:       atoi(m[3]),
		c:       atoi(m[4]),
		yearLen: len(m[1]),
		hour:    atoi(m[5]),
		minute:  atoi(m[6]),
		second:  atoi(m[7]),
		rest:    m[9],
	}
	if m[8] != "" {
		h.meridem = strings.ToLower(m[8])[0]
	}
	return h, true
}

// split separates "Sender: text". System lines have no sender.
func (h header) split() (sender, text string, ok bool) {
	if i := strings.Index(h.rest, ": "); i > 0 {
		return h.rest[:i], h.rest[i+2:], true
	}
	if strings.HasSuffix(h.rest, ":") && len(h.rest) > 1 {
		return strings.TrimSuffix(h.rest, ":"), "", true
	}
	return "", "", false
}

// dateOrder says how to read a d/m versus m/d ambiguous date.
type dateOrder int

const (
	dayFirst dateOrder = iota
	monthFirst
)

// DetectWindow bounds how many headers are inspected to pick the date order.
const DetectWindow = 200

// DetectBytes bounds how much text is held while looking for those headers.
const DetectBytes = 1 << 20

// detectOrder decides the order from the component values, then from the
// locale conventions the first header hints at.
func detectOrder(hs []header) dateOrder {
	var first *header
	secondBig := false
	for i := range hs {
		h := &hs[i]
		if h.yearLen == 4 {
			continue
		}
		if first == nil {
			first = h
		}
		if h.a > 12 {
			return dayFirst
		}
		if h.b > 12 {
			secondBig = true
		}
	}
	if secondBig {
		return monthFirst
	}
	if first != nil && first.sep == '/' && first.meridem != 0 {
		return monthFirst
	}
	return dayFirst
}

// instant resolves the header to a UTC time. Exports carry no zone.
func (h header) instant(order dateOrder) (time.Time, error) {
	var y, mo, d int
	switch {
	case h.yearLen == 4:
		y, mo, d = h.a, h.b, h.c
	case order == monthFirst:
		mo, d, y = h.a, h.b, h.c
	default:
		d, mo, y = h.a, h.b, h.c
	}
	if y < 100 {
		y += 2000
	}

	hour := h.hour
	if h.meridem != 0 {
		if hour < 1 || hour > 12 {
			return time.Time{}, h.invalid()
		}
		hour %= 12
		if h.meridem == 'p' {
			hour += 12
		}
	}

	if mo < 1 || mo > 12 || d < 1 || hour > 23 || h.minute > 59 || h.second > 59 {
		return time.Time{}, h.invalid()
	}
	t := time.Date(y, time.Month(mo), d, hour, h.minute, h.second, 0, time.UTC)
	if t.Day() != d {
		return time.Time{}, h.invalid()
	}
	return t, nil
}

func (h header) invalid() error {
	return fmt.Errorf("%w: %q", domain.ErrInvalidTimestamp, h.stamp)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
