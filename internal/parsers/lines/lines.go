// Package lines feeds line-oriented exports to a parser, either from memory
// or straight off the reader.
package lines

import (
	"bufio"
	"io"
	"strings"
)

// MaxLineSize bounds a single line. Long pasted messages fit comfortably.
const MaxLineSize = 16 << 20

// Reader yields lines without their terminator, then io.EOF.
type Reader interface {
	Next() (string, error)
}

// Scan reads lines lazily from r.
func Scan(r io.Reader) Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &scanner{sc: sc}
}

type scanner struct {
	sc      *bufio.Scanner
	started bool
	err     error
}

func (s *scanner) Next() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if !s.sc.Scan() {
		s.err = s.sc.Err()
		if s.err == nil {
			s.err = io.EOF
		}
		return "", s.err
	}
	line := clean(s.sc.Text(), !s.started)
	s.started = true
	return line, nil
}

// ReadAll reads every line of r into memory.
func ReadAll(r io.Reader) ([]string, error) {
	var out []string
	src := Scan(r)
	for {
		line, err := src.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, line)
	}
}

// Slice yields already-read lines.
func Slice(lines []string) Reader {
	return &slice{lines: lines}
}

type slice struct {
	lines []string
	pos   int
}

func (s *slice) Next() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	s.pos++
	return s.lines[s.pos-1], nil
}

// clean drops a trailing carriage return and, on the first line, a byte order mark.
func clean(line string, first bool) string {
	line = strings.TrimSuffix(line, "\r")
	if first {
		line = strings.TrimPrefix(line, "\ufeff")
	}
	return line
}
