// Package jsonstream reads the message array of a JSON export, either all at
// once or one element at a time. Both drivers hand each element to the same
// Extractor, so a platform's field mapping is written exactly once.
package jsonstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/chatpack/internal/core/domain"
)

// Array walks the elements of one array held under a key of a top-level object.
// Siblings of the key are skipped token by token, never decoded.
type Array struct {
	dec *json.Decoder
	err error
}

// Open positions a decoder at the first element of the array stored under key.
// A document that is not an object, or that has no such array, fails with
// domain.ErrStructure.
func Open(r io.Reader, key string) (*Array, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, structural(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: top level is not an object", domain.ErrStructure)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, structural(err)
		}
		if name, _ := tok.(string); name == key {
			tok, err := dec.Token()
			if err != nil {
				return nil, structural(err)
			}
			if d, ok := tok.(json.Delim); !ok || d != '[' {
				return nil, fmt.Errorf("%w: %q is not an array", domain.ErrStructure, key)
			}
			return &Array{dec: dec}, nil
		}
		if err := skipValue(dec); err != nil {
			return nil, structural(err)
		}
	}
	return nil, fmt.Errorf("%w: no %q array", domain.ErrStructure, key)
}

// Next returns the next raw element, or io.EOF once the array and the rest of
// the document have been consumed. Errors are sticky.
func (a *Array) Next() (json.RawMessage, error) {
	if a.err != nil {
		return nil, a.err
	}
	if !a.dec.More() {
		a.err = a.finish()
		if a.err == nil {
			a.err = io.EOF
		}
		return nil, a.err
	}
	var raw json.RawMessage
	if err := a.dec.Decode(&raw); err != nil {
		a.err = structural(err)
		return nil, a.err
	}
	return raw, nil
}

// finish consumes the closing bracket, the remaining keys and the closing
// brace, and rejects trailing data.
func (a *Array) finish() error {
	if _, err := a.dec.Token(); err != nil {
		return structural(err)
	}
	for a.dec.More() {
		if _, err := a.dec.Token(); err != nil {
			return structural(err)
		}
		if err := skipValue(a.dec); err != nil {
			return structural(err)
		}
	}
	if _, err := a.dec.Token(); err != nil {
		return structural(err)
	}
	if _, err := a.dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return fmt.Errorf("%w: trailing data after document", domain.ErrStructure)
		}
		return structural(err)
	}
	return nil
}

// ReadAll drains the array stored under key into a slice. It walks the
// document exactly as Open and Next do, so both modes accept and reject the
// same inputs and pick the same array.
func ReadAll(r io.Reader, key string) ([]json.RawMessage, error) {
	arr, err := Open(r, key)
	if err != nil {
		return nil, err
	}
	var elems []json.RawMessage
	for {
		raw, err := arr.Next()
		if errors.Is(err, io.EOF) {
			return elems, nil
		}
		if err != nil {
			return nil, err
		}
		elems = append(elems, raw)
	}
}

// skipValue consumes one complete value from dec.
func skipValue(dec *json.Decoder) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
		if depth == 0 {
			return nil
		}
	}
}

// structural classifies decoding failures as ErrStructure and passes
// read failures through untouched.
func structural(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return fmt.Errorf("%w: %v", domain.ErrStructure, err)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: unexpected end of document", domain.ErrStructure)
	default:
		return err
	}
}
