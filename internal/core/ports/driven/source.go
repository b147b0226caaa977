package driven

import "github.com/custodia-labs/chatpack/internal/core/domain"

// MessageSource is a finite, single-pass producer of messages.
//
// Each call to Next returns exactly one of:
//   - a message and a nil error
//   - a *domain.RecordError: that record was malformed, but Next may be called again
//   - io.EOF: the export is exhausted
//   - any other error: the export is unreadable; every later call returns it again
//
// A source holds only the state needed to assemble the next message, never the
// whole export. It is not restartable, and it must not be read from more than one
// goroutine: concurrent calls to Next are a misuse and are not guarded.
type MessageSource interface {
	// Next returns the next message in source order.
	Next() (domain.Message, error)
}

// SourceFunc adapts a function to the MessageSource interface.
type SourceFunc func() (domain.Message, error)

// Next calls f.
func (f SourceFunc) Next() (domain.Message, error) {
	return f()
}
