package jsonstream

import (
	"context"
	"encoding/json"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
)

// Extractor maps one array element to a message.
// ok is false for elements that are not messages (service events); they are
// skipped without error. A non-nil error marks the element as malformed.
type Extractor func(raw json.RawMessage) (msg domain.Message, ok bool, err error)

// Collect runs extract over every element. The first malformed element aborts
// with a *domain.RecordError carrying its 1-based position.
func Collect(ctx context.Context, p domain.Platform, elems []json.RawMessage, extract Extractor) ([]domain.Message, error) {
	msgs := make([]domain.Message, 0, len(elems))
	for i, raw := range elems {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		msg, ok, err := extract(raw)
		if err != nil {
			return nil, domain.NewRecordError(p, i+1, err)
		}
		if ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs, nil
}

// Source yields the messages of arr one at a time.
func Source(ctx context.Context, p domain.Platform, arr *Array, extract Extractor) driven.MessageSource {
	return &source{ctx: ctx, platform: p, arr: arr, extract: extract}
}

type source struct {
	ctx      context.Context
	platform domain.Platform
	arr      *Array
	extract  Extractor
	index    int
	err      error
}

func (s *source) Next() (domain.Message, error) {
	for {
		if s.err != nil {
			return domain.Message{}, s.err
		}
		if err := s.ctx.Err(); err != nil {
			s.err = err
			continue
		}
		raw, err := s.arr.Next()
		if err != nil {
			s.err = err
			continue
		}
		s.index++
		msg, ok, err := s.extract(raw)
		if err != nil {
			return domain.Message{}, domain.NewRecordError(s.platform, s.index, err)
		}
		if ok {
			return msg, nil
		}
	}
}
