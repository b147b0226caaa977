// Package collect drains a MessageSource into a slice.
package collect

import (
	"context"
	"errors"
	"io"

	"github.com/custodia-labs/chatpack/internal/core/domain"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
)

// All pulls every message from src in order.
// The first error of any kind, record-level included, aborts the collection
// and no partial result is returned.
func All(ctx context.Context, src driven.MessageSource) ([]domain.Message, error) {
	var msgs []domain.Message
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		msg, err := src.Next()
		if errors.Is(err, io.EOF) {
			return msgs, nil
		}
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
}
