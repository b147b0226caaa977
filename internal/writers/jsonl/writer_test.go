package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatpack/internal/core/domain"
)

var ts = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func render(t *testing.T, cfg domain.OutputConfig, msgs []domain.Message) string {
	t.Helper()
	var buf bytes.Buffer
	rw, err := New().Open(&buf, cfg)
	require.NoError(t, err)
	for _, m := range msgs {
		require.NoError(t, rw.Write(m))
	}
	require.NoError(t, rw.Close())
	return buf.String()
}

func TestWriter_Format(t *testing.T) {
	assert.Equal(t, domain.FormatJSONL, New().Format())
}

func TestWriter_OneObjectPerLine(t *testing.T) {
	out := render(t, domain.NewOutputConfig().WithTimestamps(), []domain.Message{
		domain.NewMessage("Alice", "multi\nline", ts),
		domain.NewMessage("Bob", "Yo", ts),
	})

	assert.Equal(t,
		`{"sender":"Alice","content":"multi\nline","timestamp":"2024-01-15T10:00:00Z"}`+"\n"+
			`{"sender":"Bob","content":"Yo","timestamp":"2024-01-15T10:00:00Z"}`+"\n",
		out)
}

func TestWriter_Empty(t *testing.T) {
	assert.Equal(t, "", render(t, domain.AllFields(), nil))
}

func TestWriter_RoundTrip(t *testing.T) {
	in := []domain.Message{
		domain.NewMessage("Alice", "a", ts).WithID("1"),
		domain.NewMessage("Bob", "b", ts).WithReplyTo("1"),
	}

	out := render(t, domain.NewOutputConfig().WithIDs().WithReplies(), in)

	sc := bufio.NewScanner(strings.NewReader(out))
	var decoded []map[string]any
	for sc.Scan() {
		var obj map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &obj))
		decoded = append(decoded, obj)
	}
	require.Len(t, decoded, 2)

	assert.Equal(t, map[string]any{"sender": "Alice", "content": "a", "id": "1", "reply_to": nil}, decoded[0])
	assert.Equal(t, map[string]any{"sender": "Bob", "content": "b", "id": nil, "reply_to": "1"}, decoded[1])
}

func TestWriter_Closed(t *testing.T) {
	rw, err := New().Open(&bytes.Buffer{}, domain.NewOutputConfig())
	require.NoError(t, err)
	require.NoError(t, rw.Close())

	assert.ErrorIs(t, rw.Write(domain.NewMessage("A", "b", ts)), domain.ErrWriterClosed)
	assert.ErrorIs(t, rw.Close(), domain.ErrWriterClosed)
}
