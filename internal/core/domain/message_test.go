package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	msg := NewMessage("Alice", "Hello", ts)

	assert.Equal(t, "Alice", msg.Sender)
	assert.Equal(t, "Hello", msg.Content)
	assert.Equal(t, ts, msg.Timestamp)
	assert.Nil(t, msg.ID)
	assert.Nil(t, msg.ReplyTo)
	assert.Nil(t, msg.EditedAt)
	assert.False(t, msg.IsEdited())
}

func TestMessage_WithersReturnCopies(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	edited := ts.Add(time.Minute)
	base := NewMessage("Alice", "Hello", ts)

	full := base.WithID("1").WithReplyTo("0").WithEditedAt(edited)

	require.NotNil(t, full.ID)
	require.NotNil(t, full.ReplyTo)
	require.NotNil(t, full.EditedAt)
	assert.Equal(t, "1", *full.ID)
	assert.Equal(t, "0", *full.ReplyTo)
	assert.Equal(t, edited, *full.EditedAt)
	assert.True(t, full.IsEdited())

	assert.Nil(t, base.ID, "original must be untouched")
	assert.Nil(t, base.ReplyTo)
	assert.Nil(t, base.EditedAt)
}
