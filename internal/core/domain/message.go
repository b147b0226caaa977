package domain

import "time"

// Message is a single chat message normalised from a platform export.
// It is the canonical record every parser produces. A Message is treated
// as immutable once produced: stages that change content build a new value.
type Message struct {
	// Sender identifies the author as it appears in the export.
	Sender string

	// Content is the text body. Multi-line content keeps its line breaks.
	// It may be empty for non-text events.
	Content string

	// Timestamp is when the message was sent.
	Timestamp time.Time

	// ID is the platform-native message identifier, nil when the format has none.
	ID *string

	// ReplyTo is the ID of the message this one replies to.
	// Dangling references are kept as-is.
	ReplyTo *string

	// EditedAt is set only when the export marks the message as edited.
	EditedAt *time.Time
}

// NewMessage creates a message with the required fields set.
func NewMessage(sender, content string, ts time.Time) Message {
	return Message{
		Sender:    sender,
		Content:   content,
		Timestamp: ts,
	}
}

// WithID returns a copy of the message carrying the given ID.
func (m Message) WithID(id string) Message {
	m.ID = &id
	return m
}

// WithReplyTo returns a copy of the message replying to the given ID.
func (m Message) WithReplyTo(id string) Message {
	m.ReplyTo = &id
	return m
}

// WithEditedAt returns a copy of the message marked as edited at t.
func (m Message) WithEditedAt(t time.Time) Message {
	m.EditedAt = &t
	return m
}

// IsEdited reports whether the message carries an edit timestamp.
func (m Message) IsEdited() bool {
	return m.EditedAt != nil
}
