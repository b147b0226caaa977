package domain

// OutputConfig selects the optional fields written for every message.
// Sender and content are always written.
type OutputConfig struct {
	// Timestamps includes the send time.
	Timestamps bool

	// Replies includes the reply-to reference.
	Replies bool

	// Edited includes the edit time.
	Edited bool

	// IDs includes the platform message ID.
	IDs bool
}

// NewOutputConfig returns a config with only the mandatory fields.
func NewOutputConfig() OutputConfig {
	return OutputConfig{}
}

// AllFields returns a config with every optional field enabled.
func AllFields() OutputConfig {
	return OutputConfig{Timestamps: true, Replies: true, Edited: true, IDs: true}
}

// WithTimestamps returns a copy including timestamps.
func (c OutputConfig) WithTimestamps() OutputConfig {
	c.Timestamps = true
	return c
}

// WithReplies returns a copy including reply references.
func (c OutputConfig) WithReplies() OutputConfig {
	c.Replies = true
	return c
}

// WithEdited returns a copy including edit times.
func (c OutputConfig) WithEdited() OutputConfig {
	c.Edited = true
	return c
}

// WithIDs returns a copy including message IDs.
func (c OutputConfig) WithIDs() OutputConfig {
	c.IDs = true
	return c
}
