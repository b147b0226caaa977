package domain

// Stats summarises one conversion run.
type Stats struct {
	// Parsed is the number of messages produced by the parser.
	Parsed int

	// Filtered is the number of messages that passed the filter stage.
	Filtered int

	// Written is the number of records written after merging.
	Written int

	// Skipped is the number of record-level errors that were skipped.
	Skipped int
}

// MergedAway returns how many messages were folded into their predecessor.
func (s Stats) MergedAway() int {
	return s.Filtered - s.Written
}
