package domain

import (
	"fmt"
	"time"
)

// DateLayout is the textual form accepted for filter bounds.
const DateLayout = "2006-01-02"

// FilterConfig constrains which messages survive the filter stage.
// The zero value matches every message. Methods return modified copies,
// so a FilterConfig can be shared freely once built.
type FilterConfig struct {
	from   *time.Time
	to     *time.Time
	sender *string
}

// NewFilterConfig returns a filter that matches every message.
func NewFilterConfig() FilterConfig {
	return FilterConfig{}
}

// WithDateFrom sets the inclusive lower bound from a YYYY-MM-DD date.
// The bound is the start of that day in UTC.
func (f FilterConfig) WithDateFrom(date string) (FilterConfig, error) {
	day, err := parseDay(date)
	if err != nil {
		return f, err
	}
	return f.WithFrom(day), nil
}

// WithDateTo sets the inclusive upper bound from a YYYY-MM-DD date.
// The bound is the last instant of that day in UTC.
func (f FilterConfig) WithDateTo(date string) (FilterConfig, error) {
	day, err := parseDay(date)
	if err != nil {
		return f, err
	}
	return f.WithTo(day.Add(24*time.Hour - time.Nanosecond)), nil
}

// WithFrom sets an already-validated inclusive lower bound.
func (f FilterConfig) WithFrom(t time.Time) FilterConfig {
	f.from = &t
	return f
}

// WithTo sets an already-validated inclusive upper bound.
func (f FilterConfig) WithTo(t time.Time) FilterConfig {
	f.to = &t
	return f
}

// WithSender restricts matches to messages whose sender equals name exactly.
func (f FilterConfig) WithSender(name string) FilterConfig {
	f.sender = &name
	return f
}

// From returns the lower bound and whether it is set.
func (f FilterConfig) From() (time.Time, bool) {
	if f.from == nil {
		return time.Time{}, false
	}
	return *f.from, true
}

// To returns the upper bound and whether it is set.
func (f FilterConfig) To() (time.Time, bool) {
	if f.to == nil {
		return time.Time{}, false
	}
	return *f.to, true
}

// Sender returns the sender constraint and whether it is set.
func (f FilterConfig) Sender() (string, bool) {
	if f.sender == nil {
		return "", false
	}
	return *f.sender, true
}

// IsActive reports whether any constraint is configured.
func (f FilterConfig) IsActive() bool {
	return f.from != nil || f.to != nil || f.sender != nil
}

// Matches reports whether msg satisfies every configured constraint.
// It depends on msg alone, so it gives the same answer whether messages
// are filtered in bulk or one at a time.
func (f FilterConfig) Matches(msg Message) bool {
	if f.from != nil && msg.Timestamp.Before(*f.from) {
		return false
	}
	if f.to != nil && msg.Timestamp.After(*f.to) {
		return false
	}
	if f.sender != nil && msg.Sender != *f.sender {
		return false
	}
	return true
}

func parseDay(date string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrInvalidDate, date)
	}
	return day, nil
}
