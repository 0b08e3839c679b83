// Package clock supplies the current time in the fixed civil timezone
// used for vote-eligibility day boundaries. All "same day" decisions go
// through here so the rest of the code never compares raw instants.
package clock

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTimezone is used when no timezone is configured.
const DefaultTimezone = "America/Sao_Paulo"

type Clock struct {
	loc *time.Location

	// now is swappable in tests
	now func() time.Time
}

// New returns a Clock pinned to the named IANA timezone.
func New(timezone string) (*Clock, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewFixed returns a Clock that always reports the given instant.
// Intended for tests that exercise day boundaries.
func NewFixed(at time.Time, timezone string) (*Clock, error) {
	c, err := New(timezone)
	if err != nil {
		return nil, err
	}
	c.now = func() time.Time { return at }
	return c, nil
}

// Now returns the current time localized to the clock's timezone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current local calendar date as YYYY-MM-DD.
func (c *Clock) Today() string {
	return c.Now().Format(time.DateOnly)
}

// SameDay reports whether both instants fall on the same calendar date
// in the clock's timezone. Comparison is by civil date, not by 24h
// truncation, so it stays correct across DST shifts.
func (c *Clock) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(c.loc).Date()
	by, bm, bd := b.In(c.loc).Date()
	return ay == by && am == bm && ad == bd
}

// ParseTimestamp parses a stored or client-supplied ISO-8601 instant.
// A trailing "Z" and missing sub-second precision are both accepted.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}
