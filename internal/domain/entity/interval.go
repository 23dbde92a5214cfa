package entity

import (
	"fmt"
	"time"
)

// TimeOfDay is a minute-precision time of day, stored as minutes since
// midnight. Flights do not cross midnight, so a flight interval is fully
// described by two TimeOfDay values on the same calendar date.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay parses "15:04" formatted clock times.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return NewTimeOfDay(t.Hour(), t.Minute()), nil
}

// Hour returns the hour component (0-23).
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute returns the minute component (0-59).
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// Minutes returns the value as raw minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return int(t)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Interval is a flight's time span within a single calendar date.
// Valid intervals satisfy End > Start; validation happens before any
// interval reaches the overlap test.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Overlaps reports whether two same-day intervals share any time.
// The comparison is strict: back-to-back intervals (a.End == b.Start)
// do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Duration returns the interval length in minutes.
func (a Interval) Duration() int {
	return int(a.End - a.Start)
}

func (a Interval) String() string {
	return fmt.Sprintf("%s-%s", a.Start, a.End)
}
