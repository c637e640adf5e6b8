package model

import (
	"fmt"
	"time"
)

// DateRange is a closed interval of dates with day granularity.
// Both endpoints are inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two instants, truncating to day precision.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: TruncateToDay(start), End: TruncateToDay(end)}
}

// TruncateToDay drops the time-of-day component, keeping the calendar date in UTC.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the absolute distance between two dates in whole days.
func DaysBetween(a, b time.Time) int {
	diff := TruncateToDay(a).Sub(TruncateToDay(b))
	days := int(diff.Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// Days returns the measured length of the range in days.
// A single-day range [d, d] has length 0; the caller decides whether
// that counts as empty.
func (r DateRange) Days() int {
	return DaysBetween(r.End, r.Start)
}

// IsZero reports whether the range has no endpoints set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Valid reports whether the range is well-formed: both endpoints set and
// start not after end.
func (r DateRange) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.Start.After(r.End)
}

// Contains reports whether other lies entirely within r.
func (r DateRange) Contains(other DateRange) bool {
	return !other.Start.Before(r.Start) && !other.End.After(r.End)
}

// ContainsDate reports whether t falls inside the range, inclusive.
func (r DateRange) ContainsDate(t time.Time) bool {
	d := TruncateToDay(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Overlaps reports whether the two ranges share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Adjacent reports whether other overlaps or touches r within one day,
// so that merging the two leaves no unexamined gap.
func (r DateRange) Adjacent(other DateRange) bool {
	day := 24 * time.Hour
	return !other.Start.After(r.End.Add(day)) && !r.Start.After(other.End.Add(day))
}

// Union returns the smallest range covering both r and other.
func (r DateRange) Union(other DateRange) DateRange {
	merged := r
	if other.Start.Before(merged.Start) {
		merged.Start = other.Start
	}
	if other.End.After(merged.End) {
		merged.End = other.End
	}
	return merged
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s]", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}
