// Package streak computes daily activity streaks over a map of local calendar days
package streak

import (
	"time"
)

// KeyLayout is the fixed width layout of a local date key
const KeyLayout = "2006-01-02"

// Offset bounds in minutes east of UTC (UTC-12:00 .. UTC+14:00)
const (
	MinOffsetMinutes = -12 * 60
	MaxOffsetMinutes = 14 * 60
)

// LocalDateKey returns the YYYY-MM-DD key of the local calendar day containing at
// the instant is shifted by offsetMinutes before the calendar date is taken
func LocalDateKey(at time.Time, offsetMinutes int) string {
	return at.UTC().Add(time.Duration(offsetMinutes) * time.Minute).Format(KeyLayout)
}

// ParseDateKey reports whether s is a well formed date key and returns its midnight UTC
func ParseDateKey(s string) (time.Time, bool) {
	t, err := time.Parse(KeyLayout, s)
	if err != nil || t.Format(KeyLayout) != s {
		return time.Time{}, false
	}
	return t, true
}

// ValidOffset reports whether offsetMinutes is within the real world UTC offset range
func ValidOffset(offsetMinutes int) bool {
	return offsetMinutes >= MinOffsetMinutes && offsetMinutes <= MaxOffsetMinutes
}

// OffsetFor resolves an IANA zone name to its UTC offset in minutes at the given instant
func OffsetFor(zone string, at time.Time) (int, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return 0, err
	}
	_, sec := at.In(loc).Zone()
	return sec / 60, nil
}

// Clock pins "now" for one computation
// the offset is captured once so every comparison shares one reference frame
type Clock struct {
	At            time.Time
	OffsetMinutes int
}

// NewClock returns a Clock for at in the given offset
func NewClock(at time.Time, offsetMinutes int) Clock {
	return Clock{At: at, OffsetMinutes: offsetMinutes}
}

// Today is the local date key of At
func (c Clock) Today() string { return LocalDateKey(c.At, c.OffsetMinutes) }

// Yesterday is At minus 24 hours, normalized again into the local calendar
func (c Clock) Yesterday() string { return LocalDateKey(c.At.Add(-24*time.Hour), c.OffsetMinutes) }

// Year is the local calendar year of At
func (c Clock) Year() int {
	return c.At.UTC().Add(time.Duration(c.OffsetMinutes) * time.Minute).Year()
}

// prevKey returns the key of the calendar day before key
// callers only pass keys that already passed ParseDateKey
func prevKey(key string) string {
	t, _ := time.Parse(KeyLayout, key)
	return t.AddDate(0, 0, -1).Format(KeyLayout)
}
