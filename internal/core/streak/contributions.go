package streak

import (
	"slices"
	"strings"
	"time"
)

// Day is a single local calendar day and its activity count
type Day struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Contributions is an immutable map of local date key to activity count
// build it with a Builder, the zero value is an empty map
type Contributions struct {
	days map[string]int
}

// Len returns the number of distinct days present
func (c Contributions) Len() int { return len(c.days) }

// Count returns the count for date and whether the day is present
func (c Contributions) Count(date string) (int, bool) {
	n, ok := c.days[date]
	return n, ok
}

// Sorted returns the days ascending by date
// lexicographic order equals chronological order for fixed width keys
func (c Contributions) Sorted() []Day {
	out := make([]Day, 0, len(c.days))
	for d, n := range c.days {
		out = append(out, Day{Date: d, Count: n})
	}
	slices.SortFunc(out, func(a, b Day) int { return strings.Compare(a.Date, b.Date) })
	return out
}

// Builder accumulates days from one or more fetched windows into Contributions
// counts landing on the same key add up
type Builder struct {
	days    map[string]int
	dropped int
}

// NewBuilder returns an empty Builder
func NewBuilder() *Builder { return &Builder{days: map[string]int{}} }

// Add records count for date and reports whether it was accepted
// malformed keys and negative counts are dropped and behave like an absent day
func (b *Builder) Add(date string, count int) bool {
	if _, ok := ParseDateKey(date); !ok || count < 0 {
		b.dropped++
		return false
	}
	b.days[date] += count
	return true
}

// AddInstant buckets an upstream instant into its local day before recording it
func (b *Builder) AddInstant(at time.Time, offsetMinutes, count int) bool {
	return b.Add(LocalDateKey(at, offsetMinutes), count)
}

// Merge adds every day and returns how many were dropped
func (b *Builder) Merge(days []Day) int {
	dropped := 0
	for _, d := range days {
		if !b.Add(d.Date, d.Count) {
			dropped++
		}
	}
	return dropped
}

// Count returns the count accumulated so far for date
func (b *Builder) Count(date string) int { return b.days[date] }

// Dropped returns how many inputs were rejected over the builder lifetime
func (b *Builder) Dropped() int { return b.dropped }

// Build returns an immutable snapshot, the builder stays usable
func (b *Builder) Build() Contributions {
	cp := make(map[string]int, len(b.days))
	for k, v := range b.days {
		cp[k] = v
	}
	return Contributions{days: cp}
}

// FromMap builds Contributions from a plain map dropping malformed entries
func FromMap(m map[string]int) Contributions {
	b := NewBuilder()
	for k, v := range m {
		b.Add(k, v)
	}
	return b.Build()
}
