package streak

import (
	"sort"
	"time"
)

// Stats is the streak summary for one contributor as of one instant
type Stats struct {
	CurrentStreak  int     `json:"currentStreak" example:"12"`
	LongestStreak  int     `json:"longestStreak" example:"40"`
	TotalCommits   int     `json:"totalCommits" example:"1834"`
	LastActiveDate *string `json:"lastActiveDate,omitempty" example:"2025-09-03"`
}

// LastActive returns the last active date key and whether one exists
func (s Stats) LastActive() (string, bool) {
	if s.LastActiveDate == nil {
		return "", false
	}
	return *s.LastActiveDate, true
}

// Compute returns the streak stats of c as of asOf in the given local offset
func Compute(c Contributions, asOf time.Time, offsetMinutes int) Stats {
	return NewClock(asOf, offsetMinutes).Stats(c)
}

// Stats computes streak stats of c against this clock
// a zero count today never breaks a run, it simply has not happened yet
func (k Clock) Stats(c Contributions) Stats {
	today := k.Today()
	days := notAfter(c.Sorted(), today)

	var s Stats
	for _, d := range days {
		s.TotalCommits += d.Count
		if d.Count > 0 {
			date := d.Date
			s.LastActiveDate = &date
		}
	}
	s.CurrentStreak = currentStreak(days, today, k.Yesterday())
	s.LongestStreak = longestStreak(days)
	return s
}

// notAfter trims sorted days strictly after today
func notAfter(days []Day, today string) []Day {
	i := sort.Search(len(days), func(i int) bool { return days[i].Date > today })
	return days[:i]
}

// currentStreak counts consecutive active days ending today, or yesterday when
// today is still empty; a missing day breaks the run like an explicit zero
func currentStreak(days []Day, today, yesterday string) int {
	i := len(days) - 1
	if i < 0 {
		return 0
	}

	expect := yesterday
	if days[i].Date == today {
		if days[i].Count > 0 {
			expect = today
		} else {
			i--
		}
	}

	n := 0
	for ; i >= 0; i-- {
		d := days[i]
		if d.Date != expect || d.Count == 0 {
			break
		}
		n++
		expect = prevKey(d.Date)
	}
	return n
}

// longestStreak is the longest run of consecutive active days anywhere in days
func longestStreak(days []Day) int {
	longest, run := 0, 0
	prev := ""
	for _, d := range days {
		switch {
		case d.Count == 0:
			run = 0
		case run > 0 && prevKey(d.Date) != prev:
			run = 1
		default:
			run++
		}
		longest = max(longest, run)
		prev = d.Date
	}
	return longest
}
