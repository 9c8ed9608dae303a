// Package history decides how many calendar years of contributions to pull
// before a merged map is complete enough for streak computation
//
// The stop rule is a heuristic: walking backward from the current year, fetching
// ends once Jan 1 of the year just merged has no activity (a run cannot cross into
// the earlier year), or the look back cap or the account floor is reached. A run
// that pauses and resumes across a year boundary without touching Jan 1 can be
// scoped short; that is accepted to avoid unbounded fetching
package history

import (
	"context"
	"fmt"
	"slices"
	"time"

	"streaks/internal/core/streak"
)

// DefaultMaxYears caps the look back when a plan does not set one
const DefaultMaxYears = 5

// YearRequest asks a fetcher for one calendar year of contributions
type YearRequest struct {
	Username      string
	Year          int
	OffsetMinutes int
}

// Year is one fetched calendar year
type Year struct {
	Year  int
	Total int
	Days  []streak.Day
}

// Fetcher returns contributions for one calendar year
type Fetcher interface {
	FetchYear(ctx context.Context, req YearRequest) (Year, error)
}

// UserMeta bounds how far back fetching is worth it
type UserMeta struct {
	Login             string
	CreatedAt         time.Time
	ContributionYears []int
}

// FloorYear is the earliest year worth fetching, zero when unknown
// it is the later of the account creation year and the earliest reported activity year
func (m UserMeta) FloorYear() int {
	floor := 0
	if !m.CreatedAt.IsZero() {
		floor = m.CreatedAt.UTC().Year()
	}
	if len(m.ContributionYears) > 0 {
		floor = max(floor, slices.Min(m.ContributionYears))
	}
	return floor
}

// Plan describes one assembly run
type Plan struct {
	Username  string
	Clock     streak.Clock
	MaxYears  int
	FloorYear int
}

// Step is the state of the backward fetch loop
type Step int

const (
	// NeedMoreHistory means the next earlier year should be fetched
	NeedMoreHistory Step = iota
	// Done means the merged map is complete enough
	Done
)

// Reason names why assembly stopped
type Reason string

// Stop reasons
const (
	ReasonJan1Empty    Reason = "jan1-empty"
	ReasonLookbackCap  Reason = "lookback-cap"
	ReasonAccountFloor Reason = "account-floor"
)

// Report summarizes an assembly run
type Report struct {
	Years   []int       `json:"years"`
	Totals  map[int]int `json:"totals"`
	Reason  Reason      `json:"stop_reason"`
	Dropped int         `json:"dropped"`
}

// Next is the exit predicate evaluated after year has been merged
// fetched counts years merged so far including year
func Next(p Plan, fetched, year int, jan1Active bool) (Step, Reason) {
	maxYears := p.MaxYears
	if maxYears <= 0 {
		maxYears = DefaultMaxYears
	}
	switch {
	case !jan1Active:
		return Done, ReasonJan1Empty
	case fetched >= maxYears:
		return Done, ReasonLookbackCap
	case p.FloorYear > 0 && year-1 < p.FloorYear:
		return Done, ReasonAccountFloor
	default:
		return NeedMoreHistory, ""
	}
}

// Assemble fetches years newest first and folds them into one Contributions value
// the context is checked before every fetch, never mid merge
func Assemble(ctx context.Context, f Fetcher, p Plan) (streak.Contributions, Report, error) {
	b := streak.NewBuilder()
	rep := Report{Totals: map[int]int{}}

	year := p.Clock.Year()
	for step := NeedMoreHistory; step == NeedMoreHistory; year-- {
		if err := ctx.Err(); err != nil {
			return streak.Contributions{}, rep, err
		}
		y, err := f.FetchYear(ctx, YearRequest{Username: p.Username, Year: year, OffsetMinutes: p.Clock.OffsetMinutes})
		if err != nil {
			return streak.Contributions{}, rep, err
		}

		rep.Dropped += b.Merge(y.Days)
		rep.Years = append(rep.Years, year)
		rep.Totals[year] = y.Total

		jan1 := fmt.Sprintf("%04d-01-01", year)
		step, rep.Reason = Next(p, len(rep.Years), year, b.Count(jan1) > 0)
	}
	return b.Build(), rep, nil
}
