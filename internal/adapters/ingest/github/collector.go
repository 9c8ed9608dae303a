package github

import (
	"context"
	"strconv"
	"time"

	"streaks/internal/core/history"
	"streaks/internal/core/streak"
	perr "streaks/internal/platform/errors"
	"streaks/internal/platform/logger"
)

// Collector implements the history fetch port on top of Client
type Collector struct {
	c   *Client
	log logger.Logger
}

var _ history.Fetcher = (*Collector)(nil)

// NewCollector wraps a Client as a contribution collector
func NewCollector(c *Client) *Collector {
	return &Collector{c: c, log: *logger.Named("github.collector")}
}

// Ping reports whether GitHub is reachable with the configured credentials
func (col *Collector) Ping(ctx context.Context) error { return col.c.Ping(ctx) }

// FetchYear returns one calendar year of contributions
// authenticated calls read the GraphQL calendar, tokenless calls fall back to public events
func (col *Collector) FetchYear(ctx context.Context, req history.YearRequest) (history.Year, error) {
	if !col.c.HasToken(ctx) {
		return col.yearFromEvents(ctx, req)
	}

	from := time.Date(req.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0).Add(-time.Second)
	data, err := graphQL[calendarData](ctx, col.c, "calendar", calendarQuery, map[string]any{
		"login": req.Username,
		"from":  from.Format(time.RFC3339),
		"to":    to.Format(time.RFC3339),
	})
	if err != nil {
		return history.Year{}, err
	}
	if data.User == nil {
		return history.Year{}, perr.NotFoundf("github user %q not found", req.Username)
	}

	cal := data.User.ContributionsCollection.ContributionCalendar
	out := history.Year{Year: req.Year, Total: cal.TotalContributions}
	skipped := 0
	for _, w := range cal.Weeks {
		for _, d := range w.ContributionDays {
			if d.ContributionCount == nil {
				skipped++
				continue
			}
			out.Days = append(out.Days, streak.Day{Date: d.Date, Count: *d.ContributionCount})
		}
	}
	if skipped > 0 {
		col.c.metrics.dropped.Add(float64(skipped))
		col.log.Debug().Str("user", req.Username).Int("year", req.Year).Int("skipped", skipped).Msg("calendar days without count")
	}
	return out, nil
}

// yearFromEvents buckets public event instants into local days of req.Year
func (col *Collector) yearFromEvents(ctx context.Context, req history.YearRequest) (history.Year, error) {
	events, err := col.c.PublicEvents(ctx, req.Username)
	if err != nil {
		return history.Year{}, err
	}
	prefix := strconv.Itoa(req.Year) + "-"
	b := streak.NewBuilder()
	total := 0
	for _, at := range events {
		key := streak.LocalDateKey(at, req.OffsetMinutes)
		if len(key) < len(prefix) || key[:len(prefix)] != prefix {
			continue
		}
		if b.Add(key, 1) {
			total++
		}
	}
	col.log.Debug().Str("user", req.Username).Int("year", req.Year).Int("events", len(events)).Int("in_year", total).Msg("public events fallback")
	return history.Year{Year: req.Year, Total: total, Days: b.Build().Sorted()}, nil
}

// FetchUserMeta returns the account bounds used to stop the backward walk
// contributionYears is best effort, transient GraphQL failures only lose the floor hint
func (col *Collector) FetchUserMeta(ctx context.Context, login string) (history.UserMeta, error) {
	u, err := col.c.User(ctx, login)
	if err != nil {
		return history.UserMeta{}, err
	}
	meta := history.UserMeta{Login: u.GetLogin(), CreatedAt: u.GetCreatedAt().Time}
	if !col.c.HasToken(ctx) {
		return meta, nil
	}

	data, err := graphQL[yearsData](ctx, col.c, "years", yearsQuery, map[string]any{"login": login})
	switch {
	case err == nil && data.User != nil:
		meta.ContributionYears = data.User.ContributionsCollection.ContributionYears
	case err == nil:
	case perr.Retryable(err):
		col.log.Warn().Err(err).Str("user", login).Msg("contribution years unavailable")
	default:
		return history.UserMeta{}, err
	}
	return meta, nil
}
