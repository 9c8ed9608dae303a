package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"streaks/internal/core/history"
	"streaks/internal/core/streak"
	perr "streaks/internal/platform/errors"
	kit "streaks/internal/platform/testkit"
	"streaks/internal/services/api/streak/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// fakeCollector serves canned data and records calls
type fakeCollector struct {
	meta    history.UserMeta
	metaErr error
	years   map[int][]streak.Day
	yearErr error
	asked   []history.YearRequest
}

func (f *fakeCollector) FetchUserMeta(_ context.Context, login string) (history.UserMeta, error) {
	if f.metaErr != nil {
		return history.UserMeta{}, f.metaErr
	}
	m := f.meta
	if m.Login == "" {
		m.Login = login
	}
	return m, nil
}

func (f *fakeCollector) FetchYear(_ context.Context, req history.YearRequest) (history.Year, error) {
	f.asked = append(f.asked, req)
	if f.yearErr != nil {
		return history.Year{}, f.yearErr
	}
	total := 0
	for _, d := range f.years[req.Year] {
		total += d.Count
	}
	return history.Year{Year: req.Year, Total: total, Days: f.years[req.Year]}, nil
}

var now = time.Date(2025, time.September, 3, 22, 30, 0, 0, time.UTC)

// run builds days ending at end (inclusive) with count 1
func run(end string, n int) []streak.Day {
	t, _ := streak.ParseDateKey(end)
	out := make([]streak.Day, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, streak.Day{Date: t.AddDate(0, 0, -i).Format(streak.KeyLayout), Count: 1})
	}
	return out
}

func newSvc(f *fakeCollector, cfg Config) *Svc {
	s := New(f, cfg)
	s.now = func() time.Time { return now }
	return s
}

func TestStats_ComputesFromAssembledHistory(t *testing.T) {
	f := &fakeCollector{
		meta:  history.UserMeta{Login: "Octocat", CreatedAt: time.Date(2011, 1, 25, 0, 0, 0, 0, time.UTC)},
		years: map[int][]streak.Day{2025: run("2025-09-03", 5)},
	}
	res, err := newSvc(f, Config{}).Stats(context.Background(), domain.StatsQuery{Username: "octocat"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Login != "Octocat" {
		t.Fatalf("login = %q, want canonical Octocat", res.Login)
	}
	if res.Stats.CurrentStreak != 5 || res.Stats.LongestStreak != 5 || res.Stats.TotalCommits != 5 {
		t.Fatalf("stats = %+v", res.Stats)
	}
	if last, _ := res.Stats.LastActive(); last != "2025-09-03" {
		t.Fatalf("last active = %q", last)
	}
	if res.Report.Reason != history.ReasonJan1Empty || len(f.asked) != 1 {
		t.Fatalf("report = %+v asked = %d", res.Report, len(f.asked))
	}
	if f.asked[0].Username != "Octocat" {
		t.Fatalf("fetch used %q, want the canonical login", f.asked[0].Username)
	}
	if res.Tier.Min != 3 {
		t.Fatalf("tier = %+v, want Kindling", res.Tier)
	}
}

func TestStats_OffsetSelection(t *testing.T) {
	// 22:30 UTC on Sep 3 is already Sep 4 east of UTC+1:30
	f := &fakeCollector{years: map[int][]streak.Day{2025: run("2025-09-03", 2)}}
	s := newSvc(f, Config{DefaultOffset: 0})

	cases := []struct {
		name   string
		q      domain.StatsQuery
		offset int
	}{
		{"default", domain.StatsQuery{Username: "u"}, 0},
		{"numeric", domain.StatsQuery{Username: "u", TzOffset: "120"}, 120},
		{"numeric wins", domain.StatsQuery{Username: "u", TzOffset: "-60", Tz: "Asia/Tokyo"}, -60},
		{"zone", domain.StatsQuery{Username: "u", Tz: "Asia/Tokyo"}, 540},
	}
	for _, c := range cases {
		res, err := s.Stats(context.Background(), c.q)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if res.OffsetMinutes != c.offset {
			t.Fatalf("%s: offset = %d, want %d", c.name, res.OffsetMinutes, c.offset)
		}
		if got := f.asked[len(f.asked)-1].OffsetMinutes; got != c.offset {
			t.Fatalf("%s: fetch offset = %d", c.name, got)
		}
	}

	// in Tokyo it is Sep 4 with no activity yet, the run ending yesterday still counts
	res, _ := s.Stats(context.Background(), domain.StatsQuery{Username: "u", Tz: "Asia/Tokyo"})
	if res.Stats.CurrentStreak != 2 {
		t.Fatalf("tokyo current = %d, want 2", res.Stats.CurrentStreak)
	}
}

func TestStats_AtOverride(t *testing.T) {
	f := &fakeCollector{years: map[int][]streak.Day{
		2024: run("2024-06-10", 3),
		2025: run("2025-09-03", 1),
	}}
	f.years[2024] = append([]streak.Day{{Date: "2024-01-01", Count: 0}}, f.years[2024]...)
	res, err := newSvc(f, Config{}).Stats(context.Background(), domain.StatsQuery{Username: "u", At: "2024-06-11T08:00:00Z"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !res.AsOf.Equal(time.Date(2024, 6, 11, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("as of = %v", res.AsOf)
	}
	if f.asked[0].Year != 2024 {
		t.Fatalf("first fetched year = %d, want 2024", f.asked[0].Year)
	}
	if res.Stats.CurrentStreak != 3 {
		t.Fatalf("current = %d, want 3", res.Stats.CurrentStreak)
	}
}

func TestStats_RespectsConfigAndFloor(t *testing.T) {
	f := &fakeCollector{
		meta:  history.UserMeta{ContributionYears: []int{2024, 2025}},
		years: map[int][]streak.Day{},
	}
	for y := 2015; y <= 2025; y++ {
		f.years[y] = []streak.Day{{Date: fmt.Sprintf("%d-01-01", y), Count: 1}}
	}
	res, err := newSvc(f, Config{MaxYears: 8}).Stats(context.Background(), domain.StatsQuery{Username: "u"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Report.Reason != history.ReasonAccountFloor || len(res.Report.Years) != 2 {
		t.Fatalf("report = %+v", res.Report)
	}

	f.meta = history.UserMeta{}
	f.asked = nil
	res, _ = newSvc(f, Config{MaxYears: 3}).Stats(context.Background(), domain.StatsQuery{Username: "u"})
	if res.Report.Reason != history.ReasonLookbackCap || len(f.asked) != 3 {
		t.Fatalf("cap report = %+v asked=%d", res.Report, len(f.asked))
	}
}

func TestStats_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := newSvc(&fakeCollector{}, Config{}).Stats(ctx, domain.StatsQuery{Username: "bad--name"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	notFound := perr.NotFoundf("github user %q not found", "ghost")
	_, err = newSvc(&fakeCollector{metaErr: notFound}, Config{}).Stats(ctx, domain.StatsQuery{Username: "ghost"})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	limited := perr.TooManyRequestsf("github rate limited")
	_, err = newSvc(&fakeCollector{yearErr: limited}, Config{}).Stats(ctx, domain.StatsQuery{Username: "u"})
	if !perr.IsCode(err, perr.ErrorCodeTooManyRequests) {
		t.Fatalf("expected rate limit, got %v", err)
	}

	boom := errors.New("connection reset")
	_, err = newSvc(&fakeCollector{yearErr: boom}, Config{}).Stats(ctx, domain.StatsQuery{Username: "u"})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) || !errors.Is(err, boom) {
		t.Fatalf("expected unavailable wrapping the cause, got %v", err)
	}
}

func TestStats_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &fakeCollector{}
	_, err := newSvc(f, Config{}).Stats(ctx, domain.StatsQuery{Username: "u"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(f.asked) != 0 {
		t.Fatalf("no year should be fetched after cancel")
	}
}

func TestBadge(t *testing.T) {
	f := &fakeCollector{
		meta:  history.UserMeta{Login: "octocat"},
		years: map[int][]streak.Day{2025: run("2025-09-03", 14)},
	}
	res, err := newSvc(f, Config{}).Badge(context.Background(), domain.StatsQuery{Username: "octocat", Lang: "de"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	kit.MustContain(t, res.SVG, "octocat contribution streak")
	kit.MustContain(t, res.SVG, "Fortnight Focus")
	if res.Result.Stats.CurrentStreak != 14 {
		t.Fatalf("current = %d", res.Result.Stats.CurrentStreak)
	}
}

func TestTierBadges(t *testing.T) {
	s := newSvc(&fakeCollector{}, Config{})
	all, err := s.TierBadges(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(all) != 13 {
		t.Fatalf("tiers = %d, want 13", len(all))
	}
	for _, tb := range all {
		if !strings.Contains(tb.SVG, fmt.Sprintf(`data-tier="%d"`, tb.Tier.Min)) {
			t.Fatalf("sample for %d rendered the wrong tier", tb.Tier.Min)
		}
	}
	kit.MustContain(t, all[0].SVG, "No activity yet")
	kit.MustContain(t, all[1].SVG, "Last active Sep 3, 2025")

	if _, err := s.TierBadge(context.Background(), -1); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("negative days should be invalid, got %v", err)
	}
}

func TestNew_Guards(t *testing.T) {
	kit.MustPanic(t, func() { New(nil, Config{}) })
	kit.MustPanic(t, func() { New(&fakeCollector{}, Config{DefaultOffset: 2000}) })
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	f := &fakeCollector{years: map[int][]streak.Day{2025: run("2025-09-03", 5)}}
	s := newSvc(f, Config{Metrics: reg})

	if _, err := s.Badge(context.Background(), domain.StatsQuery{Username: "octocat"}); err != nil {
		t.Fatalf("Badge err: %v", err)
	}
	f.metaErr = perr.NotFoundf("no such user")
	if _, err := s.Stats(context.Background(), domain.StatsQuery{Username: "ghost"}); err == nil {
		t.Fatalf("expected not found")
	}

	if got := testutil.ToFloat64(s.m.lookups.WithLabelValues("ok")); got != 1 {
		t.Fatalf("ok lookups = %v", got)
	}
	if got := testutil.ToFloat64(s.m.lookups.WithLabelValues("not_found")); got != 1 {
		t.Fatalf("not_found lookups = %v", got)
	}
	if got := testutil.ToFloat64(s.m.stops.WithLabelValues(string(history.ReasonJan1Empty))); got != 1 {
		t.Fatalf("jan1 stops = %v", got)
	}
	if got := testutil.ToFloat64(s.m.badges.WithLabelValues("Kindling")); got != 1 {
		t.Fatalf("Kindling badges = %v", got)
	}
	if n := testutil.CollectAndCount(s.m.years); n != 1 {
		t.Fatalf("history_years series = %d", n)
	}
}
