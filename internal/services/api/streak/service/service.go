// Package service contains streak workflows
package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"streaks/internal/core/badge"
	"streaks/internal/core/history"
	"streaks/internal/core/streak"
	perr "streaks/internal/platform/errors"
	"streaks/internal/platform/logger"
	pnet "streaks/internal/platform/net"
	"streaks/internal/platform/net/http/bind"
	"streaks/internal/services/api/streak/domain"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"
)

// Service defines the streak service contract
type Service interface {
	domain.ServicePort
}

// Config tunes history assembly
type Config struct {
	// MaxYears caps the look back, zero means history.DefaultMaxYears
	MaxYears int
	// DefaultOffset applies when a query names no zone
	DefaultOffset int
	// Metrics receives the streak instruments, nil keeps them unregistered
	Metrics prometheus.Registerer
}

// Svc implements the streak service
type Svc struct {
	gh  domain.Collector
	cfg Config
	m   *metrics
	now func() time.Time
}

// New constructs a streak service
func New(gh domain.Collector, cfg Config) *Svc {
	if gh == nil {
		panic("streak.Service requires a non nil Collector")
	}
	if !streak.ValidOffset(cfg.DefaultOffset) {
		panic("streak.Service default offset out of range: " + strconv.Itoa(cfg.DefaultOffset))
	}
	domain.RegisterValidators()
	return &Svc{gh: gh, cfg: cfg, m: newMetrics(cfg.Metrics), now: time.Now}
}

// Stats assembles history for q.Username and computes streak stats as of the query clock
func (s *Svc) Stats(ctx context.Context, q domain.StatsQuery) (domain.StatsResult, error) {
	res, err := s.stats(ctx, q)
	outcome := "ok"
	if err != nil {
		outcome = perr.CodeOf(err).String()
	}
	s.m.lookups.WithLabelValues(outcome).Inc()
	return res, err
}

func (s *Svc) stats(ctx context.Context, q domain.StatsQuery) (domain.StatsResult, error) {
	if err := bind.Validate(q); err != nil {
		return domain.StatsResult{}, err
	}
	clock, err := s.clock(q)
	if err != nil {
		return domain.StatsResult{}, err
	}

	ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), q.Username)
	log := logger.C(ctx)

	meta, err := s.gh.FetchUserMeta(ctx, q.Username)
	if err != nil {
		return domain.StatsResult{}, upstream(err)
	}
	login := meta.Login
	if login == "" {
		login = q.Username
	}

	contribs, rep, err := history.Assemble(ctx, s.gh, history.Plan{
		Username:  login,
		Clock:     clock,
		MaxYears:  s.cfg.MaxYears,
		FloorYear: meta.FloorYear(),
	})
	if err != nil {
		return domain.StatsResult{}, upstream(err)
	}

	s.m.years.Observe(float64(len(rep.Years)))
	s.m.stops.WithLabelValues(string(rep.Reason)).Inc()

	stats := clock.Stats(contribs)
	log.Debug().
		Ints("years", rep.Years).
		Str("stop_reason", string(rep.Reason)).
		Int("dropped", rep.Dropped).
		Int("days", contribs.Len()).
		Int("current", stats.CurrentStreak).
		Int("longest", stats.LongestStreak).
		Msg("streak computed")

	return domain.StatsResult{
		Login:         login,
		Stats:         stats,
		AsOf:          clock.At,
		OffsetMinutes: clock.OffsetMinutes,
		Tier:          badge.TierFor(stats.CurrentStreak),
		Report:        rep,
	}, nil
}

// Badge renders the streak card for q.Username
func (s *Svc) Badge(ctx context.Context, q domain.StatsQuery) (domain.BadgeResult, error) {
	res, err := s.Stats(ctx, q)
	if err != nil {
		return domain.BadgeResult{}, err
	}
	svg, err := badge.Render(res.Stats, badge.Options{Username: res.Login, Lang: langOf(q.Lang)})
	if err != nil {
		return domain.BadgeResult{}, perr.Wrap(err, perr.ErrorCodeUnknown, "badge render failed")
	}
	s.m.badges.WithLabelValues(res.Tier.Name).Inc()
	return domain.BadgeResult{SVG: svg, Result: res}, nil
}

// TierBadges renders a sample badge at every tier threshold
func (s *Svc) TierBadges(ctx context.Context) ([]domain.TierBadge, error) {
	tiers := badge.Tiers()
	out := make([]domain.TierBadge, 0, len(tiers))
	for _, t := range tiers {
		svg, err := s.TierBadge(ctx, t.Min)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.TierBadge{Tier: t, SVG: svg})
	}
	return out, nil
}

// TierBadge renders the sample badge for a streak of days
func (s *Svc) TierBadge(_ context.Context, days int) (string, error) {
	if days < 0 {
		return "", perr.WithField(perr.InvalidArgf("days must not be negative"), "days")
	}
	svg, err := badge.Render(sampleStats(days, s.now()), badge.Options{Username: "sample"})
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "badge render failed")
	}
	return svg, nil
}

// clock pins now and the local offset for one query
// an explicit tz_offset wins over tz, both fall back to the configured default
func (s *Svc) clock(q domain.StatsQuery) (streak.Clock, error) {
	at := s.now()
	if q.At != "" {
		t, err := time.Parse(time.RFC3339, q.At)
		if err != nil {
			return streak.Clock{}, perr.WithField(perr.InvalidArgf("at must be an RFC3339 instant"), "at")
		}
		at = t
	}

	offset := s.cfg.DefaultOffset
	switch {
	case q.TzOffset != "":
		n, err := strconv.Atoi(strings.TrimSpace(q.TzOffset))
		if err != nil || !streak.ValidOffset(n) {
			return streak.Clock{}, perr.WithField(perr.InvalidArgf("tz_offset out of range"), "tz_offset")
		}
		offset = n
	case q.Tz != "":
		n, err := streak.OffsetFor(q.Tz, at)
		if err != nil {
			return streak.Clock{}, perr.WithField(perr.InvalidArgf("unknown time zone %q", q.Tz), "tz")
		}
		offset = n
	}
	return streak.NewClock(at, offset), nil
}

// sampleStats fabricates stats sitting exactly on a tier threshold
func sampleStats(days int, now time.Time) streak.Stats {
	s := streak.Stats{CurrentStreak: days, LongestStreak: days, TotalCommits: days}
	if days > 0 {
		last := streak.LocalDateKey(now, 0)
		s.LastActiveDate = &last
	}
	return s
}

// upstream keeps coded errors and classifies the rest as an unavailable upstream
func upstream(err error) error {
	if _, ok := perr.As(err); ok {
		return err
	}
	return perr.Wrap(err, perr.ErrorCodeUnavailable, "contribution history unavailable")
}

func langOf(tag string) language.Tag {
	if tag == "" {
		return language.Und
	}
	t, err := language.Parse(tag)
	if err != nil {
		return language.Und
	}
	return t
}
