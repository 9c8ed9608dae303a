package modkit

import (
	"context"
	"testing"

	"streaks/internal/core/history"
	"streaks/internal/platform/config"

	"github.com/prometheus/client_golang/prometheus"
)

type nopCollector struct{ pinged bool }

func (*nopCollector) FetchYear(context.Context, history.YearRequest) (history.Year, error) {
	return history.Year{}, nil
}

func (*nopCollector) FetchUserMeta(_ context.Context, login string) (history.UserMeta, error) {
	return history.UserMeta{Login: login}, nil
}

func (c *nopCollector) Ping(context.Context) error { c.pinged = true; return nil }

var _ Collector = (*nopCollector)(nil)

func TestDeps_CarryCollector(t *testing.T) {
	t.Parallel()

	gh := &nopCollector{}
	d := Deps{
		Cfg:     config.New().Prefix("STREAK_"),
		Metrics: prometheus.NewRegistry(),
		GitHub:  gh,
	}

	if err := d.GitHub.Ping(context.Background()); err != nil || !gh.pinged {
		t.Fatalf("ping: err=%v pinged=%v", err, gh.pinged)
	}
	meta, err := d.GitHub.FetchUserMeta(context.Background(), "octocat")
	if err != nil || meta.Login != "octocat" {
		t.Fatalf("meta = %+v err=%v", meta, err)
	}
}

func TestDeps_ZeroValue(t *testing.T) {
	t.Parallel()

	var d Deps
	if d.GitHub != nil || d.Metrics != nil {
		t.Fatal("zero Deps should carry no collector or registerer")
	}
}
