// Package modkit provides module wiring and core deps
package modkit

import (
	"context"

	"streaks/internal/core/history"
	"streaks/internal/platform/config"
	"streaks/internal/platform/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the upstream contribution source shared by modules
type Collector interface {
	history.Fetcher
	FetchUserMeta(ctx context.Context, login string) (history.UserMeta, error)
	Ping(ctx context.Context) error
}

// Deps holds core dependencies passed to modules
// the zero value is usable except GitHub, which modules that fetch must check
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	Metrics prometheus.Registerer
	GitHub  Collector
}
