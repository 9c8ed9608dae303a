package domain

import (
	"context"

	"streaks/internal/core/history"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Stats(ctx context.Context, q StatsQuery) (StatsResult, error)
	Badge(ctx context.Context, q StatsQuery) (BadgeResult, error)
	TierBadges(ctx context.Context) ([]TierBadge, error)
	TierBadge(ctx context.Context, days int) (string, error)
}

// Collector is the upstream the service assembles history from
type Collector interface {
	history.Fetcher
	FetchUserMeta(ctx context.Context, login string) (history.UserMeta, error)
}
