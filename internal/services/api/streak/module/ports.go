package module

import (
	"context"

	"streaks/internal/services/api/streak/domain"
	streaksvc "streaks/internal/services/api/streak/service"
)

// Ports is the port set other modules and binaries pull from this module
type Ports struct {
	Service domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptStreakPort struct{ svc streaksvc.Service }

// Stats returns streak stats for one user
func (a adaptStreakPort) Stats(ctx context.Context, q domain.StatsQuery) (domain.StatsResult, error) {
	return a.svc.Stats(ctx, q)
}

// Badge renders the badge for one user
func (a adaptStreakPort) Badge(ctx context.Context, q domain.StatsQuery) (domain.BadgeResult, error) {
	return a.svc.Badge(ctx, q)
}

// TierBadges lists every tier with a sample badge
func (a adaptStreakPort) TierBadges(ctx context.Context) ([]domain.TierBadge, error) {
	return a.svc.TierBadges(ctx)
}

// TierBadge renders a sample badge for a streak length
func (a adaptStreakPort) TierBadge(ctx context.Context, days int) (string, error) {
	return a.svc.TierBadge(ctx, days)
}
