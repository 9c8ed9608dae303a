// Package domain holds DTOs and ports for the streak http and service contracts
package domain

import (
	"time"

	"streaks/internal/core/badge"
	"streaks/internal/core/history"
	"streaks/internal/core/streak"
)

// StatsQuery is everything a caller can say about one streak lookup
// values stay strings so validation reports the raw input back
type StatsQuery struct {
	Username string `json:"username" validate:"required,github_login" example:"octocat"`
	// minutes east of UTC, wins over Tz when both are set
	TzOffset string `json:"tz_offset,omitempty" validate:"omitempty,tz_offset" example:"120"`
	Tz       string `json:"tz,omitempty" validate:"omitempty,tz_name" example:"Europe/Berlin"`
	// RFC3339 instant used instead of now
	At   string `json:"at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00" example:"2025-09-03T12:00:00Z"`
	Lang string `json:"lang,omitempty" validate:"omitempty,bcp47_language_tag" example:"de"`
}

// StatsResult is a computed lookup with the context it was computed in
type StatsResult struct {
	Login         string         `json:"login"`
	Stats         streak.Stats   `json:"stats"`
	AsOf          time.Time      `json:"as_of"`
	OffsetMinutes int            `json:"offset_minutes"`
	Tier          badge.Tier     `json:"tier"`
	Report        history.Report `json:"report"`
}

// BadgeResult is a rendered badge plus the lookup behind it
type BadgeResult struct {
	SVG    string
	Result StatsResult
}

// TierBadge pairs a tier with a sample badge rendered at its threshold
type TierBadge struct {
	Tier badge.Tier `json:"tier"`
	SVG  string     `json:"svg"`
}
