// Package http provides http transport for streak lookups and badges
package http

import (
	stdhttp "net/http"
	"strconv"
	"strings"
	"time"

	"streaks/internal/modkit/httpkit"
	perr "streaks/internal/platform/errors"
	"streaks/internal/services/api/streak/domain"
	svc "streaks/internal/services/api/streak/service"
)

// DefaultBadgeMaxAge is how long shared caches may keep a badge
const DefaultBadgeMaxAge = 12 * time.Hour

// YearsHeader is the debug header listing the years a lookup fetched
const YearsHeader = "X-Streak-Years"

// Options tunes the transport
type Options struct {
	BadgeMaxAge time.Duration
}

type handlers struct {
	svc          svc.Service
	cacheControl string
}

func newHandlers(s svc.Service, o Options) *handlers {
	if o.BadgeMaxAge <= 0 {
		o.BadgeMaxAge = DefaultBadgeMaxAge
	}
	return &handlers{
		svc:          s,
		cacheControl: "public, max-age=" + strconv.Itoa(int(o.BadgeMaxAge/time.Second)),
	}
}

// Register mounts the enveloped API routes on the given router
func Register(r httpkit.Router, s svc.Service, o Options) {
	h := newHandlers(s, o)

	// static segments first so tier routes never read as usernames
	httpkit.Get(r, "/tiers/badges", h.tierBadges)
	httpkit.GetHead(r, "/tiers/{days}/badge", h.tierBadge)

	httpkit.Get(r, "/{username}", h.stats)
	httpkit.GetHead(r, "/{username}/badge", h.badge)
}

// RegisterEmbed mounts the bare routes used from READMEs and other embeds
func RegisterEmbed(r httpkit.Router, s svc.Service, o Options) {
	h := newHandlers(s, o)

	r.Get("/{username}", httpkit.Handle(h.raw))
	httpkit.GetHead(r, "/{username}/badge", h.badge)
}

// queryOf reads the path username plus optional query params
func queryOf(r *stdhttp.Request) domain.StatsQuery {
	q := r.URL.Query()
	return domain.StatsQuery{
		Username: httpkit.URLParam(r, "username"),
		TzOffset: strings.TrimSpace(q.Get("tz_offset")),
		Tz:       strings.TrimSpace(q.Get("tz")),
		At:       strings.TrimSpace(q.Get("at")),
		Lang:     strings.TrimSpace(q.Get("lang")),
	}
}

// stats answers with the enveloped stats
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	res, err := h.svc.Stats(r.Context(), queryOf(r))
	if err != nil {
		return nil, err
	}
	return httpkit.OK(res.Stats).WithHeader(YearsHeader, yearsHeader(res)), nil
}

func (h *handlers) raw(r *stdhttp.Request) httpkit.Response {
	res, err := h.svc.Stats(r.Context(), queryOf(r))
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Raw(res.Stats).WithHeader(YearsHeader, yearsHeader(res))
}

// badge answers with the SVG card, cacheable by shared caches
func (h *handlers) badge(r *stdhttp.Request) httpkit.Response {
	res, err := h.svc.Badge(r.Context(), queryOf(r))
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.SVG(res.SVG).
		WithHeader("Cache-Control", h.cacheControl).
		WithHeader(YearsHeader, yearsHeader(res.Result))
}

func (h *handlers) tierBadges(r *stdhttp.Request) (any, error) {
	return h.svc.TierBadges(r.Context())
}

func (h *handlers) tierBadge(r *stdhttp.Request) httpkit.Response {
	days, err := strconv.Atoi(httpkit.URLParam(r, "days"))
	if err != nil {
		return httpkit.Error(perr.WithField(perr.InvalidArgf("days must be an integer"), "days"))
	}
	svg, err := h.svc.TierBadge(r.Context(), days)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.SVG(svg).WithHeader("Cache-Control", h.cacheControl)
}

// yearsHeader renders "2025,2024;stop=jan1-empty"
func yearsHeader(res domain.StatsResult) string {
	parts := make([]string, 0, len(res.Report.Years))
	for _, y := range res.Report.Years {
		parts = append(parts, strconv.Itoa(y))
	}
	return strings.Join(parts, ",") + ";stop=" + string(res.Report.Reason)
}
