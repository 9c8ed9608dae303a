// Package module wires streak lookups into the API using modkit
package module

import (
	"net/http"
	"time"

	"streaks/internal/core/history"
	"streaks/internal/core/streak"
	modkit "streaks/internal/modkit"
	"streaks/internal/modkit/httpkit"
	str "streaks/internal/platform/strings"
	streakhttp "streaks/internal/services/api/streak/http"
	streaksvc "streaks/internal/services/api/streak/service"
)

// maxLookbackYears bounds STREAK_MAX_YEARS, GitHub accounts date back to 2008
const maxLookbackYears = 20

var _ modkit.Embedder = (*Module)(nil)

// Module implements the streak module
type Module struct {
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	register func(httpkit.Router)
	httpOpts streakhttp.Options

	svc streaksvc.Service
}

// New constructs the streak module
// config keys are read under the STREAK_ prefix unless WithEnvPrefix says otherwise
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("streak"),
		modkit.WithPrefix("/streak"),
		modkit.WithEnvPrefix("STREAK_"),
	}, opts...)...)

	if deps.GitHub == nil {
		panic("streak module requires deps.GitHub")
	}
	cfg := deps.Cfg.Prefix(b.EnvPrefix)
	svc := streaksvc.New(deps.GitHub, streaksvc.Config{
		MaxYears:      cfg.MayIntIn("MAX_YEARS", history.DefaultMaxYears, 1, maxLookbackYears),
		DefaultOffset: cfg.MayIntIn("DEFAULT_TZ_OFFSET", 0, streak.MinOffsetMinutes, streak.MaxOffsetMinutes),
		Metrics:       deps.Metrics,
	})

	m := &Module{
		name:     b.Name,
		prefix:   b.Prefix,
		mws:      b.Mw,
		httpOpts: streakhttp.Options{BadgeMaxAge: deps.Cfg.Prefix("CORE_API_").MayDuration("BADGE_MAX_AGE", streakhttp.DefaultBadgeMaxAge)},
		svc:      svc,
	}
	m.ports = Ports{Service: adaptStreakPort{svc: svc}}
	if b.Ports != nil {
		m.ports = b.Ports
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		streakhttp.Register(r, m.svc, m.httpOpts)
		external(r)
	}
	return m
}

// MountRoutes mounts the enveloped routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(sub httpkit.Router) {
		m.register(sub)
	})
}

// MountEmbed mounts the bare JSON and badge routes under the module prefix of r
func (m *Module) MountEmbed(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(sub httpkit.Router) {
		streakhttp.RegisterEmbed(sub, m.svc, m.httpOpts)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.Required(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.RoutePrefix(m.prefix) }

// BadgeMaxAge reports the shared cache lifetime of badges
func (m *Module) BadgeMaxAge() time.Duration { return m.httpOpts.BadgeMaxAge }
