// Package module mounts the liveness, readiness and build info probes
package module

import (
	"net/http"
	"time"

	modkit "streaks/internal/modkit"
	"streaks/internal/modkit/httpkit"
	"streaks/internal/platform/net/middleware"
	str "streaks/internal/platform/strings"

	metahttp "streaks/internal/services/api/meta/http"
)

const defaultReadyTimeout = 2 * time.Second

// Module implements modkit.Module for the /meta probes
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	register func(httpkit.Router)
}

// New builds the meta module, readiness pings deps.GitHub when it is set
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
		modkit.WithEnvPrefix("CORE_API_"),
		modkit.WithMiddlewares(middleware.NoCache()),
	}, opts...)...)

	cfg := deps.Cfg.Prefix(b.EnvPrefix)
	hd := metahttp.Deps{
		ServiceName:  cfg.MayString("SERVICE_NAME", "streaks-api"),
		StartedAt:    time.Now(),
		ReadyTimeout: cfg.MayDuration("READY_TIMEOUT", defaultReadyTimeout),
	}
	// a nil interface must stay nil, not a typed nil Pinger
	if deps.GitHub != nil {
		hd.GitHub = deps.GitHub
	}

	m := &Module{name: b.Name, prefix: b.Prefix, mws: b.Mw}
	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, hd)
		external(r)
	}
	return m
}

// MountRoutes mounts the probes under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(sub httpkit.Router) {
		m.register(sub)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.Required(m.name, "meta") }

// Prefix returns the mount prefix
func (m *Module) Prefix() string { return str.RoutePrefix(m.prefix) }

// Ports is nil, nothing else calls into meta
func (m *Module) Ports() any { return nil }
