// Package api provides the HTTP API for the application
package api

import (
	"time"

	"streaks/internal/platform/config"
	"streaks/internal/platform/logger"
	"streaks/internal/platform/metrics"
	phttp "streaks/internal/platform/net/http"

	"streaks/internal/modkit"
	"streaks/internal/modkit/httpkit"
	"streaks/internal/modkit/swaggerkit"

	metamod "streaks/internal/services/api/meta/module"
	streakmod "streaks/internal/services/api/streak/module"
)

// builders lists the mounted modules in route order
var builders = []modkit.Builder{metamod.New, streakmod.New}

// Options are the API options
type Options struct {
	// Config is the unprefixed root view, modules scope it themselves
	Config  config.Conf
	Metrics *metrics.Registry
	GitHub  modkit.Collector
	Logger  *logger.Logger

	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool

	CORSOrigins []string
	Timeout     time.Duration
	Slow        time.Duration
}

// FromConfig fills the transport options from the CORE_API_ scoped view
func FromConfig(root config.Conf) Options {
	cfg := root.Prefix("CORE_API_")
	return Options{
		Config:         root,
		EnableSwagger:  cfg.MayBool("SWAGGER", true),
		EnableProfiler: cfg.MayBool("PROFILER", false),
		EnableMetrics:  cfg.MayBool("METRICS", true),
		CORSOrigins:    cfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		Timeout:        cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		Slow:           cfg.MayDuration("SLOW_REQUEST", 2*time.Second),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	if opt.GitHub == nil {
		logger.Named("api").Panic().Msg("api.Mount requires a GitHub collector")
	}
	if opt.Metrics == nil {
		opt.Metrics = metrics.New()
	}

	// shared deps for modules
	deps := modkit.Deps{
		Cfg:     opt.Config,
		Metrics: opt.Metrics.Registerer(),
		GitHub:  opt.GitHub,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	} else {
		deps.Log = *logger.Get()
	}

	// the common stack wraps every surface, badges included
	r.Use(httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		Timeout:     opt.Timeout,
		Slow:        opt.Slow,
		Observe:     opt.Metrics.ObserveHTTP,
		Credentials: httpkit.BearerParser{},
	})...)

	var mods []modkit.Module
	for _, build := range builders {
		mods = append(mods, build(deps))
	}

	// docs, profiler and scrape endpoint
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		r.Handle("/metrics", opt.Metrics.Handler())
	}

	// versioned API
	httpkit.MountAPIV1(r, nil, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	// bare routes for README embeds
	for _, m := range mods {
		if e, ok := m.(modkit.Embedder); ok {
			e.MountEmbed(r)
		}
	}
}
