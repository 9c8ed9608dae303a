package main

import (
	"context"
	"os/signal"
	"syscall"

	gh "streaks/internal/adapters/ingest/github"
	"streaks/internal/core/version"
	"streaks/internal/platform/config"
	"streaks/internal/platform/logger"
	"streaks/internal/platform/metrics"
	phttp "streaks/internal/platform/net/http"

	"streaks/internal/services/api"
)

func main() {
	// bring up logging early
	logger.Init(logger.FromEnv("info"))
	l := logger.Get()

	// root view for modules, each scopes its own prefix
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	reg := metrics.New()

	// upstream collector (GITHUB_*)
	client := gh.NewClient(gh.FromConfig(root.Prefix("GITHUB_"), reg.Registerer()))
	collector := gh.NewCollector(client)
	if !client.HasToken(context.Background()) {
		l.Warn().Msg("no GITHUB_TOKEN configured, falling back to public events (90 day window)")
	}

	// http server (reads CORE_API_API_PORT, CORE_API_SHUTDOWN_GRACE)
	srv := phttp.NewServer(apiCfg)

	opt := api.FromConfig(root)
	opt.Metrics = reg
	opt.GitHub = collector
	opt.Logger = l
	api.Mount(srv.Router(), opt)

	bi := version.Info()
	l.Info().Str("version", bi.Version).Str("commit", bi.Commit).Msg("streaks api starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
