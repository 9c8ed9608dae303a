package github

import (
	"streaks/internal/platform/config"

	"github.com/prometheus/client_golang/prometheus"
)

// FromConfig reads client options from a GITHUB_ scoped config view
// keys: TOKEN (csv), BASE_URL, GRAPHQL_URL, TIMEOUT, MAX_RETRIES, USER_AGENT
func FromConfig(cfg config.Conf, reg prometheus.Registerer) Options {
	return Options{
		BaseURL:    cfg.MayString("BASE_URL", baseURLDefault),
		GraphQLURL: cfg.MayString("GRAPHQL_URL", ""),
		UserAgent:  cfg.MayString("USER_AGENT", defaultUA),
		Timeout:    cfg.MayDuration("TIMEOUT", defaultTimeout),
		TokensCSV:  cfg.MayString("TOKEN", ""),
		MaxRetries: cfg.MayInt("MAX_RETRIES", defaultMaxRetry),
		RetryBase:  cfg.MayDuration("RETRY_BASE", defaultRetryBase),
		Metrics:    reg,
	}
}
