package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "streaks/internal/platform/net/http"
	"streaks/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack, zero values pick the defaults
type StackOptions struct {
	// CORS origins allowed to embed badges and read stats
	CORSOrigins []string
	// Timeout bounds each request, default 30s
	Timeout time.Duration
	// Slow marks access log lines at warn level
	Slow time.Duration
	// Observe receives finished requests, typically the metrics registry
	Observe func(method, route string, status int, elapsed time.Duration)
	// Credentials parses an optional upstream token, nil disables it
	Credentials middleware.CredentialParser
}

// CommonStack returns the baseline root middleware slice in order
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Slow <= 0 {
		o.Slow = 2 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow, Observe: o.Observe}),

		// badges are embedded cross origin
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed, "application/json", "image/svg+xml"),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),

		// upstream credential
		middleware.Credentials(o.Credentials, phttp.JSON),
	}
}
