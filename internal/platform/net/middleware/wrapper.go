// Package middleware wraps chi and go-chi/cors middleware behind plain net/http signatures
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Middleware is the shape every constructor here returns
type Middleware = func(http.Handler) http.Handler

// RequestID reuses an inbound X-Request-ID or mints one, readable via pnet.RequestID
func RequestID() Middleware { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP, only mount it behind a proxy you run
func RealIP() Middleware { return chimw.RealIP }

func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

func NoCache() Middleware { return chimw.NoCache }

func StripSlashes() Middleware { return chimw.StripSlashes }

func SetHeader(name, value string) Middleware { return chimw.SetHeader(name, value) }

// Throttle caps in flight requests across the whole router, the excess gets 503
func Throttle(limit int) Middleware { return chimw.Throttle(limit) }

// Heartbeat answers GET path with 200 before routing, for load balancers
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// Compress gzips and deflates the given content types, chi's defaults when none
func Compress(level int, types ...string) Middleware {
	return chimw.NewCompressor(level, types...).Handler
}
