package middleware

import (
	"net/http"
	"time"

	"streaks/internal/platform/logger"
	pnet "streaks/internal/platform/net"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions configures AccessLogZerolog
type AccessLogOptions struct {
	// Slow logs requests at or above this duration at warn, 0 never does
	Slow time.Duration
	// Observe sees every finished request, route is the chi pattern or "unmatched"
	Observe func(method, route string, status int, elapsed time.Duration)
}

// AccessLogZerolog writes one line per request through the request scoped logger
func AccessLogZerolog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			if opt.Observe != nil {
				opt.Observe(r.Method, route, status, elapsed)
			}

			l := logger.C(logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), ""))
			evt := l.Info()
			if opt.Slow > 0 && elapsed >= opt.Slow {
				evt = l.Warn()
			}
			evt.Str("method", r.Method).
				Str("route", route).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Msg("request done")
		})
	}
}
