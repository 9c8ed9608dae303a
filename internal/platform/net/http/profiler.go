package http

import (
	stdhttp "net/http"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves pprof under prefix+"/pprof/" when enabled, the bare prefix redirects there
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	index := prefix + "/pprof/"
	r.Get(prefix, func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		stdhttp.Redirect(w, req, index, stdhttp.StatusMovedPermanently)
	})
	r.Handle(prefix+"/*", stdhttp.StripPrefix(prefix, mw.Profiler()))
}
