package http_test

import (
	"net/http"
	"testing"

	"streaks/internal/platform/config"
	phttp "streaks/internal/platform/net/http"
	kit "streaks/internal/platform/testkit"
)

func TestMountProfiler_Enabled(t *testing.T) {
	r := phttp.NewServer(config.New()).Router()
	phttp.MountProfiler(r, "/debug", true)

	kit.MustStatus(t, kit.Serve(t, r.Mux(), http.MethodGet, "/debug/pprof/"), http.StatusOK)
	kit.MustStatus(t, kit.Serve(t, r.Mux(), http.MethodGet, "/debug/pprof/cmdline"), http.StatusOK)

	rr := kit.Serve(t, r.Mux(), http.MethodGet, "/debug")
	kit.MustStatus(t, rr, http.StatusMovedPermanently)
	if loc := rr.Header().Get("Location"); loc != "/debug/pprof/" {
		t.Fatalf("Location = %q, want /debug/pprof/", loc)
	}
}

func TestMountProfiler_Disabled(t *testing.T) {
	r := phttp.NewServer(config.New()).Router()
	phttp.MountProfiler(r, "/debug", false)

	kit.MustStatus(t, kit.Serve(t, r.Mux(), http.MethodGet, "/debug/pprof/"), http.StatusNotFound)
}
