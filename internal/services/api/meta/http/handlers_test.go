package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "streaks/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var started = time.Date(2025, 9, 3, 13, 0, 0, 0, time.UTC)

func serve(t *testing.T, d Deps, path string) (int, map[string]any) {
	t.Helper()
	d.StartedAt = started
	d.Now = func() time.Time { return started.Add(5 * time.Minute) }

	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), d)

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

	var env struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v body=%s", path, err, rr.Body.String())
	}
	return rr.Code, env.Data
}

func TestHealthAndService(t *testing.T) {
	code, data := serve(t, Deps{ServiceName: "streaks-api"}, "/health")
	if code != http.StatusOK || data["ok"] != true || data["service"] != "streaks-api" {
		t.Fatalf("health = %d %v", code, data)
	}

	_, data = serve(t, Deps{ServiceName: "streaks-api"}, "/service")
	if data["uptime"] != float64(300) {
		t.Fatalf("uptime = %v, want 300", data["uptime"])
	}
}

func TestReady(t *testing.T) {
	cases := []struct {
		name   string
		gh     Pinger
		code   int
		status string
	}{
		{"skipped", nil, http.StatusOK, "degraded"},
		{"ok", pingFunc(func(context.Context) error { return nil }), http.StatusOK, "ok"},
		{"fail", pingFunc(func(context.Context) error { return errors.New("rate limited") }), http.StatusServiceUnavailable, "fail"},
	}
	for _, c := range cases {
		code, data := serve(t, Deps{GitHub: c.gh}, "/ready")
		if code != c.code || data["status"] != c.status {
			t.Fatalf("%s: got %d %v, want %d %s", c.name, code, data["status"], c.code, c.status)
		}
	}
}

func TestReady_PingHonorsTimeout(t *testing.T) {
	var deadline bool
	gh := pingFunc(func(ctx context.Context) error {
		_, deadline = ctx.Deadline()
		return nil
	})
	serve(t, Deps{GitHub: gh, ReadyTimeout: time.Second}, "/ready")
	if !deadline {
		t.Fatalf("ping context should carry the ready timeout")
	}
}

func TestVersion_UsesServiceName(t *testing.T) {
	_, data := serve(t, Deps{ServiceName: "streaks-edge"}, "/version")
	if data["service"] != "streaks-edge" {
		t.Fatalf("service = %v", data["service"])
	}
	if _, ok := data["version"]; !ok {
		t.Fatalf("version missing: %v", data)
	}
}
