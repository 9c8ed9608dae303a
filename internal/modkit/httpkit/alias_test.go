package httpkit

import (
	"net/http"
	"testing"

	perr "streaks/internal/platform/errors"
	kit "streaks/internal/platform/testkit"
)

func TestHandle_SVGPassThrough(t *testing.T) {
	h := Handle(func(*http.Request) Response {
		return SVG("<svg></svg>").WithHeader("Cache-Control", "public, max-age=60")
	})
	rr := kit.Serve(t, http.HandlerFunc(h), http.MethodGet, "/badge")
	kit.MustStatus(t, rr, http.StatusOK)
	kit.MustContain(t, rr.Header().Get("Content-Type"), "image/svg+xml")
	if rr.Body.String() != "<svg></svg>" || rr.Header().Get("Cache-Control") != "public, max-age=60" {
		t.Fatalf("svg response mangled: %q %v", rr.Body.String(), rr.Header())
	}
}

func TestHandle_RawSkipsEnvelope(t *testing.T) {
	h := Handle(func(*http.Request) Response { return Raw(map[string]int{"currentStreak": 3}) })
	got := kit.DecodeJSON[map[string]int](t, kit.Serve(t, http.HandlerFunc(h), http.MethodGet, "/"))
	if len(got) != 1 || got["currentStreak"] != 3 {
		t.Fatalf("raw body = %v", got)
	}
}

func TestCall(t *testing.T) {
	cases := []struct {
		name   string
		fn     func(*http.Request) (any, error)
		status int
		want   string
	}{
		{"value is enveloped", func(*http.Request) (any, error) { return map[string]string{"a": "1"}, nil }, http.StatusOK, `"status_code":200`},
		{"nil value", func(*http.Request) (any, error) { return nil, nil }, http.StatusOK, `"status":"OK"`},
		{"response passes through", func(*http.Request) (any, error) { return Raw([]int{4}), nil }, http.StatusOK, `[4]`},
		{"error wins over value", func(*http.Request) (any, error) {
			return OK("ignored"), perr.NotFoundf("github user %q not found", "ghost")
		}, http.StatusNotFound, "ghost"},
		{"error alone", func(*http.Request) (any, error) { return nil, perr.InvalidArgf("bad tz") }, http.StatusUnprocessableEntity, "bad tz"},
	}
	for _, tc := range cases {
		rr := kit.Serve(t, http.HandlerFunc(Call(tc.fn)), http.MethodGet, "/")
		if rr.Code != tc.status {
			t.Fatalf("%s: status = %d, want %d", tc.name, rr.Code, tc.status)
		}
		kit.MustContain(t, rr.Body.String(), tc.want)
	}
}
