package testkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Serve runs a request through h and returns the recorded response
// hdr is read as key, value pairs
func Serve(t *testing.T, h http.Handler, method, target string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	if len(hdr)%2 != 0 {
		t.Fatalf("Serve: odd header pair list %q", hdr)
	}
	req := httptest.NewRequest(method, target, nil)
	for i := 0; i < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// MustStatus fails the test unless rr carries the wanted status code
func MustStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status = %d, want %d; body=%s", rr.Code, want, rr.Body.String())
	}
}

// DecodeJSON unmarshals the recorded body into T
func DecodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body: %v; body=%s", err, rr.Body.String())
	}
	return v
}
