// Package testkit holds assertion and seam helpers shared by package tests
package testkit

import (
	"os"
	"strings"
	"testing"
)

// MustPanic runs fn and fails unless it panics, the recovered value is returned
func MustPanic(t *testing.T, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatalf("expected a panic")
		}
	}()
	fn()
	return nil
}

// MustNotPanic runs fn and fails with the panic value if it panics
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain fails unless haystack contains needle
// long haystacks are written to a temp file instead of the failure message
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	if len(haystack) <= 512 {
		t.Fatalf("missing %q in:\n%s", needle, haystack)
	}
	f, err := os.CreateTemp(t.TempDir(), "haystack-*.txt")
	if err != nil {
		t.Fatalf("missing %q in %d bytes of output", needle, len(haystack))
	}
	_, _ = f.WriteString(haystack)
	_ = f.Close()
	t.Fatalf("missing %q in %d bytes of output, see %s", needle, len(haystack), f.Name())
}
