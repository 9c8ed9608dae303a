package testkit

import "testing"

// Swap points *target at replacement until the test ends
// tests that swap package level seams must not run in parallel with each other
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}
