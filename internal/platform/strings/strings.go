// Package strings holds the small string and slice helpers module wiring leans on
package strings

import std "strings"

// Or returns vals, or fallback when vals is empty
func Or[T any](vals, fallback []T) []T {
	if len(vals) > 0 {
		return vals
	}
	return fallback
}

// Required panics naming what when s is blank
func Required(s, what string) string {
	if std.TrimSpace(s) == "" {
		panic(what + " is required")
	}
	return s
}

// RoutePrefix cleans a mount point to "/a" or "/a/b" form
// repeated and trailing slashes collapse, an empty or root result panics
func RoutePrefix(s string) string {
	var segs []string
	for _, seg := range std.Split(std.TrimSpace(s), "/") {
		if seg = std.TrimSpace(seg); seg != "" {
			segs = append(segs, seg)
		}
	}
	if len(segs) == 0 {
		panic("route prefix is required")
	}
	return "/" + std.Join(segs, "/")
}
