// Package config handles application configuration via environment variables
package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"streaks/internal/platform/logger"
)

// Conf is a namespaced view over environment variables (e.g. "CORE_API_", "GITHUB_")
// use New() for the root view and Prefix to scope it for a module
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix, e.g. cfg.Prefix("STREAK_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// key composes the fully-qualified env var name
func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the trimmed value, empty counts as missing
func (c Conf) lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.key(k)))
	return v, v != ""
}

// fallback logs a rejected value; callers return their default
func (c Conf) fallback(k, v, why string) *logger.Logger {
	l := logger.Get().With().Str("key", c.key(k)).Str("value", v).Logger()
	l.Warn().Msg(why + "; using default")
	return &l
}

// MustString panics if the given key is missing or empty
func (c Conf) MustString(key string) string {
	v, ok := c.lookup(key)
	if !ok {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// MayInt returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		c.fallback(key, s, "invalid int")
		return def
	}
	return v
}

// MayIntIn is MayInt bounded to lo..hi inclusive; out of range values log and return def
func (c Conf) MayIntIn(key string, def, lo, hi int) int {
	v := c.MayInt(key, def)
	if v < lo || v > hi {
		c.fallback(key, strconv.Itoa(v), "int out of range "+strconv.Itoa(lo)+".."+strconv.Itoa(hi))
		return def
	}
	return v
}

// MayBool returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayBool(key string, def bool) bool {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		c.fallback(key, s, "invalid bool")
		return def
	}
	return v
}

// MayDuration returns the value or def if missing/empty; logs and returns def if invalid
// negative durations are rejected the same way
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		c.fallback(key, s, "invalid duration (e.g. 250ms, 2s, 12h)")
		return def
	}
	return d
}

// MayCSV returns a slice of strings from a comma-separated env var; def if missing/empty
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayAddr returns a listen address, a bare port like "4000" becomes ":4000"
// port 0 asks the kernel for a free port, anything outside 0..65535 logs and returns def
func (c Conf) MayAddr(key, def string) string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	if !strings.Contains(s, ":") {
		s = ":" + s
	}
	_, port, err := net.SplitHostPort(s)
	if err != nil {
		c.fallback(key, s, "invalid listen address")
		return def
	}
	if p, err := strconv.Atoi(port); err != nil || p < 0 || p > 65535 {
		c.fallback(key, s, "invalid TCP port; expected 0..65535")
		return def
	}
	return s
}
