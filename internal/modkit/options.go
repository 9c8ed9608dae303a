package modkit

import (
	"net/http"

	phttp "streaks/internal/platform/net/http"
)

// Option adjusts how a module is built, callers' options apply after the module's defaults
type Option func(*Built)

// WithName names the module in logs and port lookup panics
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix sets the route prefix, e.g. "/streak"
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithEnvPrefix scopes the config keys a module reads, e.g. "STREAK_"
func WithEnvPrefix(prefix string) Option { return func(b *Built) { b.EnvPrefix = prefix } }

// WithMiddlewares appends per module middleware, outermost first
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts replaces the port set a module would expose, tests use it to inject fakes
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithRegister adds routes next to the module's own, on the same subrouter
func WithRegister(fn func(phttp.Router)) Option { return func(b *Built) { b.Register = fn } }
