package modkit

import (
	"net/http"

	phttp "streaks/internal/platform/net/http"
)

// Built is the resolved option set a module constructor reads
type Built struct {
	Name      string
	Prefix    string
	EnvPrefix string
	Mw        []func(http.Handler) http.Handler
	Ports     any

	// Register is never nil after Build
	Register func(phttp.Router)
}

// Build applies opts in order
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	if b.Register == nil {
		b.Register = func(phttp.Router) {}
	}
	return b
}
