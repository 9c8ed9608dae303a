package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiRouter serves Router over any chi.Router, the root mux and its subrouters alike
type chiRouter struct{ r chi.Router }

// AdaptChi exposes m through the Router seam
func AdaptChi(m *chi.Mux) Router { return chiRouter{r: m} }

// URLParam returns the named path parameter of the matched route
func URLParam(r *http.Request, name string) string { return chi.URLParam(r, name) }

func (c chiRouter) Get(p string, h Handler)     { c.r.MethodFunc(http.MethodGet, p, h) }
func (c chiRouter) Head(p string, h Handler)    { c.r.MethodFunc(http.MethodHead, p, h) }
func (c chiRouter) Options(p string, h Handler) { c.r.MethodFunc(http.MethodOptions, p, h) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

// Mux returns the underlying handler, for a subrouter that is the subrouter itself
func (c chiRouter) Mux() http.Handler { return c.r }
