package httpkit

import (
	"net/http"
)

// Get registers a no-body handler and uses the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// GetHead registers h for GET and HEAD, badge proxies probe with HEAD before fetching
func GetHead(r Router, path string, h func(*http.Request) Response) {
	hh := Handle(h)
	r.Get(path, hh)
	r.Head(path, hh)
}
