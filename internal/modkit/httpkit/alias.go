// Package httpkit is the routing and response surface modules build handlers against
// modules import it instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "streaks/internal/platform/net/http"
)

type (
	Response = phttp.Response
	Handler  = phttp.Handler
	Router   = phttp.Router
)

// response constructors, see phttp for the wire shape of each
var (
	OK       = phttp.OK
	Raw      = phttp.Raw
	SVG      = phttp.SVG
	Error    = phttp.Error
	URLParam = phttp.URLParam
)

// Handle adapts a Response returning func
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// Call adapts a (value, error) func, values that already are a Response pass through
// anything else is enveloped as 200
func Call(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		switch v := out.(type) {
		case nil:
			if err == nil {
				return OK(nil)
			}
			return Error(err)
		case Response:
			if err != nil {
				return Error(err)
			}
			return v
		default:
			if err != nil {
				return Error(err)
			}
			return OK(v)
		}
	})
}
