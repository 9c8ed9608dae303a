package middleware

import (
	"net/http"

	pstrings "streaks/internal/platform/strings"

	chicors "github.com/go-chi/cors"
)

// CORSOptions fields left empty take the read only defaults below
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	MaxAge         int
}

var (
	defaultOrigins = []string{"*"}
	readOnly       = []string{http.MethodGet, http.MethodHead, http.MethodOptions}
	defaultHeaders = []string{"Accept", "Authorization", "X-Request-ID"}
	defaultExposed = []string{"X-Request-ID", "X-Streak-Years"}
)

// CORS lets any origin read, badges and stats get embedded from arbitrary pages
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.Or(o.AllowedOrigins, defaultOrigins),
		AllowedMethods: pstrings.Or(o.AllowedMethods, readOnly),
		AllowedHeaders: pstrings.Or(o.AllowedHeaders, defaultHeaders),
		ExposedHeaders: pstrings.Or(o.ExposedHeaders, defaultExposed),
		MaxAge:         o.MaxAge,
	})
}
