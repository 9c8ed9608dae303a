package middleware

import (
	"net/http"

	pnet "streaks/internal/platform/net"
)

// CredentialParser extracts an optional upstream credential from a request
type CredentialParser interface {
	// Parse returns the token or "" when the request carries none
	Parse(r *http.Request) (token string, err error)
}

// Credentials puts the parsed credential on the request context. A nil parser passes through
func Credentials(p CredentialParser, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			tok, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithCredential(r.Context(), tok)))
		})
	}
}
