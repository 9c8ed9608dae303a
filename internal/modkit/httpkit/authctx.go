package httpkit

import (
	"net/http"
	"strings"

	perr "streaks/internal/platform/errors"
	pnet "streaks/internal/platform/net"
	"streaks/internal/platform/net/middleware"
)

// Bearer returns the raw bearer token from the Authorization header
// a missing header is not an error, only a malformed one is
func Bearer(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	if s == "" {
		return "", nil
	}
	const prefix = "bearer "
	if len(s) < len(prefix) || strings.ToLower(s[:len(prefix)]) != prefix {
		return "", perr.Unauthorizedf("authorization must use the bearer scheme")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perr.Unauthorizedf("empty bearer token")
	}
	return raw, nil
}

// Credential returns the upstream credential placed on the request by the credentials middleware
func Credential(r *http.Request) string { return pnet.Credential(r.Context()) }

// BearerParser implements middleware.CredentialParser over the Authorization header
// the token is opaque here, GitHub decides whether it is valid
type BearerParser struct{}

// Parse returns the bearer token or "" when the request carries none
func (BearerParser) Parse(r *http.Request) (string, error) { return Bearer(r) }

var _ middleware.CredentialParser = BearerParser{}
