package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"

	"streaks/internal/core/version"
	perr "streaks/internal/platform/errors"
)

//go:embed openapi.json
var openAPI string

// SpecMutator edits the decoded document before it is served
type SpecMutator func(map[string]any)

var mutators []SpecMutator

// docReader returns the raw document, tests swap it
var docReader = func() string { return openAPI }

// Register queues m for every served document, modules call it from init
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// serveDocJSON decodes the embedded document per request, so mutators see a fresh copy
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, "/")
		stampVersion(spec, version.Info().Version)
		ensureErrorResponseDefinition(spec)
		addDefaultResponse(spec, "400", http.StatusBadRequest, perr.ErrorCodeValidation, "username must be a valid GitHub login")
		addDefaultResponse(spec, "500", http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered")
		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// stampVersion replaces info.version with the build version, dev builds keep the embedded one
func stampVersion(spec map[string]any, v string) {
	if v == "" || v == "dev" {
		return
	}
	if info, ok := spec["info"].(map[string]any); ok {
		info["version"] = strings.TrimPrefix(v, "v")
	}
}

// ensureServers lifts swagger 2 and 3.1 documents to 3.0.3, the UI bundle renders nothing newer
// a missing servers list points at url
func ensureServers(spec map[string]any, url string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// child returns m[key] as a map, creating it when absent
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// ensureErrorResponseDefinition documents the error envelope unless the document already does
func ensureErrorResponseDefinition(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	str := map[string]any{"type": "string"}
	num := map[string]any{"type": "integer", "format": "int32"}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": num,
			"status":      str,
			"code":        num,
			"error":       str,
			"field":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status"},
	}
}

// addDefaultResponse gives every operation lacking key an ErrorResponse with an example
func addDefaultResponse(spec map[string]any, key string, status int, code perr.ErrorCode, msg string) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      http.StatusText(status),
					"code":        code,
					"error":       msg,
					"request_id":  "streaks-api/abc-000001",
				},
			},
		},
	}
	for _, p := range paths {
		ops, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			if resps := child(op, "responses"); resps[key] == nil {
				resps[key] = resp
			}
		}
	}
}
