// Package swaggerkit serves the embedded OpenAPI document and the Swagger UI
package swaggerkit

import (
	"net/http"

	phttp "streaks/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	docsRoot = "/api/docs"
	docJSON  = docsRoot + "/doc.json"
)

// Mount serves the UI under /api/docs/ and the document at /api/docs/doc.json, nothing when disabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(docsRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsRoot+"/", http.StatusPermanentRedirect)
	})
	r.Get(docJSON, serveDocJSON())
	r.Handle(docsRoot+"/*", httpSwagger.Handler(
		httpSwagger.URL(docJSON),
		httpSwagger.InstanceName("streaks"),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DeepLinking(true),
	))
}
