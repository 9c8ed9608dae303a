package modkit

import (
	phttp "streaks/internal/platform/net/http"
)

// Module is the common surface for API modules that can mount routes and expose ports
type Module interface {
	// MountRoutes mounts the versioned, enveloped routes under the provided router seam
	MountRoutes(r phttp.Router)
	// Ports returns a module specific port set for cross wiring
	Ports() any

	// Name returns the module name
	Name() string
}

// Embedder is implemented by modules that also serve unversioned routes at the router root
// badge and raw stats embeds live there so README links stay short
type Embedder interface {
	MountEmbed(r phttp.Router)
}

// Builder constructs a Module from shared deps and options
// every module package exposes New with this shape
type Builder func(Deps, ...Option) Module
