// Package module looks up typed ports on built modules
package module

// Module is the slice of modkit.Module that port lookup needs
// the CLI uses it to reach a service without mounting any routes
type Module interface {
	Ports() any
	Name() string
}
