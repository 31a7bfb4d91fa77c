package plugin

import (
	"github.com/nelplugins/susquash/pkg/framework/param"
	"github.com/nelplugins/susquash/pkg/framework/state"
)

// Base provides core functionality for all plugins
type Base struct {
	Info   Info
	params *param.Registry
	state  *state.Manager
}

// NewBase creates a new plugin base whose state tree uses rootType
func NewBase(info Info, rootType string) *Base {
	b := &Base{
		Info:   info,
		params: param.NewRegistry(),
	}

	// Initialize state manager with parameter registry
	b.state = state.NewManager(rootType, b.params)

	return b
}

// Parameters returns the parameter registry for configuration
func (b *Base) Parameters() *param.Registry {
	return b.params
}

// State returns the state manager
func (b *Base) State() *state.Manager {
	return b.state
}
