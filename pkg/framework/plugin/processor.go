// Package plugin provides base processor functionality to reduce boilerplate in plugins.
package plugin

import (
	"github.com/nelplugins/susquash/pkg/framework/bus"
	"github.com/nelplugins/susquash/pkg/framework/param"
)

// BaseProcessor provides common functionality for audio processors
type BaseProcessor struct {
	params *param.Registry
	buses  *bus.Configuration
}

// NewBaseProcessor creates a new base processor with the given parameters and bus configuration
func NewBaseProcessor(params *param.Registry, buses *bus.Configuration) *BaseProcessor {
	if buses == nil {
		buses = bus.NewStereoConfiguration() // Default to stereo
	}
	if params == nil {
		params = param.NewRegistry()
	}

	return &BaseProcessor{
		params: params,
		buses:  buses,
	}
}

// Initialize implements the Processor interface
func (b *BaseProcessor) Initialize(sampleRate float64, maxBlockSize int32) error {
	return nil
}

// GetParameters implements the Processor interface
func (b *BaseProcessor) GetParameters() *param.Registry {
	return b.params
}

// GetBuses implements the Processor interface
func (b *BaseProcessor) GetBuses() *bus.Configuration {
	return b.buses
}

// SetActive implements the Processor interface
func (b *BaseProcessor) SetActive(active bool) error {
	return nil
}

// GetLatencySamples implements the Processor interface - default no latency
func (b *BaseProcessor) GetLatencySamples() int32 {
	return 0
}

// GetTailSamples implements the Processor interface - default no tail
func (b *BaseProcessor) GetTailSamples() int32 {
	return 0
}
