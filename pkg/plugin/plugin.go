// Package plugin binds framework processors to the host-facing component model.
package plugin

import (
	"github.com/nelplugins/susquash/pkg/framework/bus"
	"github.com/nelplugins/susquash/pkg/framework/param"
	"github.com/nelplugins/susquash/pkg/framework/plugin"
	"github.com/nelplugins/susquash/pkg/framework/process"
	"github.com/nelplugins/susquash/pkg/framework/state"
	"github.com/nelplugins/susquash/pkg/vst3"
)

// Plugin is the main interface that users implement
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() plugin.Info

	// CreateProcessor creates a new instance of the audio processor
	CreateProcessor() Processor
}

// Processor handles the actual audio processing
type Processor interface {
	// Initialize is called once the host has set up processing
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessAudio processes audio - ZERO ALLOCATIONS!
	ProcessAudio(ctx *process.Context)

	// GetParameters returns the parameter registry
	GetParameters() *param.Registry

	// GetBuses returns the bus configuration
	GetBuses() *bus.Configuration

	// SetActive is called when processing starts/stops
	SetActive(active bool) error

	// GetLatencySamples returns the plugin's latency in samples
	GetLatencySamples() int32

	// GetTailSamples returns the tail length in samples
	GetTailSamples() int32
}

// Stateful is implemented by processors that persist more than their
// parameter values. Processors without it are persisted by parameter only.
type Stateful interface {
	State() *state.Manager
}

// Editor is implemented by processors that provide a GUI
type Editor interface {
	CreateEditor(edits ParamEditor) (vst3.IPlugView, error)
}

// ParamEditor is how an editor changes parameters. Every change is wrapped
// in a begin/end gesture so the host can record automation.
type ParamEditor interface {
	BeginEdit(id uint32)
	PerformEdit(id uint32, normalized float64)
	EndEdit(id uint32)
}
