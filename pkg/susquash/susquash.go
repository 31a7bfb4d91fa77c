// Package susquash is the Susquash effect: a sign waveshaper that squashes
// the signal towards a square wave, followed by gain.
package susquash

import (
	"github.com/nelplugins/susquash/pkg/dsp/squash"
	"github.com/nelplugins/susquash/pkg/framework/bus"
	"github.com/nelplugins/susquash/pkg/framework/param"
	"github.com/nelplugins/susquash/pkg/framework/plugin"
	"github.com/nelplugins/susquash/pkg/framework/process"
	"github.com/nelplugins/susquash/pkg/framework/state"
	vst3plugin "github.com/nelplugins/susquash/pkg/plugin"
	"github.com/nelplugins/susquash/pkg/ui/editor"
	"github.com/nelplugins/susquash/pkg/vst3"
)

// Parameter IDs. They are persisted and must not change.
const (
	ParamSquash = iota
	ParamGain
)

const (
	// Squash response, biased towards the low end
	squashBias    = -0.6
	defaultSquash = 100.0

	minGainDB     = -40.0
	maxGainDB     = 0.0
	defaultGainDB = 0.0

	stateRoot = "params"
)

// Factory is the vendor info exported alongside the plugin classes
var Factory = vst3plugin.FactoryInfo{
	Vendor: "nel plugins",
	URL:    "https://github.com/nelplugins/susquash",
}

// Plugin describes Susquash to the host binding
type Plugin struct{}

// GetInfo returns the plugin metadata
func (Plugin) GetInfo() plugin.Info {
	return plugin.Info{
		ID:       "com.nelplugins.susquash",
		Name:     "Susquash",
		Version:  "1.0.0",
		Vendor:   "nel plugins",
		Category: "Fx",
	}
}

// CreateProcessor returns a new processor instance
func (p Plugin) CreateProcessor() vst3plugin.Processor {
	return NewProcessor()
}

// Processor runs the squash shaper over the main bus
type Processor struct {
	*plugin.BaseProcessor
	base *plugin.Base

	squash *param.Parameter
	gain   *param.Parameter
}

var (
	_ vst3plugin.Processor = (*Processor)(nil)
	_ vst3plugin.Stateful  = (*Processor)(nil)
	_ vst3plugin.Editor    = (*Processor)(nil)
)

// NewProcessor creates a processor with default parameters
func NewProcessor() *Processor {
	base := plugin.NewBase(Plugin{}.GetInfo(), stateRoot)

	p := &Processor{
		base: base,
		squash: param.PercentParameter(ParamSquash, "Squash", squashBias, defaultSquash).
			Key("squash").
			Build(),
		gain: param.DecibelParameter(ParamGain, "Gain", minGainDB, maxGainDB, 0, defaultGainDB).
			Key("gain").
			Build(),
	}
	base.Parameters().Add(p.squash, p.gain)

	base.State().DefineInt(editor.WidthProperty, editor.DefaultWidth)
	base.State().DefineInt(editor.HeightProperty, editor.DefaultHeight)

	p.BaseProcessor = plugin.NewBaseProcessor(base.Parameters(), bus.NewStereoConfiguration())
	return p
}

// ProcessAudio shapes the output in place. Parameters are read once per
// block.
func (p *Processor) ProcessAudio(ctx *process.Context) {
	coeffs := squash.FromPlain(p.squash.GetPlainValue(), p.gain.GetPlainValue())
	squash.ProcessChannels(ctx.Output, coeffs)
}

// Squash returns the squash parameter
func (p *Processor) Squash() *param.Parameter {
	return p.squash
}

// Gain returns the gain parameter
func (p *Processor) Gain() *param.Parameter {
	return p.gain
}

// State returns the persisted state: parameters and the editor size
func (p *Processor) State() *state.Manager {
	return p.base.State()
}

// CreateEditor opens the editor window
func (p *Processor) CreateEditor(edits vst3plugin.ParamEditor) (vst3.IPlugView, error) {
	view, err := editor.New(editor.Config{
		Squash: p.squash,
		Gain:   p.gain,
		State:  p.base.State(),
		Edits:  edits,
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
