// Package editor is the plugin window: a generated backdrop, a subtitle and
// the squash and gain knobs.
package editor

import (
	"errors"
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nelplugins/susquash/pkg/framework/debug"
	"github.com/nelplugins/susquash/pkg/framework/param"
	"github.com/nelplugins/susquash/pkg/framework/state"
	"github.com/nelplugins/susquash/pkg/plugin"
	"github.com/nelplugins/susquash/pkg/ui/background"
	"github.com/nelplugins/susquash/pkg/ui/knob"
	"github.com/nelplugins/susquash/pkg/ui/label"
	"github.com/nelplugins/susquash/pkg/vst3"
)

// Window size used when the state has none
const (
	DefaultWidth  = 339
	DefaultHeight = 431
)

// State properties holding the window size
const (
	WidthProperty  = "width"
	HeightProperty = "height"
)

const (
	Subtitle    = "~ inspired by dan worrall ~"
	SquashTitle = "SUSQUASH"
	GainTitle   = "GAIN"

	gainShare = 0.2
)

// Config wires the editor to a plugin instance
type Config struct {
	Squash *param.Parameter
	Gain   *param.Parameter
	State  *state.Manager
	Edits  plugin.ParamEditor

	// Seed of the background art; zero picks a random one
	Seed uint64
}

// View is the editor window. It is both the host view and the game driven
// by the UI loop.
type View struct {
	state *state.Manager

	width, height int

	art   *image.RGBA // as generated
	bg    *image.RGBA // art at the window size
	bgImg *ebiten.Image

	mainColour color.RGBA
	fill       color.RGBA

	subtitle     *label.Label
	squash, gain *knob.Knob
	pressed      *knob.Knob

	removed bool
}

var (
	_ vst3.IPlugView = (*View)(nil)
	_ ebiten.Game    = (*View)(nil)
)

// New creates the editor at the size stored in the state and generates its
// background
func New(cfg Config) (*View, error) {
	if cfg.Squash == nil || cfg.Gain == nil {
		return nil, errors.New("editor: missing parameters")
	}
	if cfg.State == nil || cfg.Edits == nil {
		return nil, errors.New("editor: missing state or parameter editor")
	}

	width := cfg.State.Int(WidthProperty)
	height := cfg.State.Int(HeightProperty)
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	v := &View{
		state:    cfg.State,
		art:      background.Generate(seed, width, height),
		subtitle: label.New(Subtitle),
		squash:   knob.New(cfg.Squash, cfg.Edits, SquashTitle),
		gain:     knob.New(cfg.Gain, cfg.Edits, GainTitle),
	}

	v.mainColour = background.DominantColour(v.art)
	v.fill = background.Contrasting(v.mainColour, 0.5)
	v.subtitle.Colour = background.Contrasting(v.mainColour, 1)
	v.squash.SetColour(v.mainColour)
	v.gain.SetColour(v.mainColour)

	v.Resize(width, height)
	debug.Debug("editor created at %dx%d, seed %#x", width, height, seed)
	return v, nil
}

// Resize lays the editor out for a new window size and stores the size in
// the plugin state. Sizes below 1x1 are raised to 1x1.
func (v *View) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width == v.width && height == v.height && v.bg != nil {
		return
	}
	v.width, v.height = width, height

	v.bg = background.Rescale(v.art, width, height)
	if v.bgImg != nil {
		v.bgImg.Deallocate()
		v.bgImg = nil
	}

	v.squash.SetBounds(image.Rect(0, 0, width, height))
	gainY := int(float64(height) * (1 - gainShare))
	v.gain.SetBounds(image.Rect(0, gainY, width, height))

	gainH := height - gainY
	top := gainH * 3 / 9
	v.subtitle.Bounds = image.Rect(0, top, width, top+gainH)

	v.state.SetInt(WidthProperty, width)
	v.state.SetInt(HeightProperty, height)
}

// MainColour is the dominant colour of the background, used for the dials
func (v *View) MainColour() color.RGBA {
	return v.mainColour
}

// Background returns the backdrop at the current window size
func (v *View) Background() *image.RGBA {
	return v.bg
}

// Knobs returns the squash and gain knobs
func (v *View) Knobs() (squash, gain *knob.Knob) {
	return v.squash, v.gain
}

// IPlugView methods

// GetSize returns the window size
func (v *View) GetSize() (int32, int32) {
	return int32(v.width), int32(v.height)
}

// OnSize is called by the host after it resized the window
func (v *View) OnSize(width, height int32) error {
	if v.removed {
		return vst3.ErrInvalidState
	}
	v.Resize(int(width), int(height))
	return nil
}

// CanResize reports that the window may be resized freely
func (v *View) CanResize() bool {
	return true
}

// Removed releases the GPU images once the host closed the window
func (v *View) Removed() {
	v.removed = true
	if v.bgImg != nil {
		v.bgImg.Deallocate()
		v.bgImg = nil
	}
}

// Closed reports whether the host removed the view
func (v *View) Closed() bool {
	return v.removed
}
