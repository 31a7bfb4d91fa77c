// Package knob implements a rotary control bound to one parameter.
//
// A knob is idle until the mouse is pressed on it. Vertical dragging then
// moves the value, and a release without dragging either resets the value
// (Ctrl) or jumps to the angle that was clicked. Every change is sent to the
// host as part of a begin/perform/end gesture.
package knob

import (
	"image"
	"image/color"
	"math"

	"github.com/nelplugins/susquash/pkg/framework/param"
	"github.com/nelplugins/susquash/pkg/plugin"
	"github.com/nelplugins/susquash/pkg/ui/label"
)

// Dial geometry, angles clockwise from 12 o'clock
const (
	StartAngle = -math.Pi * 3 / 4
	EndAngle   = math.Pi * 3 / 4
)

const (
	// SensitiveDrag scales drag and wheel moves while Shift is held
	SensitiveDrag = 0.2

	// WheelStep is the value change of one discrete wheel notch
	WheelStep = 0.02

	// NotchDelta is the wheel delta of one mouse wheel notch
	NotchDelta = 0.234375

	// TrackpadThreshold separates continuous from discrete wheel deltas when
	// the host does not say which one it sent
	TrackpadThreshold = 0.0549316

	// Distance in pixels the pointer must travel before a press counts as
	// a drag instead of a click
	dragThreshold = 2

	labelShare = 0.2
)

// Modifiers are the keyboard modifiers held during a mouse event
type Modifiers struct {
	Shift bool
	Ctrl  bool
}

// WheelEvent is one mouse wheel or trackpad scroll
type WheelEvent struct {
	DeltaY float64

	// Precise is set by hosts that know whether the delta came from a
	// trackpad; PreciseKnown says whether it was set.
	Precise      bool
	PreciseKnown bool

	// Reversed is set when the system inverts scrolling
	Reversed bool
}

// IsPrecise reports whether the delta is continuous
func (w WheelEvent) IsPrecise() bool {
	if w.PreciseKnown {
		return w.Precise
	}
	return w.DeltaY*w.DeltaY < TrackpadThreshold
}

// Knob is a rotary control bound to a parameter
type Knob struct {
	param *param.Parameter
	edits plugin.ParamEditor

	// Colour of the dial
	Colour color.RGBA

	title  *label.Label
	bounds image.Rectangle
	dial   image.Rectangle

	dragging       bool
	dragged        bool
	pressX, pressY float64
	anchorY        float64

	face      faceCache
	lastDrawn float64
	dirty     bool
}

// New creates a knob for p that reports edits through edits
func New(p *param.Parameter, edits plugin.ParamEditor, title string) *Knob {
	return &Knob{
		param:     p,
		edits:     edits,
		Colour:    color.RGBA{0x80, 0x80, 0x80, 0xff},
		title:     label.New(title),
		lastDrawn: math.NaN(),
		dirty:     true,
	}
}

// Parameter returns the bound parameter
func (k *Knob) Parameter() *param.Parameter {
	return k.param
}

// SetBounds lays the knob out: the title takes the top fifth, the dial the
// largest centred square of the rest.
func (k *Knob) SetBounds(r image.Rectangle) {
	k.bounds = r

	labelH := int(math.Round(float64(r.Dy()) * labelShare))
	k.title.Bounds = image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+labelH)

	rest := image.Rect(r.Min.X, r.Min.Y+labelH, r.Max.X, r.Max.Y)
	k.dial = maxSquareIn(rest)
	k.dirty = true
}

// Bounds returns the area of the whole knob
func (k *Knob) Bounds() image.Rectangle { return k.bounds }

// DialBounds returns the area of the dial
func (k *Knob) DialBounds() image.Rectangle { return k.dial }

// LabelBounds returns the area of the title
func (k *Knob) LabelBounds() image.Rectangle { return k.title.Bounds }

// Contains reports whether a point lies on the knob
func (k *Knob) Contains(x, y int) bool {
	return image.Pt(x, y).In(k.bounds)
}

// SetColour changes the dial colour
func (k *Knob) SetColour(c color.RGBA) {
	if c != k.Colour {
		k.Colour = c
		k.dirty = true
	}
}

// Dirty reports whether the dial must be repainted, either because it was
// changed or because the parameter moved since it was last drawn
func (k *Knob) Dirty() bool {
	return k.dirty || k.param.GetValue() != k.lastDrawn
}

// Dragging reports whether a press is in progress
func (k *Knob) Dragging() bool {
	return k.dragging
}

// Press starts a gesture
func (k *Knob) Press(x, y float64) {
	k.edits.BeginEdit(k.param.ID)
	k.dragging = true
	k.dragged = false
	k.pressX, k.pressY = x, y
	k.anchorY = y
}

// Drag moves the value by the vertical distance since the last event,
// relative to the knob height. Moving up increases the value.
func (k *Knob) Drag(x, y float64, mods Modifiers) {
	if !k.dragging {
		return
	}
	if math.Abs(x-k.pressX) >= dragThreshold || math.Abs(y-k.pressY) >= dragThreshold {
		k.dragged = true
	}
	if y == k.anchorY || k.bounds.Dy() <= 0 {
		return
	}

	delta := (y - k.anchorY) / float64(k.bounds.Dy())
	if mods.Shift {
		delta *= SensitiveDrag
	}
	k.set(k.param.GetValue() - delta)
	k.anchorY = y
}

// Release ends the gesture. A release without dragging sets the default
// value when Ctrl is held and the clicked angle otherwise.
func (k *Knob) Release(x, y float64, mods Modifiers) {
	if !k.dragging {
		return
	}
	if !k.dragged {
		if mods.Ctrl {
			k.set(k.param.DefaultValue)
		} else {
			cx, cy := k.centre()
			k.set(AngleToValue(math.Atan2(x-cx, cy-y)))
		}
	}
	k.edits.EndEdit(k.param.ID)
	k.dragging = false
}

// Wheel applies a scroll as one complete gesture. Scrolls are ignored while
// a mouse button is down.
func (k *Knob) Wheel(ev WheelEvent, mods Modifiers, buttonDown bool) {
	if buttonDown || k.dragging || ev.DeltaY == 0 {
		return
	}

	var delta float64
	if ev.IsPrecise() {
		delta = ev.DeltaY
	} else if ev.DeltaY > 0 {
		delta = WheelStep
	} else {
		delta = -WheelStep
	}
	if ev.Reversed {
		delta = -delta
	}
	if mods.Shift {
		delta *= SensitiveDrag
	}

	k.edits.BeginEdit(k.param.ID)
	k.set(k.param.GetValue() + delta)
	k.edits.EndEdit(k.param.ID)
}

func (k *Knob) set(v float64) {
	k.edits.PerformEdit(k.param.ID, math.Max(0, math.Min(1, v)))
}

func (k *Knob) centre() (float64, float64) {
	return float64(k.dial.Min.X+k.dial.Max.X) / 2, float64(k.dial.Min.Y+k.dial.Max.Y) / 2
}

// ValueAngle returns the dial angle of a normalized value
func ValueAngle(v float64) float64 {
	return StartAngle + (EndAngle-StartAngle)*v
}

// AngleToValue maps a dial angle back to a normalized value, clamped to the
// ends of the arc
func AngleToValue(angle float64) float64 {
	v := (angle - StartAngle) / (EndAngle - StartAngle)
	return math.Max(0, math.Min(1, v))
}

// maxSquareIn returns the largest square centred in r
func maxSquareIn(r image.Rectangle) image.Rectangle {
	size := min(r.Dx(), r.Dy())
	if size <= 0 {
		return image.Rectangle{Min: r.Min, Max: r.Min}
	}
	x := r.Min.X + int(math.Round(float64(r.Dx()-size)/2))
	y := r.Min.Y + int(math.Round(float64(r.Dy()-size)/2))
	return image.Rect(x, y, x+size, y+size)
}
