package editor

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/nelplugins/susquash/pkg/ui/knob"
)

// pointer is the mouse and keyboard state of one frame
type pointer struct {
	X, Y         int
	Down         bool
	JustPressed  bool
	JustReleased bool
	WheelY       float64
	Mods         knob.Modifiers
}

func pollPointer() pointer {
	x, y := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	return pointer{
		X:            x,
		Y:            y,
		Down:         ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		// One notch is 1 in ebiten's units
		WheelY: wy * knob.NotchDelta,
		Mods: knob.Modifiers{
			Shift: ebiten.IsKeyPressed(ebiten.KeyShift),
			Ctrl:  ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta),
		},
	}
}

// Update handles input
func (v *View) Update() error {
	if v.removed {
		return ebiten.Termination
	}
	v.handlePointer(pollPointer())
	return nil
}

func (v *View) handlePointer(p pointer) {
	x, y := float64(p.X), float64(p.Y)

	if p.JustPressed && v.pressed == nil {
		if k := v.knobAt(p.X, p.Y); k != nil {
			v.pressed = k
			k.Press(x, y)
		}
	}

	if v.pressed != nil {
		v.pressed.Drag(x, y, p.Mods)
		if p.JustReleased || !p.Down {
			v.pressed.Release(x, y, p.Mods)
			v.pressed = nil
		}
	}

	if p.WheelY != 0 {
		if k := v.knobAt(p.X, p.Y); k != nil {
			k.Wheel(knob.WheelEvent{DeltaY: p.WheelY}, p.Mods, p.Down)
		}
	}
}

// knobAt returns the topmost knob under a point. The gain knob lies on top
// of the lower part of the squash knob.
func (v *View) knobAt(x, y int) *knob.Knob {
	switch {
	case v.gain.Contains(x, y):
		return v.gain
	case v.squash.Contains(x, y):
		return v.squash
	}
	return nil
}

// Draw paints the backdrop, the subtitle and the knobs
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(v.fill)

	if v.bgImg == nil {
		v.bgImg = ebiten.NewImageFromImage(v.bg)
	}
	screen.DrawImage(v.bgImg, &ebiten.DrawImageOptions{})

	v.subtitle.Draw(screen)
	v.squash.Draw(screen)
	v.gain.Draw(screen)
}

// Layout follows the window size
func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.Resize(outsideWidth, outsideHeight)
	return v.width, v.height
}

// Bounds returns the window area
func (v *View) Bounds() image.Rectangle {
	return image.Rect(0, 0, v.width, v.height)
}
