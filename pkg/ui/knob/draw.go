package knob

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	thickness = 2
	numTicks  = 25
	tickWidth = 3

	// Line segments per full turn of an arc
	arcResolution = 96
)

// faceCache holds the rendered dial between value changes
type faceCache struct {
	img  *ebiten.Image
	size int
}

func (f *faceCache) image(size int) (img *ebiten.Image, fresh bool) {
	if f.img != nil && f.size == size {
		return f.img, false
	}
	if f.img != nil {
		f.img.Deallocate()
	}
	f.img = ebiten.NewImage(size, size)
	f.size = size
	return f.img, true
}

// Draw renders the title and the dial. The dial is only repainted when the
// knob is dirty.
func (k *Knob) Draw(dst *ebiten.Image) {
	k.title.Draw(dst)

	size := k.dial.Dx()
	if size <= 0 {
		return
	}

	face, fresh := k.face.image(size)
	if fresh || k.Dirty() {
		v := k.param.GetValue()
		face.Clear()
		drawDial(face, float32(size), v, k.Colour)
		k.lastDrawn = v
		k.dirty = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(k.dial.Min.X), float64(k.dial.Min.Y))
	dst.DrawImage(face, op)
}

// drawDial paints a double arc outline over the full range and the value
// ticks from the start angle up to the value
func drawDial(dst *ebiten.Image, size float32, value float64, c color.RGBA) {
	cx, cy := size/2, size/2
	radius := cx - thickness
	inner := radius - 2*thickness

	strokeArc(dst, cx, cy, radius, c)
	if inner > 0 {
		strokeArc(dst, cx, cy, inner, c)
	}

	for i := 0; i < numTicks; i++ {
		a := ValueAngle(value * float64(i) / (numTicks - 1))
		x, y := pointAt(cx, cy, radius+1, a)
		vector.StrokeLine(dst, cx, cy, x, y, tickWidth, c, true)
	}
}

func strokeArc(dst *ebiten.Image, cx, cy, r float32, c color.RGBA) {
	pts := arcPoints(cx, cy, r, StartAngle, EndAngle)
	for i := 1; i < len(pts); i++ {
		vector.StrokeLine(dst, pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1], thickness, c, true)
	}
}

// arcPoints returns a polyline along a circle from one angle to another
func arcPoints(cx, cy, r float32, from, to float64) [][2]float32 {
	n := int(math.Round(math.Abs(to-from) / (2 * math.Pi) * arcResolution))
	n = max(n, 1)

	pts := make([][2]float32, n+1)
	for i := range pts {
		a := from + (to-from)*float64(i)/float64(n)
		x, y := pointAt(cx, cy, r, a)
		pts[i] = [2]float32{x, y}
	}
	return pts
}

// pointAt returns the point at distance r from the centre in the direction
// of angle, measured clockwise from 12 o'clock
func pointAt(cx, cy, r float32, angle float64) (float32, float32) {
	return cx + r*float32(math.Sin(angle)), cy - r*float32(math.Cos(angle))
}
