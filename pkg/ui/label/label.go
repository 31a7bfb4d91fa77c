// Package label draws short centred captions with the built-in debug font.
package label

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Glyph cell of the debug font
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// Label is a single line of text fitted into its bounds
type Label struct {
	Text   string
	Colour color.Color
	Bounds image.Rectangle

	img  *ebiten.Image
	text string
}

// New creates a white label
func New(text string) *Label {
	return &Label{Text: text, Colour: color.White}
}

// TextSize returns the unscaled size of the rendered text
func (l *Label) TextSize() (int, int) {
	return max(1, len([]rune(l.Text))*glyphWidth), glyphHeight
}

// Fit returns the scale and top-left position that centre the text in the
// bounds at the largest size that fits. Text is never scaled above 4x.
func (l *Label) Fit() (scale, x, y float64) {
	tw, th := l.TextSize()
	bw, bh := float64(l.Bounds.Dx()), float64(l.Bounds.Dy())
	if bw <= 0 || bh <= 0 {
		return 0, 0, 0
	}

	scale = min(bw/float64(tw), bh/float64(th), 4)
	x = float64(l.Bounds.Min.X) + (bw-float64(tw)*scale)/2
	y = float64(l.Bounds.Min.Y) + (bh-float64(th)*scale)/2
	return scale, x, y
}

// Draw renders the label onto dst
func (l *Label) Draw(dst *ebiten.Image) {
	if l.Text == "" {
		return
	}
	scale, x, y := l.Fit()
	if scale <= 0 {
		return
	}

	if l.img == nil || l.text != l.Text {
		if l.img != nil {
			l.img.Deallocate()
		}
		tw, th := l.TextSize()
		l.img = ebiten.NewImage(tw, th)
		ebitenutil.DebugPrintAt(l.img, l.Text, 0, 0)
		l.text = l.Text
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(l.Colour)
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(l.img, op)
}
