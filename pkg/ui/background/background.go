// Package background generates the procedural backdrop of the editor.
//
// The art is a handful of "flames": random walks that climb from the bottom
// edge, each segment a slightly different hue. A radial post-pass then folds
// the picture towards the edges and darkens the corners.
package background

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

const (
	minFlames    = 12
	flameSpread  = 12
	minSegment   = 2
	segmentRange = 12

	// Hue drift per step, in turns of the colour wheel
	hueDrift = 0.1

	lineWidth = 1.0
	darkening = 0.4
	opacity   = 0.8

	// Walks that stall sideways are cut off here
	maxSteps = 1 << 16
)

// Generate draws a new background of the given size from seed.
// The same seed and size always produce the same image. Sizes below 1x1 are
// raised to 1x1.
func Generate(seed uint64, width, height int) *image.RGBA {
	width, height = max(width, 1), max(height, 1)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	flames := newFlames(rng, width, height)
	return fold(flames)
}

func newFlames(rng *rand.Rand, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	z := vector.NewRasterizer(1, 1)

	numFlames := minFlames + rng.Float64()*flameSpread
	segment := minSegment + rng.Float64()*segmentRange
	col := colorful.Hsv(rng.Float64()*360, 1, 1)

	w, h := float64(width), float64(height)
	for i := 0; float64(i) < numFlames; i++ {
		x := rng.Float64() * w
		y := h
		col = rotateHue(col, (rng.Float64()-0.5)*hueDrift)

		for step := 0; x > 0 && x < w && y > 0 && step < maxSteps; step++ {
			angle := rng.Float64()*math.Pi - math.Pi/2
			// Angles run clockwise from 12 o'clock
			ex := x + segment*math.Sin(angle)
			ey := y - segment*math.Cos(angle)

			col = rotateHue(col, (rng.Float64()-0.5)*hueDrift)
			strokeSegment(img, z, x, y, ex, ey, col)
			x, y = ex, ey
		}
	}
	return img
}

// rotateHue turns the hue of c by the given fraction of a full turn
func rotateHue(c colorful.Color, turns float64) colorful.Color {
	h, s, v := c.Hsv()
	h = math.Mod(h+turns*360, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsv(h, s, v)
}

// strokeSegment rasterizes a straight line of lineWidth into dst. The
// rasterizer only covers the visible part of the segment's bounding box.
func strokeSegment(dst *image.RGBA, z *vector.Rasterizer, x0, y0, x1, y1 float64, c colorful.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*lineWidth/2, dx/length*lineWidth/2

	box := image.Rect(
		int(math.Floor(math.Min(x0, x1)-lineWidth)), int(math.Floor(math.Min(y0, y1)-lineWidth)),
		int(math.Ceil(math.Max(x0, x1)+lineWidth)), int(math.Ceil(math.Max(y0, y1)+lineWidth)),
	)
	clip := box.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}

	ox, oy := float64(clip.Min.X), float64(clip.Min.Y)
	pt := func(x, y float64) (float32, float32) {
		return float32(x - ox), float32(y - oy)
	}

	z.Reset(clip.Dx(), clip.Dy())
	z.MoveTo(pt(x0+nx, y0+ny))
	z.LineTo(pt(x1+nx, y1+ny))
	z.LineTo(pt(x1-nx, y1-ny))
	z.LineTo(pt(x0-nx, y0-ny))
	z.ClosePath()

	r, g, b := c.Clamped().RGB255()
	src := image.NewUniform(color.RGBA{r, g, b, 0xff})
	z.Draw(dst, clip, src, image.Point{})
}

// fold samples src at fourth-root warped coordinates, so the centre of the
// result stretches out the edges of src, then darkens towards the corners
// and lowers the opacity. Coordinates that land past the right or bottom
// edge read as transparent black.
func fold(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(b)

	for y := 0; y < h; y++ {
		ySide := side(y, h)
		sy := int(ySide * float64(h))
		for x := 0; x < w; x++ {
			xSide := side(x, w)
			sx := int(xSide * float64(w))

			k := 1 / (1 + xSide*ySide*darkening)
			s := src.RGBAAt(b.Min.X+sx, b.Min.Y+sy)
			// Premultiplied, so alpha scales the colour channels too
			dst.SetRGBA(b.Min.X+x, b.Min.Y+y, color.RGBA{
				R: uint8(float64(s.R) * k * opacity),
				G: uint8(float64(s.G) * k * opacity),
				B: uint8(float64(s.B) * k * opacity),
				A: uint8(float64(s.A) * opacity),
			})
		}
	}
	return dst
}

// side maps a pixel position to the fourth root of its distance from the
// centre line, 0 in the middle and 1 at the edges
func side(pos, size int) float64 {
	rel := float64(pos) / float64(size)
	return math.Sqrt(math.Sqrt(math.Abs(2*rel - 1)))
}

// Rescale resizes img with nearest-neighbour sampling. The result is at
// least 1x1.
func Rescale(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	if img == nil || img.Bounds().Empty() {
		return dst
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// DominantColour returns half the mean colour of img, fully opaque
func DominantColour(img image.Image) color.RGBA {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n <= 0 {
		return color.RGBA{A: 0xff}
	}

	var r, g, bl float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			r += float64(c.R) / 0xff
			g += float64(c.G) / 0xff
			bl += float64(c.B) / 0xff
		}
	}

	scale := 128 / float64(n)
	return color.RGBA{
		R: uint8(r * scale),
		G: uint8(g * scale),
		B: uint8(bl * scale),
		A: 0xff,
	}
}

// Contrasting blends c towards black when it is light or white when it is
// dark. An amount of 1 returns pure black or white.
func Contrasting(c color.RGBA, amount float64) color.RGBA {
	amount = math.Max(0, math.Min(1, amount))

	target := 0.0
	if int(c.R)+int(c.G)+int(c.B) < 3*128 {
		target = 0xff
	}
	mix := func(v uint8) uint8 {
		return uint8(math.Round(float64(v)*(1-amount) + target*amount))
	}
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}
