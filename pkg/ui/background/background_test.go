package background

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(42, 120, 90)
	b := Generate(42, 120, 90)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same seed produced different images")
	}

	c := Generate(43, 120, 90)
	if bytes.Equal(a.Pix, c.Pix) {
		t.Error("different seeds produced identical images")
	}
}

func TestGenerateDrawsFlames(t *testing.T) {
	img := Generate(7, 339, 431)

	if got := img.Bounds(); got != image.Rect(0, 0, 339, 431) {
		t.Fatalf("bounds = %v", got)
	}

	painted := 0
	for i := 3; i < len(img.Pix); i += 4 {
		a := img.Pix[i]
		if a > uint8(0xff*opacity) {
			t.Fatalf("alpha %d exceeds the faded maximum", a)
		}
		if a > 0 {
			painted++
		}
	}
	if painted == 0 {
		t.Error("no flames were drawn")
	}
}

func TestGenerateDegenerateSizes(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"1x1", 1, 1},
		{"0x0", 0, 0},
		{"negative", -3, 10},
		{"single row", 50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := Generate(1, tt.w, tt.h)
			b := img.Bounds()
			if b.Dx() < 1 || b.Dy() < 1 {
				t.Errorf("bounds = %v, want at least 1x1", b)
			}
		})
	}
}

func TestFoldEdgesTransparent(t *testing.T) {
	const w, h = 8, 6
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}

	img := fold(src)

	// The first row and column warp to x == w or y == h
	for _, p := range []image.Point{{0, 0}, {0, h / 2}, {w / 2, 0}} {
		if got := img.RGBAAt(p.X, p.Y); got != (color.RGBA{}) {
			t.Errorf("pixel %v = %v, want transparent", p, got)
		}
	}
	centre := img.RGBAAt(w/2, h/2)
	if want := uint8(0xff * opacity); centre.A != want || centre.R != want {
		t.Errorf("centre = %v, want grey at alpha %d", centre, want)
	}
}

func TestRescale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	src.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	src.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	src.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})

	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"upscale", 4, 4, 4, 4},
		{"downscale", 1, 1, 1, 1},
		{"zero", 0, 0, 1, 1},
		{"negative", -1, 5, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rescale(src, tt.w, tt.h)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("bounds = %v, want %dx%d", got.Bounds(), tt.wantW, tt.wantH)
			}
		})
	}

	// Nearest neighbour keeps hard edges
	up := Rescale(src, 4, 4)
	if up.RGBAAt(1, 1) != (color.RGBA{255, 0, 0, 255}) || up.RGBAAt(3, 3) != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("unexpected upscaled pixels %v %v", up.RGBAAt(1, 1), up.RGBAAt(3, 3))
	}

	if got := Rescale(image.NewRGBA(image.Rectangle{}), 3, 2); got.Bounds().Dx() != 3 {
		t.Errorf("rescaling an empty image = %v", got.Bounds())
	}
}

func TestDominantColour(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:], []uint8{200, 100, 0, 255})
	}

	got := DominantColour(img)
	// Half of the mean, rounded down
	want := color.RGBA{100, 50, 0, 255}
	for _, d := range []int{int(got.R) - int(want.R), int(got.G) - int(want.G), int(got.B) - int(want.B)} {
		if d < -1 || d > 1 {
			t.Errorf("DominantColour = %v, want about %v", got, want)
			break
		}
	}
	if got.A != 255 {
		t.Errorf("alpha = %d", got.A)
	}

	if got := DominantColour(image.NewRGBA(image.Rectangle{})); got != (color.RGBA{A: 255}) {
		t.Errorf("empty image = %v", got)
	}
}

func TestContrasting(t *testing.T) {
	tests := []struct {
		name   string
		in     color.RGBA
		amount float64
		want   color.RGBA
	}{
		{"dark full", color.RGBA{10, 20, 30, 255}, 1, color.RGBA{255, 255, 255, 255}},
		{"light full", color.RGBA{200, 220, 240, 255}, 1, color.RGBA{0, 0, 0, 255}},
		{"dark half", color.RGBA{0, 0, 0, 255}, 0.5, color.RGBA{128, 128, 128, 255}},
		{"light half", color.RGBA{200, 200, 200, 255}, 0.5, color.RGBA{100, 100, 100, 255}},
		{"none", color.RGBA{1, 2, 3, 255}, 0, color.RGBA{1, 2, 3, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contrasting(tt.in, tt.amount); got != tt.want {
				t.Errorf("Contrasting(%v, %v) = %v, want %v", tt.in, tt.amount, got, tt.want)
			}
		})
	}
}

func BenchmarkGenerate(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Generate(uint64(i), 339, 431)
	}
}
