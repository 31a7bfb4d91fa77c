package label

import (
	"image"
	"math"
	"testing"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		bounds    image.Rectangle
		wantScale float64
		wantX     float64
		wantY     float64
	}{
		{"height bound", "GAIN", image.Rect(0, 0, 200, 32), 2, 76, 0},
		{"width bound", "SUSQUASH", image.Rect(10, 10, 58, 110), 1, 10, 52},
		{"capped", "A", image.Rect(0, 0, 1000, 1000), 4, 488, 468},
		{"empty bounds", "GAIN", image.Rectangle{}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.text)
			l.Bounds = tt.bounds
			scale, x, y := l.Fit()
			if math.Abs(scale-tt.wantScale) > 1e-9 || math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
				t.Errorf("Fit() = %v, %v, %v; want %v, %v, %v", scale, x, y, tt.wantScale, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTextSize(t *testing.T) {
	if w, h := New("~ inspired ~").TextSize(); w != 72 || h != 16 {
		t.Errorf("TextSize = %dx%d", w, h)
	}
	if w, _ := New("").TextSize(); w != 1 {
		t.Errorf("empty text width = %d, want 1", w)
	}
}
