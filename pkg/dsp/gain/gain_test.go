package gain

import (
	"math"
	"testing"
)

func TestDbToLinear(t *testing.T) {
	tests := []struct {
		name    string
		db      float64
		linear  float64
		epsilon float64
	}{
		{"Unity gain", 0.0, 1.0, 0.001},
		{"Half amplitude", -6.02, 0.5, 0.01},
		{"Knob minimum", -40, 0.01, 0.001},
		{"Quarter amplitude", -12.04, 0.25, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DbToLinear(tt.db)
			if math.Abs(got-tt.linear) > tt.epsilon {
				t.Errorf("DbToLinear(%f) = %f, want %f", tt.db, got, tt.linear)
			}
		})
	}
}

func TestDbToLinearSilence(t *testing.T) {
	for _, db := range []float64{MinDB, MinDB - 1, math.Inf(-1)} {
		if got := DbToLinear(db); got != 0 {
			t.Errorf("DbToLinear(%v) = %v, want 0", db, got)
		}
	}
}
