package debug

import (
	"bytes"
	"math"
	"os"
	"strings"
	"testing"
)

func TestMeter(t *testing.T) {
	t.Run("Sine", func(t *testing.T) {
		m := NewMeter()

		buffer := make([]float32, 4800)
		for i := range buffer {
			buffer[i] = 0.5 * float32(math.Sin(2*math.Pi*440*float64(i)/48000))
		}
		// Feed in two blocks to exercise accumulation
		m.Add([][]float32{buffer[:2400]})
		m.Add([][]float32{buffer[2400:]})

		s := m.Stats()
		if s.Samples != 4800 {
			t.Errorf("Samples = %d", s.Samples)
		}
		if s.Peak < 0.49 || s.Peak > 0.51 {
			t.Errorf("Peak incorrect: %f", s.Peak)
		}
		if math.Abs(float64(s.RMS)-0.5/math.Sqrt2) > 0.01 {
			t.Errorf("RMS incorrect: %f", s.RMS)
		}
		if math.Abs(s.PeakDB()+6.02) > 0.1 {
			t.Errorf("PeakDB = %f", s.PeakDB())
		}
	})

	t.Run("ClippingAndNaN", func(t *testing.T) {
		m := NewMeter()
		nan := float32(math.NaN())
		m.Add([][]float32{{0.5, 0.99, 1.0}, {-0.99, -1.0, nan}})

		s := m.Stats()
		if s.ClippedSamples != 4 {
			t.Errorf("ClippedSamples = %d, want 4", s.ClippedSamples)
		}
		if s.NaNCount != 1 || s.Samples != 5 {
			t.Errorf("NaNCount = %d, Samples = %d", s.NaNCount, s.Samples)
		}
	})

	t.Run("DCAndReset", func(t *testing.T) {
		m := NewMeter()
		m.ClipThreshold = 2
		m.Add([][]float32{{0.3, 0.3, 0.3, 0.3}})

		if dc := m.Stats().DC; math.Abs(float64(dc)-0.3) > 1e-6 {
			t.Errorf("DC = %f", dc)
		}

		m.Reset()
		s := m.Stats()
		if s.Samples != 0 || s.Peak != 0 || !math.IsInf(s.PeakDB(), -1) {
			t.Errorf("after Reset: %+v", s)
		}
		if m.ClipThreshold != 2 {
			t.Error("Reset dropped the clip threshold")
		}
	})
}

func TestLogStats(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	LogStats("output", Stats{Samples: 10, Peak: 1, ClippedSamples: 2, NaNCount: 1})

	out := buf.String()
	for _, want := range []string{"output: samples=10", "[WARN]", "2 samples", "[ERROR]"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func BenchmarkMeter(b *testing.B) {
	m := NewMeter()
	block := [][]float32{make([]float32, 512), make([]float32, 512)}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m.Add(block)
	}
}
