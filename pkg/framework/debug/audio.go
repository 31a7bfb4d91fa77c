package debug

import (
	"fmt"
	"math"
)

// Meter accumulates level statistics over consecutive audio blocks.
// It is not safe for concurrent use.
type Meter struct {
	ClipThreshold float32

	peak       float32
	sumSquares float64
	sum        float64
	count      int
	clipped    int
	nans       int
}

// NewMeter creates a meter that counts samples at or above 0.99 as clipped.
func NewMeter() *Meter {
	return &Meter{ClipThreshold: 0.99}
}

// Stats is a snapshot of a Meter.
type Stats struct {
	Samples        int
	Peak           float32
	RMS            float32
	DC             float32
	ClippedSamples int
	NaNCount       int
}

// PeakDB returns the peak level in dBFS.
func (s Stats) PeakDB() float64 {
	if s.Peak <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(float64(s.Peak))
}

// String formats the snapshot for a log line.
func (s Stats) String() string {
	return fmt.Sprintf("samples=%d peak=%.3f (%.2f dBFS) rms=%.3f dc=%.5f clipped=%d nan=%d",
		s.Samples, s.Peak, s.PeakDB(), s.RMS, s.DC, s.ClippedSamples, s.NaNCount)
}

// Add folds a block of channel buffers into the statistics.
func (m *Meter) Add(channels [][]float32) {
	for _, buf := range channels {
		for _, sample := range buf {
			if math.IsNaN(float64(sample)) {
				m.nans++
				continue
			}

			abs := sample
			if abs < 0 {
				abs = -abs
			}
			if abs > m.peak {
				m.peak = abs
			}
			if abs >= m.ClipThreshold {
				m.clipped++
			}

			m.sum += float64(sample)
			m.sumSquares += float64(sample) * float64(sample)
			m.count++
		}
	}
}

// Stats returns the statistics gathered so far.
func (m *Meter) Stats() Stats {
	s := Stats{
		Samples:        m.count,
		Peak:           m.peak,
		ClippedSamples: m.clipped,
		NaNCount:       m.nans,
	}
	if m.count > 0 {
		s.RMS = float32(math.Sqrt(m.sumSquares / float64(m.count)))
		s.DC = float32(m.sum / float64(m.count))
	}
	return s
}

// Reset clears the statistics.
func (m *Meter) Reset() {
	*m = Meter{ClipThreshold: m.ClipThreshold}
}

// LogStats logs a meter snapshot, warning about clipping and NaNs.
func LogStats(name string, s Stats) {
	Info("%s: %s", name, s)
	if s.ClippedSamples > 0 {
		Warn("%s: %d samples at or above clip threshold", name, s.ClippedSamples)
	}
	if s.NaNCount > 0 {
		Error("%s: %d NaN samples", name, s.NaNCount)
	}
}
