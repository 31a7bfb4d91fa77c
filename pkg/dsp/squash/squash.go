// Package squash implements the biased sign waveshaper.
//
// Each sample is pulled towards gain*sign(x) by the squash amount:
//
//	y = x + amount*(gain*sign(x) - x)
//
// which is evaluated as (1-amount)*x + amount*gain*sign(x) so that both ends
// of the squash range are exact.
//
// At amount 0 the signal passes unchanged, at amount 1 every non-zero sample
// becomes a full-scale square of height gain.
package squash

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/nelplugins/susquash/pkg/dsp/gain"
)

// Params are the per-block coefficients of the shaper
type Params struct {
	Amount float32 // 0..1
	Gain   float32 // linear
}

// FromPlain converts the user-facing values, squash in percent and gain in
// dB, to shaper coefficients. Amount is clamped to [0, 1].
func FromPlain(squashPercent, gainDB float64) Params {
	amount := core.Clamp(squashPercent/100, 0, 1)
	if math.IsNaN(amount) {
		amount = 0
	}
	return Params{
		Amount: float32(amount),
		Gain:   float32(gain.DbToLinear(gainDB)),
	}
}

// Shape applies the waveshape to a single sample
func Shape(x float32, p Params) float32 {
	return flush32((1-p.Amount)*x + p.Amount*p.Gain*sign32(x))
}

// ProcessBuffer shapes buf in place - no allocations
func ProcessBuffer(buf []float32, p Params) {
	dry := 1 - p.Amount
	wet := p.Amount * p.Gain
	for i, x := range buf {
		buf[i] = flush32(dry*x + wet*sign32(x))
	}
}

// ProcessChannels shapes every channel in place
func ProcessChannels(channels [][]float32, p Params) {
	for _, ch := range channels {
		ProcessBuffer(ch, p)
	}
}

func sign32(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// flush32 zeroes values too small to matter before they turn subnormal
func flush32(x float32) float32 {
	return float32(core.FlushDenormals(float64(x)))
}
