package param

import "math"

// Range maps a normalized value in [0,1] onto [Start, End].
//
// Bias skews the response with a power curve. A positive bias gives the lower
// part of the knob travel more of the range, a negative bias the upper part.
// Bias 0 is linear.
type Range struct {
	Start float64
	End   float64
	Bias  float64

	// exponent applied when going from normalized to plain
	toPlain float64
}

// Linear creates an unbiased range
func Linear(start, end float64) Range {
	return Biased(start, end, 0)
}

// Biased creates a range with a power-curve response.
// Bias must lie in (-1, 1); values outside are clamped just inside the interval.
func Biased(start, end, bias float64) Range {
	const limit = 0.999
	if bias > limit {
		bias = limit
	} else if bias < -limit {
		bias = -limit
	}

	r := Range{Start: start, End: end, Bias: bias}
	if bias > 0 {
		r.toPlain = 1 - bias
	} else {
		r.toPlain = 1 / (bias + 1)
	}
	return r
}

// exponent returns the normalized->plain exponent, treating the zero Range as linear.
func (r Range) exponent() float64 {
	if r.toPlain == 0 {
		return 1
	}
	return r.toPlain
}

// Length returns End - Start
func (r Range) Length() float64 {
	return r.End - r.Start
}

// FromNormalized converts normalized (0-1) to a plain value inside [Start, End]
func (r Range) FromNormalized(normalized float64) float64 {
	if r.End <= r.Start {
		return r.Start
	}
	normalized = clamp01(normalized)
	plain := r.Start + r.Length()*math.Pow(normalized, r.exponent())
	return r.Clamp(plain)
}

// ToNormalized converts a plain value to normalized (0-1)
func (r Range) ToNormalized(plain float64) float64 {
	if r.End <= r.Start {
		return 0
	}
	proportion := clamp01((plain - r.Start) / r.Length())
	return clamp01(math.Pow(proportion, 1/r.exponent()))
}

// Clamp limits a plain value to [Start, End]
func (r Range) Clamp(plain float64) float64 {
	if plain < r.Start {
		return r.Start
	}
	if plain > r.End {
		return r.End
	}
	return plain
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
