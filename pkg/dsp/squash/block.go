package squash

import (
	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Block64 shapes float64 blocks with vectorised primitives.
// The shaper is rewritten as y = (1-amount)*x + amount*gain*sign(x) so both
// terms become block scales. Scratch space is allocated once.
type Block64 struct {
	sign []float64
	tmp  []float64
}

// NewBlock64 creates a shaper for blocks of up to maxBlockSize samples
func NewBlock64(maxBlockSize int) *Block64 {
	return &Block64{
		sign: make([]float64, maxBlockSize),
		tmp:  make([]float64, maxBlockSize),
	}
}

// Process writes the shaped src to dst. dst and src may be the same slice.
// Blocks larger than the scratch size are processed in chunks.
func (b *Block64) Process(dst, src []float64, amount, gain float64) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}

	chunk := len(b.sign)
	if chunk == 0 {
		b.sign = make([]float64, n)
		b.tmp = make([]float64, n)
		chunk = n
	}

	for off := 0; off < n; off += chunk {
		end := off + chunk
		if end > n {
			end = n
		}
		b.process(dst[off:end], src[off:end], amount, gain)
	}
}

func (b *Block64) process(dst, src []float64, amount, gain float64) {
	n := len(src)
	sign, tmp := b.sign[:n], b.tmp[:n]

	for i, x := range src {
		switch {
		case x > 0:
			sign[i] = 1
		case x < 0:
			sign[i] = -1
		default:
			sign[i] = 0
		}
	}

	vecmath.ScaleBlock(tmp, sign, amount*gain)
	vecmath.ScaleBlock(dst, src, 1-amount)
	vecmath.AddBlockInPlace(dst, tmp)

	for i, y := range dst {
		dst[i] = core.FlushDenormals(y)
	}
}
