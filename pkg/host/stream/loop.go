package stream

import (
	"sync/atomic"

	"github.com/nelplugins/susquash/pkg/dsp"
	"github.com/nelplugins/susquash/pkg/vst3"
)

const numChannels = 2

// BlockProcessor runs one block of audio
type BlockProcessor interface {
	Process(data *vst3.ProcessData) error
}

// Loop repeats a stereo clip forever, running it through a processor in
// fixed-size blocks. It is a Source.
type Loop struct {
	clip  [][]float32
	pos   int
	proc  BlockProcessor
	block int

	in, out [][]float32
	data    vst3.ProcessData

	interleaved []float32
	pending     []float32

	errors atomic.Int64
}

// NewLoop creates a loop over clip, which must hold two channels of equal
// length. blockSize is the number of frames handed to the processor at a
// time.
func NewLoop(clip [][]float32, proc BlockProcessor, blockSize int) *Loop {
	blockSize = max(blockSize, 1)
	l := &Loop{
		clip:        clip,
		proc:        proc,
		block:       blockSize,
		in:          make([][]float32, numChannels),
		out:         make([][]float32, numChannels),
		interleaved: make([]float32, blockSize*numChannels),
	}
	for ch := 0; ch < numChannels; ch++ {
		l.in[ch] = make([]float32, blockSize)
		l.out[ch] = make([]float32, blockSize)
	}
	l.data = vst3.ProcessData{
		SymbolicSampleSize: vst3.SampleSize32,
		NumSamples:         int32(blockSize),
		Inputs:             []vst3.AudioBusBuffers{{NumChannels: numChannels, Buffers: l.in}},
		Outputs:            []vst3.AudioBusBuffers{{NumChannels: numChannels, Buffers: l.out}},
	}
	return l
}

// Process fills dst with interleaved stereo output
func (l *Loop) Process(dst []float32) {
	for len(dst) > 0 {
		if len(l.pending) == 0 {
			l.render()
		}
		n := copy(dst, l.pending)
		dst = dst[n:]
		l.pending = l.pending[n:]
	}
}

// Errors returns the number of blocks the processor failed on
func (l *Loop) Errors() int64 {
	return l.errors.Load()
}

func (l *Loop) render() {
	l.fill()

	if err := l.proc.Process(&l.data); err != nil {
		l.errors.Add(1)
		for ch := range l.out {
			dsp.Clear(l.out[ch])
		}
	}

	n := dsp.Interleave(l.interleaved, l.out, numChannels)
	l.pending = l.interleaved[:n*numChannels]
}

// fill copies the next block of the clip into the input buffers, wrapping
// around at the end
func (l *Loop) fill() {
	frames := 0
	if len(l.clip) > 0 {
		frames = len(l.clip[0])
	}
	if frames == 0 {
		for ch := range l.in {
			dsp.Clear(l.in[ch])
		}
		return
	}

	for i := 0; i < l.block; {
		n := min(l.block-i, frames-l.pos)
		for ch := range l.in {
			src := l.clip[min(ch, len(l.clip)-1)]
			copy(l.in[ch][i:i+n], src[l.pos:l.pos+n])
		}
		i += n
		l.pos = (l.pos + n) % frames
	}
}
