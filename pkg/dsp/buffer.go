// Package dsp provides buffer utilities shared by the audio paths.
package dsp

// Clear zeroes a buffer - no allocations
func Clear(buffer []float32) {
	clear(buffer)
}

// Interleave writes frames of planar channel data into dst as
// interleaved samples of numChannels channels. Missing source channels are
// written as silence, extra source channels are ignored. Returns the number
// of frames written.
func Interleave(dst []float32, src [][]float32, numChannels int) int {
	if numChannels <= 0 {
		return 0
	}
	frames := len(dst) / numChannels
	for ch := 0; ch < numChannels && ch < len(src); ch++ {
		if len(src[ch]) < frames {
			frames = len(src[ch])
		}
	}

	for ch := 0; ch < numChannels; ch++ {
		if ch >= len(src) {
			for i := 0; i < frames; i++ {
				dst[i*numChannels+ch] = 0
			}
			continue
		}
		in := src[ch]
		for i := 0; i < frames; i++ {
			dst[i*numChannels+ch] = in[i]
		}
	}
	return frames
}
