// Package wavio reads and writes WAV files as planar float32 audio.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Bit depths accepted by Encode, in bytes per sample
const (
	Precision16 = 2
	Precision24 = 3
)

// Clip is audio held in memory, one slice per channel
type Clip struct {
	SampleRate int
	Channels   [][]float32
}

// NewClip allocates a silent clip
func NewClip(sampleRate, channels, frames int) *Clip {
	c := &Clip{SampleRate: sampleRate, Channels: make([][]float32, channels)}
	for ch := range c.Channels {
		c.Channels[ch] = make([]float32, frames)
	}
	return c
}

// Frames returns the length of the clip in sample frames
func (c *Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

// Stereo returns the clip with two channels. Mono clips are duplicated,
// stereo clips are returned as they are.
func (c *Clip) Stereo() *Clip {
	if len(c.Channels) != 1 {
		return c
	}
	right := make([]float32, len(c.Channels[0]))
	copy(right, c.Channels[0])
	return &Clip{SampleRate: c.SampleRate, Channels: [][]float32{c.Channels[0], right}}
}

// Decode reads a whole WAV stream
func Decode(r io.Reader) (*Clip, error) {
	s, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer s.Close()

	channels := format.NumChannels
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("decode wav: %d channels not supported", channels)
	}

	c := &Clip{SampleRate: int(format.SampleRate), Channels: make([][]float32, channels)}
	if n := s.Len(); n > 0 {
		for ch := range c.Channels {
			c.Channels[ch] = make([]float32, 0, n)
		}
	}

	scale := levelCorrection(format.Precision)
	buf := make([][2]float64, 1024)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for ch := range c.Channels {
				c.Channels[ch] = append(c.Channels[ch], float32(frame[ch]*scale))
			}
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	return c, nil
}

// levelCorrection restores full scale for signed PCM. The wav decoder
// divides by 2^bits-1 while the encoder multiplies by 2^(bits-1)-1, which
// leaves decoded audio 6 dB low.
func levelCorrection(precision int) float64 {
	if precision < 2 {
		return 1
	}
	bits := float64(precision * 8)
	return (math.Exp2(bits) - 1) / (math.Exp2(bits-1) - 1)
}

// Read decodes a WAV file
func Read(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Encode writes c as PCM WAV with the given precision
func Encode(w io.WriteSeeker, c *Clip, precision int) error {
	if len(c.Channels) < 1 || len(c.Channels) > 2 {
		return fmt.Errorf("encode wav: %d channels not supported", len(c.Channels))
	}
	if c.SampleRate <= 0 {
		return errors.New("encode wav: missing sample rate")
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(c.SampleRate),
		NumChannels: len(c.Channels),
		Precision:   precision,
	}
	if err := wav.Encode(w, newClipStreamer(c), format); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}

// Write encodes c into a new file at path
func Write(path string, c *Clip, precision int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, c, precision)
}

// clipStreamer plays a clip once. Mono clips are streamed on both sides.
type clipStreamer struct {
	clip *Clip
	pos  int
}

func newClipStreamer(c *Clip) *clipStreamer {
	return &clipStreamer{clip: c}
}

func (s *clipStreamer) Stream(samples [][2]float64) (int, bool) {
	remaining := s.clip.Frames() - s.pos
	if remaining <= 0 {
		return 0, false
	}

	n := min(len(samples), remaining)
	left := s.clip.Channels[0]
	right := left
	if len(s.clip.Channels) > 1 {
		right = s.clip.Channels[1]
	}
	for i := 0; i < n; i++ {
		samples[i][0] = float64(left[s.pos+i])
		samples[i][1] = float64(right[s.pos+i])
	}
	s.pos += n
	return n, true
}

func (s *clipStreamer) Err() error { return nil }
