// Package render runs a clip through a plugin component offline.
package render

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/nelplugins/susquash/pkg/dsp/gain"
	"github.com/nelplugins/susquash/pkg/dsp/squash"
	"github.com/nelplugins/susquash/pkg/framework/debug"
	"github.com/nelplugins/susquash/pkg/host/wavio"
	"github.com/nelplugins/susquash/pkg/plugin"
	"github.com/nelplugins/susquash/pkg/susquash"
	"github.com/nelplugins/susquash/pkg/vst3"
)

// Engines
const (
	// EngineComponent drives the component through the host interface
	EngineComponent = "component"
	// EngineBlock64 reads the parameters from the component and shapes the
	// clip in double precision
	EngineBlock64 = "block64"
)

// DefaultBlockSize is used when Options.BlockSize is not positive
const DefaultBlockSize = 512

// Options control a render
type Options struct {
	Engine    string
	BlockSize int
}

// Report summarises a render
type Report struct {
	Input   debug.Stats
	Output  debug.Stats
	Profile string
}

// Render processes clip through c and returns the result as a new clip of
// the same length and channel count. c must be initialized.
func Render(c *plugin.Component, clip *wavio.Clip, opts Options) (*wavio.Clip, Report, error) {
	if opts.BlockSize <= 0 {
		opts.BlockSize = DefaultBlockSize
	}
	if opts.Engine == "" {
		opts.Engine = EngineComponent
	}

	out := wavio.NewClip(clip.SampleRate, len(clip.Channels), clip.Frames())
	r := &renderer{
		opts:     opts,
		in:       clip,
		out:      out,
		inMeter:  debug.NewMeter(),
		outMeter: debug.NewMeter(),
		profiler: debug.NewProfiler(),
	}

	var err error
	switch opts.Engine {
	case EngineComponent:
		err = r.component(c)
	case EngineBlock64:
		err = r.block64(c)
	default:
		err = fmt.Errorf("render: unknown engine %q", opts.Engine)
	}
	if err != nil {
		return nil, Report{}, err
	}

	return out, Report{
		Input:   r.inMeter.Stats(),
		Output:  r.outMeter.Stats(),
		Profile: r.profiler.Report(float64(clip.SampleRate)),
	}, nil
}

type renderer struct {
	opts Options
	in   *wavio.Clip
	out  *wavio.Clip

	inMeter  *debug.Meter
	outMeter *debug.Meter
	profiler *debug.Profiler
}

// blocks calls fn for each block of frames
func (r *renderer) blocks(fn func(start, end int) error) error {
	frames := r.in.Frames()
	for start := 0; start < frames; start += r.opts.BlockSize {
		end := min(start+r.opts.BlockSize, frames)
		if err := fn(start, end); err != nil {
			return fmt.Errorf("render frames %d-%d: %w", start, end, err)
		}
	}
	return nil
}

func slice(channels [][]float32, start, end int) [][]float32 {
	s := make([][]float32, len(channels))
	for ch := range channels {
		s[ch] = channels[ch][start:end]
	}
	return s
}

func (r *renderer) component(c *plugin.Component) error {
	numChannels := len(r.in.Channels)
	arrangement := vst3.ArrangementStereo
	if numChannels == 1 {
		arrangement = vst3.ArrangementMono
	}
	if err := c.SetBusArrangements(
		[]vst3.SpeakerArrangement{arrangement},
		[]vst3.SpeakerArrangement{arrangement},
	); err != nil {
		return fmt.Errorf("set bus arrangement: %w", err)
	}

	err := c.SetupProcessing(&vst3.ProcessSetup{
		ProcessMode:        vst3.ProcessModeOffline,
		SymbolicSampleSize: vst3.SampleSize32,
		MaxSamplesPerBlock: int32(r.opts.BlockSize),
		SampleRate:         float64(r.in.SampleRate),
	})
	if err != nil {
		return fmt.Errorf("setup processing: %w", err)
	}
	if err := c.SetActive(true); err != nil {
		return err
	}
	defer c.SetActive(false)
	c.SetProcessing(true)
	defer c.SetProcessing(false)

	data := vst3.ProcessData{
		ProcessMode:        vst3.ProcessModeOffline,
		SymbolicSampleSize: vst3.SampleSize32,
		Inputs:             []vst3.AudioBusBuffers{{NumChannels: int32(numChannels)}},
		Outputs:            []vst3.AudioBusBuffers{{NumChannels: int32(numChannels)}},
	}

	return r.blocks(func(start, end int) error {
		in := slice(r.in.Channels, start, end)
		out := slice(r.out.Channels, start, end)
		r.inMeter.Add(in)

		data.NumSamples = int32(end - start)
		data.Inputs[0].Buffers = in
		data.Outputs[0].Buffers = out

		done := r.profiler.Start(EngineComponent, end-start)
		err := c.Process(&data)
		done()
		if err != nil {
			return err
		}
		r.outMeter.Add(out)
		return nil
	})
}

func (r *renderer) block64(c *plugin.Component) error {
	squashPercent := c.NormalizedParamToPlain(susquash.ParamSquash, c.GetParamNormalized(susquash.ParamSquash))
	gainDB := c.NormalizedParamToPlain(susquash.ParamGain, c.GetParamNormalized(susquash.ParamGain))
	amount := core.Clamp(squashPercent/100, 0, 1)
	linear := gain.DbToLinear(gainDB)
	debug.Debug("block64: amount %.4f, gain %.4f", amount, linear)

	shaper := squash.NewBlock64(r.opts.BlockSize)
	src := make([]float64, r.opts.BlockSize)
	dst := make([]float64, r.opts.BlockSize)

	return r.blocks(func(start, end int) error {
		n := end - start
		in := slice(r.in.Channels, start, end)
		out := slice(r.out.Channels, start, end)
		r.inMeter.Add(in)

		done := r.profiler.Start(EngineBlock64, n)
		for ch := range in {
			for i, x := range in[ch] {
				src[i] = float64(x)
			}
			shaper.Process(dst[:n], src[:n], amount, linear)
			for i, y := range dst[:n] {
				out[ch][i] = float32(y)
			}
		}
		done()

		r.outMeter.Add(out)
		return nil
	})
}
