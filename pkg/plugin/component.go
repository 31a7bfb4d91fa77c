package plugin

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/nelplugins/susquash/pkg/framework/bus"
	"github.com/nelplugins/susquash/pkg/framework/debug"
	"github.com/nelplugins/susquash/pkg/framework/param"
	"github.com/nelplugins/susquash/pkg/framework/plugin"
	"github.com/nelplugins/susquash/pkg/framework/process"
	"github.com/nelplugins/susquash/pkg/framework/state"
	"github.com/nelplugins/susquash/pkg/vst3"
)

// Component adapts a Processor to the host interfaces. One object serves as
// component, audio processor and edit controller.
type Component struct {
	info      plugin.Info
	processor Processor
	params    *param.Registry
	buses     *bus.Configuration
	state     *state.Manager

	// set up by SetupProcessing
	ctx        *process.Context
	inBufs     [][]float32
	outBufs    [][]float32
	sampleRate float64
	maxBlock   int32

	active     bool
	processing bool

	handler   vst3.IComponentHandler
	handlerMu sync.RWMutex // Protects handler access

	view vst3.IPlugView
}

var (
	_ vst3.IComponent      = (*Component)(nil)
	_ vst3.IAudioProcessor = (*Component)(nil)
	_ vst3.IEditController = (*Component)(nil)
	_ ParamEditor          = (*Component)(nil)
)

// NewComponent wraps a freshly created processor of p
func NewComponent(p Plugin) *Component {
	return newComponent(p.GetInfo(), p.CreateProcessor())
}

func newComponent(info plugin.Info, processor Processor) *Component {
	c := &Component{
		info:      info,
		processor: processor,
		params:    processor.GetParameters(),
		buses:     processor.GetBuses(),
	}
	if s, ok := processor.(Stateful); ok {
		c.state = s.State()
	} else {
		c.state = state.NewManager("params", c.params)
	}
	return c
}

// Processor returns the wrapped processor
func (c *Component) Processor() Processor {
	return c.processor
}

// recoverPanic keeps panics from crossing the host boundary
func recoverPanic(operation string, err *error) {
	if r := recover(); r != nil {
		debug.Error("panic in %s: %v", operation, r)
		if err != nil {
			*err = fmt.Errorf("%s: panic: %v", operation, r)
		}
	}
}

// IPluginBase methods

// Initialize is called by the host after creation
func (c *Component) Initialize(context interface{}) (err error) {
	defer recoverPanic("Initialize", &err)
	debug.Debug("initialize %s %s", c.info.Name, c.info.Version)
	return nil
}

// Terminate releases host references
func (c *Component) Terminate() (err error) {
	defer recoverPanic("Terminate", &err)

	if c.view != nil {
		c.view.Removed()
		c.view = nil
	}
	c.handlerMu.Lock()
	c.handler = nil
	c.handlerMu.Unlock()
	return nil
}

// IComponent methods

// GetControllerClassID returns the class ID the controller is registered under
func (c *Component) GetControllerClassID() [16]byte {
	return c.info.ControllerUID()
}

// SetIOMode accepts every mode; processing is the same in all of them
func (c *Component) SetIOMode(mode int32) error {
	return nil
}

// GetBusCount returns the number of buses of a media type and direction
func (c *Component) GetBusCount(mediaType, direction int32) int32 {
	return c.buses.GetBusCount(bus.MediaType(mediaType), bus.Direction(direction))
}

// GetBusInfo describes one bus
func (c *Component) GetBusInfo(mediaType, direction, index int32) (*vst3.BusInfo, error) {
	info := c.buses.GetBusInfo(bus.MediaType(mediaType), bus.Direction(direction), index)
	if info == nil {
		return nil, vst3.ErrInvalidArgument
	}

	out := &vst3.BusInfo{
		MediaType:    int32(info.MediaType),
		Direction:    int32(info.Direction),
		ChannelCount: info.ChannelCount,
		Name:         info.Name,
		BusType:      int32(info.BusType),
	}
	if info.IsActive {
		out.Flags = vst3.BusDefaultActive
	}
	return out, nil
}

// ActivateBus activates or deactivates a bus
func (c *Component) ActivateBus(mediaType, direction, index int32, state bool) error {
	if err := c.buses.SetBusActive(bus.MediaType(mediaType), bus.Direction(direction), index, state); err != nil {
		return fmt.Errorf("%w: %v", vst3.ErrInvalidArgument, err)
	}
	return nil
}

// SetActive starts or stops the processor
func (c *Component) SetActive(state bool) (err error) {
	defer recoverPanic("SetActive", &err)

	if err := c.processor.SetActive(state); err != nil {
		return fmt.Errorf("set active %v: %w", state, err)
	}
	c.active = state
	return nil
}

// SetState restores the plugin state. Unreadable state resets the plugin to
// its defaults; the host is never told about the failure.
func (c *Component) SetState(stream vst3.IBStream) (err error) {
	defer recoverPanic("SetState", &err)

	sw := vst3.NewStreamWrapper(stream)
	if sw == nil {
		return vst3.ErrInvalidArgument
	}

	data, err := sw.ReadAll()
	if err == nil {
		err = c.state.Load(bytes.NewReader(data))
	}
	if err != nil {
		debug.Warn("restoring state failed, using defaults: %v", err)
		c.state.Reset()
	}

	c.restart(vst3.RestartParamValuesChanged)
	return nil
}

// GetState writes the plugin state
func (c *Component) GetState(stream vst3.IBStream) (err error) {
	defer recoverPanic("GetState", &err)

	sw := vst3.NewStreamWrapper(stream)
	if sw == nil {
		return vst3.ErrInvalidArgument
	}
	if err := c.state.Save(sw); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// IAudioProcessor methods

// SetBusArrangements accepts mono or stereo main buses with matching input
func (c *Component) SetBusArrangements(inputs, outputs []vst3.SpeakerArrangement) error {
	ins := make([]int32, len(inputs))
	for i, a := range inputs {
		ins[i] = a.ChannelCount()
	}
	outs := make([]int32, len(outputs))
	for i, a := range outputs {
		outs[i] = a.ChannelCount()
	}

	if err := c.buses.Negotiate(ins, outs); err != nil {
		debug.Debug("rejected bus arrangement %v -> %v: %v", inputs, outputs, err)
		return err
	}
	return nil
}

// GetBusArrangement returns the speaker arrangement of a bus
func (c *Component) GetBusArrangement(direction, index int32) (vst3.SpeakerArrangement, error) {
	info := c.buses.GetBusInfo(bus.MediaTypeAudio, bus.Direction(direction), index)
	if info == nil {
		return vst3.ArrangementEmpty, vst3.ErrInvalidArgument
	}

	switch info.ChannelCount {
	case 1:
		return vst3.ArrangementMono, nil
	case 2:
		return vst3.ArrangementStereo, nil
	}
	return vst3.ArrangementEmpty, vst3.ErrInvalidState
}

// CanProcessSampleSize accepts 32-bit float only
func (c *Component) CanProcessSampleSize(symbolicSampleSize int32) error {
	if symbolicSampleSize == vst3.SampleSize32 {
		return nil
	}
	return vst3.ErrNotImplemented
}

// GetLatencySamples returns the processor latency
func (c *Component) GetLatencySamples() uint32 {
	return uint32(c.processor.GetLatencySamples())
}

// SetupProcessing prepares the processor for a sample rate and block size
func (c *Component) SetupProcessing(setup *vst3.ProcessSetup) (err error) {
	defer recoverPanic("SetupProcessing", &err)

	if setup == nil || setup.SampleRate <= 0 || setup.MaxSamplesPerBlock <= 0 {
		return vst3.ErrInvalidArgument
	}
	if err := c.CanProcessSampleSize(setup.SymbolicSampleSize); err != nil {
		return err
	}

	c.sampleRate = setup.SampleRate
	c.maxBlock = setup.MaxSamplesPerBlock
	c.ctx = process.NewContext(c.params)
	c.ctx.SampleRate = setup.SampleRate

	// Sized for the widest supported layout so Process never allocates
	c.inBufs = make([][]float32, 2)
	c.outBufs = make([][]float32, 2)

	if err := c.processor.Initialize(setup.SampleRate, setup.MaxSamplesPerBlock); err != nil {
		return fmt.Errorf("initialize processor: %w", err)
	}
	debug.Info("processing set up at %.0f Hz, %d samples per block", setup.SampleRate, setup.MaxSamplesPerBlock)
	return nil
}

// SetProcessing marks the start and end of the processing calls
func (c *Component) SetProcessing(state bool) error {
	c.processing = state
	return nil
}

// Process applies incoming parameter changes, then runs one audio block.
// Each change takes the last value of its queue for the whole block.
// The main input is copied to the main output when the host passes distinct
// buffers, and the processor works on the output in place.
func (c *Component) Process(data *vst3.ProcessData) (err error) {
	defer recoverPanic("Process", &err)

	if data == nil {
		return vst3.ErrInvalidArgument
	}
	if c.ctx == nil {
		return vst3.ErrInvalidState
	}

	if changes := data.InputParameterChanges; changes != nil {
		for i := range changes.Queues {
			q := &changes.Queues[i]
			if v, ok := q.Last(); ok {
				c.ctx.SetParameter(q.ParamID, v)
			}
		}
	}

	n := int(data.NumSamples)
	if n <= 0 || len(data.Outputs) == 0 {
		// Parameter flush
		return nil
	}
	if data.SymbolicSampleSize != vst3.SampleSize32 {
		return vst3.ErrNotImplemented
	}

	in := bindChannels(c.inBufs, data.Inputs, n)
	out := bindChannels(c.outBufs, data.Outputs, n)

	c.ctx.Bind(in, out)
	c.ctx.PrepareInPlace()
	c.processor.ProcessAudio(c.ctx)

	data.Outputs[0].SilenceFlags = 0
	return nil
}

// bindChannels points dst at the first n samples of each channel of the
// main bus without allocating
func bindChannels(dst [][]float32, buses []vst3.AudioBusBuffers, n int) [][]float32 {
	if len(buses) == 0 {
		return dst[:0]
	}
	main := buses[0].Buffers
	count := len(main)
	if count > len(dst) {
		count = len(dst)
	}
	for ch := 0; ch < count; ch++ {
		buf := main[ch]
		if len(buf) > n {
			buf = buf[:n]
		}
		dst[ch] = buf
	}
	return dst[:count]
}

// GetTailSamples returns the processor tail
func (c *Component) GetTailSamples() uint32 {
	return uint32(c.processor.GetTailSamples())
}
