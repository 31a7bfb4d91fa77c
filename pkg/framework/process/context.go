// Package process provides audio processing context and utilities for block processing.
package process

import (
	"github.com/nelplugins/susquash/pkg/framework/param"
)

// Context provides a clean API for audio processing with zero allocations
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	params *param.Registry
}

// NewContext creates a process context whose parameter changes go to params
func NewContext(params *param.Registry) *Context {
	return &Context{params: params}
}

// Bind points the context at the buffers of the current block
func (c *Context) Bind(input, output [][]float32) {
	c.Input = input
	c.Output = output
}

// NumInputChannels returns the number of input channels
func (c *Context) NumInputChannels() int {
	return len(c.Input)
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// GetNumChannels returns the minimum of input and output channels
func (c *Context) GetNumChannels() int {
	return min(c.NumInputChannels(), c.NumOutputChannels())
}

// PrepareInPlace copies input to output where the host handed us distinct
// buffers and silences output channels that have no input. Afterwards the
// output can be processed in place.
func (c *Context) PrepareInPlace() {
	n := c.GetNumChannels()
	for ch := 0; ch < n; ch++ {
		in, out := c.Input[ch], c.Output[ch]
		if len(in) == 0 || len(out) == 0 {
			continue
		}
		if &in[0] != &out[0] {
			copy(out, in)
		}
	}
	for ch := n; ch < len(c.Output); ch++ {
		clear(c.Output[ch])
	}
}

// SetParameter applies a host parameter change to the whole block.
// Unknown IDs are ignored. The registry lookup does not lock.
func (c *Context) SetParameter(paramID uint32, value float64) {
	if c.params == nil {
		return
	}
	if p := c.params.Get(paramID); p != nil {
		p.SetValue(value)
	}
}
