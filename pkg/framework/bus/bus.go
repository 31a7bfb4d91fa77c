// Package bus provides audio bus configuration and layout negotiation.
package bus

import (
	"errors"
	"fmt"
)

// MediaType represents the type of bus
type MediaType int32

const (
	// MediaTypeAudio represents audio bus type
	MediaTypeAudio MediaType = 0
	// MediaTypeEvent represents event/MIDI bus type
	MediaTypeEvent MediaType = 1
)

// Direction represents the bus direction
type Direction int32

const (
	// DirectionInput represents input bus
	DirectionInput Direction = 0
	// DirectionOutput represents output bus
	DirectionOutput Direction = 1
)

// Type represents the bus type
type Type int32

const (
	// TypeMain represents main bus
	TypeMain Type = 0
	// TypeAux represents auxiliary bus
	TypeAux Type = 1
)

// ErrUnsupportedLayout is returned when a host proposes a layout the plugin cannot run
var ErrUnsupportedLayout = errors.New("unsupported bus layout")

// Info contains bus configuration
type Info struct {
	MediaType    MediaType
	Direction    Direction
	ChannelCount int32
	Name         string
	BusType      Type
	IsActive     bool
}

// Configuration manages the audio buses of an effect with one main input and
// one main output
type Configuration struct {
	audioBuses []Info
}

// NewStereoConfiguration creates a standard stereo I/O configuration
func NewStereoConfiguration() *Configuration {
	c := &Configuration{
		audioBuses: []Info{
			{MediaType: MediaTypeAudio, Direction: DirectionInput, BusType: TypeMain, IsActive: true},
			{MediaType: MediaTypeAudio, Direction: DirectionOutput, BusType: TypeMain, IsActive: true},
		},
	}
	c.setChannels(2)
	return c
}

func (c *Configuration) setChannels(n int32) {
	prefix := "Stereo"
	if n == 1 {
		prefix = "Mono"
	}
	for i := range c.audioBuses {
		c.audioBuses[i].ChannelCount = n
		if c.audioBuses[i].Direction == DirectionInput {
			c.audioBuses[i].Name = prefix + " In"
		} else {
			c.audioBuses[i].Name = prefix + " Out"
		}
	}
}

// SupportsLayout reports whether the main buses can run with the given
// channel counts: the output is mono or stereo and the input matches it.
func SupportsLayout(inputChannels, outputChannels int32) bool {
	if outputChannels != 1 && outputChannels != 2 {
		return false
	}
	return inputChannels == outputChannels
}

// Negotiate applies a host-proposed layout, one channel count per bus.
// The configuration is left unchanged when the layout is rejected.
func (c *Configuration) Negotiate(inputs, outputs []int32) error {
	if len(inputs) != 1 || len(outputs) != 1 {
		return fmt.Errorf("%w: %d inputs, %d outputs", ErrUnsupportedLayout, len(inputs), len(outputs))
	}
	if !SupportsLayout(inputs[0], outputs[0]) {
		return fmt.Errorf("%w: %d in, %d out", ErrUnsupportedLayout, inputs[0], outputs[0])
	}
	c.setChannels(outputs[0])
	return nil
}

// ChannelCount returns the channel count of the main bus in a direction
func (c *Configuration) ChannelCount(direction Direction) int32 {
	if info := c.GetBusInfo(MediaTypeAudio, direction, 0); info != nil {
		return info.ChannelCount
	}
	return 0
}

// GetBusCount returns the number of buses for a given type and direction
func (c *Configuration) GetBusCount(mediaType MediaType, direction Direction) int32 {
	if mediaType != MediaTypeAudio {
		return 0
	}

	count := int32(0)
	for _, bus := range c.audioBuses {
		if bus.Direction == direction {
			count++
		}
	}
	return count
}

// GetBusInfo returns information about a specific bus
func (c *Configuration) GetBusInfo(mediaType MediaType, direction Direction, index int32) *Info {
	if mediaType != MediaTypeAudio {
		return nil
	}

	busIndex := int32(0)
	for i := range c.audioBuses {
		if c.audioBuses[i].Direction == direction {
			if busIndex == index {
				return &c.audioBuses[i]
			}
			busIndex++
		}
	}
	return nil
}

// SetBusActive activates or deactivates a bus
func (c *Configuration) SetBusActive(mediaType MediaType, direction Direction, index int32, active bool) error {
	info := c.GetBusInfo(mediaType, direction, index)
	if info == nil {
		return fmt.Errorf("no bus %d for media type %d direction %d", index, mediaType, direction)
	}
	info.IsActive = active
	return nil
}
