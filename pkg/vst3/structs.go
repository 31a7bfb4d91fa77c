package vst3

// ProcessData carries one block of audio and the parameter changes that arrived with it
type ProcessData struct {
	ProcessMode           int32
	SymbolicSampleSize    int32
	NumSamples            int32
	Inputs                []AudioBusBuffers
	Outputs               []AudioBusBuffers
	InputParameterChanges *ParameterChanges
}

// AudioBusBuffers provides access to audio buffers
type AudioBusBuffers struct {
	NumChannels  int32
	SilenceFlags uint64
	Buffers      [][]float32
}

// ParameterChanges holds one queue per parameter changed during a block
type ParameterChanges struct {
	Queues []ParamValueQueue
}

// ParamValueQueue holds the automation points of one parameter within a block
type ParamValueQueue struct {
	ParamID uint32
	Points  []ParamPoint
}

// ParamPoint is a normalized value at a sample offset
type ParamPoint struct {
	SampleOffset int32
	Value        float64
}

// Last returns the final value of the queue, which is the value in effect at the block end.
func (q *ParamValueQueue) Last() (float64, bool) {
	if len(q.Points) == 0 {
		return 0, false
	}
	return q.Points[len(q.Points)-1].Value, true
}

// ProcessSetup contains audio processing configuration
type ProcessSetup struct {
	ProcessMode        int32
	SymbolicSampleSize int32
	MaxSamplesPerBlock int32
	SampleRate         float64
}

// ParameterInfo describes a parameter
type ParameterInfo struct {
	ID           uint32
	Title        string
	ShortTitle   string
	Units        string
	StepCount    int32
	DefaultValue float64
	UnitID       int32
	Flags        int32
}

// ClassInfo describes a class exported by the plugin factory
type ClassInfo struct {
	CID         [16]byte
	Cardinality int32
	Category    string
	Name        string
}

// BusInfo describes an audio bus
type BusInfo struct {
	MediaType    int32
	Direction    int32
	ChannelCount int32
	Name         string
	BusType      int32
	Flags        uint32
}

// SpeakerArrangement is a bitset of speaker positions
type SpeakerArrangement uint64

// Speaker arrangements
const (
	SpeakerL SpeakerArrangement = 1 << 0
	SpeakerR SpeakerArrangement = 1 << 1
	SpeakerM SpeakerArrangement = 1 << 19

	ArrangementEmpty  SpeakerArrangement = 0
	ArrangementMono   SpeakerArrangement = SpeakerM
	ArrangementStereo SpeakerArrangement = SpeakerL | SpeakerR
)

// ChannelCount returns the number of speakers in the arrangement.
func (a SpeakerArrangement) ChannelCount() int32 {
	count := int32(0)
	for a != 0 {
		a &= a - 1
		count++
	}
	return count
}

// Constants for media types
const (
	MediaTypeAudio = 0
	MediaTypeEvent = 1
)

// Constants for bus directions
const (
	BusDirectionInput  = 0
	BusDirectionOutput = 1
)

// Constants for bus types
const (
	BusTypeMain = 0
	BusTypeAux  = 1
)

// Bus flags
const (
	BusDefaultActive uint32 = 1 << 0
)

// Sample sizes
const (
	SampleSize32 = 0
	SampleSize64 = 1
)

// Process modes
const (
	ProcessModeRealtime = 0
	ProcessModePrefetch = 1
	ProcessModeOffline  = 2
)

// Constants for parameter flags
const (
	ParameterCanAutomate  = 1 << 0
	ParameterIsReadOnly   = 1 << 1
	ParameterIsWrapAround = 1 << 2
	ParameterIsList       = 1 << 3
	ParameterIsHidden     = 1 << 4
	ParameterIsBypass     = 1 << 16
)
