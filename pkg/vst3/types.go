// Package vst3 holds the host-facing types and interfaces of the VST3 component model.
package vst3

// Class categories
const (
	CategoryAudioEffect         = "Audio Module Class"
	CategoryComponentController = "Component Controller Class"
)

// Class cardinality
const (
	ManyInstances int32 = 0x7FFFFFFF
)

// Error codes
type Error int

const (
	ErrNotImplemented  Error = -1
	ErrInvalidArgument Error = -2
	ErrInvalidState    Error = -3
)

func (e Error) Error() string {
	switch e {
	case ErrNotImplemented:
		return "not implemented"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrInvalidState:
		return "invalid state"
	default:
		return "unknown error"
	}
}
