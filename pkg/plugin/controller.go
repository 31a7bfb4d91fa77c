package plugin

import (
	"fmt"

	"github.com/nelplugins/susquash/pkg/framework/debug"
	"github.com/nelplugins/susquash/pkg/framework/param"
	"github.com/nelplugins/susquash/pkg/vst3"
)

// IEditController methods

// SetComponentState is a no-op: component and controller share one state
func (c *Component) SetComponentState(state vst3.IBStream) error {
	return nil
}

// GetParameterCount returns the number of parameters
func (c *Component) GetParameterCount() int32 {
	return c.params.Count()
}

// GetParameterInfo describes the parameter at index
func (c *Component) GetParameterInfo(index int32) (*vst3.ParameterInfo, error) {
	p := c.params.GetByIndex(index)
	if p == nil {
		return nil, vst3.ErrInvalidArgument
	}

	return &vst3.ParameterInfo{
		ID:           p.ID,
		Title:        p.Name,
		ShortTitle:   p.ShortName,
		Units:        p.Unit,
		StepCount:    p.StepCount,
		DefaultValue: p.DefaultValue,
		UnitID:       p.UnitID,
		Flags:        int32(p.Flags),
	}, nil
}

func (c *Component) param(id uint32) (*param.Parameter, error) {
	p := c.params.Get(id)
	if p == nil {
		return nil, fmt.Errorf("%w: unknown parameter %d", vst3.ErrInvalidArgument, id)
	}
	return p, nil
}

// GetParamStringByValue formats a normalized value for display
func (c *Component) GetParamStringByValue(id uint32, value float64) (string, error) {
	p, err := c.param(id)
	if err != nil {
		return "", err
	}
	return p.FormatValue(value), nil
}

// GetParamValueByString parses a display string into a normalized value
func (c *Component) GetParamValueByString(id uint32, str string) (float64, error) {
	p, err := c.param(id)
	if err != nil {
		return 0, err
	}
	v, err := p.ParseValue(str)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", vst3.ErrInvalidArgument, err)
	}
	return v, nil
}

// NormalizedParamToPlain converts through the parameter range.
// Unknown IDs pass through unchanged.
func (c *Component) NormalizedParamToPlain(id uint32, normalized float64) float64 {
	if p := c.params.Get(id); p != nil {
		return p.Denormalize(normalized)
	}
	return normalized
}

// PlainParamToNormalized converts through the parameter range.
// Unknown IDs pass through unchanged.
func (c *Component) PlainParamToNormalized(id uint32, plain float64) float64 {
	if p := c.params.Get(id); p != nil {
		return p.Normalize(plain)
	}
	return plain
}

// GetParamNormalized returns the current normalized value
func (c *Component) GetParamNormalized(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// SetParamNormalized sets a value on behalf of the host
func (c *Component) SetParamNormalized(id uint32, value float64) error {
	p, err := c.param(id)
	if err != nil {
		return err
	}
	p.SetValue(value)
	return nil
}

// SetComponentHandler stores the host callback for edits made in the editor
func (c *Component) SetComponentHandler(handler vst3.IComponentHandler) error {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	c.handler = handler
	return nil
}

// CreateView creates the editor when the processor has one
func (c *Component) CreateView(name string) (view vst3.IPlugView, err error) {
	defer recoverPanic("CreateView", &err)

	if name != vst3.ViewTypeEditor {
		return nil, fmt.Errorf("%w: view %q", vst3.ErrInvalidArgument, name)
	}
	ed, ok := c.processor.(Editor)
	if !ok {
		return nil, vst3.ErrNotImplemented
	}

	view, err = ed.CreateEditor(c)
	if err != nil {
		return nil, fmt.Errorf("create editor: %w", err)
	}
	c.view = view
	return view, nil
}

// Parameter edits coming from the editor

func (c *Component) currentHandler() vst3.IComponentHandler {
	c.handlerMu.RLock()
	defer c.handlerMu.RUnlock()
	return c.handler
}

// BeginEdit notifies the host that a parameter gesture starts
func (c *Component) BeginEdit(id uint32) {
	if h := c.currentHandler(); h != nil {
		if err := h.BeginEdit(id); err != nil {
			debug.Debug("host beginEdit(%d): %v", id, err)
		}
	}
}

// PerformEdit sets a parameter and notifies the host
func (c *Component) PerformEdit(id uint32, normalized float64) {
	p := c.params.Get(id)
	if p == nil {
		return
	}
	p.SetValue(normalized)

	if h := c.currentHandler(); h != nil {
		if err := h.PerformEdit(id, p.GetValue()); err != nil {
			debug.Debug("host performEdit(%d): %v", id, err)
		}
	}
}

// EndEdit notifies the host that a parameter gesture ends
func (c *Component) EndEdit(id uint32) {
	if h := c.currentHandler(); h != nil {
		if err := h.EndEdit(id); err != nil {
			debug.Debug("host endEdit(%d): %v", id, err)
		}
	}
}

func (c *Component) restart(flags int32) {
	if h := c.currentHandler(); h != nil {
		if err := h.RestartComponent(flags); err != nil {
			debug.Debug("host restartComponent(%#x): %v", flags, err)
		}
	}
}
