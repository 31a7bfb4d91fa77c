// Package state persists plugin parameters and editor properties.
package state

import (
	"fmt"
	"io"
	"sync"

	"github.com/nelplugins/susquash/pkg/framework/param"
)

// ParamType is the tree type of a single persisted parameter
const ParamType = "PARAM"

// Manager handles plugin state saving and loading.
//
// Parameters are persisted by key as plain values. Integer properties, such as
// the editor size, live on the root node next to them.
type Manager struct {
	rootType string
	registry *param.Registry

	mu       sync.Mutex
	names    []string
	ints     map[string]int
	defaults map[string]int
}

// NewManager creates a new state manager for a registry
func NewManager(rootType string, registry *param.Registry) *Manager {
	return &Manager{
		rootType: rootType,
		registry: registry,
		ints:     make(map[string]int),
		defaults: make(map[string]int),
	}
}

// DefineInt declares an integer property with its default value
func (m *Manager) DefineInt(name string, def int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.defaults[name]; !ok {
		m.names = append(m.names, name)
	}
	m.defaults[name] = def
	m.ints[name] = def
}

// Int returns an integer property, or 0 if it was never defined
func (m *Manager) Int(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ints[name]
}

// SetInt updates an integer property. Undefined names are ignored.
func (m *Manager) SetInt(name string, v int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.defaults[name]; ok {
		m.ints[name] = v
	}
}

// Reset restores parameters and properties to their defaults
func (m *Manager) Reset() {
	m.registry.ResetAll()

	m.mu.Lock()
	defer m.mu.Unlock()
	for name, def := range m.defaults {
		m.ints[name] = def
	}
}

// Tree snapshots the current state
func (m *Manager) Tree() *Tree {
	root := NewTree(m.rootType)

	m.mu.Lock()
	for _, name := range m.names {
		root.SetInt(name, m.ints[name])
	}
	m.mu.Unlock()

	for _, p := range m.registry.All() {
		child := NewTree(ParamType)
		child.Set("id", paramKey(p))
		child.SetFloat("value", p.GetPlainValue())
		root.Add(child)
	}
	return root
}

// Apply replaces the current state with t.
// Nothing changes when the root type does not match. Parameters missing from
// t go back to their defaults, as do properties missing or malformed.
func (m *Manager) Apply(t *Tree) error {
	if t == nil || t.Type != m.rootType {
		got := "<nil>"
		if t != nil {
			got = t.Type
		}
		return fmt.Errorf("state root type %q, want %q", got, m.rootType)
	}

	values := make(map[string]float64)
	for _, child := range t.ChildrenOfType(ParamType) {
		id, ok := child.Get("id")
		if !ok {
			continue
		}
		v, err := child.Float("value")
		if err != nil {
			continue
		}
		values[id] = v
	}

	for _, p := range m.registry.All() {
		if v, ok := values[paramKey(p)]; ok {
			p.SetPlainValue(v)
		} else {
			p.Reset()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, name := range m.names {
		v, err := t.Int(name)
		if err != nil {
			v = m.defaults[name]
		}
		m.ints[name] = v
	}
	return nil
}

// Save writes the plugin state to a writer
func (m *Manager) Save(w io.Writer) error {
	return WriteBinary(w, m.Tree())
}

// Load reads the plugin state from a reader.
// On error the current state is left untouched.
func (m *Manager) Load(r io.Reader) error {
	t, err := ReadBinary(r)
	if err != nil {
		return err
	}
	return m.Apply(t)
}

func paramKey(p *param.Parameter) string {
	if p.Key != "" {
		return p.Key
	}
	return fmt.Sprintf("%d", p.ID)
}
