package param

import (
	"sync"
	"sync/atomic"
)

// Registry manages plugin parameters.
// Reads never lock: Add publishes a new immutable table, so the audio
// thread can look parameters up while the controller registers more.
type Registry struct {
	mu    sync.Mutex // serialises Add
	table atomic.Pointer[table]
}

type table struct {
	byID  map[uint32]*Parameter
	order []*Parameter // registration order for indexed access
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	r := &Registry{}
	r.table.Store(&table{byID: map[uint32]*Parameter{}})
	return r
}

// Add registers new parameters. Duplicate IDs are skipped.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.table.Load()
	next := &table{
		byID:  make(map[uint32]*Parameter, len(old.byID)+len(params)),
		order: append(make([]*Parameter, 0, len(old.order)+len(params)), old.order...),
	}
	for id, p := range old.byID {
		next.byID[id] = p
	}

	for _, p := range params {
		if _, exists := next.byID[p.ID]; exists {
			continue
		}
		next.byID[p.ID] = p
		next.order = append(next.order, p)
	}

	r.table.Store(next)
	return nil
}

// Get retrieves a parameter by ID
func (r *Registry) Get(id uint32) *Parameter {
	return r.table.Load().byID[id]
}

// GetByIndex retrieves a parameter by index
func (r *Registry) GetByIndex(index int32) *Parameter {
	order := r.table.Load().order
	if index < 0 || index >= int32(len(order)) {
		return nil
	}
	return order[index]
}

// Count returns the number of parameters
func (r *Registry) Count() int32 {
	return int32(len(r.table.Load().order))
}

// All returns all parameters in order
func (r *Registry) All() []*Parameter {
	order := r.table.Load().order
	result := make([]*Parameter, len(order))
	copy(result, order)
	return result
}

// ResetAll restores every parameter to its default
func (r *Registry) ResetAll() {
	for _, p := range r.table.Load().order {
		p.Reset()
	}
}
