package plugin

import (
	"fmt"
	"io"
	"sync"

	"github.com/nelplugins/susquash/pkg/vst3"
)

// FactoryInfo describes the vendor behind the plugin factory
type FactoryInfo struct {
	Vendor string
	URL    string
	Email  string
}

var (
	globalPlugin      Plugin
	globalFactoryInfo FactoryInfo

	// Live components indexed by ID
	components   = make(map[uintptr]*Component)
	componentsMu sync.RWMutex
	nextID       uintptr = 1
)

// Register sets the global plugin instance. A plugin whose info yields no
// usable class ID is refused and the previous registration stays.
func Register(p Plugin) error {
	if p != nil {
		info := p.GetInfo()
		if err := info.ValidateUID(); err != nil {
			return fmt.Errorf("register %q: %w", info.Name, err)
		}
	}
	globalPlugin = p
	return nil
}

// SetFactoryInfo sets the factory information
func SetFactoryInfo(info FactoryInfo) {
	globalFactoryInfo = info
}

// GetFactoryInfo returns the factory information
func GetFactoryInfo() FactoryInfo {
	return globalFactoryInfo
}

// CountClasses returns the number of exported classes: the component and
// its controller, both served by the same object
func CountClasses() int32 {
	if globalPlugin == nil {
		return 0
	}
	return 2
}

// GetClassInfo describes the exported class at index
func GetClassInfo(index int32) (vst3.ClassInfo, error) {
	if globalPlugin == nil {
		return vst3.ClassInfo{}, vst3.ErrInvalidState
	}

	info := globalPlugin.GetInfo()
	switch index {
	case 0:
		return vst3.ClassInfo{
			CID:         info.UID(),
			Cardinality: vst3.ManyInstances,
			Category:    vst3.CategoryAudioEffect,
			Name:        info.Name,
		}, nil
	case 1:
		return vst3.ClassInfo{
			CID:         info.ControllerUID(),
			Cardinality: vst3.ManyInstances,
			Category:    vst3.CategoryComponentController,
			Name:        info.Name + " Controller",
		}, nil
	}
	return vst3.ClassInfo{}, vst3.ErrInvalidArgument
}

// WriteClassList prints the factory info and every exported class
func WriteClassList(w io.Writer) error {
	fi := GetFactoryInfo()
	if _, err := fmt.Fprintf(w, "vendor: %s\nurl:    %s\nemail:  %s\n", fi.Vendor, fi.URL, fi.Email); err != nil {
		return err
	}
	for i := int32(0); i < CountClasses(); i++ {
		ci, err := GetClassInfo(i)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "class %d: %s [%s] %X\n", i, ci.Name, ci.Category, ci.CID); err != nil {
			return err
		}
	}
	return nil
}

// CreateInstance creates a component for a class ID and returns it with the
// handle to pass to Release
func CreateInstance(cid [16]byte) (c *Component, id uintptr, err error) {
	defer recoverPanic("CreateInstance", &err)

	if globalPlugin == nil {
		return nil, 0, vst3.ErrInvalidState
	}
	info := globalPlugin.GetInfo()
	if cid != info.UID() && cid != info.ControllerUID() {
		return nil, 0, fmt.Errorf("%w: unknown class %x", vst3.ErrInvalidArgument, cid)
	}

	processor := globalPlugin.CreateProcessor()
	if processor == nil {
		return nil, 0, fmt.Errorf("%s: no processor", info.Name)
	}

	c = newComponent(info, processor)
	return c, registerComponent(c), nil
}

// Release terminates and forgets a component created by CreateInstance
func Release(id uintptr) {
	c := getComponent(id)
	if c == nil {
		return
	}
	c.Terminate()
	unregisterComponent(id)
}

// Instances returns the number of live components
func Instances() int {
	componentsMu.RLock()
	defer componentsMu.RUnlock()
	return len(components)
}

// registerComponent registers a component and returns its ID
func registerComponent(c *Component) uintptr {
	componentsMu.Lock()
	defer componentsMu.Unlock()
	id := nextID
	nextID++
	components[id] = c
	return id
}

// unregisterComponent removes a component by ID
func unregisterComponent(id uintptr) {
	componentsMu.Lock()
	defer componentsMu.Unlock()
	delete(components, id)
}

// getComponent retrieves a component by ID
func getComponent(id uintptr) *Component {
	componentsMu.RLock()
	defer componentsMu.RUnlock()

	if id == 0 {
		return nil
	}
	return components[id]
}
