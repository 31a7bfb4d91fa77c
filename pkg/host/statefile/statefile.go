// Package statefile keeps plugin state in a file between runs.
package statefile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nelplugins/susquash/pkg/vst3"
)

// Component is the part of the host interface that carries state
type Component interface {
	GetState(stream vst3.IBStream) error
	SetState(stream vst3.IBStream) error
}

// Load restores the state of c from path. A missing file returns an error
// matching os.ErrNotExist and leaves c untouched.
func Load(path string, c Component) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := c.SetState(f); err != nil {
		return fmt.Errorf("load state %s: %w", path, err)
	}
	return nil
}

// Save writes the state of c to path. The file is replaced atomically.
func Save(path string, c Component) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := c.GetState(tmp); err != nil {
		return fmt.Errorf("save state %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
