package plugin

import (
	"crypto/md5"
	"errors"
)

// Info contains plugin metadata
type Info struct {
	ID       string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Plugin category (e.g., "Fx", "Instrument")
}

// UID derives a stable 16-byte class ID from the string ID.
// The bytes form a name-based (version 3) UUID so the value never changes
// between builds.
func (i Info) UID() [16]byte {
	uid := md5.Sum([]byte(i.ID))
	uid[6] = (uid[6] & 0x0f) | 0x30
	uid[8] = (uid[8] & 0x3f) | 0x80
	return uid
}

// ControllerUID derives the class ID of the edit controller
func (i Info) ControllerUID() [16]byte {
	return Info{ID: i.ID + ".controller"}.UID()
}

// ValidateUID checks that a usable UID can be derived
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return errors.New("plugin ID must not be empty")
	}
	if i.UID() == [16]byte{} {
		return errors.New("plugin UID is all zeros")
	}
	return nil
}
