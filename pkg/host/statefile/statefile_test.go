package statefile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/nelplugins/susquash/pkg/vst3"
)

// blob saves and restores a byte slice
type blob struct {
	data []byte
	fail bool
}

func (b *blob) GetState(s vst3.IBStream) error {
	if b.fail {
		return errors.New("no state")
	}
	_, err := s.Write(b.data)
	return err
}

func (b *blob) SetState(s vst3.IBStream) error {
	data, err := io.ReadAll(s)
	if err != nil {
		return err
	}
	b.data = data
	return nil
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "susquash.state")

	if err := Save(path, &blob{data: []byte("first")}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(path, &blob{data: []byte("second")}); err != nil {
		t.Fatalf("Save over existing: %v", err)
	}

	var got blob
	if err := Load(path, &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got.data) != "second" {
		t.Errorf("loaded %q", got.data)
	}
}

func TestLoadMissing(t *testing.T) {
	b := &blob{data: []byte("keep")}
	err := Load(filepath.Join(t.TempDir(), "none"), b)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load error = %v, want os.ErrNotExist", err)
	}
	if string(b.data) != "keep" {
		t.Error("state changed by a failed load")
	}
}

func TestSaveFailureKeepsOldFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s")
	if err := Save(path, &blob{data: []byte("old")}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := Save(path, &blob{fail: true}); err == nil {
		t.Fatal("expected error")
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "old" {
		t.Errorf("file = %q, %v", data, err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}
