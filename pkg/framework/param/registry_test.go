package param

import (
	"sync"
	"testing"
	"time"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	squash := New(0, "Squash").Key("squash").Build()
	gain := New(1, "Gain").Key("gain").Build()
	dup := New(1, "Duplicate").Key("dup").Build()

	if err := r.Add(squash, gain, dup); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}
	if r.Get(1) != gain {
		t.Error("duplicate ID should not replace the first registration")
	}
	if r.Get(7) != nil {
		t.Error("unknown ID should return nil")
	}
	if r.GetByIndex(1) != gain || r.GetByIndex(2) != nil || r.GetByIndex(-1) != nil {
		t.Error("GetByIndex mismatch")
	}

	all := r.All()
	if len(all) != 2 || all[0] != squash {
		t.Errorf("All() = %v", all)
	}
	all[0] = nil
	if r.GetByIndex(0) != squash {
		t.Error("All() shares its slice with the registry")
	}

	squash.SetValue(0.1)
	gain.SetValue(0.2)
	r.ResetAll()
	if squash.GetValue() != squash.DefaultValue || gain.GetValue() != gain.DefaultValue {
		t.Error("ResetAll did not restore defaults")
	}
}

func TestRegistryAddKeepsEarlierReads(t *testing.T) {
	r := NewRegistry()
	r.Add(New(0, "Squash").Build())
	before := r.All()

	r.Add(New(1, "Gain").Build())
	if len(before) != 1 || r.Count() != 2 {
		t.Errorf("before = %d parameters, now %d", len(before), r.Count())
	}
}

func TestRegistryReadsDoNotWaitForAdd(t *testing.T) {
	r := NewRegistry()
	p := New(0, "Squash").Build()
	r.Add(p)

	release := HoldAddLock(r)
	defer release()

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Get(0).SetValue(0.5)
		_ = r.GetByIndex(0)
		_ = r.Count()
		r.ResetAll()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reads blocked while Add held the lock")
	}
}

func TestRegistryConcurrentAdd(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id uint32) {
			defer wg.Done()
			r.Add(New(id, "P").Build())
		}(uint32(i))
	}
	wg.Wait()

	if r.Count() != 8 {
		t.Errorf("Count() = %d, want 8", r.Count())
	}
}
