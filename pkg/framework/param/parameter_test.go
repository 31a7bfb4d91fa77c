package param

import (
	"math"
	"sync"
	"testing"
)

func TestParameterClampsNormalizedValue(t *testing.T) {
	p := New(0, "Squash").Biased(0, 100, -0.6).Default(100).Build()

	tests := []struct {
		set  float64
		want float64
	}{
		{1.5, 1.0},
		{-0.5, 0.0},
		{0.25, 0.25},
		{math.NaN(), 0.0},
	}

	for _, tt := range tests {
		p.SetValue(tt.set)
		if got := p.GetValue(); got != tt.want {
			t.Errorf("SetValue(%v) stored %v, want %v", tt.set, got, tt.want)
		}
	}
}

func TestParameterPlainValues(t *testing.T) {
	p := New(1, "Gain").Range(-40, 0).Default(0).Build()

	if got := p.GetValue(); got != 1 {
		t.Errorf("default normalized = %f, want 1", got)
	}
	if got := p.GetPlainValue(); got != 0 {
		t.Errorf("default plain = %f, want 0", got)
	}

	p.SetPlainValue(-10)
	if got := p.GetPlainValue(); math.Abs(got+10) > 1e-9 {
		t.Errorf("plain after SetPlainValue(-10) = %f", got)
	}

	p.SetPlainValue(12)
	if got := p.GetPlainValue(); got != 0 {
		t.Errorf("plain above max = %f, want 0", got)
	}

	p.Reset()
	if got := p.GetValue(); got != p.DefaultValue {
		t.Errorf("Reset left %f, want %f", got, p.DefaultValue)
	}
	if p.Range.Start != -40 || p.Range.End != 0 {
		t.Errorf("range = %f..%f", p.Range.Start, p.Range.End)
	}
}

func TestParameterFormatAndParse(t *testing.T) {
	p := PercentParameter(0, "Squash", -0.6, 100).Build()

	if got := p.FormatValue(1); got != "100 %" {
		t.Errorf("FormatValue(1) = %q", got)
	}

	n, err := p.ParseValue("50 %")
	if err != nil {
		t.Fatalf("ParseValue: %v", err)
	}
	if plain := p.Denormalize(n); math.Abs(plain-50) > 1e-9 {
		t.Errorf("parsed plain = %f, want 50", plain)
	}

	if _, err := p.ParseValue("loud"); err == nil {
		t.Error("expected parse error")
	}

	plainParam := New(2, "Plain").Range(0, 10).Build()
	if got := plainParam.FormatValue(0.5); got != "5.00" {
		t.Errorf("default format = %q, want 5.00", got)
	}
	n, err = plainParam.ParseValue("2.5")
	if err != nil || n != 0.25 {
		t.Errorf("default parse = %f, %v", n, err)
	}
}

func TestParameterConcurrentAccess(t *testing.T) {
	p := New(0, "Squash").Build()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			p.SetValue(float64(i%100) / 100)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			if v := p.GetValue(); v < 0 || v > 1 {
				t.Errorf("read out of range value %f", v)
				return
			}
		}
	}()
	wg.Wait()
}
