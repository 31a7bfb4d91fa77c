package knob

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/nelplugins/susquash/pkg/framework/param"
)

// recorder applies edits to the parameter and records the gesture
type recorder struct {
	p     *param.Parameter
	calls []string
}

func (r *recorder) BeginEdit(id uint32) { r.calls = append(r.calls, "begin") }

func (r *recorder) PerformEdit(id uint32, v float64) {
	r.calls = append(r.calls, "perform")
	r.p.SetValue(v)
}

func (r *recorder) EndEdit(id uint32) { r.calls = append(r.calls, "end") }

func newTestKnob(value float64) (*Knob, *recorder) {
	p := param.New(0, "Squash").Default(1).Build()
	p.SetValue(value)
	rec := &recorder{p: p}
	k := New(p, rec, "SUSQUASH")
	k.SetBounds(image.Rect(0, 0, 339, 431))
	return k, rec
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func sameCalls(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestLayout(t *testing.T) {
	k, _ := newTestKnob(0)

	if got, want := k.LabelBounds(), image.Rect(0, 0, 339, 86); got != want {
		t.Errorf("label bounds = %v, want %v", got, want)
	}
	if got, want := k.DialBounds(), image.Rect(0, 89, 339, 428); got != want {
		t.Errorf("dial bounds = %v, want %v", got, want)
	}

	k.SetBounds(image.Rect(0, 345, 339, 431))
	dial := k.DialBounds()
	if dial.Dx() != dial.Dy() || dial.Dy() != 69 || dial.Min.Y != 362 {
		t.Errorf("gain dial bounds = %v", dial)
	}
	if !k.Contains(10, 400) || k.Contains(10, 300) {
		t.Error("Contains does not follow the bounds")
	}

	k.SetBounds(image.Rectangle{})
	if !k.DialBounds().Empty() {
		t.Errorf("empty layout produced dial %v", k.DialBounds())
	}
}

func TestDrag(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		moves []float64
		mods  Modifiers
		want  float64
	}{
		{"up", 0.5, []float64{200, 100}, Modifiers{}, 0.5 + 100.0/431},
		{"down in steps", 0.5, []float64{200, 210, 220}, Modifiers{}, 0.5 - 20.0/431},
		{"sensitive", 0.5, []float64{200, 100}, Modifiers{Shift: true}, 0.5 + 0.2*100/431},
		{"clamped high", 0.9, []float64{400, 0}, Modifiers{}, 1},
		{"clamped low", 0.1, []float64{0, 400}, Modifiers{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, rec := newTestKnob(tt.start)
			k.Press(100, tt.moves[0])
			for _, y := range tt.moves[1:] {
				k.Drag(100, y, tt.mods)
			}
			if !k.Dragging() {
				t.Error("knob not dragging before release")
			}
			k.Release(100, tt.moves[len(tt.moves)-1], tt.mods)

			if got := rec.p.GetValue(); !approx(got, tt.want) {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
			if rec.calls[0] != "begin" || rec.calls[len(rec.calls)-1] != "end" {
				t.Errorf("gesture = %v", rec.calls)
			}
			if k.Dragging() {
				t.Error("still dragging after release")
			}
		})
	}
}

func TestClick(t *testing.T) {
	k, _ := newTestKnob(0)
	cx, cy := k.centre()

	tests := []struct {
		name string
		x, y float64
		mods Modifiers
		want float64
	}{
		{"top", cx, cy - 50, Modifiers{}, 0.5},
		{"right", cx + 50, cy, Modifiers{}, 5.0 / 6},
		{"left", cx - 50, cy, Modifiers{}, 1.0 / 6},
		{"below start", cx - 10, cy + 50, Modifiers{}, 0},
		{"below end", cx + 10, cy + 50, Modifiers{}, 1},
		{"ctrl resets", cx - 50, cy, Modifiers{Ctrl: true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, rec := newTestKnob(0.3)
			k.Press(tt.x, tt.y)
			// Jitter below the drag threshold still counts as a click
			k.Drag(tt.x+1, tt.y, tt.mods)
			k.Release(tt.x+1, tt.y, tt.mods)

			if got := rec.p.GetValue(); math.Abs(got-tt.want) > 0.01 {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
			if rec.calls[0] != "begin" || rec.calls[len(rec.calls)-1] != "end" {
				t.Errorf("gesture = %v", rec.calls)
			}
		})
	}
}

func TestDragIsNotClick(t *testing.T) {
	k, rec := newTestKnob(0.5)
	cx, cy := k.centre()

	k.Press(cx+50, cy)
	k.Drag(cx+50, cy+5, Modifiers{})
	k.Drag(cx+50, cy, Modifiers{})
	k.Release(cx+50, cy, Modifiers{})

	// Back where it started, and no jump to the clicked angle
	if got := rec.p.GetValue(); !approx(got, 0.5) {
		t.Errorf("value = %v, want 0.5", got)
	}
}

func TestReleaseWithoutPress(t *testing.T) {
	k, rec := newTestKnob(0.5)
	k.Drag(0, 0, Modifiers{})
	k.Release(0, 0, Modifiers{Ctrl: true})
	if len(rec.calls) != 0 {
		t.Errorf("unexpected calls %v", rec.calls)
	}
}

func TestWheel(t *testing.T) {
	tests := []struct {
		name       string
		ev         WheelEvent
		mods       Modifiers
		buttonDown bool
		want       float64
	}{
		{"notch up", WheelEvent{DeltaY: NotchDelta}, Modifiers{}, false, 0.52},
		{"notch down", WheelEvent{DeltaY: -NotchDelta}, Modifiers{}, false, 0.48},
		{"large notch", WheelEvent{DeltaY: 3}, Modifiers{}, false, 0.52},
		{"reversed", WheelEvent{DeltaY: NotchDelta, Reversed: true}, Modifiers{}, false, 0.48},
		{"sensitive", WheelEvent{DeltaY: NotchDelta}, Modifiers{Shift: true}, false, 0.504},
		{"trackpad", WheelEvent{DeltaY: 0.1}, Modifiers{}, false, 0.6},
		{"trackpad reversed", WheelEvent{DeltaY: 0.1, Reversed: true}, Modifiers{}, false, 0.4},
		{"host says discrete", WheelEvent{DeltaY: 0.1, PreciseKnown: true}, Modifiers{}, false, 0.52},
		{"host says precise", WheelEvent{DeltaY: 0.3, Precise: true, PreciseKnown: true}, Modifiers{}, false, 0.8},
		{"button down", WheelEvent{DeltaY: NotchDelta}, Modifiers{}, true, 0.5},
		{"no delta", WheelEvent{}, Modifiers{}, false, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, rec := newTestKnob(0.5)
			k.Wheel(tt.ev, tt.mods, tt.buttonDown)

			if got := rec.p.GetValue(); !approx(got, tt.want) {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
			if tt.want != 0.5 && !sameCalls(rec.calls, []string{"begin", "perform", "end"}) {
				t.Errorf("gesture = %v", rec.calls)
			}
			if tt.want == 0.5 && len(rec.calls) != 0 {
				t.Errorf("ignored wheel produced %v", rec.calls)
			}
		})
	}

	k, rec := newTestKnob(0.99)
	k.Wheel(WheelEvent{DeltaY: NotchDelta}, Modifiers{}, false)
	if rec.p.GetValue() != 1 {
		t.Errorf("wheel not clamped: %v", rec.p.GetValue())
	}
}

func TestWheelIsPrecise(t *testing.T) {
	tests := []struct {
		ev   WheelEvent
		want bool
	}{
		{WheelEvent{DeltaY: NotchDelta}, false},
		{WheelEvent{DeltaY: -NotchDelta}, false},
		{WheelEvent{DeltaY: 0.2}, true},
		{WheelEvent{DeltaY: 0.2, PreciseKnown: true}, false},
		{WheelEvent{DeltaY: 5, Precise: true, PreciseKnown: true}, true},
	}
	for _, tt := range tests {
		if got := tt.ev.IsPrecise(); got != tt.want {
			t.Errorf("%+v.IsPrecise() = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestDirty(t *testing.T) {
	k, rec := newTestKnob(0.5)
	if !k.Dirty() {
		t.Fatal("new knob should be dirty")
	}

	k.dirty = false
	k.lastDrawn = rec.p.GetValue()
	if k.Dirty() {
		t.Fatal("knob dirty without a change")
	}

	// Host automation
	rec.p.SetValue(0.7)
	if !k.Dirty() {
		t.Error("value change did not mark the knob dirty")
	}

	k.lastDrawn = rec.p.GetValue()
	k.SetColour(k.Colour)
	if k.Dirty() {
		t.Error("same colour marked the knob dirty")
	}
	k.SetColour(color.RGBA{1, 2, 3, 255})
	if !k.Dirty() {
		t.Error("colour change did not mark the knob dirty")
	}
}

func TestAngleMapping(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if got := AngleToValue(ValueAngle(v)); !approx(got, v) {
			t.Errorf("AngleToValue(ValueAngle(%v)) = %v", v, got)
		}
	}
	if ValueAngle(0) != StartAngle || ValueAngle(1) != EndAngle {
		t.Error("value range does not span the arc")
	}
	if AngleToValue(math.Pi) != 1 || AngleToValue(-math.Pi) != 0 {
		t.Error("angles outside the arc are not clamped")
	}
}

func TestArcPoints(t *testing.T) {
	pts := arcPoints(50, 50, 40, StartAngle, EndAngle)
	if len(pts) != 73 {
		t.Errorf("got %d points, want 73", len(pts))
	}
	for _, p := range pts {
		d := math.Hypot(float64(p[0]-50), float64(p[1]-50))
		if math.Abs(d-40) > 1e-3 {
			t.Fatalf("point %v is %v from the centre", p, d)
		}
	}

	// Start is down-left of the centre, end down-right
	first, last := pts[0], pts[len(pts)-1]
	if first[0] >= 50 || first[1] <= 50 || last[0] <= 50 || last[1] <= 50 {
		t.Errorf("arc runs from %v to %v", first, last)
	}

	if got := arcPoints(0, 0, 1, 0, 0); len(got) != 2 {
		t.Errorf("zero-length arc has %d points", len(got))
	}
}
