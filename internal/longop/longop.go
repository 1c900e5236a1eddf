// Package longop implements the cooperative-multitasking stack described in
// §3.4/§4.3: a LongOperation runs at most one frame of work per Step call,
// and the stack dispatches input and advances exactly one "top" operation.
//
// Grounded on the teacher's clock-driven stepping discipline
// (internal/clock/scheduler.go: "call Step, check the bool/err, move on")
// and generalized from fixed CPU/PPU/APU slots to an open, growable stack of
// arbitrary operations.
package longop

// Point is a 2D integer point, used for mouse hooks and click-location capture.
type Point struct{ X, Y int }

// LongOperation is the central cooperative-task abstraction (§3.4).
type LongOperation interface {
	// Step runs at most one frame of work. Returns true iff complete.
	Step(vm any) bool

	// GainFocus/LoseFocus fire when this operation becomes/ceases to be top.
	GainFocus()
	LoseFocus()

	// Input hooks. A hook returning true marks the event consumed.
	OnMouseMotion(p Point)
	OnMouseButton(button int, pressed bool) bool
	OnKey(keycode int, pressed bool) bool

	// SleepEveryTick reports whether the host frame loop may insert a short
	// idle sleep after invoking this operation (power/yield hint, §5).
	SleepEveryTick() bool
}

// Base provides no-op defaults for every LongOperation method except Step,
// so concrete operations only override the hooks they care about — mirrors
// the teacher's pattern of small, focused per-concern methods rather than a
// single monolithic interface implementation.
type Base struct{}

func (Base) GainFocus()                             {}
func (Base) LoseFocus()                              {}
func (Base) OnMouseMotion(Point)                     {}
func (Base) OnMouseButton(button int, pressed bool) bool { return false }
func (Base) OnKey(keycode int, pressed bool) bool    { return false }
func (Base) SleepEveryTick() bool                    { return false }
