package longop

// Decorator wraps another LongOperation and runs an "after" hook once the
// wrapped operation completes (§3.4, §4.3). Decorators compose: wrapping a
// Decorator in another Decorator stacks the after-hooks in reverse push
// order, exactly as the design notes describe (equivalent to storing an
// after_hook on a generic wrapper).
type Decorator struct {
	Base
	Wrapped LongOperation
	After   func()
}

// NewDecorator builds a Decorator running after once wrapped completes.
func NewDecorator(wrapped LongOperation, after func()) *Decorator {
	return &Decorator{Wrapped: wrapped, After: after}
}

func (d *Decorator) Step(vm any) bool {
	if !d.Wrapped.Step(vm) {
		return false
	}
	if d.After != nil {
		d.After()
	}
	return true
}

func (d *Decorator) GainFocus() { d.Wrapped.GainFocus() }
func (d *Decorator) LoseFocus() { d.Wrapped.LoseFocus() }

func (d *Decorator) OnMouseMotion(p Point) { d.Wrapped.OnMouseMotion(p) }
func (d *Decorator) OnMouseButton(button int, pressed bool) bool {
	return d.Wrapped.OnMouseButton(button, pressed)
}
func (d *Decorator) OnKey(keycode int, pressed bool) bool { return d.Wrapped.OnKey(keycode, pressed) }
func (d *Decorator) SleepEveryTick() bool                  { return d.Wrapped.SleepEveryTick() }
