package longop

// Clock is the minimal time source a Wait needs. The VM core satisfies it.
type Clock interface {
	NowMs() int64
}

// Wait is the generalized condition/timer wait described in §4.3. Any
// configured condition firing completes it; a captured click location (if
// requested) is written back before Step returns true.
type Wait struct {
	Base

	clock Clock

	hasDeadline bool
	deadlineMs  int64

	breakOnClick bool
	breakOnCtrl  bool
	breakOnEvent func() bool

	saveClick   bool
	clickX      *int
	clickY      *int
	gotClick    bool
	clickPoint  Point

	ctrlHeld bool
	done     bool
}

// NewWait creates a Wait with no conditions configured; use the With*
// methods to add them before the operation is pushed.
func NewWait(clock Clock) *Wait {
	return &Wait{clock: clock}
}

func (w *Wait) WithDeadline(atMs int64) *Wait {
	w.hasDeadline = true
	w.deadlineMs = atMs
	return w
}

func (w *Wait) WithBreakOnClick() *Wait {
	w.breakOnClick = true
	return w
}

func (w *Wait) WithBreakOnCtrl() *Wait {
	w.breakOnCtrl = true
	return w
}

func (w *Wait) WithBreakOnEvent(pred func() bool) *Wait {
	w.breakOnEvent = pred
	return w
}

// WithSaveClickLocation requests that a click's coordinates are written into
// *x, *y before Step returns true.
func (w *Wait) WithSaveClickLocation(x, y *int) *Wait {
	w.saveClick = true
	w.clickX = x
	w.clickY = y
	return w
}

// SetCtrlHeld lets the host report current ctrl-key state each frame (the
// teacher's FlagI-style "set once, read later" pattern instead of a stream
// of key events).
func (w *Wait) SetCtrlHeld(held bool) { w.ctrlHeld = held }

func (w *Wait) Step(vm any) bool {
	if w.done {
		return true
	}
	if w.hasDeadline && w.clock.NowMs() >= w.deadlineMs {
		w.done = true
	}
	if w.breakOnCtrl && w.ctrlHeld {
		w.done = true
	}
	if w.breakOnEvent != nil && w.breakOnEvent() {
		w.done = true
	}
	if w.done && w.saveClick && w.gotClick {
		*w.clickX = w.clickPoint.X
		*w.clickY = w.clickPoint.Y
	}
	return w.done
}

func (w *Wait) OnMouseButton(button int, pressed bool) bool {
	if !pressed {
		return false
	}
	w.gotClick = true
	if w.breakOnClick {
		w.done = true
	}
	return w.breakOnClick
}

func (w *Wait) OnMouseMotion(p Point) {
	w.clickPoint = p
}
