package gfx

import "rlvm/internal/longop"

// EffectClock is the minimal time source an EffectLongOperation needs;
// *vm.Core satisfies it (it already satisfies longop.Clock).
type EffectClock interface {
	NowMs() int64
}

// EffectLongOperation drives an Effect to completion as a long
// operation (§4.3/§4.4): it owns the compositor's frame buffer for the
// duration, marking every frame dirty so the host repaints, and
// completes once elapsed time reaches the effect's duration, the
// ctrl-skip key is held, or fast-forward is active.
type EffectLongOperation struct {
	longop.Base

	effect  Effect
	comp    *Compositor
	from    *Surface
	to      *Surface
	clock   EffectClock
	startMs int64
	started bool

	ctrlHeld    bool
	fastForward bool

	dirty func()
}

// NewEffectLongOperation stages a transition from `from` to `to`,
// rendered into comp's DC0 each Step, calling markDirty so the caller's
// frame loop knows a render is owed. The effect's start time is the
// clock's time at construction.
func NewEffectLongOperation(effect Effect, comp *Compositor, from, to *Surface, clock EffectClock, markDirty func()) *EffectLongOperation {
	return &EffectLongOperation{effect: effect, comp: comp, from: from, to: to, clock: clock, dirty: markDirty, startMs: clock.NowMs(), started: true}
}

// SetCtrlHeld lets the host report current ctrl-key state each frame,
// mirroring longop.Wait's and text.PauseLongOperation's "set once, read
// later" pattern. Ctrl held during an effect skips straight to done.
func (e *EffectLongOperation) SetCtrlHeld(held bool) { e.ctrlHeld = held }

// SetFastForward lets the host report fast-forward mode; an active
// effect completes immediately rather than animating.
func (e *EffectLongOperation) SetFastForward(v bool) { e.fastForward = v }

func (e *EffectLongOperation) GainFocus() {
	if e.started {
		return
	}
	e.startMs = e.clock.NowMs()
	e.started = true
}

// SleepEveryTick reports false: a running effect is a realtime task
// that must not let the host idle-sleep (§5).
func (e *EffectLongOperation) SleepEveryTick() bool { return false }

func (e *EffectLongOperation) Step(vm any) bool {
	if !e.started {
		e.GainFocus()
	}
	elapsed := e.clock.NowMs() - e.startMs
	duration := e.effect.DurationMs()
	var t float64
	if duration <= 0 {
		t = 1
	} else {
		t = float64(elapsed) / float64(duration)
	}

	if t >= 1 || e.ctrlHeld || e.fastForward {
		return true
	}

	if e.effect.BlitOriginalImage() {
		full := Rect{X2: e.comp.DC0.Width(), Y2: e.comp.DC0.Height()}
		CopySurface(e.comp.DC0, 0, 0, e.from, full, BlitOpts{Alpha: 255})
	}
	e.effect.Render(e.comp.DC0, e.from, e.to, t)
	if e.dirty != nil {
		e.dirty()
	}
	return false
}
