package text

import "rlvm/internal/longop"

// PauseClock is the minimal time source PauseLongOperation needs.
type PauseClock interface {
	NowMs() int64
}

// PauseMenu is invoked when the pause operation's right-click opens the
// system menu — an external call the host wires up (§4.5.4).
type PauseMenu interface {
	OpenMenu()
}

// VoiceStopper stops any currently-playing voice channel when a pause
// completes (§4.5.4 "On done: stop any currently-playing voice channel").
type VoiceStopper interface {
	StopVoice()
}

// PauseLongOperation waits for a click/key to advance text, or for
// auto-mode's timed budget to expire (§4.5.4).
type PauseLongOperation struct {
	longop.Base

	clock     PauseClock
	backlog   *Backlog
	menu      PauseMenu
	voice     VoiceStopper

	startMs         int64
	autoModeEnabled bool
	autoBudgetMs    int64

	fastForward bool
	ctrlHeld    bool
	ctrlSkipEnabled bool
	uiHidden    bool

	done bool
}

// NewPauseLongOperation constructs a pause at nowMs with the given
// auto-mode budget (baseMs + perCharMs*pageCharCount, per §4.5.4);
// autoModeEnabled false disables the timed auto-advance entirely.
func NewPauseLongOperation(clock PauseClock, backlog *Backlog, menu PauseMenu, voice VoiceStopper, autoModeEnabled bool, baseMs, perCharMs int64, pageCharCount int) *PauseLongOperation {
	return &PauseLongOperation{
		clock:           clock,
		backlog:         backlog,
		menu:            menu,
		voice:           voice,
		startMs:         clock.NowMs(),
		autoModeEnabled: autoModeEnabled,
		autoBudgetMs:    baseMs + perCharMs*int64(pageCharCount),
		ctrlSkipEnabled: true,
	}
}

func (p *PauseLongOperation) SetFastForward(v bool) { p.fastForward = v }
func (p *PauseLongOperation) SetCtrlHeld(v bool)    { p.ctrlHeld = v }
func (p *PauseLongOperation) UIHidden() bool        { return p.uiHidden }

func (p *PauseLongOperation) Step(vm any) bool {
	if p.done {
		return true
	}
	if p.autoModeEnabled && p.clock.NowMs() >= p.startMs+p.autoBudgetMs {
		p.done = true
	}
	if p.fastForward {
		p.done = true
	}
	if p.ctrlHeld && p.ctrlSkipEnabled {
		p.done = true
	}
	if p.done && p.voice != nil {
		p.voice.StopVoice()
	}
	return p.done
}

func (p *PauseLongOperation) OnMouseButton(button int, pressed bool) bool {
	if pressed {
		return false
	}
	switch button {
	case 0: // left click released
		if p.backlog != nil && p.backlog.IsReadingBacklog() {
			p.backlog.ReturnToLive()
		} else {
			p.done = true
		}
		return true
	case 1: // right click released
		if p.menu != nil {
			p.menu.OpenMenu()
		}
		return true
	}
	return false
}

func (p *PauseLongOperation) OnKey(keycode int, pressed bool) bool {
	if !pressed {
		return false
	}
	switch keycode {
	case KeyUp:
		if p.backlog != nil {
			p.backlog.BackPage()
		}
		return true
	case KeyDown:
		if p.backlog != nil {
			p.backlog.ForwardPage()
		}
		return true
	case KeySpace:
		p.uiHidden = !p.uiHidden
		return true
	case KeyEnter:
		if p.backlog != nil && p.backlog.IsReadingBacklog() {
			p.backlog.ReturnToLive()
		} else {
			p.done = true
		}
		return true
	}
	return false
}

// Keycodes the pause operation recognizes by name, independent of any
// particular host windowing toolkit's key constants (§4.5.4).
const (
	KeyUp = iota
	KeyDown
	KeySpace
	KeyEnter
)

// MouseWheel lets the host route wheel motion to the same prev/next
// semantics as the UP/DOWN keys (§4.5.4).
func (p *PauseLongOperation) MouseWheel(deltaY int) {
	if p.backlog == nil {
		return
	}
	if deltaY > 0 {
		p.backlog.BackPage()
	} else if deltaY < 0 {
		p.backlog.ForwardPage()
	}
}
