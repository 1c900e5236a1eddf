package host

import (
	"time"

	"rlvm/internal/gfx"
	"rlvm/internal/sound"
	"rlvm/internal/vm"
)

// Clock abstracts wall-clock time so Run's frame-pacing loop can be
// exercised without a real timer in tests; production callers pass
// RealClock.
type Clock interface {
	NowMs() int64
	Sleep(d time.Duration)
}

// RealClock is the production Clock, grounded on the teacher's
// sdl.Delay(1)-between-frames idle throttle in internal/ui/ui.go.
type RealClock struct{ start time.Time }

func NewRealClock() *RealClock { return &RealClock{start: time.Now()} }

func (c *RealClock) NowMs() int64        { return time.Since(c.start).Milliseconds() }
func (c *RealClock) Sleep(d time.Duration) { time.Sleep(d) }

// frameInterval targets 60 Hz, matching the teacher's frame limiter.
const frameInterval = time.Second / 60

// Run drives the main loop: pump SDL events into the core, step one
// frame, composite and present if dirty, queue mixed audio, and pace to
// ~60 Hz — the host-side half of §4.1's run_one_frame contract, grounded
// on the teacher's UI.Run main loop (internal/ui/ui.go).
func Run(win *Window, audio *AudioOut, core *vm.Core, comp *gfx.Compositor, mixer *sound.Mixer, clock Clock) error {
	for {
		events, quit := win.PollEvents()
		if quit {
			return nil
		}

		core.Tick(clock.NowMs())
		result, err := core.RunOneFrame(events)
		if err != nil {
			return err
		}
		if result.Halted {
			return nil
		}

		if result.NeedsRender {
			frame := comp.Render()
			if err := win.Present(frame); err != nil {
				return err
			}
		}

		if audio != nil && mixer != nil {
			if err := audio.QueueFrame(mixer); err != nil {
				return err
			}
		}

		clock.Sleep(frameInterval / 4) // short idle slice, not a hard frame lock (vsync already paces presentation)
	}
}
