// Package vm (continued): Core is the interpreter's root object — the
// struct every opcode handler receives — and RunOneFrame is the frame
// loop of §4.1: pump events, advance the active long operation, execute
// bytecode until a long operation takes the stack or an explicit yield,
// then report whether a render is owed.
//
// Grounded on the teacher's Emulator.Step (internal/emulator/emulator.go)
// for the "pump input, tick subsystems in a fixed order, signal when a
// frame is ready to present" shape, generalized from a fixed
// CPU/PPU/APU tick order to the scenario/long-op/opcode order §4.1
// requires.
package vm

import (
	"fmt"

	"rlvm/internal/config"
	"rlvm/internal/debug"
	"rlvm/internal/event"
	"rlvm/internal/longop"
	"rlvm/internal/memory"
	"rlvm/internal/scenario"
	"rlvm/internal/timer"
)

// maxInstructionsPerFrame bounds the bytecode-execution portion of a
// frame so a script that never yields (no pause, no effect, no explicit
// wait) cannot stall the host loop forever; it is generous enough that
// no well-formed scenario should ever hit it in practice.
const maxInstructionsPerFrame = 100000

// Core is the interpreter's root object: memory banks, configuration,
// the scenario source and program position, the call stack, the
// long-operation stack, the opcode registry, the event router, the
// frame/wall-clock timers, and the logger. Every opcode handler and
// long operation receives this as the vm argument (as `any`, decoded
// back to *Core by the caller — see longop.LongOperation.Step).
type Core struct {
	Banks    *memory.Banks
	Gameexe  *config.Gameexe
	Source   scenario.Source
	Registry *Registry
	LongOps  *longop.Stack
	Events   *event.Router
	Timers   *timer.Table
	Log      *debug.Logger

	pos        scenario.Position
	calls      *scenario.CallStack
	halted     bool
	dirty      bool // a render-affecting mutation happened since the last frame
	frameCount uint64
	nowMs      int64

	// hooks maps (scene, line) game-hacks the host may install; invoked
	// right before the instruction at that position executes (§4.1).
	hooks map[scenario.Position]func(*Core)
}

// NewCore wires together a fresh interpreter instance over an already
// loaded scenario source and configuration.
func NewCore(src scenario.Source, gameexe *config.Gameexe, logger *debug.Logger) *Core {
	c := &Core{
		Banks:    memory.NewBanks(),
		Gameexe:  gameexe,
		Source:   src,
		Registry: NewRegistry(),
		LongOps:  longop.NewStack(),
		Timers:   timer.NewTable(),
		Log:      logger,
		calls:    scenario.NewCallStack(),
		hooks:    make(map[scenario.Position]func(*Core)),
	}
	c.Events = event.NewRouter(c.LongOps)
	return c
}

// Position returns the current program position.
func (c *Core) Position() scenario.Position { return c.pos }

// Jump sets the program position directly (goto).
func (c *Core) Jump(p scenario.Position) { c.pos = p }

// Call saves the return position (the instruction after the call site)
// and jumps to target.
func (c *Core) Call(returnTo, target scenario.Position) error {
	if err := c.calls.Push(returnTo); err != nil {
		return err
	}
	c.pos = target
	return nil
}

// Return pops the call stack and jumps to the saved position.
func (c *Core) Return() error {
	p, err := c.calls.Pop()
	if err != nil {
		return err
	}
	c.pos = p
	return nil
}

// CallDepth reports the current call-stack depth (for save-state and
// diagnostics).
func (c *Core) CallDepth() int { return c.calls.Depth() }

// Halt requests that the frame loop stop driving this Core further
// (§4.1 "Halt" terminal result).
func (c *Core) Halt() { c.halted = true }

// Halted reports whether Halt has been requested.
func (c *Core) Halted() bool { return c.halted }

// MarkDirty records that a render-affecting mutation happened this
// frame; RunOneFrame reports this back to the host so it knows whether
// a present is owed.
func (c *Core) MarkDirty() { c.dirty = true }

// SetHook installs a game-hack hook at a scenario position (§4.1): it
// runs immediately before the instruction there executes, every time
// control reaches that position.
func (c *Core) SetHook(pos scenario.Position, fn func(*Core)) { c.hooks[pos] = fn }

// RemoveHook removes a previously installed hook.
func (c *Core) RemoveHook(pos scenario.Position) { delete(c.hooks, pos) }

// FrameResult reports what happened during one RunOneFrame call.
type FrameResult struct {
	Halted      bool
	NeedsRender bool
}

// RunOneFrame drives exactly one host frame (§4.1):
//
//  1. Pump queued input events to the long-operation stack (or the
//     default handler if unconsumed).
//  2. If a long operation is active, step it once. If it completes and
//     pops, bytecode execution resumes this same frame at the current
//     position; otherwise the frame ends here.
//  3. Otherwise, execute bytecode instructions in sequence until either
//     a handler pushes a long operation (stop), an instruction halts
//     the VM (stop), the position runs past the last instruction of its
//     scene (stop, leaving the position there), or the per-frame
//     instruction budget is exhausted (yield, to guarantee the host stays
//     responsive).
//  4. Report whether a render is owed (a mutation flagged the frame
//     dirty) and clear the dirty flag.
func (c *Core) RunOneFrame(events []event.Event) (FrameResult, error) {
	c.Events.DispatchAll(events)
	c.frameCount++

	if c.halted {
		return FrameResult{Halted: true}, nil
	}

	if !c.LongOps.Empty() {
		completed, _ := c.LongOps.StepTop(c)
		if !completed || !c.LongOps.Empty() {
			result := FrameResult{Halted: c.halted, NeedsRender: c.dirty}
			c.dirty = false
			return result, nil
		}
		// The top operation completed and popped with nothing left behind
		// it: bytecode execution resumes this same frame (§4.1 step 2).
	}

	for i := 0; i < maxInstructionsPerFrame; i++ {
		if c.halted {
			break
		}
		if !c.LongOps.Empty() {
			break
		}
		if !c.Source.SceneExists(c.pos.Scene) {
			c.halted = true
			if c.Log != nil {
				c.Log.Errorf("program position references missing scene %d", c.pos.Scene)
			}
			break
		}

		if hook, ok := c.hooks[c.pos]; ok {
			hook(c)
		}

		instr, err := c.Source.InstructionAt(c.pos)
		if err != nil {
			// No instruction at the position (past the end of the scene):
			// nothing more runs this frame.
			break
		}

		next, err := c.Source.NextOffset(c.pos)
		if err != nil {
			return FrameResult{}, fmt.Errorf("vm: advance at %s: %w", c.pos, err)
		}
		advanced := scenario.Position{Scene: c.pos.Scene, Offset: next}

		res, err := c.Registry.Dispatch(c, instr)
		if err != nil {
			return FrameResult{}, err
		}

		if !res.SuppressAdvance {
			c.pos = advanced
		}
		if res.Halt {
			c.halted = true
		}
		if res.PushedOp != nil {
			c.LongOps.Push(res.PushedOp)
			break
		}
	}

	result := FrameResult{Halted: c.halted, NeedsRender: c.dirty}
	c.dirty = false
	return result, nil
}

// FrameCount returns the number of RunOneFrame calls so far, including
// frames that only stepped a long operation or found the VM halted.
func (c *Core) FrameCount() uint64 { return c.frameCount }

// NowMs returns the host-supplied wall-clock time, satisfying
// longop.Clock for Wait/Pause/effect operations.
func (c *Core) NowMs() int64 { return c.nowMs }

// Tick lets the host report the current wall-clock time (milliseconds
// since an arbitrary epoch) before calling RunOneFrame; timers and
// frame counters read against this value.
func (c *Core) Tick(nowMs int64) { c.nowMs = nowMs }

// CallFrames returns a copy of the saved call-stack positions, for
// save-state serialization (see internal/save).
func (c *Core) CallFrames() []scenario.Position { return c.calls.Frames() }

// RestoreCallFrames replaces the call stack's contents, for save-state
// deserialization.
func (c *Core) RestoreCallFrames(frames []scenario.Position) { c.calls.Restore(frames) }
