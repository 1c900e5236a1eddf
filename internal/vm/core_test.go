package vm

import (
	"testing"

	"rlvm/internal/debug"
	"rlvm/internal/event"
	"rlvm/internal/longop"
	"rlvm/internal/scenario"
)

// recordingOp is a minimal LongOperation that completes after a fixed
// number of Step calls, recording how many times each hook fired.
type recordingOp struct {
	longop.Base
	stepsUntilDone int
	steps          int
	gainedFocus    int
	lostFocus      int
}

func (o *recordingOp) Step(vm any) bool {
	o.steps++
	return o.steps >= o.stepsUntilDone
}
func (o *recordingOp) GainFocus() { o.gainedFocus++ }
func (o *recordingOp) LoseFocus() { o.lostFocus++ }

func newCoreWithScene() (*Core, *scenario.Builder) {
	b := scenario.NewBuilder()
	log := debug.NewLogger(100)
	src := b.Build()
	c := NewCore(src, nil, log)
	return c, b
}

func TestRunOneFrameExecutesInstructionsUntilYield(t *testing.T) {
	b := scenario.NewBuilder()
	scene := b.Scene(0)
	var executed []uint16
	r := NewRegistry()
	for op := uint16(1); op <= 3; op++ {
		opcode := op
		r.Register(Key{Opcode: opcode}, "rec", func(core *Core, instr scenario.Instruction) (Result, error) {
			executed = append(executed, instr.Opcode)
			return Result{}, nil
		})
		scene.Add(scenario.Instruction{Opcode: opcode})
	}
	src := b.Build()

	c := NewCore(src, nil, debug.NewLogger(100))
	c.Registry = r
	c.Jump(scenario.Position{Scene: 0, Offset: 0})

	res, err := c.RunOneFrame(nil)
	if err != nil {
		t.Fatalf("RunOneFrame: %v", err)
	}
	if res.Halted {
		t.Fatal("RunOneFrame: want not halted")
	}
	if len(executed) != 3 {
		t.Fatalf("executed opcodes: got %v, want 3 entries", executed)
	}
	if c.Position() != (scenario.Position{Scene: 0, Offset: 3}) {
		t.Fatalf("final position: got %v, want offset 3 (past the last instruction)", c.Position())
	}
}

func TestRunOneFrameStopsWhenHandlerPushesLongOp(t *testing.T) {
	b := scenario.NewBuilder()
	scene := b.Scene(0)
	scene.Add(scenario.Instruction{Opcode: 1})
	scene.Add(scenario.Instruction{Opcode: 2})
	src := b.Build()

	op := &recordingOp{stepsUntilDone: 99}
	r := NewRegistry()
	r.Register(Key{Opcode: 1}, "wait", func(core *Core, instr scenario.Instruction) (Result, error) {
		return Result{PushedOp: op}, nil
	})
	r.Register(Key{Opcode: 2}, "never", func(core *Core, instr scenario.Instruction) (Result, error) {
		t.Fatal("opcode 2 must not run: the long op should have stopped the frame first")
		return Result{}, nil
	})

	c := NewCore(src, nil, debug.NewLogger(100))
	c.Registry = r

	res, err := c.RunOneFrame(nil)
	if err != nil {
		t.Fatalf("RunOneFrame: %v", err)
	}
	if res.Halted {
		t.Fatal("pushing a long op should not halt the VM")
	}
	if c.LongOps.Empty() {
		t.Fatal("the pushed long op should now be on the stack")
	}
	if op.gainedFocus != 1 {
		t.Fatalf("GainFocus calls: got %d, want 1", op.gainedFocus)
	}
	// The opcode-1 instruction already advanced the position (no
	// SuppressAdvance was set), so the next frame would resume at offset 1
	// once the long op completes and pops.
	if c.Position() != (scenario.Position{Scene: 0, Offset: 1}) {
		t.Fatalf("position after pushing long op: got %v, want offset 1", c.Position())
	}
}

func TestRunOneFrameStepsActiveLongOpInsteadOfBytecode(t *testing.T) {
	c, b := newCoreWithScene()
	scene := b.Scene(0)
	ranHandler := false
	c.Registry.Register(Key{Opcode: 1}, "noop", func(core *Core, instr scenario.Instruction) (Result, error) {
		ranHandler = true
		return Result{}, nil
	})
	scene.Add(scenario.Instruction{Opcode: 1})

	op := &recordingOp{stepsUntilDone: 2}
	c.LongOps.Push(op)

	res, err := c.RunOneFrame(nil)
	if err != nil {
		t.Fatalf("RunOneFrame: %v", err)
	}
	if ranHandler {
		t.Fatal("bytecode must not execute while a long op is active and incomplete")
	}
	if op.steps != 1 {
		t.Fatalf("long op steps: got %d, want 1", op.steps)
	}
	if c.LongOps.Empty() {
		t.Fatal("an incomplete long op should remain on the stack")
	}
	_ = res
}

func TestRunOneFrameResumesBytecodeSameFrameWhenLongOpCompletes(t *testing.T) {
	c, b := newCoreWithScene()
	scene := b.Scene(0)
	scene.Add(scenario.Instruction{Opcode: 1}) // never reached directly; long op occupies this frame
	scene.Add(scenario.Instruction{Opcode: 2})

	ran := false
	c.Registry.Register(Key{Opcode: 2}, "afterOp", func(core *Core, instr scenario.Instruction) (Result, error) {
		ran = true
		return Result{}, nil
	})
	c.Jump(scenario.Position{Scene: 0, Offset: 1})

	op := &recordingOp{stepsUntilDone: 1} // completes on first Step
	c.LongOps.Push(op)

	res, err := c.RunOneFrame(nil)
	if err != nil {
		t.Fatalf("RunOneFrame: %v", err)
	}
	if !ran {
		t.Fatal("once the long op pops, bytecode execution should resume this same frame")
	}
	if !c.LongOps.Empty() {
		t.Fatal("the completed long op should have been popped")
	}
	_ = res
}

func TestRunOneFrameHaltStopsExecution(t *testing.T) {
	c, b := newCoreWithScene()
	scene := b.Scene(0)
	scene.Add(scenario.Instruction{Opcode: 1})
	scene.Add(scenario.Instruction{Opcode: 2})

	ranSecond := false
	c.Registry.Register(Key{Opcode: 1}, "halt", func(core *Core, instr scenario.Instruction) (Result, error) {
		return Result{Halt: true}, nil
	})
	c.Registry.Register(Key{Opcode: 2}, "unreached", func(core *Core, instr scenario.Instruction) (Result, error) {
		ranSecond = true
		return Result{}, nil
	})

	res, err := c.RunOneFrame(nil)
	if err != nil {
		t.Fatalf("RunOneFrame: %v", err)
	}
	if !res.Halted || !c.Halted() {
		t.Fatal("want the VM halted after a Halt result")
	}
	if ranSecond {
		t.Fatal("execution must stop at the halting instruction")
	}

	// A halted VM does nothing further on subsequent frames.
	res2, err := c.RunOneFrame(nil)
	if err != nil {
		t.Fatalf("RunOneFrame after halt: %v", err)
	}
	if !res2.Halted {
		t.Fatal("RunOneFrame on an already-halted VM should keep reporting Halted")
	}
}

func TestRunOneFrameSuppressAdvanceHonorsJump(t *testing.T) {
	c, b := newCoreWithScene()
	scene := b.Scene(0)
	scene.Add(scenario.Instruction{Opcode: 1}) // a jump/goto
	scene.Add(scenario.Instruction{Opcode: 99})
	scene.Add(scenario.Instruction{Opcode: 2}) // jump target

	var order []uint16
	c.Registry.Register(Key{Opcode: 1}, "goto", func(core *Core, instr scenario.Instruction) (Result, error) {
		order = append(order, instr.Opcode)
		core.Jump(scenario.Position{Scene: 0, Offset: 2})
		return Result{SuppressAdvance: true}, nil
	})
	c.Registry.Register(Key{Opcode: 99}, "skipped", func(core *Core, instr scenario.Instruction) (Result, error) {
		order = append(order, instr.Opcode)
		return Result{}, nil
	})
	c.Registry.Register(Key{Opcode: 2}, "target", func(core *Core, instr scenario.Instruction) (Result, error) {
		order = append(order, instr.Opcode)
		return Result{}, nil
	})

	if _, err := c.RunOneFrame(nil); err != nil {
		t.Fatalf("RunOneFrame: %v", err)
	}
	want := []uint16{1, 2}
	if len(order) != len(want) {
		t.Fatalf("executed order: got %v, want %v (opcode 99 must be skipped by the jump)", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("executed order: got %v, want %v", order, want)
		}
	}
}

func TestRunOneFrameHaltsOnMissingScene(t *testing.T) {
	b := scenario.NewBuilder()
	b.Scene(0).Add(scenario.Instruction{Opcode: 1})
	src := b.Build()

	log := debug.NewLogger(100)
	log.SetMinLevel(debug.LogLevelError)
	c := NewCore(src, nil, log)
	c.Jump(scenario.Position{Scene: 77, Offset: 0})

	res, err := c.RunOneFrame(nil)
	if err != nil {
		t.Fatalf("RunOneFrame: %v", err)
	}
	if !res.Halted {
		t.Fatal("a missing scene should halt the VM rather than panic or loop")
	}
}

func TestRunOneFrameReportsDirtyAndClearsIt(t *testing.T) {
	c, b := newCoreWithScene()
	scene := b.Scene(0)
	scene.Add(scenario.Instruction{Opcode: 1})
	c.Registry.Register(Key{Opcode: 1}, "mutate", func(core *Core, instr scenario.Instruction) (Result, error) {
		core.MarkDirty()
		return Result{}, nil
	})

	res, err := c.RunOneFrame(nil)
	if err != nil {
		t.Fatalf("RunOneFrame: %v", err)
	}
	if !res.NeedsRender {
		t.Fatal("a dirtying mutation should report NeedsRender")
	}

	res2, err := c.RunOneFrame(nil)
	if err != nil {
		t.Fatalf("RunOneFrame (second, empty scene continuation): %v", err)
	}
	if res2.NeedsRender {
		t.Fatal("dirty flag should be cleared between frames")
	}
}

func TestRunOneFrameInvokesHookBeforeInstruction(t *testing.T) {
	c, b := newCoreWithScene()
	scene := b.Scene(0)
	scene.Add(scenario.Instruction{Opcode: 1})
	c.Registry.Register(Key{Opcode: 1}, "noop", func(core *Core, instr scenario.Instruction) (Result, error) {
		return Result{}, nil
	})

	hookFired := false
	c.SetHook(scenario.Position{Scene: 0, Offset: 0}, func(core *Core) {
		hookFired = true
	})

	if _, err := c.RunOneFrame(nil); err != nil {
		t.Fatalf("RunOneFrame: %v", err)
	}
	if !hookFired {
		t.Fatal("the installed hook should fire before its instruction executes")
	}

	c.RemoveHook(scenario.Position{Scene: 0, Offset: 0})
	hookFired = false
	c.Jump(scenario.Position{Scene: 0, Offset: 0})
	if _, err := c.RunOneFrame(nil); err != nil {
		t.Fatalf("RunOneFrame after RemoveHook: %v", err)
	}
	if hookFired {
		t.Fatal("a removed hook should not fire again")
	}
}

func TestRunOneFrameDispatchesInputEventsFirst(t *testing.T) {
	c, _ := newCoreWithScene()
	var defaultFired bool
	c.Events = event.NewRouter(c.LongOps)
	c.Events.Default = func(event.Event) { defaultFired = true }

	if _, err := c.RunOneFrame([]event.Event{{Kind: event.KindKey, Key: 1, Pressed: true}}); err != nil {
		t.Fatalf("RunOneFrame: %v", err)
	}
	if !defaultFired {
		t.Fatal("input events passed to RunOneFrame should be dispatched")
	}
}

func TestCallAndReturnRoundTrip(t *testing.T) {
	c, _ := newCoreWithScene()
	from := scenario.Position{Scene: 0, Offset: 5}
	target := scenario.Position{Scene: 1, Offset: 0}

	if err := c.Call(from, target); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if c.Position() != target {
		t.Fatalf("Position after Call: got %v, want %v", c.Position(), target)
	}
	if c.CallDepth() != 1 {
		t.Fatalf("CallDepth: got %d, want 1", c.CallDepth())
	}

	if err := c.Return(); err != nil {
		t.Fatalf("Return: %v", err)
	}
	if c.Position() != from {
		t.Fatalf("Position after Return: got %v, want %v", c.Position(), from)
	}
	if c.CallDepth() != 0 {
		t.Fatalf("CallDepth after Return: got %d, want 0", c.CallDepth())
	}
}

func TestReturnWithEmptyCallStackErrors(t *testing.T) {
	c, _ := newCoreWithScene()
	if err := c.Return(); err == nil {
		t.Fatal("Return with an empty call stack: want error")
	}
}

func TestCallFramesRoundTripsThroughRestore(t *testing.T) {
	c, _ := newCoreWithScene()
	c.Call(scenario.Position{Scene: 0, Offset: 1}, scenario.Position{Scene: 1, Offset: 0})
	c.Call(scenario.Position{Scene: 1, Offset: 9}, scenario.Position{Scene: 2, Offset: 0})

	frames := c.CallFrames()
	if len(frames) != 2 {
		t.Fatalf("CallFrames: got %d, want 2", len(frames))
	}

	other, _ := newCoreWithScene()
	other.RestoreCallFrames(frames)
	if other.CallDepth() != 2 {
		t.Fatalf("CallDepth after RestoreCallFrames: got %d, want 2", other.CallDepth())
	}
}

func TestTickAndNowMs(t *testing.T) {
	c, _ := newCoreWithScene()
	c.Tick(12345)
	if c.NowMs() != 12345 {
		t.Fatalf("NowMs: got %d, want 12345", c.NowMs())
	}
}

func TestFrameCountIncrementsPerFrame(t *testing.T) {
	c, _ := newCoreWithScene()
	if c.FrameCount() != 0 {
		t.Fatal("new Core: want FrameCount 0")
	}
	c.RunOneFrame(nil)
	c.RunOneFrame(nil)
	if c.FrameCount() != 2 {
		t.Fatalf("FrameCount: got %d, want 2", c.FrameCount())
	}
}
