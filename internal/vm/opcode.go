// Package vm implements the opcode dispatch contract and the frame loop
// described in §4.1/§4.2/§4.K: the registry maps (module, opcode, overload)
// to a handler, and RunOneFrame drives events -> long-op -> bytecode ->
// render in the order the spec requires.
//
// Grounded on the teacher's ExecuteInstruction switch (internal/cpu/cpu.go)
// for "decode fields, look up handler, invoke" and on the table-of-handlers
// idiom shared by the pack's other VM implementations (e.g.
// other_examples/...sentra-language-sentra__internal-vm-vm.go,
// ...deepnoodle-ai-risor__vm-vm.go), generalized from a fixed 4-bit opcode
// to the spec's open (module, opcode, overload) triple.
package vm

import (
	"fmt"

	"rlvm/internal/longop"
	"rlvm/internal/scenario"
)

// Key identifies a registered handler.
type Key struct {
	Module   uint8
	Opcode   uint16
	Overload uint8
}

// Result tells the frame loop what a handler did, beyond mutating memory.
type Result struct {
	// PushedOp is non-nil if the handler pushed a long operation; the VM
	// core stops advancing bytecode this frame when this is set.
	PushedOp longop.LongOperation

	// SuppressAdvance, when true, means the handler already changed the
	// program position (jump/call/return) and the core must not also
	// advance past the instruction (§4.1 step 3).
	SuppressAdvance bool

	// Halt requests VM.halted = true (terminal; §4.1 "Halt").
	Halt bool
}

// Handler executes one decoded instruction.
type Handler func(core *Core, instr scenario.Instruction) (Result, error)

// Registry maps (module, opcode, overload) to a Handler, with eager
// registration at construction time (§4.2).
type Registry struct {
	handlers map[Key]Handler
	names    map[Key]string
	warned   map[Key]bool
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[Key]Handler),
		names:    make(map[Key]string),
		warned:   make(map[Key]bool),
	}
}

// Register installs a named handler. Re-registering the same key replaces
// the prior handler (later registration wins), matching the teacher's
// straightforward map-assignment style.
func (r *Registry) Register(key Key, name string, h Handler) {
	r.handlers[key] = h
	r.names[key] = name
}

// RegisterUnsupported installs a no-op handler that warns once per key the
// first time it is dispatched (§4.2, §7 "Unsupported opcode").
func (r *Registry) RegisterUnsupported(key Key, name string) {
	r.Register(key, name, func(core *Core, instr scenario.Instruction) (Result, error) {
		if !r.warned[key] {
			r.warned[key] = true
			if core.Log != nil {
				core.Log.Warnf("unsupported opcode %s (module=%d opcode=%d overload=%d)", name, key.Module, key.Opcode, key.Overload)
			}
		}
		return Result{}, nil
	})
}

// Lookup returns the handler and display name for key.
func (r *Registry) Lookup(key Key) (Handler, string, bool) {
	h, ok := r.handlers[key]
	if !ok {
		return nil, "", false
	}
	return h, r.names[key], true
}

// Dispatch looks up and invokes the handler for instr. An instruction whose
// key was never registered at all (not even as a no-op) is itself logged
// and treated as a no-op — the VM never aborts on an unknown opcode (§4.2).
func (r *Registry) Dispatch(core *Core, instr scenario.Instruction) (Result, error) {
	key := Key{Module: instr.Module, Opcode: instr.Opcode, Overload: instr.Overload}
	h, _, ok := r.Lookup(key)
	if !ok {
		if !r.warned[key] {
			r.warned[key] = true
			if core.Log != nil {
				core.Log.Warnf("unregistered opcode module=%d opcode=%d overload=%d", key.Module, key.Opcode, key.Overload)
			}
		}
		return Result{}, nil
	}
	res, err := h(core, instr)
	if err != nil {
		return Result{}, fmt.Errorf("vm: opcode module=%d opcode=%d overload=%d: %w", key.Module, key.Opcode, key.Overload, err)
	}
	return res, nil
}
