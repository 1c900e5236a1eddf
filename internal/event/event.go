// Package event implements the event router of §4.1/§4.3/§4.5: input events
// are dispatched to the top long operation first, falling through to a
// default action (global ctrl-skip) when unconsumed, and the two sleep-
// policy counters of §5 are tracked here since they are driven by the same
// per-frame tick.
//
// Grounded on the teacher's edge-triggered latch dispatch in
// internal/input/input.go ("capture on rising edge, default otherwise"),
// generalized from a fixed controller bit-field to an open event queue.
package event

import "rlvm/internal/longop"

// Kind enumerates the event types the router pumps per frame (§4.1 step 1).
type Kind uint8

const (
	KindMouseMotion Kind = iota
	KindMouseButton
	KindKey
)

// Event is one pumped input event.
type Event struct {
	Kind    Kind
	Point   longop.Point
	Button  int
	Key     int
	Pressed bool
}

// DefaultHandler is invoked when the top operation (or no operation) leaves
// an event unconsumed. NewRouter leaves it nil, and a nil handler drops
// unconsumed events; the owner of the Router assigns it.
type DefaultHandler func(Event)

// Router pumps events to the top of a long-operation stack, falling
// through to a default handler, and tracks the two sleep-policy counters
// of §5.
type Router struct {
	Stack   *longop.Stack
	Default DefaultHandler

	realtimeTasks int
	niceTasks     int
}

func NewRouter(stack *longop.Stack) *Router {
	return &Router{Stack: stack}
}

// Dispatch delivers one event to the top operation; if unconsumed, it is
// handed to the default handler (§4.1 step 1).
func (r *Router) Dispatch(e Event) {
	consumed := false
	switch e.Kind {
	case KindMouseMotion:
		// Motion is routed to the top operation but never handed to the
		// default handler.
		r.Stack.DispatchMouseMotion(e.Point)
		consumed = true
	case KindMouseButton:
		consumed = r.Stack.DispatchMouseButton(e.Button, e.Pressed)
	case KindKey:
		consumed = r.Stack.DispatchKey(e.Key, e.Pressed)
	}
	if !consumed && r.Default != nil {
		r.Default(e)
	}
}

// DispatchAll delivers a batch of events in arrival order (§5 ordering
// guarantee: events land before any bytecode executes this frame).
func (r *Router) DispatchAll(events []Event) {
	for _, e := range events {
		r.Dispatch(e)
	}
}

// MarkRealtimeTask / ClearRealtimeTask track the count of running effects
// and active frame counters; while count > 0 the frame loop must not
// voluntarily yield (§5, §4.7).
func (r *Router) MarkRealtimeTask()  { r.realtimeTasks++ }
func (r *Router) ClearRealtimeTask() {
	if r.realtimeTasks > 0 {
		r.realtimeTasks--
	}
}
func (r *Router) HasRealtimeTask() bool { return r.realtimeTasks > 0 }

// MarkNiceTask / ClearNiceTask track idle waits that permit the frame loop
// to sleep ~10ms between passes to reduce CPU usage (§5).
func (r *Router) MarkNiceTask()  { r.niceTasks++ }
func (r *Router) ClearNiceTask() {
	if r.niceTasks > 0 {
		r.niceTasks--
	}
}
func (r *Router) ShouldNiceSleep() bool { return !r.HasRealtimeTask() && r.niceTasks > 0 }
