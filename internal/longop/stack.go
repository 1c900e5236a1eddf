package longop

// Stack is the LIFO of owned long operations (§3.4 invariants i-iii).
type Stack struct {
	ops []LongOperation
}

func NewStack() *Stack { return &Stack{} }

// Empty reports whether no operation is active.
func (s *Stack) Empty() bool { return len(s.ops) == 0 }

// Len returns the number of operations currently stacked.
func (s *Stack) Len() int { return len(s.ops) }

// Top returns the active operation, or nil if the stack is empty.
func (s *Stack) Top() LongOperation {
	if len(s.ops) == 0 {
		return nil
	}
	return s.ops[len(s.ops)-1]
}

// Push makes op immediately top: the previously-top operation (if any)
// receives LoseFocus, then op receives GainFocus (invariant ii).
func (s *Stack) Push(op LongOperation) {
	if prev := s.Top(); prev != nil {
		prev.LoseFocus()
	}
	s.ops = append(s.ops, op)
	op.GainFocus()
}

// pop removes and returns the top operation. It runs no after-hook (that is
// the decorator's job) and does not give the new top focus: StepTop fires
// the new top's GainFocus once it has finished with the popped operation
// (invariant iii: focus happens after the popped op's hooks have run).
func (s *Stack) pop() LongOperation {
	if len(s.ops) == 0 {
		return nil
	}
	popped := s.ops[len(s.ops)-1]
	s.ops = s.ops[:len(s.ops)-1]
	return popped
}

// StepTop advances the top operation by one frame. If it completes, it is
// popped and the new top (if any) gains focus. Returns (completed, popped).
func (s *Stack) StepTop(vm any) (completed bool, popped LongOperation) {
	top := s.Top()
	if top == nil {
		return false, nil
	}
	if !top.Step(vm) {
		return false, nil
	}
	popped = s.pop()
	if newTop := s.Top(); newTop != nil {
		newTop.GainFocus()
	}
	return true, popped
}

// DispatchMouseMotion routes to the top operation, if any.
func (s *Stack) DispatchMouseMotion(p Point) {
	if top := s.Top(); top != nil {
		top.OnMouseMotion(p)
	}
}

// DispatchMouseButton routes to the top operation; returns whether consumed.
func (s *Stack) DispatchMouseButton(button int, pressed bool) bool {
	if top := s.Top(); top != nil {
		return top.OnMouseButton(button, pressed)
	}
	return false
}

// DispatchKey routes to the top operation; returns whether consumed.
func (s *Stack) DispatchKey(keycode int, pressed bool) bool {
	if top := s.Top(); top != nil {
		return top.OnKey(keycode, pressed)
	}
	return false
}

// TopSleepsEveryTick reports the top operation's power-yield hint, or false
// if the stack is empty.
func (s *Stack) TopSleepsEveryTick() bool {
	if top := s.Top(); top != nil {
		return top.SleepEveryTick()
	}
	return false
}
