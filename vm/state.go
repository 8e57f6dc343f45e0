package vm

import "bsv.dev/txlib/script"

// State is the Script VM's evaluation state: main and alt stacks, the
// if-nesting stack, an optional op_return capture, and an optional
// error. Per spec.md §9 REDESIGN FLAGS, the error is a tagged
// *ScriptError stored on State rather than thrown, so the stacks remain
// observable after a failure.
type State struct {
	Stack    [][]byte
	AltStack [][]byte

	ifStack []bool // per spec.md §4.4: conjunction of this stack is "currently executing"

	OpReturn []byte // non-nil once an executed OP_RETURN has captured the tail

	Ctx  *Context
	Opts Options
	Err  *ScriptError
}

// New creates a fresh evaluation State.
func New(opts Options) *State {
	return &State{Opts: opts}
}

// NewWithContext creates a fresh evaluation State bound to ctx.
func NewWithContext(opts Options, ctx *Context) *State {
	return &State{Opts: opts, Ctx: ctx}
}

func (s *State) fail(code ErrorCode, msg string) {
	if s.Err == nil {
		s.Err = scriptErr(code, msg)
	}
}

// Failed reports whether evaluation has already hit an error.
func (s *State) Failed() bool { return s.Err != nil }

func (s *State) executing() bool {
	for _, b := range s.ifStack {
		if !b {
			return false
		}
	}
	return true
}

func (s *State) push(b []byte) { s.Stack = append(s.Stack, b) }

func (s *State) pop() ([]byte, bool) {
	if len(s.Stack) == 0 {
		s.fail(ErrStackUnderflow, "pop on empty stack")
		return nil, false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top, true
}

func (s *State) peek() ([]byte, bool) {
	if len(s.Stack) == 0 {
		s.fail(ErrStackUnderflow, "peek on empty stack")
		return nil, false
	}
	return s.Stack[len(s.Stack)-1], true
}

func (s *State) need(n int) bool {
	if len(s.Stack) < n {
		s.fail(ErrStackUnderflow, "not enough stack items")
		return false
	}
	return true
}

// Valid reports whether evaluation finished successfully: no error, the
// if-stack is balanced (empty), and the top of stack is truthy. An
// OP_RETURN capture short-circuits straight to true.
func (s *State) Valid() bool {
	if s.OpReturn != nil {
		return true
	}
	if s.Err != nil {
		return false
	}
	if len(s.ifStack) != 0 {
		return false
	}
	top, ok := s.peek()
	if !ok {
		return false
	}
	return script.Truthy(top)
}
