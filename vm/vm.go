// Package vm implements the Script interpreter: a stack-based evaluator
// with a main stack, an alt stack, if/else control flow, and op_return
// capture, per spec.md §4.4.
package vm

import "bsv.dev/txlib/script"

// Eval evaluates chunks left to right against s, mutating and returning
// s so callers can inspect stacks/error after a failed run.
func Eval(s *State, chunks []script.Chunk) *State {
	for _, c := range chunks {
		if s.Err != nil {
			break
		}
		if s.OpReturn != nil {
			break
		}

		if c.IsOpcode && isFlowControl(c.Op) {
			evalFlowControl(s, c.Op)
			continue
		}

		if !s.executing() {
			continue
		}

		if !c.IsOpcode {
			s.push(append([]byte(nil), c.Data...))
			continue
		}

		evalOpcode(s, c.Op)
	}

	if s.Err == nil && len(s.ifStack) != 0 {
		s.fail(ErrUnbalancedIf, "script ended with unterminated IF/ELSE")
	}
	return s
}

func isFlowControl(op script.Opcode) bool {
	switch op {
	case script.OP_IF, script.OP_NOTIF, script.OP_ELSE, script.OP_ENDIF:
		return true
	default:
		return false
	}
}

func evalFlowControl(s *State, op script.Opcode) {
	switch op {
	case script.OP_IF, script.OP_NOTIF:
		var cond bool
		if s.executing() {
			top, ok := s.pop()
			if !ok {
				return
			}
			cond = script.Truthy(top)
			if op == script.OP_NOTIF {
				cond = !cond
			}
		}
		s.ifStack = append(s.ifStack, cond)
	case script.OP_ELSE:
		if len(s.ifStack) == 0 {
			s.fail(ErrUnbalancedIf, "OP_ELSE without matching OP_IF")
			return
		}
		top := len(s.ifStack) - 1
		s.ifStack[top] = !s.ifStack[top]
	case script.OP_ENDIF:
		if len(s.ifStack) == 0 {
			s.fail(ErrUnbalancedIf, "OP_ENDIF without matching OP_IF")
			return
		}
		s.ifStack = s.ifStack[:len(s.ifStack)-1]
	}
}

// evalOpcode dispatches a single opcode. Pushdata chunks and flow
// control are handled by Eval itself before reaching here.
func evalOpcode(s *State, op script.Opcode) {
	if op.Disabled() {
		s.fail(ErrDisabledOpcode, op.String())
		return
	}

	switch {
	case op == script.OP_0:
		s.push(nil)
		return
	case op == script.OP_1NEGATE:
		s.push(script.EncodeScriptNum64(-1))
		return
	case op.IsSmallInt():
		s.push(script.EncodeScriptNum64(int64(op.SmallIntValue())))
		return
	}

	if isReservedOpcode(op) {
		s.fail(ErrReservedOpcode, op.String())
		return
	}

	if fn, ok := stackOps[op]; ok {
		fn(s)
		return
	}
	if fn, ok := spliceOps[op]; ok {
		fn(s)
		return
	}
	if fn, ok := bitwiseOps[op]; ok {
		fn(s)
		return
	}
	if fn, ok := arithOps[op]; ok {
		fn(s)
		return
	}
	if fn, ok := cryptoOps[op]; ok {
		fn(s)
		return
	}

	switch op {
	case script.OP_NOP,
		script.OP_NOP1, script.OP_NOP2, script.OP_NOP3, script.OP_NOP4, script.OP_NOP5,
		script.OP_NOP6, script.OP_NOP7, script.OP_NOP8, script.OP_NOP9, script.OP_NOP10:
		return
	case script.OP_VERIFY:
		top, ok := s.pop()
		if !ok {
			return
		}
		if !script.Truthy(top) {
			s.fail(ErrVerifyFailed, "OP_VERIFY failed")
		}
		return
	case script.OP_RETURN:
		// OP_RETURN captures nothing onto the stack; Eval's top-level
		// loop stops as soon as OpReturn becomes non-nil (spec.md §4.4).
		s.OpReturn = []byte{}
		return
	case script.OP_CODESEPARATOR:
		return
	default:
		s.fail(ErrUnknownOpcode, op.String())
	}
}

func isReservedOpcode(op script.Opcode) bool {
	switch op {
	case script.OP_RESERVED, script.OP_RESERVED1, script.OP_RESERVED2:
		return true
	default:
		return false
	}
}
