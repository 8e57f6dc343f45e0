package vm

import "bsv.dev/txlib/script"

// bitwiseOps holds AND/OR/XOR/INVERT/EQUAL, all of which require their
// operands to share the same byte length (spec.md §4.4) except EQUAL,
// which compares byte strings of any length.
var bitwiseOps = map[script.Opcode]func(*State){
	script.OP_INVERT:       opInvert,
	script.OP_AND:          bitwise(func(a, b byte) byte { return a & b }),
	script.OP_OR:           bitwise(func(a, b byte) byte { return a | b }),
	script.OP_XOR:          bitwise(func(a, b byte) byte { return a ^ b }),
	script.OP_EQUAL:        opEqual,
	script.OP_EQUALVERIFY:  verified(opEqual),
}

func opInvert(s *State) {
	a, ok := s.pop()
	if !ok {
		return
	}
	out := make([]byte, len(a))
	for i, v := range a {
		out[i] = ^v
	}
	s.push(out)
}

func bitwise(f func(a, b byte) byte) func(*State) {
	return func(s *State) {
		if !s.need(2) {
			return
		}
		b, _ := s.pop()
		a, _ := s.pop()
		if len(a) != len(b) {
			s.fail(ErrMismatchedLen, "bitwise operands must share length")
			return
		}
		out := make([]byte, len(a))
		for i := range a {
			out[i] = f(a[i], b[i])
		}
		s.push(out)
	}
}

func opEqual(s *State) {
	if !s.need(2) {
		return
	}
	b, _ := s.pop()
	a, _ := s.pop()
	if s.Opts.Simulate {
		s.push(boolScriptNum(true))
		return
	}
	eq := len(a) == len(b)
	if eq {
		for i := range a {
			if a[i] != b[i] {
				eq = false
				break
			}
		}
	}
	s.push(boolScriptNum(eq))
}
