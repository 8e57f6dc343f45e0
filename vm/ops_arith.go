package vm

import (
	"math/big"

	"bsv.dev/txlib/script"
)

// arithOps holds the numeric opcodes. Per spec.md §5 these operate on
// arbitrary-precision big.Int, not a 32/64-bit clamp.
var arithOps = map[script.Opcode]func(*State){
	script.OP_1ADD:               unary(func(a *big.Int) *big.Int { return new(big.Int).Add(a, big.NewInt(1)) }),
	script.OP_1SUB:               unary(func(a *big.Int) *big.Int { return new(big.Int).Sub(a, big.NewInt(1)) }),
	script.OP_NEGATE:             unary(func(a *big.Int) *big.Int { return new(big.Int).Neg(a) }),
	script.OP_ABS:                unary(func(a *big.Int) *big.Int { return new(big.Int).Abs(a) }),
	script.OP_NOT:                unaryBool(func(a *big.Int) bool { return a.Sign() == 0 }),
	script.OP_0NOTEQUAL:          unaryBool(func(a *big.Int) bool { return a.Sign() != 0 }),
	script.OP_ADD:                binary(func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }),
	script.OP_SUB:                binary(func(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }),
	script.OP_MUL:                binary(func(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }),
	script.OP_DIV:                opDiv,
	script.OP_MOD:                opMod,
	script.OP_BOOLAND:            binaryBool(func(a, b *big.Int) bool { return a.Sign() != 0 && b.Sign() != 0 }),
	script.OP_BOOLOR:             binaryBool(func(a, b *big.Int) bool { return a.Sign() != 0 || b.Sign() != 0 }),
	script.OP_NUMEQUAL:           opNumEqual,
	script.OP_NUMNOTEQUAL:        binaryBool(func(a, b *big.Int) bool { return a.Cmp(b) != 0 }),
	script.OP_LESSTHAN:           binaryBool(func(a, b *big.Int) bool { return a.Cmp(b) < 0 }),
	script.OP_GREATERTHAN:        binaryBool(func(a, b *big.Int) bool { return a.Cmp(b) > 0 }),
	script.OP_LESSTHANOREQUAL:    binaryBool(func(a, b *big.Int) bool { return a.Cmp(b) <= 0 }),
	script.OP_GREATERTHANOREQUAL: binaryBool(func(a, b *big.Int) bool { return a.Cmp(b) >= 0 }),
	script.OP_MIN:                binary(func(a, b *big.Int) *big.Int { if a.Cmp(b) < 0 { return a }; return b }),
	script.OP_MAX:                binary(func(a, b *big.Int) *big.Int { if a.Cmp(b) > 0 { return a }; return b }),
	script.OP_WITHIN:             opWithin,
	script.OP_NUMEQUALVERIFY:     verified(binaryBool(func(a, b *big.Int) bool { return a.Cmp(b) == 0 })),
}

func num(s *State) (*big.Int, bool) {
	b, ok := s.pop()
	if !ok {
		return nil, false
	}
	return script.DecodeScriptNum(b), true
}

func unary(f func(*big.Int) *big.Int) func(*State) {
	return func(s *State) {
		a, ok := num(s)
		if !ok {
			return
		}
		s.push(script.EncodeScriptNum(f(a)))
	}
}

func unaryBool(f func(*big.Int) bool) func(*State) {
	return func(s *State) {
		a, ok := num(s)
		if !ok {
			return
		}
		s.push(boolScriptNum(f(a)))
	}
}

func binary(f func(a, b *big.Int) *big.Int) func(*State) {
	return func(s *State) {
		if !s.need(2) {
			return
		}
		b, _ := num(s)
		a, _ := num(s)
		s.push(script.EncodeScriptNum(f(a, b)))
	}
}

func binaryBool(f func(a, b *big.Int) bool) func(*State) {
	return func(s *State) {
		if !s.need(2) {
			return
		}
		b, _ := num(s)
		a, _ := num(s)
		s.push(boolScriptNum(f(a, b)))
	}
}

// verified wraps a boolean-pushing op with an immediate OP_VERIFY,
// for the *VERIFY opcode variants (NUMEQUALVERIFY, EQUALVERIFY, etc.).
func verified(f func(*State)) func(*State) {
	return func(s *State) {
		f(s)
		if s.Err != nil {
			return
		}
		top, ok := s.pop()
		if !ok {
			return
		}
		if !script.Truthy(top) {
			s.fail(ErrVerifyFailed, "*VERIFY failed")
		}
	}
}

func boolScriptNum(b bool) []byte {
	if b {
		return script.EncodeScriptNum64(1)
	}
	return nil
}

func opDiv(s *State) {
	if !s.need(2) {
		return
	}
	b, _ := num(s)
	a, _ := num(s)
	if b.Sign() == 0 {
		s.fail(ErrDivideByZero, "OP_DIV by zero")
		return
	}
	q := new(big.Int).Quo(a, b)
	s.push(script.EncodeScriptNum(q))
}

func opMod(s *State) {
	if !s.need(2) {
		return
	}
	b, _ := num(s)
	a, _ := num(s)
	if b.Sign() == 0 {
		s.fail(ErrDivideByZero, "OP_MOD by zero")
		return
	}
	r := new(big.Int).Rem(a, b)
	s.push(script.EncodeScriptNum(r))
}

// opNumEqual pushes true under Options.Simulate regardless of operands.
func opNumEqual(s *State) {
	if !s.need(2) {
		return
	}
	b, _ := num(s)
	a, _ := num(s)
	s.push(boolScriptNum(s.Opts.Simulate || a.Cmp(b) == 0))
}

func opWithin(s *State) {
	if !s.need(3) {
		return
	}
	max, _ := num(s)
	min, _ := num(s)
	x, _ := num(s)
	s.push(boolScriptNum(x.Cmp(min) >= 0 && x.Cmp(max) < 0))
}
