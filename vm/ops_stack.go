package vm

import (
	"math/big"

	"bsv.dev/txlib/script"
)

// stackOps holds the pure stack-manipulation opcodes: no arithmetic,
// hashing, or signature verification involved.
var stackOps = map[script.Opcode]func(*State){
	script.OP_TOALTSTACK:   opToAltStack,
	script.OP_FROMALTSTACK: opFromAltStack,
	script.OP_2DROP:        op2Drop,
	script.OP_2DUP:         op2Dup,
	script.OP_3DUP:         op3Dup,
	script.OP_2OVER:        op2Over,
	script.OP_2ROT:         op2Rot,
	script.OP_2SWAP:        op2Swap,
	script.OP_IFDUP:        opIfDup,
	script.OP_DEPTH:        opDepth,
	script.OP_DROP:         opDrop,
	script.OP_DUP:          opDup,
	script.OP_NIP:          opNip,
	script.OP_OVER:         opOver,
	script.OP_PICK:         opPick,
	script.OP_ROLL:         opRoll,
	script.OP_ROT:          opRot,
	script.OP_SWAP:         opSwap,
	script.OP_TUCK:         opTuck,
}

func opToAltStack(s *State) {
	v, ok := s.pop()
	if !ok {
		return
	}
	s.AltStack = append(s.AltStack, v)
}

func opFromAltStack(s *State) {
	if len(s.AltStack) == 0 {
		s.fail(ErrStackUnderflow, "OP_FROMALTSTACK on empty alt stack")
		return
	}
	top := s.AltStack[len(s.AltStack)-1]
	s.AltStack = s.AltStack[:len(s.AltStack)-1]
	s.push(top)
}

func op2Drop(s *State) {
	if !s.need(2) {
		return
	}
	s.Stack = s.Stack[:len(s.Stack)-2]
}

func op2Dup(s *State) {
	if !s.need(2) {
		return
	}
	n := len(s.Stack)
	s.push(s.Stack[n-2])
	s.push(s.Stack[n-1])
}

func op3Dup(s *State) {
	if !s.need(3) {
		return
	}
	n := len(s.Stack)
	s.push(s.Stack[n-3])
	s.push(s.Stack[n-2])
	s.push(s.Stack[n-1])
}

func op2Over(s *State) {
	if !s.need(4) {
		return
	}
	n := len(s.Stack)
	s.push(s.Stack[n-4])
	s.push(s.Stack[n-3])
}

func op2Rot(s *State) {
	if !s.need(6) {
		return
	}
	n := len(s.Stack)
	a, b := s.Stack[n-6], s.Stack[n-5]
	s.Stack = append(s.Stack[:n-6], s.Stack[n-4:]...)
	s.push(a)
	s.push(b)
}

func op2Swap(s *State) {
	if !s.need(4) {
		return
	}
	n := len(s.Stack)
	s.Stack[n-4], s.Stack[n-2] = s.Stack[n-2], s.Stack[n-4]
	s.Stack[n-3], s.Stack[n-1] = s.Stack[n-1], s.Stack[n-3]
}

func opIfDup(s *State) {
	top, ok := s.peek()
	if !ok {
		return
	}
	if script.Truthy(top) {
		s.push(top)
	}
}

func opDepth(s *State) {
	s.push(script.EncodeScriptNum(big.NewInt(int64(len(s.Stack)))))
}

func opDrop(s *State) {
	if _, ok := s.pop(); !ok {
		return
	}
}

func opDup(s *State) {
	top, ok := s.peek()
	if !ok {
		return
	}
	s.push(top)
}

func opNip(s *State) {
	if !s.need(2) {
		return
	}
	n := len(s.Stack)
	s.Stack = append(s.Stack[:n-2], s.Stack[n-1])
}

func opOver(s *State) {
	if !s.need(2) {
		return
	}
	s.push(s.Stack[len(s.Stack)-2])
}

func stackIndex(s *State) (int, bool) {
	top, ok := s.pop()
	if !ok {
		return 0, false
	}
	n := script.DecodeScriptNum64(top)
	if n < 0 || int(n) >= len(s.Stack) {
		s.fail(ErrInvalidIndex, "stack index out of range")
		return 0, false
	}
	return int(n), true
}

func opPick(s *State) {
	n, ok := stackIndex(s)
	if !ok {
		return
	}
	s.push(s.Stack[len(s.Stack)-1-n])
}

func opRoll(s *State) {
	n, ok := stackIndex(s)
	if !ok {
		return
	}
	idx := len(s.Stack) - 1 - n
	v := s.Stack[idx]
	s.Stack = append(s.Stack[:idx], s.Stack[idx+1:]...)
	s.push(v)
}

func opRot(s *State) {
	if !s.need(3) {
		return
	}
	n := len(s.Stack)
	s.Stack[n-3], s.Stack[n-2], s.Stack[n-1] = s.Stack[n-2], s.Stack[n-1], s.Stack[n-3]
}

func opSwap(s *State) {
	if !s.need(2) {
		return
	}
	n := len(s.Stack)
	s.Stack[n-2], s.Stack[n-1] = s.Stack[n-1], s.Stack[n-2]
}

func opTuck(s *State) {
	if !s.need(2) {
		return
	}
	n := len(s.Stack)
	top := s.Stack[n-1]
	under := make([]byte, len(s.Stack[n-2]))
	copy(under, s.Stack[n-2])
	s.Stack = append(s.Stack[:n-2], top, under, top)
}
