package vm

import (
	"math/big"

	"bsv.dev/txlib/script"
)

// spliceOps holds the byte-string manipulation opcodes (spec.md §4.4).
var spliceOps = map[script.Opcode]func(*State){
	script.OP_CAT:     opCat,
	script.OP_SPLIT:   opSplit,
	script.OP_NUM2BIN: opNum2Bin,
	script.OP_BIN2NUM: opBin2Num,
	script.OP_SIZE:    opSize,
	script.OP_LSHIFT:  opLShift,
	script.OP_RSHIFT:  opRShift,
}

func opCat(s *State) {
	if !s.need(2) {
		return
	}
	b, _ := s.pop()
	a, _ := s.pop()
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	s.push(out)
}

func opSplit(s *State) {
	if !s.need(2) {
		return
	}
	n, _ := num(s)
	a, _ := s.pop()
	if n.Sign() < 0 || n.Cmp(big.NewInt(int64(len(a)))) > 0 {
		s.fail(ErrInvalidIndex, "OP_SPLIT index out of range")
		return
	}
	i := int(n.Int64())
	left := append([]byte(nil), a[:i]...)
	right := append([]byte(nil), a[i:]...)
	s.push(left)
	s.push(right)
}

// opNum2Bin folds the ScriptNum top-of-stack value into exactly size
// bytes, left-padding/zero-extending the magnitude and carrying the sign
// bit into the final output byte, per spec.md §4.4's NUM2BIN rules.
func opNum2Bin(s *State) {
	if !s.need(2) {
		return
	}
	sizeB, _ := s.pop()
	a, _ := s.pop()

	size := script.DecodeScriptNum64(sizeB)
	if size < 0 {
		s.fail(ErrNegativeLength, "OP_NUM2BIN negative size")
		return
	}

	n := script.DecodeScriptNum(a)
	neg := n.Sign() < 0
	abs := new(big.Int).Abs(n)
	be := abs.Bytes()

	// Reverse to little-endian, matching ScriptNum's layout.
	le := make([]byte, len(be))
	for i, v := range be {
		le[len(be)-1-i] = v
	}

	// The byte count size must fit is the minimal ScriptNum encoding's
	// length, not the raw magnitude length: when the magnitude's top bit
	// is already set, EncodeScriptNum needs one extra disambiguation byte
	// to keep that bit from being misread as the sign (script/scriptnum.go).
	required := len(be)
	if required == 0 || be[0]&0x80 != 0 {
		required++
	}
	if int64(required) > size {
		s.fail(ErrInvalidLength, "OP_NUM2BIN value does not fit in size")
		return
	}

	out := make([]byte, size)
	copy(out, le)
	if len(out) > 0 {
		if neg {
			out[len(out)-1] |= 0x80
		} else {
			out[len(out)-1] &^= 0x80
		}
	}
	s.push(out)
}

func opBin2Num(s *State) {
	a, ok := s.pop()
	if !ok {
		return
	}
	n := script.DecodeScriptNum(a)
	s.push(script.EncodeScriptNum(n))
}

func opSize(s *State) {
	top, ok := s.peek()
	if !ok {
		return
	}
	s.push(script.EncodeScriptNum64(int64(len(top))))
}

func opLShift(s *State) {
	if !s.need(2) {
		return
	}
	nB, _ := s.pop()
	a, _ := s.pop()
	n := script.DecodeScriptNum64(nB)
	if n < 0 {
		s.fail(ErrNegativeLength, "OP_LSHIFT negative count")
		return
	}
	s.push(shiftBytes(a, int(n), true))
}

func opRShift(s *State) {
	if !s.need(2) {
		return
	}
	nB, _ := s.pop()
	a, _ := s.pop()
	n := script.DecodeScriptNum64(nB)
	if n < 0 {
		s.fail(ErrNegativeLength, "OP_RSHIFT negative count")
		return
	}
	s.push(shiftBytes(a, int(n), false))
}

// shiftBytes performs a big-endian-style bitwise shift over a byte
// string that is otherwise treated as an opaque bit vector (spec.md
// §4.4's LSHIFT/RSHIFT operate bit-by-bit across the whole value,
// preserving its length).
func shiftBytes(a []byte, n int, left bool) []byte {
	bits := len(a) * 8
	out := make([]byte, len(a))
	if n >= bits {
		return out
	}
	for i := 0; i < bits; i++ {
		var srcBit int
		if left {
			srcBit = i + n
		} else {
			srcBit = i - n
		}
		if srcBit < 0 || srcBit >= bits {
			continue
		}
		if getBit(a, srcBit) {
			setBit(out, i)
		}
	}
	return out
}

func getBit(b []byte, i int) bool {
	byteIdx := i / 8
	bitIdx := 7 - (i % 8)
	return b[byteIdx]&(1<<uint(bitIdx)) != 0
}

func setBit(b []byte, i int) {
	byteIdx := i / 8
	bitIdx := 7 - (i % 8)
	b[byteIdx] |= 1 << uint(bitIdx)
}
