package script

import "math/big"

// ScriptNum encodes and decodes the VM's signed integer representation:
// little-endian magnitude with the sign carried in the high bit of the
// last byte. Zero is the empty byte string (spec.md §4.2). Script's
// arithmetic opcodes must support arbitrary precision (spec.md §5), so the
// canonical encode/decode pair operates on *big.Int; EncodeScriptNum64 and
// DecodeScriptNum64 are int64 convenience wrappers for the common case.

// EncodeScriptNum encodes n per the ScriptNum rules.
func EncodeScriptNum(n *big.Int) []byte {
	if n.Sign() == 0 {
		return nil
	}

	neg := n.Sign() < 0
	abs := new(big.Int).Abs(n)

	// big.Int.Bytes returns big-endian magnitude; ScriptNum is little-endian.
	be := abs.Bytes()
	result := make([]byte, len(be))
	for i, v := range be {
		result[len(be)-1-i] = v
	}

	if len(result) == 0 || result[len(result)-1]&0x80 != 0 {
		if neg {
			result = append(result, 0x80)
		} else {
			result = append(result, 0x00)
		}
	} else if neg {
		result[len(result)-1] |= 0x80
	}

	return result
}

// DecodeScriptNum decodes b per the ScriptNum rules. The empty string
// decodes to 0.
func DecodeScriptNum(b []byte) *big.Int {
	if len(b) == 0 {
		return new(big.Int)
	}

	neg := b[len(b)-1]&0x80 != 0

	// Reverse to big-endian and clear the sign bit on our copy.
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	be[0] &^= 0x80

	result := new(big.Int).SetBytes(be)
	if neg {
		result.Neg(result)
	}
	return result
}

// EncodeScriptNum64 is the int64 convenience form of EncodeScriptNum.
func EncodeScriptNum64(n int64) []byte {
	return EncodeScriptNum(big.NewInt(n))
}

// DecodeScriptNum64 is the int64 convenience form of DecodeScriptNum. It
// truncates values that don't fit in an int64.
func DecodeScriptNum64(b []byte) int64 {
	return DecodeScriptNum(b).Int64()
}

// Truthy implements spec.md §4.4's VM truthiness rule: any byte string
// with at least one nonzero byte, ignoring a leading 0x80 in negative-zero
// form, is truthy.
func Truthy(b []byte) bool {
	for i, v := range b {
		if v == 0 {
			continue
		}
		// The last byte's sign bit alone (negative zero, e.g. 0x80) does
		// not make the value truthy.
		if i == len(b)-1 && v == 0x80 {
			continue
		}
		return true
	}
	return false
}
