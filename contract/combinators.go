package contract

import (
	"bsv.dev/txlib/internal/encoding"
	"bsv.dev/txlib/script"
)

// Op wraps an opcode as a single Chunk, the push-opcode combinator
// spec.md §9 calls for in place of the source's one-helper-per-opcode
// style.
func Op(op script.Opcode) script.Chunk { return script.OpChunk(op) }

// Push wraps data as a single pushdata Chunk.
func Push(data []byte) script.Chunk { return script.DataChunk(data) }

// PushAll builds one Chunk per byte string, in order.
func PushAll(datas ...[]byte) []script.Chunk {
	out := make([]script.Chunk, len(datas))
	for i, d := range datas {
		out[i] = Push(d)
	}
	return out
}

// Each maps f over items and flattens the resulting chunk lists, for
// building repeated structures (e.g. one pubkey push per P2MS signer)
// without hand-unrolling the loop.
func Each[T any](items []T, f func(T) []script.Chunk) []script.Chunk {
	var out []script.Chunk
	for _, it := range items {
		out = append(out, f(it)...)
	}
	return out
}

// Repeat appends chunks n times in sequence.
func Repeat(n int, chunks []script.Chunk) []script.Chunk {
	out := make([]script.Chunk, 0, len(chunks)*n)
	for i := 0; i < n; i++ {
		out = append(out, chunks...)
	}
	return out
}

// OpIf wraps then in OP_IF/OP_ENDIF.
func OpIf(then []script.Chunk) []script.Chunk {
	out := append([]script.Chunk{Op(script.OP_IF)}, then...)
	return append(out, Op(script.OP_ENDIF))
}

// OpIfElse wraps then/els in OP_IF/OP_ELSE/OP_ENDIF.
func OpIfElse(then, els []script.Chunk) []script.Chunk {
	out := append([]script.Chunk{Op(script.OP_IF)}, then...)
	out = append(out, Op(script.OP_ELSE))
	out = append(out, els...)
	return append(out, Op(script.OP_ENDIF))
}

// OpNotIf wraps then in OP_NOTIF/OP_ENDIF.
func OpNotIf(then []script.Chunk) []script.Chunk {
	out := append([]script.Chunk{Op(script.OP_NOTIF)}, then...)
	return append(out, Op(script.OP_ENDIF))
}

// OpNotIfElse wraps then/els in OP_NOTIF/OP_ELSE/OP_ENDIF.
func OpNotIfElse(then, els []script.Chunk) []script.Chunk {
	out := append([]script.Chunk{Op(script.OP_NOTIF)}, then...)
	out = append(out, Op(script.OP_ELSE))
	out = append(out, els...)
	return append(out, Op(script.OP_ENDIF))
}

// Slice returns b[start:start+length], the byte-level helper the
// push-tx accessors use to cut a fixed-width field out of a larger
// buffer (the preimage) at contract-authoring/introspection time.
func Slice(b []byte, start, length int) []byte {
	if start < 0 || length < 0 || start+length > len(b) {
		return nil
	}
	return b[start : start+length]
}

// Trim strips trailing zero bytes, the minimal-push normalization used
// before handing a value to Push so scripts don't carry non-minimal
// encodings.
func Trim(b []byte) []byte {
	i := len(b)
	for i > 0 && b[i-1] == 0 {
		i--
	}
	return b[:i]
}

// GetVarInt encodes n as a VarInt, for contracts that need to embed a
// length prefix explicitly (e.g. constructing scriptCode-shaped pushes).
func GetVarInt(n uint64) []byte {
	return encoding.EncodeVarInt(n)
}

// ReadVarInt decodes a VarInt from the front of b, returning the value
// and the remaining bytes after it.
func ReadVarInt(b []byte) (uint64, []byte, error) {
	n, consumed, err := encoding.DecodeVarInt(b)
	if err != nil {
		return 0, nil, err
	}
	return n, b[consumed:], nil
}

// TrimVarInt strips a VarInt length prefix from the front of b,
// returning only the payload bytes it describes.
func TrimVarInt(b []byte) ([]byte, error) {
	n, rest, err := ReadVarInt(b)
	if err != nil {
		return nil, err
	}
	if uint64(len(rest)) < n {
		return nil, newErr(ErrTruncated, "TrimVarInt: payload shorter than its length prefix")
	}
	return rest[:n], nil
}
