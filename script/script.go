package script

import "bsv.dev/txlib/internal/encoding"

// Chunk is one element of a Script: either a named opcode atom or an
// opaque pushdata byte string. Exactly one of the two is meaningful,
// selected by IsOpcode.
type Chunk struct {
	IsOpcode bool
	Op       Opcode
	Data      []byte
}

// OpChunk builds an opcode chunk. This is the single push-opcode
// combinator referenced by spec.md §9 REDESIGN FLAGS, replacing the
// source's many per-opcode helpers.
func OpChunk(op Opcode) Chunk { return Chunk{IsOpcode: true, Op: op} }

// DataChunk builds a pushdata chunk carrying data verbatim.
func DataChunk(data []byte) Chunk { return Chunk{Data: data} }

// Script is an ordered sequence of chunks. A Script that originated as
// the input script of a coinbase input may instead carry raw,
// unparsed bytes in Coinbase (chunks is then empty); see spec.md §3.
type Script struct {
	Chunks   []Chunk
	Coinbase []byte
}

// IsCoinbase reports whether this Script carries raw coinbase bytes
// rather than a parsed chunk sequence.
func (s *Script) IsCoinbase() bool { return s.Coinbase != nil }

// New builds a Script from a chunk sequence.
func New(chunks ...Chunk) *Script { return &Script{Chunks: chunks} }

// NewCoinbase builds a Script wrapping raw coinbase bytes.
func NewCoinbase(raw []byte) *Script { return &Script{Coinbase: raw} }

// Push appends a chunk and returns the script, for fluent construction.
func (s *Script) Push(c Chunk) *Script {
	s.Chunks = append(s.Chunks, c)
	return s
}

// Serialize encodes the script to its canonical wire bytes.
func (s *Script) Serialize() []byte {
	if s.IsCoinbase() {
		return append([]byte(nil), s.Coinbase...)
	}
	var b []byte
	for _, c := range s.Chunks {
		b = appendChunk(b, c)
	}
	return b
}

func appendChunk(dst []byte, c Chunk) []byte {
	if c.IsOpcode {
		return append(dst, byte(c.Op))
	}
	n := len(c.Data)
	switch {
	case n <= 75:
		dst = append(dst, byte(n))
	case n <= 255:
		dst = append(dst, byte(OP_PUSHDATA1), byte(n))
	case n <= 65535:
		dst = append(dst, byte(OP_PUSHDATA2))
		dst = encoding.AppendU16LE(dst, uint16(n))
	default:
		dst = append(dst, byte(OP_PUSHDATA4))
		dst = encoding.AppendU32LE(dst, uint32(n))
	}
	return append(dst, c.Data...)
}

// Parse decodes a Script from its wire bytes. It never treats the
// input as coinbase data — callers that know they're parsing a
// coinbase input script should use NewCoinbase directly.
func Parse(b []byte) (*Script, error) {
	c := encoding.NewCursor(b)
	var chunks []Chunk
	for c.Remaining() > 0 {
		opByte, err := c.ReadU8()
		if err != nil {
			return nil, err
		}
		op := Opcode(opByte)
		switch {
		case op >= 1 && op <= 75:
			data, err := c.ReadBytes(int(op))
			if err != nil {
				return nil, newErr(ErrTruncated, "truncated direct push")
			}
			chunks = append(chunks, DataChunk(data))
		case op == OP_PUSHDATA1:
			n, err := c.ReadU8()
			if err != nil {
				return nil, err
			}
			data, err := c.ReadBytes(int(n))
			if err != nil {
				return nil, newErr(ErrTruncated, "truncated OP_PUSHDATA1")
			}
			chunks = append(chunks, DataChunk(data))
		case op == OP_PUSHDATA2:
			n, err := c.ReadU16LE()
			if err != nil {
				return nil, err
			}
			data, err := c.ReadBytes(int(n))
			if err != nil {
				return nil, newErr(ErrTruncated, "truncated OP_PUSHDATA2")
			}
			chunks = append(chunks, DataChunk(data))
		case op == OP_PUSHDATA4:
			n, err := c.ReadU32LE()
			if err != nil {
				return nil, err
			}
			data, err := c.ReadBytes(int(n))
			if err != nil {
				return nil, newErr(ErrTruncated, "truncated OP_PUSHDATA4")
			}
			chunks = append(chunks, DataChunk(data))
		case op.Known():
			chunks = append(chunks, OpChunk(op))
		default:
			return nil, newErr(ErrInvalidOpcode, op.String())
		}
	}
	return &Script{Chunks: chunks}, nil
}

// MustParse is the panicking variant of Parse.
func MustParse(b []byte) *Script {
	s, err := Parse(b)
	if err != nil {
		panic(err)
	}
	return s
}
