package script

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ASM renders the script as the space-separated ASM token format from
// spec.md §4.2: opcode atoms by name, "-1" for OP_1NEGATE, "0" for OP_0,
// lowercase hex for any other pushdata.
func (s *Script) ASM() string {
	if s.IsCoinbase() {
		return hex.EncodeToString(s.Coinbase)
	}
	parts := make([]string, 0, len(s.Chunks))
	for _, c := range s.Chunks {
		switch {
		case c.IsOpcode && c.Op == OP_1NEGATE:
			parts = append(parts, "-1")
		case c.IsOpcode && c.Op == OP_0:
			parts = append(parts, "0")
		case c.IsOpcode:
			parts = append(parts, c.Op.String())
		default:
			parts = append(parts, hex.EncodeToString(c.Data))
		}
	}
	return strings.Join(parts, " ")
}

// ParseASM parses the ASM token format back into a Script.
func ParseASM(asm string) (*Script, error) {
	if asm == "" {
		return &Script{}, nil
	}
	var chunks []Chunk
	for _, tok := range strings.Fields(asm) {
		switch {
		case tok == "-1":
			chunks = append(chunks, OpChunk(OP_1NEGATE))
		case tok == "0":
			chunks = append(chunks, OpChunk(OP_0))
		case strings.HasPrefix(tok, "OP_"):
			op, ok := opcodeByName(tok)
			if !ok {
				return nil, newErr(ErrInvalidOpcode, tok)
			}
			chunks = append(chunks, OpChunk(op))
		default:
			data, err := hex.DecodeString(tok)
			if err != nil {
				return nil, newErr(ErrInvalidPushLen, fmt.Sprintf("invalid ASM token %q", tok))
			}
			chunks = append(chunks, DataChunk(data))
		}
	}
	return &Script{Chunks: chunks}, nil
}

var opcodeByNameTable = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		m[name] = op
	}
	return m
}()

func opcodeByName(name string) (Opcode, bool) {
	op, ok := opcodeByNameTable[name]
	return op, ok
}
