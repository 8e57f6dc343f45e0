package tx

import (
	"bsv.dev/txlib/internal/encoding"
	"bsv.dev/txlib/script"
)

// TxOut is one transaction output.
type TxOut struct {
	Satoshis uint64
	Script   *script.Script
}

// NewTxOut builds a TxOut.
func NewTxOut(satoshis uint64, s *script.Script) *TxOut {
	return &TxOut{Satoshis: satoshis, Script: s}
}

// Size returns the serialized byte length of this output.
func (o *TxOut) Size() int { return len(o.Serialize()) }

// Serialize encodes the output to wire bytes.
func (o *TxOut) Serialize() []byte {
	var b []byte
	b = encoding.AppendU64LE(b, o.Satoshis)
	b = encoding.AppendVarData(b, o.Script.Serialize())
	return b
}

// IsData classifies this output per spec.md §4.5's fee-calculation rule:
// an output is "data" iff its script begins [OP_FALSE, OP_RETURN, ...].
func (o *TxOut) IsData() bool {
	c := o.Script.Chunks
	if len(c) < 2 {
		return false
	}
	return c[0].IsOpcode && c[0].Op == script.OP_FALSE &&
		c[1].IsOpcode && c[1].Op == script.OP_RETURN
}

func parseTxOut(c *encoding.Cursor) (*TxOut, error) {
	satoshis, err := c.ReadU64LE()
	if err != nil {
		return nil, err
	}
	scriptBytes, err := c.ReadVarData()
	if err != nil {
		return nil, err
	}
	s, err := script.Parse(scriptBytes)
	if err != nil {
		return nil, err
	}
	return &TxOut{Satoshis: satoshis, Script: s}, nil
}
