package tx

import (
	"bsv.dev/txlib/internal/encoding"
	"bsv.dev/txlib/script"
)

// DefaultSequence is the default TxIn sequence number.
const DefaultSequence uint32 = 0xFFFFFFFF

// TxIn is one transaction input.
type TxIn struct {
	PrevOutpoint OutPoint
	Script       *script.Script
	Sequence     uint32
}

// NewTxIn builds a TxIn with the default sequence number.
func NewTxIn(prev OutPoint, s *script.Script) *TxIn {
	return &TxIn{PrevOutpoint: prev, Script: s, Sequence: DefaultSequence}
}

// IsCoinbase reports whether this input's outpoint is null.
func (in *TxIn) IsCoinbase() bool { return in.PrevOutpoint.IsNull() }

// Size returns the serialized byte length of this input.
func (in *TxIn) Size() int {
	return len(in.Serialize())
}

// Serialize encodes the input to wire bytes.
func (in *TxIn) Serialize() []byte {
	var b []byte
	b = in.PrevOutpoint.appendTo(b)
	scriptBytes := in.Script.Serialize()
	b = encoding.AppendVarData(b, scriptBytes)
	b = encoding.AppendU32LE(b, in.Sequence)
	return b
}

func parseTxIn(c *encoding.Cursor) (*TxIn, error) {
	prev, err := parseOutPoint(c)
	if err != nil {
		return nil, err
	}
	scriptBytes, err := c.ReadVarData()
	if err != nil {
		return nil, err
	}
	var s *script.Script
	if prev.IsNull() {
		s = script.NewCoinbase(append([]byte(nil), scriptBytes...))
	} else {
		s, err = script.Parse(scriptBytes)
		if err != nil {
			return nil, err
		}
	}
	seq, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}
	return &TxIn{PrevOutpoint: prev, Script: s, Sequence: seq}, nil
}
