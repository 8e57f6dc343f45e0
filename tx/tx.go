package tx

import (
	"encoding/hex"

	"bsv.dev/txlib/internal/encoding"
)

// Tx is a Bitcoin transaction. It exclusively owns its Inputs and Outputs
// (spec.md §3 ownership rules) — callers that need an input or output to
// outlive the Tx should copy it.
type Tx struct {
	Version  uint32
	Inputs   []*TxIn
	Outputs  []*TxOut
	LockTime uint32
}

// New builds a Tx from the given version, inputs, outputs and lock time.
func New(version uint32, inputs []*TxIn, outputs []*TxOut, lockTime uint32) *Tx {
	return &Tx{Version: version, Inputs: inputs, Outputs: outputs, LockTime: lockTime}
}

// IsCoinbase reports whether tx has exactly one input and that input is
// a coinbase input.
func (t *Tx) IsCoinbase() bool {
	return len(t.Inputs) == 1 && t.Inputs[0].IsCoinbase()
}

// Serialize encodes the transaction to wire bytes.
func (t *Tx) Serialize() []byte {
	var b []byte
	b = encoding.AppendU32LE(b, t.Version)
	b = encoding.AppendVarInt(b, uint64(len(t.Inputs)))
	for _, in := range t.Inputs {
		b = append(b, in.Serialize()...)
	}
	b = encoding.AppendVarInt(b, uint64(len(t.Outputs)))
	for _, out := range t.Outputs {
		b = append(b, out.Serialize()...)
	}
	b = encoding.AppendU32LE(b, t.LockTime)
	return b
}

// Hash returns SHA256(SHA256(serialize(tx))), in internal (not
// byte-reversed) byte order.
func (t *Tx) Hash() [32]byte {
	return doubleSHA256(t.Serialize())
}

// TXID returns the byte-reversed hex form of Hash — the conventional
// human-facing transaction id.
func (t *Tx) TXID() string {
	h := t.Hash()
	return hex.EncodeToString(encoding.ReverseBytes(h[:]))
}

// Size returns the serialized byte length of the transaction.
func (t *Tx) Size() int { return len(t.Serialize()) }

// Parse decodes a Tx from its wire bytes.
func Parse(b []byte) (*Tx, error) {
	return parseTxFrom(encoding.NewCursor(b))
}

func parseTxFrom(c *encoding.Cursor) (*Tx, error) {
	version, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}
	inputs, err := encoding.ReadVarItems(c, parseTxIn)
	if err != nil {
		return nil, err
	}
	outputs, err := encoding.ReadVarItems(c, parseTxOut)
	if err != nil {
		return nil, err
	}
	lockTime, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}
	return &Tx{Version: version, Inputs: inputs, Outputs: outputs, LockTime: lockTime}, nil
}

// MustParse is the panicking variant of Parse.
func MustParse(b []byte) *Tx {
	t, err := Parse(b)
	if err != nil {
		panic(err)
	}
	return t
}
