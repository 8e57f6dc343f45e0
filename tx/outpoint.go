package tx

import (
	"encoding/hex"
	"math"

	"bsv.dev/txlib/internal/encoding"
)

// OutPoint identifies a specific transaction output. The null outpoint
// (Hash all-zero, Vout 0xFFFFFFFF) identifies a coinbase input.
type OutPoint struct {
	Hash [32]byte
	Vout uint32
}

// NullVout is the coinbase sentinel vout value.
const NullVout = math.MaxUint32

// IsNull reports whether this is the coinbase outpoint.
func (o OutPoint) IsNull() bool {
	return o.Hash == [32]byte{} && o.Vout == NullVout
}

// TXID returns the byte-reversed hex form of Hash.
func (o OutPoint) TXID() string {
	return hex.EncodeToString(encoding.ReverseBytes(o.Hash[:]))
}

func (o OutPoint) appendTo(dst []byte) []byte {
	dst = append(dst, o.Hash[:]...)
	return encoding.AppendU32LE(dst, o.Vout)
}

func parseOutPoint(c *encoding.Cursor) (OutPoint, error) {
	var o OutPoint
	hash, err := c.ReadBytes32()
	if err != nil {
		return o, err
	}
	vout, err := c.ReadU32LE()
	if err != nil {
		return o, err
	}
	o.Hash = hash
	o.Vout = vout
	return o, nil
}
