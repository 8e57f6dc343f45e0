package tx

import (
	"encoding/hex"

	"bsv.dev/txlib/internal/encoding"
)

// HeaderSize is the fixed wire size of a BlockHeader.
const HeaderSize = 80

// BlockHeader is the fixed 80-byte block header.
type BlockHeader struct {
	Version    uint32
	PrevHash   [32]byte
	MerkleRoot [32]byte
	Time       uint32
	Bits       uint32
	Nonce      uint32
}

// Serialize encodes the header to its exact 80-byte wire form.
func (h *BlockHeader) Serialize() []byte {
	b := make([]byte, 0, HeaderSize)
	b = encoding.AppendU32LE(b, h.Version)
	b = append(b, h.PrevHash[:]...)
	b = append(b, h.MerkleRoot[:]...)
	b = encoding.AppendU32LE(b, h.Time)
	b = encoding.AppendU32LE(b, h.Bits)
	b = encoding.AppendU32LE(b, h.Nonce)
	return b
}

// Hash returns SHA256(SHA256(serialize(header))).
func (h *BlockHeader) Hash() [32]byte {
	return doubleSHA256(h.Serialize())
}

// ParseBlockHeader decodes a BlockHeader from its exact 80-byte wire form.
func ParseBlockHeader(b []byte) (*BlockHeader, error) {
	if len(b) != HeaderSize {
		return nil, newErr(ErrInvalidHeader, "block header must be exactly 80 bytes")
	}
	c := encoding.NewCursor(b)
	var h BlockHeader
	var err error
	if h.Version, err = c.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.PrevHash, err = c.ReadBytes32(); err != nil {
		return nil, err
	}
	if h.MerkleRoot, err = c.ReadBytes32(); err != nil {
		return nil, err
	}
	if h.Time, err = c.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.Bits, err = c.ReadU32LE(); err != nil {
		return nil, err
	}
	if h.Nonce, err = c.ReadU32LE(); err != nil {
		return nil, err
	}
	return &h, nil
}

// Block is a block header plus its transactions.
type Block struct {
	Header       BlockHeader
	Transactions []*Tx
}

// Serialize encodes the block to wire bytes.
func (b *Block) Serialize() []byte {
	out := append([]byte(nil), b.Header.Serialize()...)
	out = encoding.AppendVarInt(out, uint64(len(b.Transactions)))
	for _, t := range b.Transactions {
		out = append(out, t.Serialize()...)
	}
	return out
}

// ParseBlock decodes a Block from its wire bytes.
func ParseBlock(b []byte) (*Block, error) {
	if len(b) < HeaderSize {
		return nil, newErr(ErrInvalidHeader, "truncated block header")
	}
	header, err := ParseBlockHeader(b[:HeaderSize])
	if err != nil {
		return nil, err
	}
	c := encoding.NewCursor(b[HeaderSize:])
	n, err := c.ReadVarInt()
	if err != nil {
		return nil, err
	}
	txns := make([]*Tx, 0, n)
	for i := uint64(0); i < n; i++ {
		t, err := parseTxFrom(c)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return &Block{Header: *header, Transactions: txns}, nil
}

// CalcMerkleRoot computes the block's merkle root from its transactions
// per spec.md §3.
func (b *Block) CalcMerkleRoot() ([32]byte, error) {
	ids := make([][32]byte, len(b.Transactions))
	for i, t := range b.Transactions {
		ids[i] = t.Hash()
	}
	return MerkleRoot(ids)
}

// TXIDHex is a small convenience for tests and callers that want the
// reversed-hex display form of a raw hash.
func TXIDHex(h [32]byte) string {
	return hex.EncodeToString(encoding.ReverseBytes(h[:]))
}
