// Package tx implements the Bitcoin transaction and block data model:
// OutPoint, TxIn, TxOut, Tx, BlockHeader, Block, and MerkleProof, with
// their byte-exact wire codecs (spec.md §3, §6).
package tx

import "crypto/sha256"

// doubleSHA256 computes SHA256(SHA256(b)), the hash Bitcoin uses for
// transaction and block identifiers. Hashing primitives are out of scope
// per spec.md §1 as from-scratch implementations, but the stdlib
// implementation is what every codec in this package calls directly,
// the same way the teacher's own merkle/tx code calls its own sha3_256
// helper directly rather than through an injected provider.
func doubleSHA256(b []byte) [32]byte {
	h1 := sha256.Sum256(b)
	return sha256.Sum256(h1[:])
}

func reversed32(b [32]byte) [32]byte {
	var out [32]byte
	for i := range b {
		out[31-i] = b[i]
	}
	return out
}
