// Package extkey implements BIP-32 hierarchical deterministic key
// derivation: the 78-byte extended key wire record, Base58Check framing,
// master-key generation from a seed, and child derivation (both private
// and public-only), per spec.md §3/§6.
package extkey

import (
	"math/big"

	"bsv.dev/txlib/crypto"
	"bsv.dev/txlib/internal/encoding"
	"bsv.dev/txlib/keys"
)

// HardenedOffset is added to a child index to mark it hardened.
const HardenedOffset uint32 = 1 << 31

// Version bytes for the four ExtKey flavors (spec.md §6).
const (
	VersionXprv uint32 = 0x0488ADE4
	VersionXpub uint32 = 0x0488B21E
	VersionTprv uint32 = 0x04358394
	VersionTpub uint32 = 0x043587CF
)

var curveOrderN, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

// ExtKey is a BIP-32 extended key: either private (carrying Priv) or
// public-only (Priv is nil).
type ExtKey struct {
	Network     keys.Network
	Depth       byte
	Fingerprint [4]byte
	ChildIndex  uint32
	ChainCode   [32]byte
	Priv        *keys.PrivKey
	Pub         *keys.PubKey
}

// IsPrivate reports whether this key can derive hardened children and
// produce signatures.
func (k *ExtKey) IsPrivate() bool { return k.Priv != nil }

func (k *ExtKey) versions() (priv, pub uint32) {
	if k.Network == keys.Test {
		return VersionTprv, VersionTpub
	}
	return VersionXprv, VersionXpub
}

// NewMaster derives the master extended key from a BIP-39 seed, per
// spec.md §6: I = HMAC-SHA512(key="Bitcoin seed", data=seed); IL is the
// master private key, IR the master chain code.
func NewMaster(hp crypto.HashProvider, sp crypto.SignProvider, seed []byte, network keys.Network) (*ExtKey, error) {
	i := hp.HMACSHA512([]byte("Bitcoin seed"), seed)
	var il [32]byte
	copy(il[:], i[:32])
	priv, err := keys.NewPrivKey(il, true, network)
	if err != nil {
		return nil, newErr(ErrInvalidSeed, "seed produced an invalid master key, try another seed")
	}
	pub, err := priv.PubKey(sp)
	if err != nil {
		return nil, err
	}
	var chainCode [32]byte
	copy(chainCode[:], i[32:])
	return &ExtKey{Network: network, ChainCode: chainCode, Priv: priv, Pub: pub}, nil
}

// ToPublic returns the public-only form of k (Priv stripped).
func (k *ExtKey) ToPublic() *ExtKey {
	return &ExtKey{
		Network:     k.Network,
		Depth:       k.Depth,
		Fingerprint: k.Fingerprint,
		ChildIndex:  k.ChildIndex,
		ChainCode:   k.ChainCode,
		Pub:         k.Pub,
	}
}

// Derive computes the child extended key at the given index. Hardened
// children (index >= HardenedOffset) require k to be private.
func (k *ExtKey) Derive(hp crypto.HashProvider, sp crypto.SignProvider, index uint32) (*ExtKey, error) {
	var data []byte
	hardened := index >= HardenedOffset
	if hardened {
		if k.Priv == nil {
			return nil, newErr(ErrHardenedFromPub, "cannot derive a hardened child from a public-only key")
		}
		data = append(data, 0x00)
		data = append(data, k.Priv.D[:]...)
	} else {
		data = append(data, k.Pub.Bytes...)
	}
	data = encoding.AppendU32BE(data, index)

	i := hp.HMACSHA512(k.ChainCode[:], data)
	var il [32]byte
	copy(il[:], i[:32])
	var childChainCode [32]byte
	copy(childChainCode[:], i[32:])

	fp := fingerprint(hp, k.Pub.Bytes)

	child := &ExtKey{
		Network:     k.Network,
		Depth:       k.Depth + 1,
		Fingerprint: fp,
		ChildIndex:  index,
		ChainCode:   childChainCode,
	}

	if k.Priv != nil {
		ilNum := new(big.Int).SetBytes(il[:])
		if ilNum.Cmp(curveOrderN) >= 0 {
			return nil, newErr(ErrInvalidSeed, "derived IL is out of range, try the next index")
		}
		childScalar := new(big.Int).Add(ilNum, new(big.Int).SetBytes(k.Priv.D[:]))
		childScalar.Mod(childScalar, curveOrderN)
		if childScalar.Sign() == 0 {
			return nil, newErr(ErrInvalidSeed, "derived child key is zero, try the next index")
		}
		var d [32]byte
		childScalar.FillBytes(d[:])
		priv, err := keys.NewPrivKey(d, true, k.Network)
		if err != nil {
			return nil, err
		}
		pub, err := priv.PubKey(sp)
		if err != nil {
			return nil, err
		}
		child.Priv = priv
		child.Pub = pub
		return child, nil
	}

	childPubBytes, err := sp.TweakPubKeyAdd(k.Pub.Bytes, il)
	if err != nil {
		return nil, newErr(ErrInvalidSeed, "derived child public key is invalid, try the next index")
	}
	pub, err := keys.ParsePubKey(childPubBytes)
	if err != nil {
		return nil, err
	}
	child.Pub = pub
	return child, nil
}

func fingerprint(hp crypto.HashProvider, pubKeyBytes []byte) [4]byte {
	sha := hp.SHA256(pubKeyBytes)
	ripe := hp.RIPEMD160(sha[:])
	var fp [4]byte
	copy(fp[:], ripe[:4])
	return fp
}
