package keys

import (
	"math/big"

	"bsv.dev/txlib/crypto"
)

// curveOrderN is the secp256k1 curve order; PrivKey.D must lie in
// [1, curveOrderN-1] per spec.md §3.
var curveOrderN, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

// PrivKey is a secp256k1 private key scalar, spec.md §3.
type PrivKey struct {
	D          [32]byte
	Compressed bool
	Network    Network
}

// NewPrivKey validates d and wraps it as a PrivKey.
func NewPrivKey(d [32]byte, compressed bool, network Network) (*PrivKey, error) {
	v := new(big.Int).SetBytes(d[:])
	if v.Sign() == 0 || v.Cmp(curveOrderN) >= 0 {
		return nil, newErr(ErrInvalidPrivKey, "scalar out of range [1, n-1]")
	}
	return &PrivKey{D: d, Compressed: compressed, Network: network}, nil
}

// PubKey derives the corresponding public key via the given provider.
func (p *PrivKey) PubKey(sp crypto.SignProvider) (*PubKey, error) {
	raw, err := sp.PubKeyFromPriv(p.D[:], p.Compressed)
	if err != nil {
		return nil, err
	}
	return ParsePubKey(raw)
}

// WIF encodes the private key in Wallet Import Format: Base58Check of
// version || D || (0x01 if compressed), per spec.md §6.
func (p *PrivKey) WIF(sp crypto.SignProvider) string {
	payload := make([]byte, 0, 33)
	payload = append(payload, p.D[:]...)
	if p.Compressed {
		payload = append(payload, 0x01)
	}
	return sp.Base58CheckEncode(p.Network.wifVersion(), payload)
}

// ParseWIF decodes a Wallet Import Format string into a PrivKey.
func ParseWIF(sp crypto.SignProvider, wif string) (*PrivKey, error) {
	version, payload, err := sp.Base58CheckDecode(wif)
	if err != nil {
		return nil, newErr(ErrInvalidWIF, err.Error())
	}
	network, ok := networkFromWIFVersion(version)
	if !ok {
		return nil, newErr(ErrInvalidWIF, "unrecognized WIF version byte")
	}
	var compressed bool
	switch len(payload) {
	case 32:
		compressed = false
	case 33:
		if payload[32] != 0x01 {
			return nil, newErr(ErrInvalidWIF, "invalid compression flag byte")
		}
		compressed = true
	default:
		return nil, newErr(ErrInvalidWIF, "invalid WIF payload length")
	}
	var d [32]byte
	copy(d[:], payload[:32])
	return NewPrivKey(d, compressed, network)
}

// MustParseWIF is the panicking variant of ParseWIF.
func MustParseWIF(sp crypto.SignProvider, wif string) *PrivKey {
	p, err := ParseWIF(sp, wif)
	if err != nil {
		panic(err)
	}
	return p
}
