package keys

import "bsv.dev/txlib/crypto"

// Address is a P2PKH address: RIPEMD160(SHA256(pubkey)) under a version
// byte selected by Network, per spec.md §3/§6.
type Address struct {
	Network Network
	Hash    [20]byte
}

// AddressFromPubKey derives the address for a serialized public key.
func AddressFromPubKey(hp crypto.HashProvider, pubKeyBytes []byte, network Network) *Address {
	sha := hp.SHA256(pubKeyBytes)
	hash := hp.RIPEMD160(sha[:])
	return &Address{Network: network, Hash: hash}
}

// String encodes the address as Base58Check(version || hash).
func (a *Address) String(sp crypto.SignProvider) string {
	return sp.Base58CheckEncode(a.Network.addressVersion(), a.Hash[:])
}

// ParseAddress decodes a Base58Check address string.
func ParseAddress(sp crypto.SignProvider, s string) (*Address, error) {
	version, payload, err := sp.Base58CheckDecode(s)
	if err != nil {
		return nil, newErr(ErrInvalidAddress, err.Error())
	}
	if len(payload) != 20 {
		return nil, newErr(ErrInvalidAddress, "payload must be 20 bytes")
	}
	network, ok := networkFromAddressVersion(version)
	if !ok {
		return nil, newErr(ErrInvalidAddress, "unrecognized address version byte")
	}
	var hash [20]byte
	copy(hash[:], payload)
	return &Address{Network: network, Hash: hash}, nil
}
