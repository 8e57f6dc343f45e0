package keys

import "bsv.dev/txlib/crypto"

// KeyPair pairs a PrivKey with its matching PubKey, sharing Compressed.
type KeyPair struct {
	Priv *PrivKey
	Pub  *PubKey
}

// NewKeyPair derives a KeyPair from a PrivKey.
func NewKeyPair(sp crypto.SignProvider, priv *PrivKey) (*KeyPair, error) {
	pub, err := priv.PubKey(sp)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Priv: priv, Pub: pub}, nil
}

// Address derives the P2PKH address for this key pair.
func (kp *KeyPair) Address(sp crypto.SignProvider, hp crypto.HashProvider) *Address {
	return AddressFromPubKey(hp, kp.Pub.Bytes, kp.Priv.Network)
}
