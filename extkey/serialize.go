package extkey

import (
	"bsv.dev/txlib/crypto"
	"bsv.dev/txlib/internal/encoding"
	"bsv.dev/txlib/keys"
)

// Serialize encodes k to its 78-byte BIP-32 wire record (spec.md §6). All
// multi-byte integers in this record are big-endian, unlike the rest of
// the module's wire formats.
func (k *ExtKey) Serialize() []byte {
	privVersion, pubVersion := k.versions()
	version := pubVersion
	if k.IsPrivate() {
		version = privVersion
	}

	b := make([]byte, 0, 78)
	b = encoding.AppendU32BE(b, version)
	b = append(b, k.Depth)
	b = append(b, k.Fingerprint[:]...)
	b = encoding.AppendU32BE(b, k.ChildIndex)
	b = append(b, k.ChainCode[:]...)
	if k.IsPrivate() {
		b = append(b, 0x00)
		b = append(b, k.Priv.D[:]...)
	} else {
		b = append(b, k.Pub.Bytes...)
	}
	return b
}

// String Base58Check-encodes the serialized record.
func (k *ExtKey) String(sp crypto.SignProvider) string {
	return sp.Base58CheckEncodeRaw(k.Serialize())
}

// Parse decodes an ExtKey from its raw 78-byte wire record.
func Parse(sp crypto.SignProvider, b []byte) (*ExtKey, error) {
	if len(b) != 78 {
		return nil, newErr(ErrInvalidXprv, "extended key record must be 78 bytes")
	}
	c := encoding.NewCursor(b)
	version, err := c.ReadU32BE()
	if err != nil {
		return nil, err
	}
	network, isPriv, ok := classifyVersion(version)
	if !ok {
		return nil, newErr(ErrInvalidXprv, "unrecognized extended key version")
	}
	depth, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	fpBytes, err := c.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	childIndex, err := c.ReadU32BE()
	if err != nil {
		return nil, err
	}
	chainCode, err := c.ReadBytes32()
	if err != nil {
		return nil, err
	}
	keyMaterial, err := c.ReadBytes(33)
	if err != nil {
		return nil, err
	}

	k := &ExtKey{Network: network, Depth: depth, ChildIndex: childIndex, ChainCode: chainCode}
	copy(k.Fingerprint[:], fpBytes)

	if isPriv {
		if keyMaterial[0] != 0x00 {
			return nil, newErr(ErrInvalidXprv, "private key material must be prefixed with 0x00")
		}
		var d [32]byte
		copy(d[:], keyMaterial[1:])
		priv, err := keys.NewPrivKey(d, true, network)
		if err != nil {
			return nil, newErr(ErrInvalidXprv, err.Error())
		}
		pub, err := priv.PubKey(sp)
		if err != nil {
			return nil, err
		}
		k.Priv = priv
		k.Pub = pub
	} else {
		pub, err := keys.ParsePubKey(keyMaterial)
		if err != nil {
			return nil, newErr(ErrInvalidXpub, err.Error())
		}
		k.Pub = pub
	}
	return k, nil
}

// ParseString decodes a Base58Check-encoded extended key string.
func ParseString(sp crypto.SignProvider, s string) (*ExtKey, error) {
	raw, err := sp.Base58CheckDecodeRaw(s)
	if err != nil {
		return nil, newErr(ErrInvalidXprv, err.Error())
	}
	return Parse(sp, raw)
}

func classifyVersion(version uint32) (network keys.Network, isPrivate bool, ok bool) {
	switch version {
	case VersionXprv:
		return keys.Main, true, true
	case VersionXpub:
		return keys.Main, false, true
	case VersionTprv:
		return keys.Test, true, true
	case VersionTpub:
		return keys.Test, false, true
	default:
		return 0, false, false
	}
}
