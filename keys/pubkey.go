package keys

// PubKey is a secp256k1 public key, serialized compressed (33 bytes) or
// uncompressed (65 bytes), per spec.md §3.
type PubKey struct {
	Bytes      []byte
	Compressed bool
}

// ParsePubKey wraps an already-serialized public key, validating its
// length matches its implied compression form.
func ParsePubKey(b []byte) (*PubKey, error) {
	switch len(b) {
	case 33:
		return &PubKey{Bytes: append([]byte(nil), b...), Compressed: true}, nil
	case 65:
		return &PubKey{Bytes: append([]byte(nil), b...), Compressed: false}, nil
	default:
		return nil, newErr(ErrInvalidPubKey, "public key must be 33 or 65 bytes")
	}
}
