// Package crypto wraps the out-of-scope primitives spec.md §1 excludes
// from this library's own implementation — hashing, secp256k1/ECDSA, and
// Base58Check — behind two narrow interfaces, grounded on the teacher's
// own CryptoProvider pattern (clients/go/crypto/provider.go).
package crypto

// HashProvider is the narrow hashing interface the rest of the module
// depends on instead of importing concrete hash packages directly.
type HashProvider interface {
	SHA256(b []byte) [32]byte
	SHA1(b []byte) [20]byte
	RIPEMD160(b []byte) [20]byte
	HMACSHA512(key, msg []byte) [64]byte
	PBKDF2HMACSHA512(password, salt []byte, iter, dkLen int) []byte
}

// Signature is a DER-encoded ECDSA signature.
type Signature []byte

// SignProvider is the narrow secp256k1/ECDSA/Base58Check interface the
// rest of the module depends on.
type SignProvider interface {
	Sign(priv []byte, digest [32]byte) (Signature, error)
	Verify(pub []byte, digest [32]byte, sig Signature) bool
	PubKeyFromPriv(priv []byte, compressed bool) ([]byte, error)
	Base58CheckEncode(version byte, payload []byte) string
	Base58CheckDecode(s string) (version byte, payload []byte, err error)

	// Base58CheckEncodeRaw/Base58CheckDecodeRaw append/verify a 4-byte
	// double-SHA256 checksum without assuming a single leading version
	// byte, since ExtKey's version field is 4 bytes and part of the
	// payload rather than a prefix byte.
	Base58CheckEncodeRaw(payload []byte) string
	Base58CheckDecodeRaw(s string) ([]byte, error)

	// TweakPubKeyAdd computes the serialized compressed public key for
	// pub's curve point plus tweak*G — the EC operation BIP-32 public-only
	// (CKDpub) child derivation needs.
	TweakPubKeyAdd(pub []byte, tweak [32]byte) ([]byte, error)
}

// Provider bundles both interfaces; Std is the only implementation the
// module ships.
type Provider interface {
	HashProvider
	SignProvider
}
