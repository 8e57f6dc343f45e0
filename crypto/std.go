package crypto

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // Bitcoin's HASH160 requires this exact primitive.
)

// Std is the one production implementation of Provider this module ships,
// grounded on the teacher's DevStdCryptoProvider pattern (a single struct
// delegating each method to a real library) but wired to production
// libraries rather than a dev-only stub: decred/dcrd for secp256k1/ECDSA,
// btcutil/base58 for Base58Check, golang.org/x/crypto for RIPEMD160 and
// PBKDF2, and the standard library for SHA-256/SHA-1/HMAC-SHA512.
type Std struct{}

var _ Provider = Std{}

// SHA256 returns the single SHA-256 digest of b.
func (Std) SHA256(b []byte) [32]byte { return sha256.Sum256(b) }

// SHA1 returns the SHA-1 digest of b.
func (Std) SHA1(b []byte) [20]byte { return sha1.Sum(b) }

// RIPEMD160 returns the RIPEMD160 digest of b.
func (Std) RIPEMD160(b []byte) [20]byte {
	h := ripemd160.New()
	h.Write(b)
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// HMACSHA512 returns HMAC-SHA512(key, msg).
func (Std) HMACSHA512(key, msg []byte) [64]byte {
	h := hmac.New(sha512.New, key)
	h.Write(msg)
	var out [64]byte
	copy(out[:], h.Sum(nil))
	return out
}

// PBKDF2HMACSHA512 derives dkLen bytes via PBKDF2-HMAC-SHA512.
func (Std) PBKDF2HMACSHA512(password, salt []byte, iter, dkLen int) []byte {
	return pbkdf2.Key(password, salt, iter, dkLen, sha512.New)
}

// Sign produces a DER-encoded ECDSA signature over digest using priv (a
// 32-byte secp256k1 scalar). digest is signed raw, not re-hashed, per
// spec.md §4.3.
func (Std) Sign(priv []byte, digest [32]byte) (Signature, error) {
	if len(priv) != 32 {
		return nil, fmt.Errorf("crypto: private key must be 32 bytes")
	}
	key := secp256k1.PrivKeyFromBytes(priv)
	sig := ecdsa.Sign(key, digest[:])
	return Signature(sig.Serialize()), nil
}

// Verify reports whether sig (DER-encoded) is a valid secp256k1 ECDSA
// signature over digest by pub (a 33- or 65-byte serialized public key).
func (Std) Verify(pub []byte, digest [32]byte, sig Signature) bool {
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return false
	}
	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return parsed.Verify(digest[:], key)
}

// PubKeyFromPriv derives the serialized public key for a 32-byte
// secp256k1 private key scalar.
func (Std) PubKeyFromPriv(priv []byte, compressed bool) ([]byte, error) {
	if len(priv) != 32 {
		return nil, fmt.Errorf("crypto: private key must be 32 bytes")
	}
	key := secp256k1.PrivKeyFromBytes(priv)
	pub := key.PubKey()
	if compressed {
		return pub.SerializeCompressed(), nil
	}
	return pub.SerializeUncompressed(), nil
}

// Base58CheckEncodeRaw appends a 4-byte double-SHA256 checksum to payload
// and Base58-encodes the result, without assuming a leading version byte.
func (s Std) Base58CheckEncodeRaw(payload []byte) string {
	sum1 := sha256.Sum256(payload)
	sum2 := sha256.Sum256(sum1[:])
	full := append(append([]byte(nil), payload...), sum2[:4]...)
	return base58.Encode(full)
}

// Base58CheckDecodeRaw reverses Base58CheckEncodeRaw, verifying the
// checksum.
func (s Std) Base58CheckDecodeRaw(str string) ([]byte, error) {
	full := base58.Decode(str)
	if len(full) < 4 {
		return nil, fmt.Errorf("crypto: base58 payload too short")
	}
	payload, checksum := full[:len(full)-4], full[len(full)-4:]
	sum1 := sha256.Sum256(payload)
	sum2 := sha256.Sum256(sum1[:])
	if !hmac.Equal(sum2[:4], checksum) {
		return nil, fmt.Errorf("crypto: base58 checksum mismatch")
	}
	return payload, nil
}

// TweakPubKeyAdd computes pub + tweak*G and returns the result as a
// compressed serialized public key, via Jacobian point addition.
func (Std) TweakPubKeyAdd(pub []byte, tweak [32]byte) ([]byte, error) {
	parentKey, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, err
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetBytes(&tweak); overflow != 0 {
		return nil, fmt.Errorf("crypto: tweak out of range")
	}

	var tweakPoint secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&scalar, &tweakPoint)

	var parentPoint secp256k1.JacobianPoint
	parentKey.AsJacobian(&parentPoint)

	var sum secp256k1.JacobianPoint
	secp256k1.AddNonConst(&parentPoint, &tweakPoint, &sum)
	sum.ToAffine()

	childKey := secp256k1.NewPublicKey(&sum.X, &sum.Y)
	return childKey.SerializeCompressed(), nil
}

// Base58CheckEncode encodes version||payload with a 4-byte double-SHA256
// checksum, Base58-encoded.
func (Std) Base58CheckEncode(version byte, payload []byte) string {
	return base58.CheckEncode(payload, version)
}

// Base58CheckDecode reverses Base58CheckEncode, verifying the checksum.
func (Std) Base58CheckDecode(s string) (byte, []byte, error) {
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		return 0, nil, err
	}
	return version, payload, nil
}
