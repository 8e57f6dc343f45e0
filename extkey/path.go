package extkey

import (
	"strconv"
	"strings"

	"bsv.dev/txlib/crypto"
)

// Path is a parsed BIP-32 derivation path: "m|M (\"/\" number \"'\"?)+".
// PublicOnly marks a path beginning with "M", meaning derivation must
// stay on public keys throughout (non-hardened only).
type Path struct {
	PublicOnly bool
	Indices    []uint32
}

// ParsePath parses a derivation path string such as "m/44'/0'/0'/0/99".
func ParsePath(s string) (Path, error) {
	segments := strings.Split(s, "/")
	if len(segments) == 0 {
		return Path{}, newErr(ErrInvalidPath, "empty path")
	}
	root := segments[0]
	var p Path
	switch root {
	case "m":
		p.PublicOnly = false
	case "M":
		p.PublicOnly = true
	default:
		return Path{}, newErr(ErrInvalidPath, "path must start with 'm' or 'M'")
	}

	for _, seg := range segments[1:] {
		if seg == "" {
			return Path{}, newErr(ErrInvalidPath, "empty path segment")
		}
		hardened := strings.HasSuffix(seg, "'")
		numStr := seg
		if hardened {
			numStr = seg[:len(seg)-1]
		}
		n, err := strconv.ParseUint(numStr, 10, 32)
		if err != nil || n >= uint64(HardenedOffset) {
			return Path{}, newErr(ErrInvalidPath, "invalid path index "+seg)
		}
		idx := uint32(n)
		if hardened {
			idx += HardenedOffset
		}
		p.Indices = append(p.Indices, idx)
	}
	return p, nil
}

// Derive walks k through every index in p, in order. If p.PublicOnly, k
// is reduced to its public-only form first (via ToPublic) so no hardened
// step can accidentally succeed using a private key the caller didn't
// intend to expose.
func (p Path) Derive(hp crypto.HashProvider, sp crypto.SignProvider, k *ExtKey) (*ExtKey, error) {
	cur := k
	if p.PublicOnly {
		cur = cur.ToPublic()
	}
	for _, idx := range p.Indices {
		next, err := cur.Derive(hp, sp, idx)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Derive parses path and derives it from k in one call.
func Derive(hp crypto.HashProvider, sp crypto.SignProvider, k *ExtKey, path string) (*ExtKey, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return p.Derive(hp, sp, k)
}
