package contract

import (
	"bsv.dev/txlib/crypto"
	"bsv.dev/txlib/sighash"
)

// Params is a contract's parameter bag — deliberately untyped at the
// map level (spec.md §4.5/§7) with typed accessors that fail with
// ParamNotFound on a missing key rather than panicking.
type Params map[string]any

// GetBytes returns the []byte value stored at key.
func (p Params) GetBytes(key string) ([]byte, error) {
	v, ok := p[key]
	if !ok {
		return nil, paramNotFound(key)
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, paramType(key, "[]byte")
	}
	return b, nil
}

// GetInt64 returns the int64 value stored at key.
func (p Params) GetInt64(key string) (int64, error) {
	v, ok := p[key]
	if !ok {
		return 0, paramNotFound(key)
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	default:
		return 0, paramType(key, "int64")
	}
}

// GetUint64 returns the uint64 value stored at key.
func (p Params) GetUint64(key string) (uint64, error) {
	n, err := p.GetInt64(key)
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// GetBool returns the bool value stored at key, defaulting to false if
// absent.
func (p Params) GetBool(key string) bool {
	v, ok := p[key]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// GetBytesSlice returns the [][]byte value stored at key (e.g. a list
// of pubkeys for P2MS).
func (p Params) GetBytesSlice(key string) ([][]byte, error) {
	v, ok := p[key]
	if !ok {
		return nil, paramNotFound(key)
	}
	b, ok := v.([][]byte)
	if !ok {
		return nil, paramType(key, "[][]byte")
	}
	return b, nil
}

// GetProvider returns the crypto.Provider stored at key.
func (p Params) GetProvider(key string) (crypto.Provider, error) {
	v, ok := p[key]
	if !ok {
		return nil, paramNotFound(key)
	}
	pr, ok := v.(crypto.Provider)
	if !ok {
		return nil, paramType(key, "crypto.Provider")
	}
	return pr, nil
}

// GetSighashType returns the sighash.Type stored at key, defaulting to
// def when the key is absent.
func (p Params) GetSighashType(key string, def sighash.Type) sighash.Type {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case sighash.Type:
		return t
	case byte:
		return sighash.Type(t)
	case int:
		return sighash.Type(t)
	default:
		return def
	}
}
