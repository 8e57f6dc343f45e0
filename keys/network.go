// Package keys implements PrivKey, PubKey, KeyPair, and Address per
// spec.md §3/§6: the WIF and Base58Check address shells around
// secp256k1 keys, with Network carried as an explicit value on every
// key/address rather than as a package global (spec.md §9 REDESIGN
// FLAGS).
package keys

// Network selects which version bytes a key or address encodes under.
type Network int

const (
	Main Network = iota
	Test
)

const (
	addressVersionMain byte = 0x00
	addressVersionTest byte = 0x6f
	wifVersionMain     byte = 0x80
	wifVersionTest     byte = 0xef
)

func (n Network) addressVersion() byte {
	if n == Test {
		return addressVersionTest
	}
	return addressVersionMain
}

func (n Network) wifVersion() byte {
	if n == Test {
		return wifVersionTest
	}
	return wifVersionMain
}

func networkFromAddressVersion(v byte) (Network, bool) {
	switch v {
	case addressVersionMain:
		return Main, true
	case addressVersionTest:
		return Test, true
	default:
		return 0, false
	}
}

func networkFromWIFVersion(v byte) (Network, bool) {
	switch v {
	case wifVersionMain:
		return Main, true
	case wifVersionTest:
		return Test, true
	default:
		return 0, false
	}
}
