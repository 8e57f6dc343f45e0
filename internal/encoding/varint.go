package encoding

// EncodeVarInt encodes n using Bitcoin's VarInt rules and returns the
// encoded bytes. See AppendVarInt for the append-style variant.
func EncodeVarInt(n uint64) []byte {
	return AppendVarInt(nil, n)
}

// AppendVarInt encodes n as a VarInt and appends it to dst.
func AppendVarInt(dst []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(dst, byte(n))
	case n <= 0xffff:
		dst = append(dst, 0xfd)
		return AppendU16LE(dst, uint16(n))
	case n <= 0xffff_ffff:
		dst = append(dst, 0xfe)
		return AppendU32LE(dst, uint32(n))
	default:
		dst = append(dst, 0xff)
		return AppendU64LE(dst, n)
	}
}

// DecodeVarInt decodes one VarInt from the front of buf and returns the
// value plus the number of bytes consumed. Non-minimal encodings are
// rejected with ErrInvalidVarInt.
func DecodeVarInt(buf []byte) (uint64, int, error) {
	c := NewCursor(buf)
	v, err := c.ReadVarInt()
	if err != nil {
		return 0, 0, err
	}
	return v, c.off, nil
}

// rewind resets the cursor back to a previously recorded offset, for
// rejecting a non-minimal VarInt after having already consumed its
// trailing width bytes.
func (c *Cursor) rewind(off int) {
	c.left += c.off - off
	c.off = off
}

func (c *Cursor) readVarIntTagged() (uint64, error) {
	start := c.off
	tag, err := c.ReadU8()
	if err != nil {
		return 0, err
	}
	switch {
	case tag < 0xfd:
		return uint64(tag), nil
	case tag == 0xfd:
		v, err := c.ReadU16LE()
		if err != nil {
			return 0, err
		}
		if v < 0xfd {
			c.rewind(start)
			return 0, newErr(ErrInvalidVarInt, "non-minimal VarInt (0xfd)")
		}
		return uint64(v), nil
	case tag == 0xfe:
		v, err := c.ReadU32LE()
		if err != nil {
			return 0, err
		}
		if v <= 0xffff {
			c.rewind(start)
			return 0, newErr(ErrInvalidVarInt, "non-minimal VarInt (0xfe)")
		}
		return uint64(v), nil
	default: // tag == 0xff
		v, err := c.ReadU64LE()
		if err != nil {
			return 0, err
		}
		if v <= 0xffff_ffff {
			c.rewind(start)
			return 0, newErr(ErrInvalidVarInt, "non-minimal VarInt (0xff)")
		}
		return v, nil
	}
}

// VarIntLen returns the number of bytes EncodeVarInt(n) would produce.
func VarIntLen(n uint64) int {
	switch {
	case n < 0xfd:
		return 1
	case n <= 0xffff:
		return 3
	case n <= 0xffff_ffff:
		return 5
	default:
		return 9
	}
}
