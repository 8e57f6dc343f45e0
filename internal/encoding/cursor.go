package encoding

import "encoding/binary"

// Cursor is a forward-only reader over a byte slice, shared by every
// codec in the module so parse errors are reported uniformly. Unlike a
// raw index into a slice, it tracks how many bytes are left to read as
// a running count (updated on each advance) rather than recomputing
// len(buf)-off every call.
type Cursor struct {
	buf  []byte
	off  int
	left int
}

// NewCursor creates a Cursor reading from b starting at offset 0.
func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b, left: len(b)}
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int { return c.off }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return c.left }

// Rest returns every unread byte without advancing the cursor.
func (c *Cursor) Rest() []byte { return c.buf[c.off:] }

// advance consumes and returns the next n bytes, or fails if fewer than
// n remain.
func (c *Cursor) advance(n int) ([]byte, error) {
	if n < 0 || n > c.left {
		return nil, newErr(ErrTruncated, "unexpected end of input")
	}
	out := c.buf[c.off : c.off+n]
	c.off += n
	c.left -= n
	return out, nil
}

func (c *Cursor) readExact(n int) ([]byte, error) { return c.advance(n) }

// ReadU8 reads one byte.
func (c *Cursor) ReadU8() (byte, error) {
	b, err := c.advance(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// uintLE reads an n-byte little-endian unsigned integer by folding the
// bytes in from the top, one shift at a time, rather than delegating to
// a fixed-width binary.LittleEndian accessor per field width.
func (c *Cursor) uintLE(n int) (uint64, error) {
	b, err := c.advance(n)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// uintBE is uintLE's big-endian counterpart, used only by BIP-32's
// ser32 fields.
func (c *Cursor) uintBE(n int) (uint64, error) {
	b, err := c.advance(n)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, by := range b {
		v = v<<8 | uint64(by)
	}
	return v, nil
}

// ReadU16LE reads a little-endian uint16.
func (c *Cursor) ReadU16LE() (uint16, error) {
	v, err := c.uintLE(2)
	return uint16(v), err
}

// ReadU32LE reads a little-endian uint32.
func (c *Cursor) ReadU32LE() (uint32, error) {
	v, err := c.uintLE(4)
	return uint32(v), err
}

// ReadU64LE reads a little-endian uint64.
func (c *Cursor) ReadU64LE() (uint64, error) {
	return c.uintLE(8)
}

// ReadBytes reads n raw bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	return c.advance(n)
}

// ReadBytes32 reads exactly 32 bytes into a fixed array.
func (c *Cursor) ReadBytes32() ([32]byte, error) {
	var out [32]byte
	b, err := c.advance(32)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// ReadVarInt reads one VarInt.
func (c *Cursor) ReadVarInt() (uint64, error) {
	return c.readVarIntTagged()
}

// ReadVarData reads a VarInt-prefixed byte slice (spec.md §4.1 parse_data).
func (c *Cursor) ReadVarData() ([]byte, error) {
	n, err := c.ReadVarInt()
	if err != nil {
		return nil, err
	}
	return c.ReadBytes(int(n))
}

// ReadU32BE reads a big-endian uint32 (BIP-32's ser32 form).
func (c *Cursor) ReadU32BE() (uint32, error) {
	v, err := c.uintBE(4)
	return uint32(v), err
}

// AppendU32BE appends v as a 4-byte big-endian value to dst (BIP-32's
// ser32 form, the one place in this module that isn't little-endian).
func AppendU32BE(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

// AppendU16LE appends v as a 2-byte little-endian value to dst.
func AppendU16LE(dst []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(dst, buf[:]...)
}

// AppendU32LE appends v as a 4-byte little-endian value to dst.
func AppendU32LE(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

// AppendU64LE appends v as an 8-byte little-endian value to dst.
func AppendU64LE(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

// AppendVarData appends a VarInt length prefix followed by data.
func AppendVarData(dst []byte, data []byte) []byte {
	dst = AppendVarInt(dst, uint64(len(data)))
	return append(dst, data...)
}
