package encoding

import (
	"encoding/hex"
	"testing"
)

func TestVarIntEncodeDecode(t *testing.T) {
	cases := []struct {
		name string
		val  uint64
		hex  string
	}{
		{"zero", 0, "00"},
		{"max_minimal", 252, "fc"},
		{"u16_boundary", 253, "fdfd00"},
		{"u16_max", 65535, "fdffff"},
		{"u32_boundary", 65536, "fe00000100"},
		{"spec_260", 260, "fd0401"},
		{"spec_100000000", 100_000_000, "fe00e1f505"},
		{"u32_max", 0xffff_ffff, "feffffffff"},
		{"u64_boundary", 0x1_0000_0000, "ff0000000001000000"},
		{"u64_high", 0xffff_ffff_ffff_ffff, "ffffffffffffffffff"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enc := EncodeVarInt(tc.val)
			if hex.EncodeToString(enc) != tc.hex {
				t.Fatalf("encode mismatch: got %x want %s", enc, tc.hex)
			}
			if got := VarIntLen(tc.val); got != len(enc) {
				t.Fatalf("VarIntLen mismatch: got %d want %d", got, len(enc))
			}
			dec, n, err := DecodeVarInt(enc)
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if n != len(enc) {
				t.Fatalf("decode consumed %d bytes, want %d", n, len(enc))
			}
			if dec != tc.val {
				t.Fatalf("decode value mismatch: got %d want %d", dec, tc.val)
			}
		})
	}
}

func TestVarIntNonMinimalRejected(t *testing.T) {
	cases := [][]byte{
		{0xfd, 0xfc, 0x00}, // 252 encoded with 0xfd tag
		{0xfe, 0xff, 0xff, 0x00, 0x00}, // 65535 encoded with 0xfe tag
		{0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00}, // u32 max via 0xff tag
	}
	for _, buf := range cases {
		if _, _, err := DecodeVarInt(buf); err == nil {
			t.Fatalf("expected non-minimal VarInt %x to be rejected", buf)
		}
	}
}

func TestVarIntTruncated(t *testing.T) {
	if _, _, err := DecodeVarInt([]byte{0xfd, 0x01}); err == nil {
		t.Fatalf("expected truncated VarInt to error")
	}
}

func TestReverseBytes(t *testing.T) {
	in := []byte{1, 2, 3, 4}
	out := ReverseBytes(in)
	want := []byte{4, 3, 2, 1}
	if hex.EncodeToString(out) != hex.EncodeToString(want) {
		t.Fatalf("got %x want %x", out, want)
	}
}
