package script

import (
	"encoding/hex"
	"testing"
)

func TestScriptRoundTrip(t *testing.T) {
	s := New(
		OpChunk(OP_DUP),
		OpChunk(OP_HASH160),
		DataChunk(make([]byte, 20)),
		OpChunk(OP_EQUALVERIFY),
		OpChunk(OP_CHECKSIG),
	)
	b := s.Serialize()
	got, err := Parse(b)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if hex.EncodeToString(got.Serialize()) != hex.EncodeToString(b) {
		t.Fatalf("roundtrip mismatch")
	}
}

func TestPushLengthClasses(t *testing.T) {
	cases := []struct {
		n    int
		head string
	}{
		{1, "01"},
		{75, "4b"},
		{76, "4c4c"},
		{255, "4cff"},
		{256, "4d0001"},
		{65535, "4dffff"},
		{65536, "4e00000100"},
	}
	for _, tc := range cases {
		b := appendChunk(nil, DataChunk(make([]byte, tc.n)))
		if hex.EncodeToString(b[:len(tc.head)/2]) != tc.head {
			t.Fatalf("n=%d: got head %x want %s", tc.n, b[:len(tc.head)/2], tc.head)
		}
	}
}

func TestInvalidOpcode(t *testing.T) {
	// 0xba is unassigned in the closed opcode set.
	if _, err := Parse([]byte{0xba}); err == nil {
		t.Fatalf("expected invalid opcode error")
	}
}

func TestCoinbaseScript(t *testing.T) {
	raw := []byte{0x03, 0x01, 0x02, 0x03, 0xde, 0xad, 0xbe, 0xef}
	s := NewCoinbase(raw)
	if hex.EncodeToString(s.Serialize()) != hex.EncodeToString(raw) {
		t.Fatalf("coinbase passthrough mismatch")
	}
	if !s.IsCoinbase() {
		t.Fatalf("expected IsCoinbase")
	}
}

func TestASMRoundTrip(t *testing.T) {
	s := New(OpChunk(OP_1NEGATE), OpChunk(OP_0), OpChunk(OP_DUP), DataChunk([]byte{0xab, 0xcd}))
	asm := s.ASM()
	if asm != "-1 0 OP_DUP abcd" {
		t.Fatalf("unexpected ASM: %q", asm)
	}
	back, err := ParseASM(asm)
	if err != nil {
		t.Fatalf("parse asm: %v", err)
	}
	if hex.EncodeToString(back.Serialize()) != hex.EncodeToString(s.Serialize()) {
		t.Fatalf("asm roundtrip mismatch")
	}
}

func TestScriptNumRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 127, 128, -128, 255, 256, 100000, -100000} {
		enc := EncodeScriptNum64(n)
		dec := DecodeScriptNum64(enc)
		if dec != n {
			t.Fatalf("n=%d: got %d after roundtrip (enc=%x)", n, dec, enc)
		}
	}
}

func TestScriptNumBoundaryDecodes(t *testing.T) {
	if DecodeScriptNum64(nil) != 0 {
		t.Fatalf("empty should decode to 0")
	}
	if DecodeScriptNum64([]byte{0x80}) != 0 {
		t.Fatalf("0x80 should decode to 0")
	}
	if DecodeScriptNum64([]byte{0x81}) != -1 {
		t.Fatalf("0x81 should decode to -1")
	}
}

func TestScriptNumSpecVectors(t *testing.T) {
	if hex.EncodeToString(EncodeScriptNum64(0)) != "" {
		t.Fatalf("encode(0) should be empty")
	}
	if hex.EncodeToString(EncodeScriptNum64(-1)) != "81" {
		t.Fatalf("encode(-1) mismatch")
	}
	if hex.EncodeToString(EncodeScriptNum64(100000)) != "a08601" {
		t.Fatalf("encode(100000) mismatch")
	}
}

func TestTruthy(t *testing.T) {
	falsey := [][]byte{{}, {0x00}, {0x80}, {0x00, 0x80}}
	for _, b := range falsey {
		if Truthy(b) {
			t.Fatalf("%x should be falsey", b)
		}
	}
	truthy := [][]byte{{0x01}, {0x00, 0x01}, {0x01, 0x80}}
	for _, b := range truthy {
		if !Truthy(b) {
			t.Fatalf("%x should be truthy", b)
		}
	}
}
