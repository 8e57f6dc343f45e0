package mnemonic

import (
	"bytes"
	"strings"
	"testing"

	"bsv.dev/txlib/crypto"
)

func TestEntropyRoundTrip(t *testing.T) {
	p := crypto.Std{}
	sizes := []int{16, 20, 24, 28, 32} // 128/160/192/224/256 bits
	for _, size := range sizes {
		entropy := bytes.Repeat([]byte{0x07}, size)
		sentence, err := New(p, entropy, English)
		if err != nil {
			t.Fatalf("New(%d bytes): %v", size, err)
		}
		wordCount := len(strings.Fields(sentence))
		wantWords := (size*8 + size*8/32) / 11
		if wordCount != wantWords {
			t.Fatalf("size %d: expected %d words, got %d", size, wantWords, wordCount)
		}

		got, err := ToEntropy(p, sentence, English)
		if err != nil {
			t.Fatalf("ToEntropy: %v", err)
		}
		if !bytes.Equal(got, entropy) {
			t.Fatalf("entropy round trip mismatch for size %d", size)
		}
	}
}

func TestInvalidEntropyLength(t *testing.T) {
	p := crypto.Std{}
	if _, err := New(p, make([]byte, 15), English); err == nil {
		t.Fatalf("expected error for non-standard entropy length")
	}
}

func TestToEntropyRejectsBadChecksum(t *testing.T) {
	p := crypto.Std{}
	sentence, err := New(p, bytes.Repeat([]byte{0x01}, 16), English)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	words := strings.Fields(sentence)
	// Swap the last word for a different valid word, almost certainly
	// invalidating the checksum.
	if words[len(words)-1] == "zoo" {
		words[len(words)-1] = "abandon"
	} else {
		words[len(words)-1] = "zoo"
	}
	tampered := strings.Join(words, " ")
	if _, err := ToEntropy(p, tampered, English); err == nil {
		t.Fatalf("expected checksum error for tampered mnemonic")
	}
}

func TestToEntropyRejectsUnknownWord(t *testing.T) {
	p := crypto.Std{}
	if _, err := ToEntropy(p, strings.Repeat("notaword ", 12), English); err == nil {
		t.Fatalf("expected error for unknown word")
	}
}

func TestSeedIsDeterministicAndPassphraseSensitive(t *testing.T) {
	p := crypto.Std{}
	sentence, err := New(p, bytes.Repeat([]byte{0x02}, 16), English)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s1 := Seed(p, sentence, "")
	s2 := Seed(p, sentence, "")
	if !bytes.Equal(s1, s2) {
		t.Fatalf("seed derivation must be deterministic")
	}
	if len(s1) != 64 {
		t.Fatalf("expected a 64-byte seed, got %d", len(s1))
	}
	s3 := Seed(p, sentence, "tresor")
	if bytes.Equal(s1, s3) {
		t.Fatalf("seed must depend on the passphrase")
	}
}
