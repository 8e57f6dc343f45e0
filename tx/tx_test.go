package tx

import (
	"encoding/hex"
	"testing"

	"bsv.dev/txlib/script"
)

func sampleTx() *Tx {
	in := NewTxIn(OutPoint{Vout: 0}, script.New(script.DataChunk([]byte{0x01, 0x02})))
	out := NewTxOut(5000, script.New(script.OpChunk(script.OP_DUP), script.OpChunk(script.OP_HASH160)))
	return New(1, []*TxIn{in}, []*TxOut{out}, 0)
}

func TestTxRoundTrip(t *testing.T) {
	txn := sampleTx()
	b := txn.Serialize()
	got, err := Parse(b)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if hex.EncodeToString(got.Serialize()) != hex.EncodeToString(b) {
		t.Fatalf("roundtrip mismatch")
	}
}

func TestTxIDIsReversedDoubleSHA256(t *testing.T) {
	txn := sampleTx()
	h := txn.Hash()
	want := hex.EncodeToString(reverseCopy(h[:]))
	if txn.TXID() != want {
		t.Fatalf("txid mismatch: got %s want %s", txn.TXID(), want)
	}
}

func reverseCopy(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

func TestCoinbaseDetection(t *testing.T) {
	in := &TxIn{PrevOutpoint: OutPoint{Vout: NullVout}, Script: script.NewCoinbase([]byte{0x01, 0x02}), Sequence: DefaultSequence}
	out := NewTxOut(5_000_000_000, script.New())
	txn := New(1, []*TxIn{in}, []*TxOut{out}, 0)
	if !txn.IsCoinbase() {
		t.Fatalf("expected coinbase tx")
	}
	b := txn.Serialize()
	got, err := Parse(b)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !got.IsCoinbase() {
		t.Fatalf("expected coinbase after roundtrip")
	}
}

func TestBlockHeaderRoundTrip(t *testing.T) {
	h := &BlockHeader{Version: 1, Time: 1231469665, Bits: 0x1d00ffff, Nonce: 2573394689}
	b := h.Serialize()
	if len(b) != HeaderSize {
		t.Fatalf("header must be 80 bytes, got %d", len(b))
	}
	got, err := ParseBlockHeader(b)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if *got != *h {
		t.Fatalf("header roundtrip mismatch")
	}
}

func TestMerkleRootSingleTx(t *testing.T) {
	txn := sampleTx()
	root, err := MerkleRoot([][32]byte{txn.Hash()})
	if err != nil {
		t.Fatalf("merkle root: %v", err)
	}
	if root != txn.Hash() {
		t.Fatalf("single-tx merkle root should equal the tx hash")
	}
}

func TestMerkleRootOddCountDuplicates(t *testing.T) {
	a := [32]byte{1}
	b := [32]byte{2}
	c := [32]byte{3}
	root3, err := MerkleRoot([][32]byte{a, b, c})
	if err != nil {
		t.Fatalf("merkle root: %v", err)
	}
	root4, err := MerkleRoot([][32]byte{a, b, c, c})
	if err != nil {
		t.Fatalf("merkle root: %v", err)
	}
	if root3 != root4 {
		t.Fatalf("odd-count merkle root should duplicate the last hash")
	}
}

func TestBlockMerkleRootMatchesHeader(t *testing.T) {
	txn := sampleTx()
	blk := &Block{Transactions: []*Tx{txn}}
	root, err := blk.CalcMerkleRoot()
	if err != nil {
		t.Fatalf("calc merkle root: %v", err)
	}
	blk.Header.MerkleRoot = root
	got, err := blk.CalcMerkleRoot()
	if err != nil {
		t.Fatalf("calc merkle root: %v", err)
	}
	if got != blk.Header.MerkleRoot {
		t.Fatalf("merkle root mismatch")
	}
}

func TestMerkleProofRoundTripAndVerify(t *testing.T) {
	txA := sampleTx()
	txB := sampleTx()
	txB.LockTime = 99 // distinct hash
	root, err := MerkleRoot([][32]byte{txA.Hash(), txB.Hash()})
	if err != nil {
		t.Fatalf("merkle root: %v", err)
	}

	proof := &MerkleProof{
		Index:      0,
		Tx:         txA,
		TargetKind: TargetMerkleRoot,
		TargetHash: root,
		Nodes:      []MerkleNode{{Kind: NodeHash, Hash: txB.Hash()}},
	}

	b := proof.Serialize()
	got, err := ParseMerkleProof(b)
	if err != nil {
		t.Fatalf("parse merkle proof: %v", err)
	}
	targetRoot, ok := got.TargetMerkleRoot()
	if !ok {
		t.Fatalf("expected target root to be resolvable")
	}
	if !got.Verify(targetRoot) {
		t.Fatalf("merkle proof failed to verify")
	}
}

func TestOutPointNull(t *testing.T) {
	o := OutPoint{Vout: NullVout}
	if !o.IsNull() {
		t.Fatalf("expected null outpoint")
	}
}
