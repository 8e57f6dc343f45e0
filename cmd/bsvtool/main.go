// Command bsvtool is a small demonstration binary showing the library
// end to end: generate a key, build a P2PKH-spending transaction via
// txbuilder.Builder, and print its signed wire hex. It replaces the
// teacher's cmd/rubin-consensus-cli parse/validate-from-stdin demo; the
// library itself has no CLI surface (spec.md §6).
package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"

	"bsv.dev/txlib/contract"
	"bsv.dev/txlib/crypto"
	"bsv.dev/txlib/keys"
	"bsv.dev/txlib/script"
	"bsv.dev/txlib/tx"
	"bsv.dev/txlib/txbuilder"
)

func main() {
	p := crypto.Std{}

	priv := newKeyPair(p)
	pub, err := priv.PubKey(p)
	if err != nil {
		log.Fatalf("derive pubkey: %v", err)
	}
	addr := keys.AddressFromPubKey(p, pub.Bytes, keys.Main)
	log.Printf("spending address: %s", addr.String(p))

	fundingTxid := [32]byte{}
	fundingScript := script.New(
		contract.Op(script.OP_DUP),
		contract.Op(script.OP_HASH160),
		contract.Push(addr.Hash[:]),
		contract.Op(script.OP_EQUALVERIFY),
		contract.Op(script.OP_CHECKSIG),
	)
	utxo := tx.NewUTXO(tx.OutPoint{Hash: fundingTxid, Vout: 0}, tx.NewTxOut(50_000, fundingScript))

	unlock := contract.New(contract.P2PKHUnlocking{}, contract.Params{
		"privKey":  priv.D[:],
		"pubKey":   pub.Bytes,
		"provider": crypto.Provider(p),
	})
	input := txbuilder.NewInput(unlock, utxo)

	changeAddr := addr
	lock := contract.New(contract.P2PKHLocking{}, contract.Params{
		"pubKeyHash": changeAddr.Hash[:],
	})
	payment := txbuilder.NewOutput(lock, 20_000)

	b := txbuilder.New(txbuilder.Options{Rates: txbuilder.FlatRate(1)})
	b.AddInput(input)
	b.AddOutput(payment)
	b.ChangeScript = fundingScript

	signed, err := b.ToTx()
	if err != nil {
		log.Fatalf("build tx: %v", err)
	}

	log.Printf("txid: %s", signed.TXID())
	log.Printf("raw tx: %s", hex.EncodeToString(signed.Serialize()))
}

func newKeyPair(p crypto.Std) *keys.PrivKey {
	var d [32]byte
	if _, err := rand.Read(d[:]); err != nil {
		log.Fatalf("generate key: %v", err)
	}
	priv, err := keys.NewPrivKey(d, true, keys.Main)
	if err != nil {
		// Astronomically unlikely (out-of-range scalar); draw fresh
		// randomness and try again.
		return newKeyPair(p)
	}
	return priv
}
