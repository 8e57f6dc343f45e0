package txbuilder

import (
	"bytes"
	"testing"

	"bsv.dev/txlib/contract"
	"bsv.dev/txlib/crypto"
	"bsv.dev/txlib/script"
	"bsv.dev/txlib/tx"
	"bsv.dev/txlib/vm"
)

func fundingUTXO(p crypto.Std, hash [20]byte, satoshis uint64) *tx.UTXO {
	lockScript := script.New(
		contract.Op(script.OP_DUP), contract.Op(script.OP_HASH160),
		contract.Push(hash[:]), contract.Op(script.OP_EQUALVERIFY), contract.Op(script.OP_CHECKSIG),
	)
	return tx.NewUTXO(tx.OutPoint{Hash: [32]byte{1, 2, 3}, Vout: 0}, tx.NewTxOut(satoshis, lockScript))
}

func p2pkhContracts(p crypto.Std, priv []byte, pub []byte, hash [20]byte) (*contract.Contract, *contract.Contract) {
	unlock := contract.New(contract.P2PKHUnlocking{}, contract.Params{
		"privKey": priv, "pubKey": pub, "provider": crypto.Provider(p),
	})
	lock := contract.New(contract.P2PKHLocking{}, contract.Params{"pubKeyHash": hash[:]})
	return unlock, lock
}

func TestBuilderEndToEndSpendable(t *testing.T) {
	p := crypto.Std{}
	var d [32]byte
	d[31] = 0x33
	priv := d[:]
	pub, err := p.PubKeyFromPriv(priv, true)
	if err != nil {
		t.Fatalf("pubkey: %v", err)
	}
	sha := p.SHA256(pub)
	hash := p.RIPEMD160(sha[:])

	utxo := fundingUTXO(p, hash, 50_000)
	unlock, _ := p2pkhContracts(p, priv, pub, hash)

	var changeHash [20]byte
	changeHash[0] = 0xff
	paymentLock := contract.New(contract.P2PKHLocking{}, contract.Params{"pubKeyHash": changeHash[:]})

	b := New(Options{Rates: FlatRate(1)})
	b.AddInput(NewInput(unlock, utxo))
	b.AddOutput(NewOutput(paymentLock, 20_000))
	b.ChangeScript = utxo.TxOut.Script

	signed, err := b.ToTx()
	if err != nil {
		t.Fatalf("ToTx: %v", err)
	}
	if len(signed.Inputs) != 1 {
		t.Fatalf("expected 1 input")
	}
	if len(signed.Outputs) < 1 {
		t.Fatalf("expected at least the payment output")
	}

	state := vm.Eval(vm.NewWithContext(vm.Options{Provider: p}, &vm.Context{
		Tx: signed, Vin: 0, UTXOSatoshis: utxo.TxOut.Satoshis, Subscript: utxo.TxOut.Script,
	}), append(append([]script.Chunk{}, signed.Inputs[0].Script.Chunks...), utxo.TxOut.Script.Chunks...))
	if state.Err != nil {
		t.Fatalf("spend evaluation failed: %v", state.Err)
	}
	if !state.Valid() {
		t.Fatalf("expected the built input to validly spend the funding UTXO")
	}
}

func TestBuilderRejectsNoInputs(t *testing.T) {
	b := New(Options{Rates: FlatRate(1)})
	if _, err := b.ToTx(); err == nil {
		t.Fatalf("expected ErrNoInputs")
	}
}

func TestBuilderAppendsChangeAboveDust(t *testing.T) {
	p := crypto.Std{}
	var d [32]byte
	d[31] = 0x44
	priv := d[:]
	pub, _ := p.PubKeyFromPriv(priv, true)
	sha := p.SHA256(pub)
	hash := p.RIPEMD160(sha[:])

	utxo := fundingUTXO(p, hash, 1_000_000)
	unlock, _ := p2pkhContracts(p, priv, pub, hash)

	var paymentHash [20]byte
	paymentHash[0] = 1
	paymentLock := contract.New(contract.P2PKHLocking{}, contract.Params{"pubKeyHash": paymentHash[:]})

	b := New(Options{Rates: FlatRate(1)})
	b.AddInput(NewInput(unlock, utxo))
	b.AddOutput(NewOutput(paymentLock, 1000))
	b.ChangeScript = utxo.TxOut.Script

	signed, err := b.ToTx()
	if err != nil {
		t.Fatalf("ToTx: %v", err)
	}
	if len(signed.Outputs) != 2 {
		t.Fatalf("expected a change output to be appended, got %d outputs", len(signed.Outputs))
	}
}

func TestBuilderOmitsDustChange(t *testing.T) {
	p := crypto.Std{}
	var d [32]byte
	d[31] = 0x55
	priv := d[:]
	pub, _ := p.PubKeyFromPriv(priv, true)
	sha := p.SHA256(pub)
	hash := p.RIPEMD160(sha[:])

	// Fund with just enough over the payment + fee to leave a change
	// amount under the dust threshold.
	utxo := fundingUTXO(p, hash, 1425)
	unlock, _ := p2pkhContracts(p, priv, pub, hash)

	var paymentHash [20]byte
	paymentHash[0] = 2
	paymentLock := contract.New(contract.P2PKHLocking{}, contract.Params{"pubKeyHash": paymentHash[:]})

	b := New(Options{Rates: FlatRate(1)})
	b.AddInput(NewInput(unlock, utxo))
	b.AddOutput(NewOutput(paymentLock, 1000))
	b.ChangeScript = utxo.TxOut.Script

	signed, err := b.ToTx()
	if err != nil {
		t.Fatalf("ToTx: %v", err)
	}
	if len(signed.Outputs) != 1 {
		t.Fatalf("expected dust change to be dropped, got %d outputs", len(signed.Outputs))
	}
}

func TestCalcRequiredFeeClassifiesDataOutputs(t *testing.T) {
	p := crypto.Std{}
	var d [32]byte
	d[31] = 0x66
	priv := d[:]
	pub, _ := p.PubKeyFromPriv(priv, true)
	sha := p.SHA256(pub)
	hash := p.RIPEMD160(sha[:])
	utxo := fundingUTXO(p, hash, 10_000)
	unlock, _ := p2pkhContracts(p, priv, pub, hash)

	dataLock := contract.New(contract.OpReturnLocking{}, contract.Params{"data": [][]byte{[]byte("hi")}})

	b := New(Options{Rates: ClassRates(1, 5)})
	b.AddInput(NewInput(unlock, utxo))
	b.AddOutput(NewOutput(dataLock, 0))

	feeData, err := b.CalcRequiredFee(RateTable{Data: 1, Standard: 5})
	if err != nil {
		t.Fatalf("calc fee: %v", err)
	}

	bStd := New(Options{Rates: ClassRates(1, 5)})
	bStd.AddInput(NewInput(unlock, utxo))
	bStd.AddOutput(NewOutput(contract.New(contract.P2PKHLocking{}, contract.Params{"pubKeyHash": hash[:]}), 0))
	feeStd, err := bStd.CalcRequiredFee(RateTable{Data: 1, Standard: 5})
	if err != nil {
		t.Fatalf("calc fee: %v", err)
	}

	if feeData >= feeStd {
		t.Fatalf("a data output billed at a lower rate should produce a lower fee: data=%d standard=%d", feeData, feeStd)
	}
}

func TestBIP69SortOrdersInputsAndOutputs(t *testing.T) {
	p := crypto.Std{}
	var d [32]byte
	d[31] = 0x77
	priv := d[:]
	pub, _ := p.PubKeyFromPriv(priv, true)
	sha := p.SHA256(pub)
	hash := p.RIPEMD160(sha[:])

	utxoA := tx.NewUTXO(tx.OutPoint{Hash: [32]byte{0xff}, Vout: 0}, tx.NewTxOut(10_000, fundingUTXO(p, hash, 0).TxOut.Script))
	utxoB := tx.NewUTXO(tx.OutPoint{Hash: [32]byte{0x01}, Vout: 0}, tx.NewTxOut(10_000, fundingUTXO(p, hash, 0).TxOut.Script))
	unlockA, _ := p2pkhContracts(p, priv, pub, hash)
	unlockB, _ := p2pkhContracts(p, priv, pub, hash)

	var h1 [20]byte
	h1[0] = 9
	lockSmall := contract.New(contract.P2PKHLocking{}, contract.Params{"pubKeyHash": hash[:]})
	lockBig := contract.New(contract.P2PKHLocking{}, contract.Params{"pubKeyHash": h1[:]})

	b := New(Options{Rates: FlatRate(1), Sort: true})
	b.AddInput(NewInput(unlockA, utxoA))
	b.AddInput(NewInput(unlockB, utxoB))
	b.AddOutput(NewOutput(lockBig, 5000))
	b.AddOutput(NewOutput(lockSmall, 1000))

	origOrder := append([]*Input(nil), b.Inputs...)

	signed, err := b.ToTx()
	if err != nil {
		t.Fatalf("ToTx: %v", err)
	}

	if len(b.Inputs) != len(origOrder) || b.Inputs[0] != origOrder[0] || b.Inputs[1] != origOrder[1] {
		t.Fatalf("ToTx must not reorder the Builder's own Inputs field")
	}

	first, second := signed.Inputs[0].PrevOutpoint, signed.Inputs[1].PrevOutpoint
	if bytes.Compare(reversedForTest(first.Hash[:]), reversedForTest(second.Hash[:])) > 0 {
		t.Fatalf("inputs not sorted ascending by reversed prevout hash")
	}
	if signed.Outputs[0].Satoshis > signed.Outputs[1].Satoshis {
		t.Fatalf("outputs not sorted ascending by satoshis")
	}
}

func reversedForTest(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

func TestRateConstructors(t *testing.T) {
	flat := FlatRate(5)
	if flat.Mine.Data != 5 || flat.Mine.Standard != 5 || flat.Relay.Data != 5 {
		t.Fatalf("FlatRate should apply the same rate everywhere")
	}
	cls := ClassRates(1, 2)
	if cls.Mine.Data != 1 || cls.Mine.Standard != 2 {
		t.Fatalf("ClassRates mismatch")
	}
	mr := MineRelayRates(RateTable{Data: 1, Standard: 2}, RateTable{Data: 3, Standard: 4})
	if mr.Mine.Data != 1 || mr.Relay.Standard != 4 {
		t.Fatalf("MineRelayRates mismatch")
	}
}
