// Package txbuilder implements the declarative transaction assembly
// pipeline spec.md §4.5 describes: skeletal inputs/outputs rendered
// from Contracts, a fee/dust/change pass, and two-pass signing so
// signatures bind to the transaction's final byte layout.
package txbuilder

import (
	"bytes"
	"sort"

	"bsv.dev/txlib/contract"
	"bsv.dev/txlib/internal/encoding"
	"bsv.dev/txlib/script"
	"bsv.dev/txlib/tx"
)

// Input is one spendable input: the UTXO it spends plus the unlocking
// Contract that proves the right to spend it.
type Input struct {
	Contract *contract.Contract
	UTXO     *tx.UTXO
	Sequence uint32
}

// NewInput builds an Input with the default sequence number.
func NewInput(c *contract.Contract, utxo *tx.UTXO) *Input {
	return &Input{Contract: c, UTXO: utxo, Sequence: tx.DefaultSequence}
}

// Output is one transaction output: its satoshi amount plus the
// locking Contract that compiles to its script.
type Output struct {
	Contract *contract.Contract
	Satoshis uint64
}

// NewOutput builds an Output.
func NewOutput(c *contract.Contract, satoshis uint64) *Output {
	return &Output{Contract: c, Satoshis: satoshis}
}

// Options configures fee calculation and BIP-69 sorting.
type Options struct {
	Rates Rates
	Sort  bool
}

// Builder accumulates inputs and outputs and emits a signed Tx. It is a
// plain mutable value owned by its caller (spec.md §5): there is no
// concurrency control and none is needed.
type Builder struct {
	Inputs       []*Input
	Outputs      []*Output
	ChangeScript *script.Script
	LockTime     uint32
	Options      Options
}

// New builds an empty Builder.
func New(opts Options) *Builder {
	return &Builder{Options: opts}
}

// AddInput appends an input.
func (b *Builder) AddInput(in *Input) *Builder {
	b.Inputs = append(b.Inputs, in)
	return b
}

// AddOutput appends an output.
func (b *Builder) AddOutput(out *Output) *Builder {
	b.Outputs = append(b.Outputs, out)
	return b
}

// varIntLen returns the encoded byte length of the VarInt count prefix
// for n items; CalcRequiredFee charges it at the "standard" rate.
func varIntLen(n int) int { return encoding.VarIntLen(uint64(n)) }

// simulateScript renders c's script with no context (placeholders for
// unlocking contracts), for fee and size estimation of inputs and
// outputs before the transaction is signed.
func simulateScript(c *contract.Contract) (*script.Script, error) {
	return c.Render(nil)
}

// CalcRequiredFee sums each component's byte contribution times its
// class rate, per spec.md §4.5.
func (b *Builder) CalcRequiredFee(rates RateTable) (uint64, error) {
	var fee uint64
	fee += uint64(4+4) * rates.Standard // version + locktime
	fee += uint64(varIntLen(len(b.Inputs))) * rates.Standard
	fee += uint64(varIntLen(len(b.Outputs))) * rates.Standard

	for _, in := range b.Inputs {
		s, err := simulateScript(in.Contract)
		if err != nil {
			return 0, err
		}
		txin := &tx.TxIn{PrevOutpoint: in.UTXO.Outpoint, Script: s, Sequence: in.Sequence}
		fee += uint64(txin.Size()) * rates.Standard
	}

	for _, out := range b.Outputs {
		s, err := simulateScript(out.Contract)
		if err != nil {
			return 0, err
		}
		txout := &tx.TxOut{Satoshis: out.Satoshis, Script: s}
		if txout.IsData() {
			fee += uint64(txout.Size()) * rates.Data
		} else {
			fee += uint64(txout.Size()) * rates.Standard
		}
	}

	return fee, nil
}

// dustThreshold implements spec.md §4.5's change-output dust rule:
// 3 * floor((TxOut.size() + 148) * relay.standard).
func dustThreshold(candidate *tx.TxOut, relay RateTable) uint64 {
	return 3 * uint64((candidate.Size()+148)*int(relay.Standard))
}

// ToTx renders the builder into a signed Tx via spec.md §4.5's
// three-step two-pass algorithm: unsigned inputs, outputs plus change,
// then a second signing pass per input with (tx, vin) attached.
func (b *Builder) ToTx() (*tx.Tx, error) {
	if len(b.Inputs) == 0 {
		return nil, newErr(ErrNoInputs, "builder has no inputs")
	}

	// Pass 1: unsigned inputs (ctx == nil, placeholders per contract).
	inputs := make([]*tx.TxIn, len(b.Inputs))
	var inputSum uint64
	for i, in := range b.Inputs {
		s, err := in.Contract.Render(nil)
		if err != nil {
			return nil, newErr(ErrRenderFailed, err.Error())
		}
		inputs[i] = &tx.TxIn{PrevOutpoint: in.UTXO.Outpoint, Script: s, Sequence: in.Sequence}
		inputSum += in.UTXO.TxOut.Satoshis
	}

	// Pass 2: outputs, then change.
	outputs := make([]*tx.TxOut, len(b.Outputs))
	var outputSum uint64
	for i, out := range b.Outputs {
		s, err := out.Contract.Render(nil)
		if err != nil {
			return nil, newErr(ErrRenderFailed, err.Error())
		}
		outputs[i] = &tx.TxOut{Satoshis: out.Satoshis, Script: s}
		outputSum += out.Satoshis
	}

	if b.ChangeScript != nil {
		fee, err := b.CalcRequiredFee(b.Options.Rates.Mine)
		if err != nil {
			return nil, err
		}
		changeTxOut := &tx.TxOut{Satoshis: 0, Script: b.ChangeScript}
		changeOutputFee := uint64(changeTxOut.Size()) * b.Options.Rates.Mine.Standard

		if inputSum > outputSum+fee+changeOutputFee {
			changeAmount := inputSum - outputSum - fee - changeOutputFee
			candidate := &tx.TxOut{Satoshis: changeAmount, Script: b.ChangeScript}
			if changeAmount >= dustThreshold(candidate, b.Options.Rates.Relay) {
				outputs = append(outputs, candidate)
			}
		}
	}

	unsigned := tx.New(1, inputs, outputs, b.LockTime)

	// signingOrder drives pass 3 below; it starts as a plain alias of
	// b.Inputs and is only replaced with a freshly sorted copy, so ToTx
	// never reorders the Builder's own Inputs field as a side effect.
	signingOrder := b.Inputs
	if b.Options.Sort {
		signingOrder = sortInputs(b.Inputs, unsigned.Inputs)
		sortOutputs(unsigned.Outputs)
	}

	// Pass 3: re-render each input with (tx, vin) attached.
	for vin, in := range signingOrder {
		ctx := &contract.Context{
			Tx:           unsigned,
			Vin:          vin,
			UTXOSatoshis: in.UTXO.TxOut.Satoshis,
			Subscript:    in.UTXO.TxOut.Script,
		}
		s, err := in.Contract.WithContext().Render(ctx)
		if err != nil {
			return nil, newErr(ErrRenderFailed, err.Error())
		}
		unsigned.Inputs[vin] = &tx.TxIn{
			PrevOutpoint: in.UTXO.Outpoint,
			Script:       s,
			Sequence:     in.Sequence,
		}
	}

	return unsigned, nil
}

// sortInputs applies BIP-69 ordering: ascending by
// (reverse_bytes(prevout.hash), prevout.vout). owners and txInputs must
// be parallel slices. txInputs is reordered in place (it is ToTx's own
// freshly built slice); owners is left untouched and the sorted copy is
// returned instead, so callers holding a reference to the original
// owners slice (the Builder's own Inputs field) never see it mutated.
func sortInputs(owners []*Input, txInputs []*tx.TxIn) []*Input {
	idx := make([]int, len(txInputs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := txInputs[idx[i]], txInputs[idx[j]]
		ra, rb := reversed(a.PrevOutpoint.Hash[:]), reversed(b.PrevOutpoint.Hash[:])
		if c := bytes.Compare(ra, rb); c != 0 {
			return c < 0
		}
		return a.PrevOutpoint.Vout < b.PrevOutpoint.Vout
	})

	sortedOwners := make([]*Input, len(owners))
	sortedTxIns := make([]*tx.TxIn, len(txInputs))
	for newPos, oldPos := range idx {
		sortedOwners[newPos] = owners[oldPos]
		sortedTxIns[newPos] = txInputs[oldPos]
	}
	copy(txInputs, sortedTxIns)
	return sortedOwners
}

// sortOutputs applies BIP-69 ordering: ascending by
// (satoshis, serialize(script)).
func sortOutputs(outs []*tx.TxOut) {
	sort.SliceStable(outs, func(i, j int) bool {
		if outs[i].Satoshis != outs[j].Satoshis {
			return outs[i].Satoshis < outs[j].Satoshis
		}
		return bytes.Compare(outs[i].Script.Serialize(), outs[j].Script.Serialize()) < 0
	})
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
