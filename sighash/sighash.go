// Package sighash implements Bitcoin's pre-image construction and the
// sign/verify surface built on top of it (spec.md §4.3): the forkid
// algorithm (selected by the SIGHASH_FORKID bit) and the legacy
// algorithm it replaced.
package sighash

import (
	"bsv.dev/txlib/crypto"
	"bsv.dev/txlib/internal/encoding"
	"bsv.dev/txlib/script"
	"bsv.dev/txlib/tx"
)

// Type is the single sighash-type byte: ALL|NONE|SINGLE in the low bits,
// ANYONECANPAY in bit 0x80, FORKID in bit 0x40.
type Type byte

const (
	All    Type = 0x01
	None   Type = 0x02
	Single Type = 0x03

	baseMask Type = 0x1f

	AnyoneCanPay Type = 0x80
	ForkID       Type = 0x40
)

func (t Type) base() Type          { return t & baseMask }
func (t Type) isAnyoneCanPay() bool { return t&AnyoneCanPay != 0 }
func (t Type) isForkID() bool       { return t&ForkID != 0 }

func doubleSHA256(hp crypto.HashProvider, b []byte) [32]byte {
	h1 := hp.SHA256(b)
	return hp.SHA256(h1[:])
}

// Preimage builds the sighash pre-image for input vin of t, spending
// utxo, under sighashType. It dispatches to the forkid or legacy layout
// per spec.md §4.3 depending on the FORKID bit.
func Preimage(hp crypto.HashProvider, t *tx.Tx, vin int, subscript *script.Script, utxoSatoshis uint64, sighashType Type) ([]byte, error) {
	if sighashType.isForkID() {
		return preimageForkID(hp, t, vin, subscript, utxoSatoshis, sighashType), nil
	}
	return preimageLegacy(t, vin, subscript, sighashType)
}

func preimageForkID(hp crypto.HashProvider, t *tx.Tx, vin int, subscript *script.Script, utxoSatoshis uint64, sighashType Type) []byte {
	hashPrevouts := zeroHashUnless(!sighashType.isAnyoneCanPay(), func() [32]byte {
		var buf []byte
		for _, in := range t.Inputs {
			buf = append(buf, in.PrevOutpoint.Hash[:]...)
			buf = encoding.AppendU32LE(buf, in.PrevOutpoint.Vout)
		}
		return doubleSHA256(hp, buf)
	})

	hashSequence := zeroHashUnless(!sighashType.isAnyoneCanPay() && sighashType.base() != Single && sighashType.base() != None, func() [32]byte {
		var buf []byte
		for _, in := range t.Inputs {
			buf = encoding.AppendU32LE(buf, in.Sequence)
		}
		return doubleSHA256(hp, buf)
	})

	hashOutputs := computeHashOutputs(hp, t, vin, sighashType)

	in := t.Inputs[vin]

	var b []byte
	b = encoding.AppendU32LE(b, t.Version)
	b = append(b, hashPrevouts[:]...)
	b = append(b, hashSequence[:]...)
	b = append(b, in.PrevOutpoint.Hash[:]...)
	b = encoding.AppendU32LE(b, in.PrevOutpoint.Vout)
	b = encoding.AppendVarData(b, subscript.Serialize())
	b = encoding.AppendU64LE(b, utxoSatoshis)
	b = encoding.AppendU32LE(b, in.Sequence)
	b = append(b, hashOutputs[:]...)
	b = encoding.AppendU32LE(b, t.LockTime)
	b = encoding.AppendU32LE(b, uint32(sighashType))
	return b
}

func computeHashOutputs(hp crypto.HashProvider, t *tx.Tx, vin int, sighashType Type) [32]byte {
	switch sighashType.base() {
	case None:
		return [32]byte{}
	case Single:
		if vin >= len(t.Outputs) {
			return [32]byte{}
		}
		return doubleSHA256(hp, t.Outputs[vin].Serialize())
	default:
		var buf []byte
		for _, out := range t.Outputs {
			buf = append(buf, out.Serialize()...)
		}
		return doubleSHA256(hp, buf)
	}
}

func zeroHashUnless(cond bool, compute func() [32]byte) [32]byte {
	if !cond {
		return [32]byte{}
	}
	return compute()
}

// preimageLegacy implements the pre-forkid algorithm: clone the tx,
// strip OP_CODESEPARATOR from the subscript, mutate the clone's inputs
// and outputs per the sighash flags, and serialize clone||type. SINGLE
// with vin >= len(outputs) is rejected rather than reproducing the
// historical "hash of 0x01" bug (spec.md §9 open question, decided here).
func preimageLegacy(t *tx.Tx, vin int, subscript *script.Script, sighashType Type) ([]byte, error) {
	if sighashType.base() == Single && vin >= len(t.Outputs) {
		return nil, newErr(ErrSingleOutOfRange, "SINGLE sighash with no corresponding output")
	}

	strippedSub := stripCodeSeparator(subscript)

	inputs := make([]*tx.TxIn, len(t.Inputs))
	for i, in := range t.Inputs {
		s := in.Script
		if i == vin {
			s = strippedSub
		} else {
			s = script.New()
		}
		seq := in.Sequence
		if sighashType.base() == None && i != vin {
			seq = 0
		}
		inputs[i] = &tx.TxIn{PrevOutpoint: in.PrevOutpoint, Script: s, Sequence: seq}
	}

	if sighashType.isAnyoneCanPay() {
		inputs = []*tx.TxIn{inputs[vin]}
	}

	var outputs []*tx.TxOut
	switch sighashType.base() {
	case None:
		outputs = nil
	case Single:
		outputs = make([]*tx.TxOut, vin+1)
		for i := 0; i < vin; i++ {
			outputs[i] = &tx.TxOut{Satoshis: maxUint64, Script: script.New()}
		}
		outputs[vin] = t.Outputs[vin]
	default:
		outputs = t.Outputs
	}

	clone := tx.New(t.Version, inputs, outputs, t.LockTime)
	b := clone.Serialize()
	b = encoding.AppendU32LE(b, uint32(sighashType))
	return b, nil
}

// maxUint64 stands in for the sentinel "satoshis = -1" output the
// classic SINGLE algorithm inserts before the signed index; Satoshis is
// unsigned on the wire, so all-ones bits is the wire-identical value.
const maxUint64 = ^uint64(0)

func stripCodeSeparator(s *script.Script) *script.Script {
	if s.IsCoinbase() {
		return s
	}
	out := script.New()
	for _, c := range s.Chunks {
		if c.IsOpcode && c.Op == script.OP_CODESEPARATOR {
			continue
		}
		out.Push(c)
	}
	return out
}

// Hash returns SHA256(SHA256(preimage)) — the digest a signature signs.
func Hash(hp crypto.HashProvider, preimage []byte) [32]byte {
	return doubleSHA256(hp, preimage)
}

// Sign computes the sighash for (t, vin, utxo, sighashType), signs it
// with priv, and appends the sighash type byte to the DER signature, per
// spec.md §4.3.
func Sign(p crypto.Provider, priv []byte, t *tx.Tx, vin int, subscript *script.Script, utxoSatoshis uint64, sighashType Type) ([]byte, error) {
	preimage, err := Preimage(p, t, vin, subscript, utxoSatoshis, sighashType)
	if err != nil {
		return nil, err
	}
	digest := Hash(p, preimage)
	sig, err := p.Sign(priv, digest)
	if err != nil {
		return nil, err
	}
	return append(append([]byte(nil), sig...), byte(sighashType)), nil
}

// Verify strips the trailing sighash-type byte from sigWithType,
// recomputes the pre-image with that type, and verifies the DER
// signature against pub.
func Verify(p crypto.Provider, pub []byte, t *tx.Tx, vin int, subscript *script.Script, utxoSatoshis uint64, sigWithType []byte) bool {
	if len(sigWithType) < 2 {
		return false
	}
	sighashType := Type(sigWithType[len(sigWithType)-1])
	der := sigWithType[:len(sigWithType)-1]
	preimage, err := Preimage(p, t, vin, subscript, utxoSatoshis, sighashType)
	if err != nil {
		return false
	}
	digest := Hash(p, preimage)
	return p.Verify(pub, digest, crypto.Signature(der))
}
