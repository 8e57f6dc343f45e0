package tx

import "bsv.dev/txlib/script"

// UTXO is a spendable output reference used by unlocking contracts
// (spec.md §3). It is always a value copy of the referenced TxOut plus
// its OutPoint — it never points back into the Tx it came from.
type UTXO struct {
	Outpoint OutPoint
	TxOut    *TxOut
}

// NewUTXO builds a UTXO, copying txOut's fields so the UTXO never
// aliases the originating Tx.
func NewUTXO(outpoint OutPoint, txOut *TxOut) *UTXO {
	copied := &TxOut{Satoshis: txOut.Satoshis, Script: copyScript(txOut.Script)}
	return &UTXO{Outpoint: outpoint, TxOut: copied}
}

func copyScript(s *script.Script) *script.Script {
	if s == nil {
		return nil
	}
	out := &script.Script{Coinbase: append([]byte(nil), s.Coinbase...)}
	for _, c := range s.Chunks {
		c.Data = append([]byte(nil), c.Data...)
		out.Chunks = append(out.Chunks, c)
	}
	return out
}
