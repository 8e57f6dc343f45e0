package vm

import (
	"bsv.dev/txlib/crypto"
	"bsv.dev/txlib/script"
	"bsv.dev/txlib/tx"
)

// Context attaches the transaction being evaluated to the VM, so
// OP_CHECKSIG and OP_CHECKMULTISIG have something to verify against.
// Subscript is the scriptCode of the UTXO being spent (spec.md §4.3) —
// the caller (Contract/TxBuilder) is responsible for presenting the
// right bytes; OP_CODESEPARATOR is a VM-level no-op per spec.md §4.4.
type Context struct {
	Tx           *tx.Tx
	Vin          int
	UTXOSatoshis uint64
	Subscript    *script.Script
}

// Options configures one evaluation run.
type Options struct {
	// Provider supplies the hashing/signature primitives OP_HASH160,
	// OP_CHECKSIG, etc. need. The hashing opcodes always require it;
	// OP_CHECKSIG and OP_CHECKMULTISIG do not when Simulate is true.
	Provider crypto.Provider

	// Simulate short-circuits OP_EQUAL, OP_NUMEQUAL, OP_CHECKSIG, and
	// OP_CHECKMULTISIG to push a truthy value regardless of inputs, per
	// spec.md §4.4 — used by Contract.Simulate to validate script shape
	// without real signatures.
	Simulate bool
}
