// Package contract implements the declarative locking/unlocking script
// layer spec.md §4.5 describes: small Renderer values that compile
// (opts, subject, ctx) into a Script, composed with helper combinators
// instead of hand-built opcode sequences.
package contract

import (
	"bsv.dev/txlib/script"
	"bsv.dev/txlib/tx"
)

// Context carries the (tx, vin) pair a contract needs to compute a real
// signature, plus the spent UTXO's value and subscript for the sighash
// pre-image. A nil *Context means "render unsigned" (spec.md §9's
// two-pass-signing redesign): renderers must still produce a
// byte-stable placeholder script in that case.
type Context struct {
	Tx           *tx.Tx
	Vin          int
	UTXOSatoshis uint64
	Subscript    *script.Script
}

// Renderer is the sum-type interface spec.md §9 REDESIGN FLAGS calls
// for in place of the source's generator-function-plus-opts record:
// every contract kind (P2PKH, P2PK, P2MS, OpReturn, RawUnlock,
// PushTxLocking/Unlocking) is a distinct Renderer implementation.
type Renderer interface {
	Render(ctx *Context, params Params) (*script.Script, error)
}

// Contract pairs a Renderer with its Params, matching spec.md §3's
// "(mfa, opts, ...)" record with the function reference replaced by a
// tagged value. Rendering is pure over (ctx, params): the same inputs
// always produce byte-identical output.
type Contract struct {
	Renderer Renderer
	Params   Params
}

// New builds a Contract from a renderer and its parameters.
func New(r Renderer, params Params) *Contract {
	if params == nil {
		params = Params{}
	}
	return &Contract{Renderer: r, Params: params}
}

// Render compiles the contract into a Script for the given context.
func (c *Contract) Render(ctx *Context) (*script.Script, error) {
	return c.Renderer.Render(ctx, c.Params)
}

// Simulate renders the contract with no context, the "unsigned pass"
// shape used for size/fee estimation and for feeding vm.Options.Simulate
// evaluation runs (spec.md §6.2).
func (c *Contract) Simulate() (*script.Script, error) {
	return c.Render(nil)
}

// WithContext returns a shallow copy of c (same Renderer and Params);
// callers attach ctx by calling Render directly on the copy. This
// exists so "clone the contract, attach (tx, vin), re-render" (spec.md
// §4.5's two-pass signing) reads as an explicit step rather than a
// field mutation.
func (c *Contract) WithContext() *Contract {
	return &Contract{Renderer: c.Renderer, Params: c.Params}
}

// placeholderSig is the 71-byte zero signature spec.md §9 mandates for
// the unsigned render pass, keeping script byte-length stable across
// both signing passes.
var placeholderSig = make([]byte, 71)

// placeholderPreimage is the 181-byte zero pre-image placeholder
// spec.md §9 mandates for OP_PUSH_TX contracts rendered with no
// context.
var placeholderPreimage = make([]byte, 181)
