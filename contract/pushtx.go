package contract

import (
	"bsv.dev/txlib/internal/encoding"
	"bsv.dev/txlib/script"
	"bsv.dev/txlib/sighash"
)

// PushTxUnlocking implements the OP_PUSH_TX unlocking half (glossary):
// it pushes the spending transaction's own forkid sighash pre-image
// onto the stack, followed by a signature over that pre-image's hash
// and the signer's pubkey, so the locking script can both verify the
// signature and inspect individual transaction fields out of the raw
// pre-image bytes via the Get* accessors below. With no context it
// emits the fixed-size placeholders spec.md §9 mandates so the script's
// byte length doesn't change between the unsigned and signed passes.
type PushTxUnlocking struct{}

func (PushTxUnlocking) Render(ctx *Context, params Params) (*script.Script, error) {
	pub, err := params.GetBytes("pubKey")
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		return script.New(Push(placeholderPreimage), Push(placeholderSig), Push(pub)), nil
	}
	priv, err := params.GetBytes("privKey")
	if err != nil {
		return nil, err
	}
	p, err := params.GetProvider("provider")
	if err != nil {
		return nil, err
	}
	st := params.GetSighashType("sighashType", sighash.All|sighash.ForkID)
	preimage, err := sighash.Preimage(p, ctx.Tx, ctx.Vin, ctx.Subscript, ctx.UTXOSatoshis, st)
	if err != nil {
		return nil, err
	}
	digest := sighash.Hash(p, preimage)
	sig, err := p.Sign(priv, digest)
	if err != nil {
		return nil, err
	}
	sigWithType := append(append([]byte(nil), []byte(sig)...), byte(st))
	return script.New(Push(preimage), Push(sigWithType), Push(pub)), nil
}

// PushTxLocking implements the covenant base case: it drops the
// unlocking script's untrusted pubkey, supplies its own known-good one,
// and checks the buried signature against it. OP_CHECKSIG verifies
// against this transaction's own sighash (computed from the VM's
// (tx, vin, subscript) context, not read off the stack), so a passing
// check proves sigWithType signs the real spend; the pre-image it was
// built from is left on top of the stack for covenant-specific field
// checks to run against.
type PushTxLocking struct{}

func (PushTxLocking) Render(_ *Context, params Params) (*script.Script, error) {
	pub, err := params.GetBytes("pubKey")
	if err != nil {
		return nil, err
	}
	return script.New(CheckTx(pub)...), nil
}

// CheckTx is the push-tx locking-side check as a standalone combinator
// (spec.md §9's push-tx helper family), for covenants that compose it
// into a larger locking script rather than using PushTxLocking alone.
// Stack before: [..., preimage, sigWithType, pub] (bottom to top, pub
// being the untrusted copy PushTxUnlocking pushed). Stack after: [...,
// preimage] — OP_CHECKSIGVERIFY aborts the script on a bad signature.
func CheckTx(pubKey []byte) []script.Chunk {
	return []script.Chunk{
		Op(script.OP_DROP),
		Push(pubKey),
		Op(script.OP_CHECKSIGVERIFY),
	}
}

// CheckTxOpt is CheckTx's non-aborting form: OP_CHECKSIG in place of
// OP_CHECKSIGVERIFY, so a failed check leaves a false on the stack
// (above the pre-image) instead of terminating the script, letting a
// covenant branch on the result itself.
func CheckTxOpt(pubKey []byte) []script.Chunk {
	return []script.Chunk{
		Op(script.OP_DROP),
		Push(pubKey),
		Op(script.OP_CHECKSIG),
	}
}

// The forkid pre-image's fixed-offset fields (spec.md §4.3): everything
// up to scriptCode is fixed width; scriptCode itself is VarInt-prefixed
// and variable length, so value/sequence/hashOutputs/lockTime are
// addressed relative to the end of the scriptCode field instead.
const (
	preimageVersionOff      = 0
	preimageHashPrevoutsOff = 4
	preimageHashSequenceOff = 36
	preimageOutpointOff     = 68
	preimageOutpointLen     = 36
	preimageScriptCodeOff   = 104
)

// GetVersion returns the 4-byte version field from a pre-image.
func GetVersion(preimage []byte) []byte { return Slice(preimage, preimageVersionOff, 4) }

// GetHashPrevouts returns the 32-byte hash_prevouts field.
func GetHashPrevouts(preimage []byte) []byte { return Slice(preimage, preimageHashPrevoutsOff, 32) }

// GetHashSequence returns the 32-byte hash_sequence field.
func GetHashSequence(preimage []byte) []byte { return Slice(preimage, preimageHashSequenceOff, 32) }

// GetOutpoint returns the 36-byte (hash || vout) outpoint field.
func GetOutpoint(preimage []byte) []byte {
	return Slice(preimage, preimageOutpointOff, preimageOutpointLen)
}

// GetScriptCode returns the VarInt-prefixed scriptCode field's payload
// (without its length prefix).
func GetScriptCode(preimage []byte) ([]byte, error) {
	if len(preimage) < preimageScriptCodeOff {
		return nil, newErr(ErrTruncated, "pre-image shorter than scriptCode offset")
	}
	return TrimVarInt(preimage[preimageScriptCodeOff:])
}

func scriptCodeWireLen(preimage []byte) (int, error) {
	n, _, err := encoding.DecodeVarInt(preimage[preimageScriptCodeOff:])
	if err != nil {
		return 0, err
	}
	return encoding.VarIntLen(n) + int(n), nil
}

// GetValue returns the 8-byte satoshi value field.
func GetValue(preimage []byte) ([]byte, error) {
	l, err := scriptCodeWireLen(preimage)
	if err != nil {
		return nil, err
	}
	return Slice(preimage, preimageScriptCodeOff+l, 8), nil
}

// GetSequence returns the 4-byte input sequence field.
func GetSequence(preimage []byte) ([]byte, error) {
	l, err := scriptCodeWireLen(preimage)
	if err != nil {
		return nil, err
	}
	return Slice(preimage, preimageScriptCodeOff+l+8, 4), nil
}

// GetHashOutputs returns the 32-byte hash_outputs field.
func GetHashOutputs(preimage []byte) ([]byte, error) {
	l, err := scriptCodeWireLen(preimage)
	if err != nil {
		return nil, err
	}
	return Slice(preimage, preimageScriptCodeOff+l+8+4, 32), nil
}

// GetLockTime returns the 4-byte lock_time field.
func GetLockTime(preimage []byte) ([]byte, error) {
	l, err := scriptCodeWireLen(preimage)
	if err != nil {
		return nil, err
	}
	return Slice(preimage, preimageScriptCodeOff+l+8+4+32, 4), nil
}
