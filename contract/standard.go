package contract

import (
	"bsv.dev/txlib/script"
	"bsv.dev/txlib/sighash"
)

func smallIntOp(n int) (script.Opcode, error) {
	if n == 0 {
		return script.OP_0, nil
	}
	if n < 1 || n > 16 {
		return 0, newErr(ErrParamType, "value must be representable as OP_1..OP_16")
	}
	return script.Opcode(int(script.OP_1) + n - 1), nil
}

func signInput(params Params, ctx *Context) ([]byte, error) {
	priv, err := params.GetBytes("privKey")
	if err != nil {
		return nil, err
	}
	p, err := params.GetProvider("provider")
	if err != nil {
		return nil, err
	}
	st := params.GetSighashType("sighashType", sighash.All|sighash.ForkID)
	return sighash.Sign(p, priv, ctx.Tx, ctx.Vin, ctx.Subscript, ctx.UTXOSatoshis, st)
}

// P2PKHLocking renders the standard pay-to-pubkey-hash locking script:
// OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY OP_CHECKSIG.
type P2PKHLocking struct{}

func (P2PKHLocking) Render(_ *Context, params Params) (*script.Script, error) {
	hash, err := params.GetBytes("pubKeyHash")
	if err != nil {
		return nil, err
	}
	if len(hash) != 20 {
		return nil, newErr(ErrParamType, "pubKeyHash must be 20 bytes")
	}
	return script.New(
		Op(script.OP_DUP),
		Op(script.OP_HASH160),
		Push(hash),
		Op(script.OP_EQUALVERIFY),
		Op(script.OP_CHECKSIG),
	), nil
}

// P2PKHUnlocking renders the matching unlocking script: <sig> <pubkey>.
// With ctx == nil it emits the fixed-size placeholders (spec.md §9) so
// the unsigned and signed passes have identical script length.
type P2PKHUnlocking struct{}

func (P2PKHUnlocking) Render(ctx *Context, params Params) (*script.Script, error) {
	pub, err := params.GetBytes("pubKey")
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		return script.New(Push(placeholderSig), Push(pub)), nil
	}
	sig, err := signInput(params, ctx)
	if err != nil {
		return nil, err
	}
	return script.New(Push(sig), Push(pub)), nil
}

// P2PKLocking renders <pubkey> OP_CHECKSIG.
type P2PKLocking struct{}

func (P2PKLocking) Render(_ *Context, params Params) (*script.Script, error) {
	pub, err := params.GetBytes("pubKey")
	if err != nil {
		return nil, err
	}
	return script.New(Push(pub), Op(script.OP_CHECKSIG)), nil
}

// P2PKUnlocking renders <sig>.
type P2PKUnlocking struct{}

func (P2PKUnlocking) Render(ctx *Context, params Params) (*script.Script, error) {
	if ctx == nil {
		return script.New(Push(placeholderSig)), nil
	}
	sig, err := signInput(params, ctx)
	if err != nil {
		return nil, err
	}
	return script.New(Push(sig)), nil
}

// P2MSLocking renders an m-of-n bare multisig locking script:
// OP_m <pub1>...<pubn> OP_n OP_CHECKMULTISIG.
type P2MSLocking struct{}

func (P2MSLocking) Render(_ *Context, params Params) (*script.Script, error) {
	m, err := params.GetInt64("m")
	if err != nil {
		return nil, err
	}
	pubs, err := params.GetBytesSlice("pubKeys")
	if err != nil {
		return nil, err
	}
	opM, err := smallIntOp(int(m))
	if err != nil {
		return nil, err
	}
	opN, err := smallIntOp(len(pubs))
	if err != nil {
		return nil, err
	}
	chunks := []script.Chunk{Op(opM)}
	chunks = append(chunks, PushAll(pubs...)...)
	chunks = append(chunks, Op(opN), Op(script.OP_CHECKMULTISIG))
	return script.New(chunks...), nil
}

// P2MSUnlocking renders the unlocking side of P2MS: OP_0 <sig1>...<sigm>,
// reproducing the historical extra-item OP_CHECKMULTISIG expects
// (spec.md §4.4/§8).
type P2MSUnlocking struct{}

func (P2MSUnlocking) Render(ctx *Context, params Params) (*script.Script, error) {
	privs, err := params.GetBytesSlice("privKeys")
	if err != nil {
		return nil, err
	}
	chunks := []script.Chunk{Op(script.OP_0)}
	if ctx == nil {
		for range privs {
			chunks = append(chunks, Push(placeholderSig))
		}
		return script.New(chunks...), nil
	}
	p, err := params.GetProvider("provider")
	if err != nil {
		return nil, err
	}
	st := params.GetSighashType("sighashType", sighash.All|sighash.ForkID)
	for _, priv := range privs {
		sig, err := sighash.Sign(p, priv, ctx.Tx, ctx.Vin, ctx.Subscript, ctx.UTXOSatoshis, st)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, Push(sig))
	}
	return script.New(chunks...), nil
}

// OpReturnLocking renders OP_FALSE OP_RETURN followed by each data
// pushdata in order — an unspendable, data-carrying output.
type OpReturnLocking struct{}

func (OpReturnLocking) Render(_ *Context, params Params) (*script.Script, error) {
	parts, err := params.GetBytesSlice("data")
	if err != nil {
		return nil, err
	}
	chunks := []script.Chunk{Op(script.OP_FALSE), Op(script.OP_RETURN)}
	chunks = append(chunks, PushAll(parts...)...)
	return script.New(chunks...), nil
}

// RawUnlock renders the verbatim chunk sequence supplied in params,
// for hand-built or already-compiled unlocking scripts that don't fit
// any of the standard shapes.
type RawUnlock struct{}

func (RawUnlock) Render(_ *Context, params Params) (*script.Script, error) {
	v, ok := params["chunks"]
	if !ok {
		return nil, paramNotFound("chunks")
	}
	chunks, ok := v.([]script.Chunk)
	if !ok {
		return nil, paramType("chunks", "[]script.Chunk")
	}
	return script.New(chunks...), nil
}
