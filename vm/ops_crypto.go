package vm

import (
	"bsv.dev/txlib/script"
	"bsv.dev/txlib/sighash"
)

// cryptoOps holds the hashing and signature-checking opcodes.
var cryptoOps = map[script.Opcode]func(*State){
	script.OP_RIPEMD160:           opHash(func(s *State, b []byte) []byte { h := s.Opts.Provider.RIPEMD160(b); return h[:] }),
	script.OP_SHA1:                opHash(func(s *State, b []byte) []byte { h := s.Opts.Provider.SHA1(b); return h[:] }),
	script.OP_SHA256:               opHash(func(s *State, b []byte) []byte { h := s.Opts.Provider.SHA256(b); return h[:] }),
	script.OP_HASH160:              opHash(hash160),
	script.OP_HASH256:              opHash(hash256),
	script.OP_CHECKSIG:             opCheckSig,
	script.OP_CHECKSIGVERIFY:       verified(opCheckSig),
	script.OP_CHECKMULTISIG:        opCheckMultiSig,
	script.OP_CHECKMULTISIGVERIFY:  verified(opCheckMultiSig),
}

func hash160(s *State, b []byte) []byte {
	sha := s.Opts.Provider.SHA256(b)
	r := s.Opts.Provider.RIPEMD160(sha[:])
	return r[:]
}

func hash256(s *State, b []byte) []byte {
	h1 := s.Opts.Provider.SHA256(b)
	h2 := s.Opts.Provider.SHA256(h1[:])
	return h2[:]
}

func opHash(f func(s *State, b []byte) []byte) func(*State) {
	return func(s *State) {
		a, ok := s.pop()
		if !ok {
			return
		}
		if s.Opts.Provider == nil {
			s.fail(ErrNoContext, "no crypto provider configured")
			return
		}
		s.push(f(s, a))
	}
}

func opCheckSig(s *State) {
	if !s.need(2) {
		return
	}
	pub, _ := s.pop()
	sig, _ := s.pop()

	if s.Opts.Simulate {
		s.push(boolScriptNum(true))
		return
	}
	if s.Opts.Provider == nil || s.Ctx == nil {
		s.fail(ErrNoContext, "OP_CHECKSIG requires a transaction context")
		return
	}

	ok := len(sig) > 0 && sighash.Verify(s.Opts.Provider, pub, s.Ctx.Tx, s.Ctx.Vin, s.Ctx.Subscript, s.Ctx.UTXOSatoshis, sig)
	s.push(boolScriptNum(ok))
}

// opCheckMultiSig implements OP_CHECKMULTISIG's stack contract: ...
// sig1..sigm m pub1..pubn n -> bool. Signatures must match pubkeys in
// the same relative order, with no backtracking once a pubkey has been
// consumed (spec.md §4.4). It also reproduces the historical off-by-one
// extra-item pop: an additional unused stack value is popped after the
// signature list, for wire compatibility with every script ever mined
// using this opcode.
func opCheckMultiSig(s *State) {
	nB, ok := s.pop()
	if !ok {
		return
	}
	n := script.DecodeScriptNum64(nB)
	if n < 0 || n > 20 {
		s.fail(ErrInvalidLength, "OP_CHECKMULTISIG pubkey count out of range")
		return
	}
	pubs := make([][]byte, n)
	for i := int64(0); i < n; i++ {
		p, ok := s.pop()
		if !ok {
			return
		}
		pubs[n-1-i] = p
	}

	mB, ok := s.pop()
	if !ok {
		return
	}
	m := script.DecodeScriptNum64(mB)
	if m < 0 || m > n {
		s.fail(ErrInvalidLength, "OP_CHECKMULTISIG sig count out of range")
		return
	}
	sigs := make([][]byte, m)
	for i := int64(0); i < m; i++ {
		sg, ok := s.pop()
		if !ok {
			return
		}
		sigs[m-1-i] = sg
	}

	// The classic extra, unused item CHECKMULTISIG pops due to an
	// off-by-one in the original implementation.
	if _, ok := s.pop(); !ok {
		return
	}

	if s.Opts.Simulate {
		s.push(boolScriptNum(true))
		return
	}
	if s.Opts.Provider == nil || s.Ctx == nil {
		s.fail(ErrNoContext, "OP_CHECKMULTISIG requires a transaction context")
		return
	}

	pubIdx := 0
	matched := 0
	for sigIdx := 0; sigIdx < len(sigs) && pubIdx < len(pubs); {
		sig := sigs[sigIdx]
		if len(sig) == 0 {
			sigIdx++
			continue
		}
		if sighash.Verify(s.Opts.Provider, pubs[pubIdx], s.Ctx.Tx, s.Ctx.Vin, s.Ctx.Subscript, s.Ctx.UTXOSatoshis, sig) {
			matched++
			sigIdx++
		}
		pubIdx++
	}

	s.push(boolScriptNum(matched == len(sigs)))
}
