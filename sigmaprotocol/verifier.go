// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigmaprotocol

import (
	"github.com/btcsuite/ergotree/interpreter"
	"github.com/btcsuite/ergotree/ir"
	"github.com/btcsuite/ergotree/sigma"
)

// Config is a descriptor which specifies the verifier instance
// configuration.
type Config struct {
	// ProofCache, when set, is consulted before checking a signature and
	// records every signature that verifies.
	ProofCache *ProofCache
}

// Verifier checks proofs produced by a Prover.  A Verifier holds no state
// besides its optional cache and may be used concurrently.
type Verifier struct {
	cache *ProofCache
}

// NewVerifier returns a verifier using the given configuration.  A nil
// config is allowed.
func NewVerifier(cfg *Config) *Verifier {
	v := &Verifier{}
	if cfg != nil {
		v.cache = cfg.ProofCache
	}
	return v
}

// VerificationResult is the outcome of verifying a spending proof.
type VerificationResult struct {
	// Result reports whether the proof satisfies the script.
	Result bool

	// Cost is the cost of reducing the script.
	Cost uint64

	// Diag carries the diagnostics of the reduction.
	Diag interpreter.Diagnostics
}

// Verify reduces the script of tree in ctx to a statement and checks that
// proof proves it for message.  A trivial statement is its own result and
// the proof is not looked at.  Otherwise an empty proof is false.
//
// Evaluation errors are returned unchanged.  A proof that is well formed but
// does not verify is a false result, not an error.
func (v *Verifier) Verify(tree *ir.ErgoTree, ctx *interpreter.Context,
	proof, message []byte) (*VerificationResult, error) {

	expr, err := tree.Proposition()
	if err != nil {
		return nil, proofError(ErrReduction, err.Error())
	}
	red, err := interpreter.ReduceToCrypto(expr, ctx)
	if err != nil {
		return nil, err
	}

	ok, err := v.VerifySignature(red.SigmaProp, message, proof)
	if err != nil {
		return nil, err
	}
	return &VerificationResult{
		Result: ok,
		Cost:   red.Cost,
		Diag:   red.Diag,
	}, nil
}

// VerifySignature checks that signature proves sb for message without
// evaluating any script.
func (v *Verifier) VerifySignature(sb sigma.SigmaBoolean, message,
	signature []byte) (bool, error) {

	if b, ok := sigma.IsTrivial(sb); ok {
		return b, nil
	}
	if len(signature) == 0 {
		return false, nil
	}
	if v.cache != nil && v.cache.Contains(sb, message, signature) {
		log.Tracef("Proof cache hit for %v", sb)
		return true, nil
	}

	tree, err := ParseSigBytes(sb, signature)
	if err != nil {
		return false, err
	}
	ok, err := checkCommitments(tree, message)
	if err != nil {
		return false, err
	}
	log.Debugf("Verified proof for %v: %v", sb, ok)
	if ok && v.cache != nil {
		v.cache.Add(sb, message, signature)
	}
	return ok, nil
}

// checkCommitments recomputes the commitments of tree and compares the
// Fiat-Shamir hash of the tree and message with the root challenge.
func checkCommitments(tree UncheckedTree, message []byte) (bool, error) {
	computeCommitments(tree)
	b, err := FiatShamirTreeBytes(tree)
	if err != nil {
		return false, err
	}
	expected := FiatShamirHash(append(b, message...))
	log.Tracef("Root challenge %v, expected %v", rootChallenge(tree),
		expected)
	return rootChallenge(tree) == expected, nil
}

// VerifySignature checks signature against sb and message with a verifier
// without a cache.
func VerifySignature(sb sigma.SigmaBoolean, message,
	signature []byte) (bool, error) {

	return NewVerifier(nil).VerifySignature(sb, message, signature)
}
