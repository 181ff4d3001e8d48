// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigmaprotocol

import (
	"github.com/btcsuite/ergotree/sigma"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// simulatedCommitment returns the commitment that makes z a valid response to
// challenge e for the leaf prop.  For ProveDlog it is a = g^z·h^-e and for
// ProveDhTuple a = g^z·u^-e and b = h^z·v^-e.  The verifier recomputes the
// commitment of every leaf this way; the prover uses it to simulate leaves.
func simulatedCommitment(prop sigma.SigmaBoolean, e Challenge,
	z *secp256k1.ModNScalar) []*sigma.EcPoint {

	negE := e.scalar()
	negE.Negate()

	switch prop := prop.(type) {
	case *sigma.ProveDlog:
		a := sigma.GeneratorMult(z).Add(prop.H.ScalarMult(&negE))
		return []*sigma.EcPoint{a}

	case *sigma.ProveDhTuple:
		a := prop.G.ScalarMult(z).Add(prop.U.ScalarMult(&negE))
		b := prop.H.ScalarMult(z).Add(prop.V.ScalarMult(&negE))
		return []*sigma.EcPoint{a, b}
	}
	return nil
}

// realCommitment returns the first message of a real leaf for the nonce r:
// g^r for ProveDlog, and g^r, h^r for ProveDhTuple.
func realCommitment(prop sigma.SigmaBoolean,
	r *secp256k1.ModNScalar) []*sigma.EcPoint {

	switch prop := prop.(type) {
	case *sigma.ProveDlog:
		return []*sigma.EcPoint{sigma.GeneratorMult(r)}

	case *sigma.ProveDhTuple:
		return []*sigma.EcPoint{prop.G.ScalarMult(r), prop.H.ScalarMult(r)}
	}
	return nil
}

// computeCommitments fills in the commitment of every leaf of tree from its
// challenge and response.
func computeCommitments(tree UncheckedTree) {
	switch t := tree.(type) {
	case *UncheckedLeaf:
		t.Commitment = simulatedCommitment(t.Proposition, t.Challenge, &t.Z)

	case *UncheckedConjecture:
		for _, c := range t.Children {
			computeCommitments(c)
		}
	}
}
