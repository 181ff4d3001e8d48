// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigmaprotocol

import (
	"fmt"
	"math"

	"github.com/btcsuite/ergotree/internal/gf2192"
	"github.com/btcsuite/ergotree/sigma"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ConjectureKind identifies the connective of a conjecture node.  The values
// are the type bytes of the Fiat-Shamir serialization.
type ConjectureKind uint8

// Conjecture kinds.
const (
	ConjectureAnd       ConjectureKind = 0
	ConjectureOr        ConjectureKind = 1
	ConjectureThreshold ConjectureKind = 2
)

// String returns the name of the connective.
func (k ConjectureKind) String() string {
	switch k {
	case ConjectureAnd:
		return "AND"
	case ConjectureOr:
		return "OR"
	case ConjectureThreshold:
		return "THRESHOLD"
	}
	return fmt.Sprintf("ConjectureKind(%d)", uint8(k))
}

// maxConjectureChildren is the largest number of children of a conjecture.
// Threshold children are addressed by a single byte polynomial point.
const maxConjectureChildren = math.MaxUint8

// ProofTree is a node of a proof tree, either an UnprovenTree built by the
// prover or an UncheckedTree read by the verifier.  Both are serialized the
// same way for the Fiat-Shamir hash.
type ProofTree interface {
	proofTree()
}

// UncheckedTree is a node of a proof tree whose challenges and responses
// have been parsed from proof bytes or produced by the prover but not yet
// checked against the Fiat-Shamir hash.
type UncheckedTree interface {
	ProofTree
	uncheckedTree()
}

// UncheckedLeaf is the proof of a ProveDlog (Schnorr) or ProveDhTuple leaf.
type UncheckedLeaf struct {
	Proposition sigma.SigmaBoolean
	Challenge   Challenge
	Z           secp256k1.ModNScalar

	// Commitment is a for a Schnorr proof and a, b for a Diffie-Hellman
	// tuple proof.  It is nil until computed from the challenge and the
	// response.
	Commitment []*sigma.EcPoint
}

// UncheckedConjecture is the proof of an AND, OR or THRESHOLD node.
type UncheckedConjecture struct {
	Kind      ConjectureKind
	K         uint16
	Challenge Challenge
	Children  []UncheckedTree

	// Poly shares the challenge among the children of a threshold node.
	Poly *gf2192.Poly
}

func (*UncheckedLeaf) proofTree()           {}
func (*UncheckedLeaf) uncheckedTree()       {}
func (*UncheckedConjecture) proofTree()     {}
func (*UncheckedConjecture) uncheckedTree() {}

// rootChallenge returns the challenge of the root of tree.
func rootChallenge(tree UncheckedTree) Challenge {
	switch t := tree.(type) {
	case *UncheckedLeaf:
		return t.Challenge
	case *UncheckedConjecture:
		return t.Challenge
	}
	return Challenge{}
}

// UnprovenTree is a node of the tree the prover builds from a statement.
type UnprovenTree interface {
	ProofTree
	isSimulated() bool
	setSimulated(bool)
	setChallenge(Challenge)
}

// UnprovenLeaf is a ProveDlog or ProveDhTuple leaf being proven.
type UnprovenLeaf struct {
	Proposition sigma.SigmaBoolean

	// Simulated is set for leaves whose proof is simulated, either because
	// the secret is unknown or because the leaf is not needed.
	Simulated bool

	Challenge    Challenge
	hasChallenge bool

	// Commitment is a for a Schnorr proof and a, b for a Diffie-Hellman
	// tuple proof.
	Commitment []*sigma.EcPoint

	// nonce is the randomness r of a real leaf, z is the chosen response
	// of a simulated one.
	nonce secp256k1.ModNScalar
	z     secp256k1.ModNScalar
}

// UnprovenConjecture is an AND, OR or THRESHOLD node being proven.
type UnprovenConjecture struct {
	Kind      ConjectureKind
	K         uint16
	Simulated bool
	Children  []UnprovenTree

	Challenge    Challenge
	hasChallenge bool
	Poly         *gf2192.Poly
}

func (*UnprovenLeaf) proofTree() {}

func (l *UnprovenLeaf) isSimulated() bool { return l.Simulated }

func (l *UnprovenLeaf) setSimulated(s bool) { l.Simulated = s }

func (l *UnprovenLeaf) setChallenge(c Challenge) {
	l.Challenge, l.hasChallenge = c, true
}

func (*UnprovenConjecture) proofTree() {}

func (c *UnprovenConjecture) isSimulated() bool { return c.Simulated }

func (c *UnprovenConjecture) setSimulated(s bool) { c.Simulated = s }

func (c *UnprovenConjecture) setChallenge(ch Challenge) {
	c.Challenge, c.hasChallenge = ch, true
}

// conjecture returns the connective, threshold and children of a conjecture
// statement.  It returns false for leaves and trivial statements.
func conjecture(sb sigma.SigmaBoolean) (ConjectureKind, uint16,
	[]sigma.SigmaBoolean, bool) {

	switch sb := sb.(type) {
	case *sigma.CAnd:
		return ConjectureAnd, 0, sb.Children, true
	case *sigma.COr:
		return ConjectureOr, 0, sb.Children, true
	case *sigma.CThreshold:
		return ConjectureThreshold, sb.K, sb.Children, true
	}
	return 0, 0, nil, false
}

// isLeaf reports whether sb is a proposition with a sigma protocol of its
// own.
func isLeaf(sb sigma.SigmaBoolean) bool {
	switch sb.(type) {
	case *sigma.ProveDlog, *sigma.ProveDhTuple:
		return true
	}
	return false
}

// checkConjecture validates the shape of a conjecture statement.
func checkConjecture(kind ConjectureKind, k uint16,
	children []sigma.SigmaBoolean) error {

	if len(children) < 2 || len(children) > maxConjectureChildren {
		str := fmt.Sprintf("%v conjecture with %d children", kind,
			len(children))
		return proofError(ErrTreeShape, str)
	}
	if kind == ConjectureThreshold && (k == 0 || int(k) > len(children)) {
		str := fmt.Sprintf("threshold %d of %d children", k,
			len(children))
		return proofError(ErrTreeShape, str)
	}
	return nil
}

// unexpectedNode returns the error for a statement that has no place in a
// proof tree.
func unexpectedNode(sb sigma.SigmaBoolean) error {
	str := fmt.Sprintf("statement %v cannot be part of a proof tree", sb)
	return proofError(ErrTreeShape, str)
}
