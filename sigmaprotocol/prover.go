// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigmaprotocol

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/ergotree/internal/gf2192"
	"github.com/btcsuite/ergotree/interpreter"
	"github.com/btcsuite/ergotree/ir"
	"github.com/btcsuite/ergotree/sigma"
)

// Prover produces proofs of statements using the secrets it holds.
type Prover struct {
	secrets []PrivateInput
}

// NewProver returns a prover holding secrets.
func NewProver(secrets ...PrivateInput) *Prover {
	return &Prover{secrets: secrets}
}

// ProverResult is a spending proof together with the outcome of the
// reduction it proves.
type ProverResult struct {
	// Proof is the serialized proof.  It is empty when the script reduced
	// to true.
	Proof []byte

	// Cost is the cost of reducing the script.
	Cost uint64

	// Diag carries the diagnostics of the reduction.
	Diag interpreter.Diagnostics
}

// Prove reduces the script of tree in ctx and proves the resulting statement
// for message.
func (p *Prover) Prove(tree *ir.ErgoTree, ctx *interpreter.Context,
	message []byte) (*ProverResult, error) {

	expr, err := tree.Proposition()
	if err != nil {
		return nil, proofError(ErrReduction, err.Error())
	}
	red, err := interpreter.ReduceToCrypto(expr, ctx)
	if err != nil {
		return nil, err
	}
	proof, err := p.Sign(red.SigmaProp, message)
	if err != nil {
		return nil, err
	}
	return &ProverResult{Proof: proof, Cost: red.Cost, Diag: red.Diag}, nil
}

// Sign proves sb for message.  A trivially true statement has an empty proof
// and a trivially false one cannot be proven.
//
// The prover marks the nodes it can prove with its secrets as real and
// simulates the proofs of all others, commits to every leaf, derives the
// root challenge from the Fiat-Shamir hash of the tree and the message, and
// then distributes the challenge to the real nodes and computes their
// responses.
func (p *Prover) Sign(sb sigma.SigmaBoolean, message []byte) ([]byte, error) {
	if b, ok := sigma.IsTrivial(sb); ok {
		if b {
			return []byte{}, nil
		}
		return nil, proofError(ErrProverNoRealRoot,
			"statement is trivially false")
	}

	root, err := unprovenTree(sb)
	if err != nil {
		return nil, err
	}
	p.markReal(root)
	if root.isSimulated() {
		str := fmt.Sprintf("the known secrets do not prove %v", sb)
		return nil, proofError(ErrProverNoRealRoot, str)
	}
	polishSimulated(root)
	if err := simulateAndCommit(root); err != nil {
		return nil, err
	}

	b, err := FiatShamirTreeBytes(root)
	if err != nil {
		return nil, err
	}
	log.Tracef("Fiat-Shamir tree bytes %v", newLogClosure(func() string {
		return hex.EncodeToString(b)
	}))
	root.setChallenge(FiatShamirHash(append(b, message...)))

	proven, err := p.prove(root)
	if err != nil {
		return nil, err
	}
	return serializeSig(proven), nil
}

// unprovenTree converts a statement into an unproven tree with every node
// marked real.
func unprovenTree(sb sigma.SigmaBoolean) (UnprovenTree, error) {
	if isLeaf(sb) {
		return &UnprovenLeaf{Proposition: sb}, nil
	}
	kind, k, children, ok := conjecture(sb)
	if !ok {
		return nil, unexpectedNode(sb)
	}
	if err := checkConjecture(kind, k, children); err != nil {
		return nil, err
	}
	node := &UnprovenConjecture{
		Kind:     kind,
		K:        k,
		Children: make([]UnprovenTree, len(children)),
	}
	for i, child := range children {
		c, err := unprovenTree(child)
		if err != nil {
			return nil, err
		}
		node.Children[i] = c
	}
	return node, nil
}

// secretFor returns the secret proving the leaf statement prop.
func (p *Prover) secretFor(prop sigma.SigmaBoolean) PrivateInput {
	for _, s := range p.secrets {
		if sigma.Equal(s.PublicImage(), prop) {
			return s
		}
	}
	return nil
}

// markReal marks bottom up the nodes the prover can prove.  A leaf is real
// when its secret is known, an AND node when all its children are real, an
// OR node when one is and a THRESHOLD node when at least k are.
func (p *Prover) markReal(tree UnprovenTree) {
	switch t := tree.(type) {
	case *UnprovenLeaf:
		t.Simulated = p.secretFor(t.Proposition) == nil

	case *UnprovenConjecture:
		numReal := 0
		for _, c := range t.Children {
			p.markReal(c)
			if !c.isSimulated() {
				numReal++
			}
		}
		switch t.Kind {
		case ConjectureAnd:
			t.Simulated = numReal < len(t.Children)
		case ConjectureOr:
			t.Simulated = numReal == 0
		case ConjectureThreshold:
			t.Simulated = numReal < int(t.K)
		}
	}
}

// polishSimulated keeps top down only as many real children as needed: one
// for an OR node and k for a THRESHOLD node.  The children of a simulated
// node are all simulated.
func polishSimulated(tree UnprovenTree) {
	t, ok := tree.(*UnprovenConjecture)
	if !ok {
		return
	}

	keep := 0
	switch {
	case t.Simulated:
	case t.Kind == ConjectureAnd:
		keep = len(t.Children)
	case t.Kind == ConjectureOr:
		keep = 1
	case t.Kind == ConjectureThreshold:
		keep = int(t.K)
	}
	for _, c := range t.Children {
		if keep > 0 && !c.isSimulated() {
			keep--
		} else {
			c.setSimulated(true)
		}
		polishSimulated(c)
	}
}

// randomPoly returns a random polynomial of the given degree whose constant
// term is at0.
func randomPoly(at0 gf2192.Element, degree int) (*gf2192.Poly, error) {
	coeffs := make([]gf2192.Element, degree+1)
	coeffs[0] = at0
	for i := 1; i <= degree; i++ {
		c, err := randomChallenge()
		if err != nil {
			return nil, err
		}
		coeffs[i] = c.element()
	}
	return gf2192.NewPoly(coeffs), nil
}

// simulateAndCommit assigns top down the challenges of simulated nodes and
// computes the commitment of every leaf.  Simulated children of a real node
// get random challenges.  The children of a simulated node share its
// challenge according to the connective.
func simulateAndCommit(tree UnprovenTree) error {
	switch t := tree.(type) {
	case *UnprovenLeaf:
		if !t.Simulated {
			r, err := randomScalar()
			if err != nil {
				return err
			}
			t.nonce = r
			t.Commitment = realCommitment(t.Proposition, &t.nonce)
			return nil
		}
		if !t.hasChallenge {
			return proofError(ErrTreeShape,
				"simulated leaf without a challenge")
		}
		z, err := randomScalar()
		if err != nil {
			return err
		}
		t.z = z
		t.Commitment = simulatedCommitment(t.Proposition, t.Challenge, &t.z)
		return nil

	case *UnprovenConjecture:
		if err := shareSimulatedChallenges(t); err != nil {
			return err
		}
		for _, c := range t.Children {
			if err := simulateAndCommit(c); err != nil {
				return err
			}
		}
	}
	return nil
}

func shareSimulatedChallenges(t *UnprovenConjecture) error {
	if !t.Simulated {
		for _, c := range t.Children {
			if !c.isSimulated() {
				continue
			}
			ch, err := randomChallenge()
			if err != nil {
				return err
			}
			c.setChallenge(ch)
		}
		return nil
	}

	if !t.hasChallenge {
		return proofError(ErrTreeShape,
			"simulated conjecture without a challenge")
	}
	switch t.Kind {
	case ConjectureAnd:
		for _, c := range t.Children {
			c.setChallenge(t.Challenge)
		}

	case ConjectureOr:
		last := t.Challenge
		for _, c := range t.Children[:len(t.Children)-1] {
			ch, err := randomChallenge()
			if err != nil {
				return err
			}
			c.setChallenge(ch)
			last = last.Xor(ch)
		}
		t.Children[len(t.Children)-1].setChallenge(last)

	case ConjectureThreshold:
		degree := len(t.Children) - int(t.K)
		poly, err := randomPoly(t.Challenge.element(), degree)
		if err != nil {
			return err
		}
		t.Poly = poly
		for i, c := range t.Children {
			e := poly.Evaluate(byte(i + 1))
			c.setChallenge(challengeFromElement(e))
		}
	}
	return nil
}

// prove distributes top down the challenge of each real node to its real
// children, computes the responses of the real leaves and returns the
// resulting proof tree.
func (p *Prover) prove(tree UnprovenTree) (UncheckedTree, error) {
	switch t := tree.(type) {
	case *UnprovenLeaf:
		leaf := &UncheckedLeaf{
			Proposition: t.Proposition,
			Challenge:   t.Challenge,
			Commitment:  t.Commitment,
		}
		if t.Simulated {
			leaf.Z = t.z
			return leaf, nil
		}
		s := p.secretFor(t.Proposition)
		if s == nil {
			str := fmt.Sprintf("no secret for %v", t.Proposition)
			return nil, proofError(ErrProverMissingSecret, str)
		}
		// z = r + e·w mod q.
		e := t.Challenge.scalar()
		leaf.Z.Mul2(&e, s.secret()).Add(&t.nonce)
		return leaf, nil

	case *UnprovenConjecture:
		if !t.Simulated {
			if err := shareRealChallenge(t); err != nil {
				return nil, err
			}
		}
		node := &UncheckedConjecture{
			Kind:      t.Kind,
			K:         t.K,
			Challenge: t.Challenge,
			Children:  make([]UncheckedTree, len(t.Children)),
			Poly:      t.Poly,
		}
		for i, c := range t.Children {
			child, err := p.prove(c)
			if err != nil {
				return nil, err
			}
			node.Children[i] = child
		}
		return node, nil
	}

	str := fmt.Sprintf("unknown unproven node %T", tree)
	return nil, proofError(ErrTreeShape, str)
}

// shareRealChallenge assigns the challenges of the real children of a real
// node.  Under AND they get the challenge of the node, under OR the real
// child gets the xor of the node and simulated challenges, and under
// THRESHOLD they take the values of the polynomial through the node and
// simulated challenges.
func shareRealChallenge(t *UnprovenConjecture) error {
	switch t.Kind {
	case ConjectureAnd:
		for _, c := range t.Children {
			c.setChallenge(t.Challenge)
		}

	case ConjectureOr:
		e := t.Challenge
		for _, c := range t.Children {
			if c.isSimulated() {
				e = e.Xor(challengeOf(c))
			}
		}
		for _, c := range t.Children {
			if !c.isSimulated() {
				c.setChallenge(e)
			}
		}

	case ConjectureThreshold:
		var points []byte
		var values []gf2192.Element
		for i, c := range t.Children {
			if c.isSimulated() {
				points = append(points, byte(i+1))
				values = append(values, challengeOf(c).element())
			}
		}
		poly, err := gf2192.Interpolate(points, values,
			t.Challenge.element())
		if err != nil {
			return proofError(ErrTreeShape, err.Error())
		}
		t.Poly = poly
		for i, c := range t.Children {
			if !c.isSimulated() {
				e := poly.Evaluate(byte(i + 1))
				c.setChallenge(challengeFromElement(e))
			}
		}
	}
	return nil
}

// challengeOf returns the challenge assigned to an unproven node.
func challengeOf(tree UnprovenTree) Challenge {
	switch t := tree.(type) {
	case *UnprovenLeaf:
		return t.Challenge
	case *UnprovenConjecture:
		return t.Challenge
	}
	return Challenge{}
}
