// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigmaprotocol

import (
	"fmt"

	"github.com/btcsuite/ergotree/internal/gf2192"
	"github.com/btcsuite/ergotree/sigma"
	"github.com/btcsuite/ergotree/wire"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// responseSize is the size of the response z of a leaf.
const responseSize = 32

// serializeSig returns the proof bytes of tree.
//
// The root challenge comes first.  A leaf is followed by its response.  The
// children of an AND node share the challenge of their parent, so none is
// written for them.  Every child of an OR node but the last is preceded by
// its challenge, the last one is recovered by xor.  A THRESHOLD node writes
// the coefficients of its challenge polynomial above the constant term,
// which is the challenge of the node.
func serializeSig(tree UncheckedTree) []byte {
	return appendSig(nil, tree, true)
}

func appendSig(b []byte, tree UncheckedTree, withChallenge bool) []byte {
	switch t := tree.(type) {
	case *UncheckedLeaf:
		if withChallenge {
			b = append(b, t.Challenge[:]...)
		}
		z := t.Z.Bytes()
		return append(b, z[:]...)

	case *UncheckedConjecture:
		if withChallenge {
			b = append(b, t.Challenge[:]...)
		}
		switch t.Kind {
		case ConjectureOr:
			for i, c := range t.Children {
				b = appendSig(b, c, i != len(t.Children)-1)
			}
			return b

		case ConjectureThreshold:
			b = append(b, t.Poly.Bytes(false)...)
		}
		for _, c := range t.Children {
			b = appendSig(b, c, false)
		}
	}
	return b
}

// sigParsingError converts a read failure into ErrSigParsing.
func sigParsingError(what string, err error) error {
	str := fmt.Sprintf("proof too short reading %s: %v", what, err)
	return proofError(ErrSigParsing, str)
}

// ParseSigBytes parses proof against the shape of the statement sb and
// computes the challenges of every node.  Bytes after the proof are ignored.
func ParseSigBytes(sb sigma.SigmaBoolean, proof []byte) (UncheckedTree, error) {
	r := wire.NewReader(proof)
	b, err := r.ReadBytes(ChallengeSize)
	if err != nil {
		return nil, sigParsingError("the root challenge", err)
	}
	var c Challenge
	copy(c[:], b)

	tree, err := parseSig(r, sb, c)
	if err != nil {
		return nil, err
	}
	if r.Remaining() > 0 {
		log.Tracef("Ignoring %d trailing proof bytes", r.Remaining())
	}
	return tree, nil
}

func readChallenge(r *wire.Reader) (Challenge, error) {
	var c Challenge
	b, err := r.ReadBytes(ChallengeSize)
	if err != nil {
		return c, sigParsingError("a challenge", err)
	}
	copy(c[:], b)
	return c, nil
}

func parseSig(r *wire.Reader, sb sigma.SigmaBoolean,
	c Challenge) (UncheckedTree, error) {

	if isLeaf(sb) {
		b, err := r.ReadBytes(responseSize)
		if err != nil {
			return nil, sigParsingError("a response", err)
		}
		var z secp256k1.ModNScalar
		if overflow := z.SetByteSlice(b); overflow {
			return nil, proofError(ErrSigParsing,
				"response exceeds the group order")
		}
		return &UncheckedLeaf{Proposition: sb, Challenge: c, Z: z}, nil
	}

	kind, k, children, ok := conjecture(sb)
	if !ok {
		return nil, unexpectedNode(sb)
	}
	if err := checkConjecture(kind, k, children); err != nil {
		return nil, err
	}

	node := &UncheckedConjecture{
		Kind:      kind,
		K:         k,
		Challenge: c,
		Children:  make([]UncheckedTree, len(children)),
	}
	if kind == ConjectureThreshold {
		degree := len(children) - int(k)
		b, err := r.ReadBytes(degree * gf2192.ElementSize)
		if err != nil {
			return nil, sigParsingError("a challenge polynomial", err)
		}
		node.Poly, err = gf2192.PolyFromBytes(c.element(), degree, b)
		if err != nil {
			return nil, proofError(ErrSigParsing, err.Error())
		}
	}

	last := c
	for i, child := range children {
		var childChallenge Challenge
		switch kind {
		case ConjectureAnd:
			childChallenge = c

		case ConjectureOr:
			if i == len(children)-1 {
				childChallenge = last
				break
			}
			var err error
			if childChallenge, err = readChallenge(r); err != nil {
				return nil, err
			}
			last = last.Xor(childChallenge)

		case ConjectureThreshold:
			e := node.Poly.Evaluate(byte(i + 1))
			childChallenge = challengeFromElement(e)
		}

		tree, err := parseSig(r, child, childChallenge)
		if err != nil {
			return nil, err
		}
		node.Children[i] = tree
	}
	return node, nil
}
