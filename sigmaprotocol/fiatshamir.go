// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigmaprotocol

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/btcsuite/ergotree/ir"
	"github.com/btcsuite/ergotree/sigma"
)

// Node prefixes of the Fiat-Shamir serialization.
const (
	internalNodePrefix = 0
	leafPrefix         = 1
)

// FiatShamirTreeBytes returns the serialization of tree hashed to obtain the
// root challenge.
//
// A leaf is the byte 1, the big-endian 16-bit length and bytes of the
// ErgoTree of its proposition, and the big-endian 16-bit length and bytes of
// its commitment.  A conjecture is the byte 0, its kind, the threshold for
// THRESHOLD nodes, the big-endian 16-bit number of children and the
// children.
func FiatShamirTreeBytes(tree ProofTree) ([]byte, error) {
	return appendFiatShamir(nil, tree)
}

func appendFiatShamir(b []byte, tree ProofTree) ([]byte, error) {
	switch t := tree.(type) {
	case *UncheckedLeaf:
		return appendLeaf(b, t.Proposition, t.Commitment)

	case *UnprovenLeaf:
		return appendLeaf(b, t.Proposition, t.Commitment)

	case *UncheckedConjecture:
		children := make([]ProofTree, len(t.Children))
		for i, c := range t.Children {
			children[i] = c
		}
		return appendConjecture(b, t.Kind, t.K, children)

	case *UnprovenConjecture:
		children := make([]ProofTree, len(t.Children))
		for i, c := range t.Children {
			children[i] = c
		}
		return appendConjecture(b, t.Kind, t.K, children)
	}

	str := fmt.Sprintf("unknown proof tree node %T", tree)
	return nil, proofError(ErrFiatShamir, str)
}

// appendLength appends n as a big-endian 16-bit length.
func appendLength(b []byte, n int, what string) ([]byte, error) {
	if n > math.MaxInt16 {
		str := fmt.Sprintf("%s of %d bytes is too long", what, n)
		return nil, proofError(ErrFiatShamir, str)
	}
	return binary.BigEndian.AppendUint16(b, uint16(n)), nil
}

func appendLeaf(b []byte, prop sigma.SigmaBoolean,
	commitment []*sigma.EcPoint) ([]byte, error) {

	if len(commitment) == 0 {
		str := fmt.Sprintf("leaf %v without a commitment", prop)
		return nil, proofError(ErrFiatShamir, str)
	}
	propBytes, err := ir.SigmaPropBytes(prop)
	if err != nil {
		return nil, proofError(ErrFiatShamir, err.Error())
	}

	b = append(b, leafPrefix)
	if b, err = appendLength(b, len(propBytes), "proposition"); err != nil {
		return nil, err
	}
	b = append(b, propBytes...)
	b, err = appendLength(b, len(commitment)*sigma.GroupSize, "commitment")
	if err != nil {
		return nil, err
	}
	for _, p := range commitment {
		b = append(b, p.Bytes()...)
	}
	return b, nil
}

func appendConjecture(b []byte, kind ConjectureKind, k uint16,
	children []ProofTree) ([]byte, error) {

	b = append(b, internalNodePrefix, byte(kind))
	if kind == ConjectureThreshold {
		b = append(b, byte(k))
	}
	b, err := appendLength(b, len(children), "children")
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		if b, err = appendFiatShamir(b, c); err != nil {
			return nil, err
		}
	}
	return b, nil
}
