// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigmaprotocol

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/btcsuite/ergotree/internal/gf2192"
	"github.com/btcsuite/ergotree/ir"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ChallengeSize is the size of a challenge in bytes.  It is below the size of
// the group order, so every challenge is a valid scalar.
const ChallengeSize = 24

// Challenge is the verifier's challenge of a sigma protocol, derived with the
// Fiat-Shamir heuristic.
type Challenge [ChallengeSize]byte

// String returns the challenge as hex.
func (c Challenge) String() string {
	return hex.EncodeToString(c[:])
}

// Xor returns c xor o.
func (c Challenge) Xor(o Challenge) Challenge {
	var r Challenge
	for i := range r {
		r[i] = c[i] ^ o[i]
	}
	return r
}

// scalar returns the challenge as a big-endian scalar.
func (c Challenge) scalar() secp256k1.ModNScalar {
	var s secp256k1.ModNScalar
	s.SetByteSlice(c[:])
	return s
}

// element returns the challenge as an element of GF(2^192).
func (c Challenge) element() gf2192.Element {
	e, _ := gf2192.FromBytes(c[:])
	return e
}

// challengeFromElement is the inverse of element.
func challengeFromElement(e gf2192.Element) Challenge {
	var c Challenge
	e.PutBytes(c[:])
	return c
}

// randomChallenge returns a uniformly random challenge.
func randomChallenge() (Challenge, error) {
	var c Challenge
	_, err := rand.Read(c[:])
	return c, err
}

// FiatShamirHash returns the challenge for the serialized proof tree and
// message b, the first 24 bytes of its blake2b-256 digest.
func FiatShamirHash(b []byte) Challenge {
	var c Challenge
	d := ir.Blake2b256(b)
	copy(c[:], d[:])
	return c
}
