// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigmaprotocol

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/ergotree/sigma"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// SecretSize is the size of an encoded secret.
const SecretSize = 32

// PrivateInput is a secret known to a prover.
type PrivateInput interface {
	// PublicImage returns the statement the secret proves.
	PublicImage() sigma.SigmaBoolean

	secret() *secp256k1.ModNScalar
}

// randomScalar returns a uniformly random nonzero scalar.
func randomScalar() (secp256k1.ModNScalar, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return secp256k1.ModNScalar{}, err
	}
	return priv.Key, nil
}

// DlogProverInput is the secret w of a ProveDlog statement with h = g^w.
type DlogProverInput struct {
	W secp256k1.ModNScalar
}

// NewDlogProverInput returns a random secret.
func NewDlogProverInput() (*DlogProverInput, error) {
	w, err := randomScalar()
	if err != nil {
		return nil, err
	}
	return &DlogProverInput{W: w}, nil
}

// DlogProverInputFromBytes returns the secret encoded as a 32-byte big-endian
// scalar.
func DlogProverInputFromBytes(b []byte) (*DlogProverInput, error) {
	if len(b) != SecretSize {
		str := fmt.Sprintf("secret of %d bytes, want %d", len(b),
			SecretSize)
		return nil, proofError(ErrInvalidSecret, str)
	}
	priv, _ := btcec.PrivKeyFromBytes(b)
	if priv.Key.IsZero() {
		return nil, proofError(ErrInvalidSecret,
			"secret is zero modulo the group order")
	}
	return &DlogProverInput{W: priv.Key}, nil
}

// Bytes returns the 32-byte big-endian encoding of the secret.
func (d *DlogProverInput) Bytes() []byte {
	b := d.W.Bytes()
	return b[:]
}

// PublicImage returns the ProveDlog statement g^w.
func (d *DlogProverInput) PublicImage() sigma.SigmaBoolean {
	return sigma.NewProveDlog(sigma.GeneratorMult(&d.W))
}

func (d *DlogProverInput) secret() *secp256k1.ModNScalar {
	return &d.W
}

// DhTupleProverInput is the secret w of a ProveDhTuple statement with
// u = g^w and v = h^w.
type DhTupleProverInput struct {
	W           secp256k1.ModNScalar
	CommonInput *sigma.ProveDhTuple
}

// NewDhTupleProverInput returns a random secret for a tuple over the group
// generator and a random second base.
func NewDhTupleProverInput() (*DhTupleProverInput, error) {
	w, err := randomScalar()
	if err != nil {
		return nil, err
	}
	base, err := randomScalar()
	if err != nil {
		return nil, err
	}
	g := sigma.Generator()
	h := sigma.GeneratorMult(&base)
	tuple := sigma.NewProveDhTuple(g, h, g.ScalarMult(&w), h.ScalarMult(&w))
	return &DhTupleProverInput{W: w, CommonInput: tuple}, nil
}

// PublicImage returns the ProveDhTuple statement.
func (d *DhTupleProverInput) PublicImage() sigma.SigmaBoolean {
	return d.CommonInput
}

func (d *DhTupleProverInput) secret() *secp256k1.ModNScalar {
	return &d.W
}
