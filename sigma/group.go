// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigma

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/btcsuite/ergotree/wire"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// GroupSize is the length of a serialized group element.
const GroupSize = 33

// groupOrder is the order n of the secp256k1 group.
var groupOrder, _ = new(big.Int).SetString("fffffffffffffffffffffffffff"+
	"ffffebaaedce6af48a03bbfd25e8cd0364141", 16)

// GroupOrder returns a copy of the order of the group.
func GroupOrder() *big.Int {
	return new(big.Int).Set(groupOrder)
}

// EcPoint is an element of the secp256k1 group, including the identity.
// Points are immutable; every operation returns a new point.
type EcPoint struct {
	// p is in affine form (Z = 1), or all zero for the identity.
	p        secp256k1.JacobianPoint
	identity bool
}

// Identity returns the identity element of the group.
func Identity() *EcPoint {
	return &EcPoint{identity: true}
}

// Generator returns the standard generator of the group.
func Generator() *EcPoint {
	var one secp256k1.ModNScalar
	one.SetInt(1)
	return GeneratorMult(&one)
}

// fromJacobian normalizes a Jacobian result into an EcPoint.
func fromJacobian(j *secp256k1.JacobianPoint) *EcPoint {
	if j.Z.IsZero() || (j.X.IsZero() && j.Y.IsZero()) {
		return Identity()
	}
	var r EcPoint
	r.p.Set(j)
	r.p.ToAffine()
	return &r
}

// ParseEcPoint decodes a compressed point.  Thirty-three zero bytes decode to
// the identity.
func ParseEcPoint(b []byte) (*EcPoint, error) {
	if len(b) != GroupSize {
		str := fmt.Sprintf("group element must be %d bytes, got %d",
			GroupSize, len(b))
		return nil, sigmaError(ErrInvalidPoint, str)
	}
	if bytes.Equal(b, make([]byte, GroupSize)) {
		return Identity(), nil
	}
	if b[0] != secp256k1.PubKeyFormatCompressedEven &&
		b[0] != secp256k1.PubKeyFormatCompressedOdd {

		str := fmt.Sprintf("group element has invalid prefix 0x%02x", b[0])
		return nil, sigmaError(ErrInvalidPoint, str)
	}
	pk, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, sigmaError(ErrInvalidPoint, err.Error())
	}
	var j secp256k1.JacobianPoint
	pk.AsJacobian(&j)
	return fromJacobian(&j), nil
}

// ReadEcPoint reads a compressed point from r.
func ReadEcPoint(r *wire.Reader) (*EcPoint, error) {
	b, err := r.ReadBytes(GroupSize)
	if err != nil {
		return nil, err
	}
	return ParseEcPoint(b)
}

// MustParseEcPointHex decodes a hex encoded point and panics on failure.  It
// is only intended for hard coded values.
func MustParseEcPointHex(s string) *EcPoint {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	p, err := ParseEcPoint(b)
	if err != nil {
		panic(err)
	}
	return p
}

// Bytes returns the 33 byte compressed encoding of the point.
func (e *EcPoint) Bytes() []byte {
	if e.identity {
		return make([]byte, GroupSize)
	}
	x, y := e.p.X, e.p.Y
	x.Normalize()
	y.Normalize()
	return secp256k1.NewPublicKey(&x, &y).SerializeCompressed()
}

// Write writes the compressed encoding of the point to w.
func (e *EcPoint) Write(w *wire.Writer) {
	w.PutBytes(e.Bytes())
}

// IsIdentity returns whether e is the identity element.
func (e *EcPoint) IsIdentity() bool {
	return e.identity
}

// Equal returns whether e and o are the same group element.
func (e *EcPoint) Equal(o *EcPoint) bool {
	return bytes.Equal(e.Bytes(), o.Bytes())
}

// String returns the hex encoding of the point.
func (e *EcPoint) String() string {
	return hex.EncodeToString(e.Bytes())
}

// Add returns e * o in multiplicative notation.
func (e *EcPoint) Add(o *EcPoint) *EcPoint {
	switch {
	case e.identity:
		return o
	case o.identity:
		return e
	}
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&e.p, &o.p, &r)
	return fromJacobian(&r)
}

// Negate returns the inverse of e.
func (e *EcPoint) Negate() *EcPoint {
	if e.identity {
		return e
	}
	var r EcPoint
	r.p.Set(&e.p)
	r.p.Y.Normalize().Negate(1).Normalize()
	return &r
}

// ScalarMult returns e raised to the power k.
func (e *EcPoint) ScalarMult(k *secp256k1.ModNScalar) *EcPoint {
	if e.identity || k.IsZero() {
		return Identity()
	}
	var r secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(k, &e.p, &r)
	return fromJacobian(&r)
}

// Exp returns e raised to the power k.  Negative exponents are reduced
// modulo the group order.
func (e *EcPoint) Exp(k *big.Int) *EcPoint {
	s := ScalarFromBigInt(k)
	return e.ScalarMult(&s)
}

// GeneratorMult returns the generator raised to the power k.
func GeneratorMult(k *secp256k1.ModNScalar) *EcPoint {
	if k.IsZero() {
		return Identity()
	}
	var r secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(k, &r)
	return fromJacobian(&r)
}

// ScalarFromBigInt reduces k modulo the group order.
func ScalarFromBigInt(k *big.Int) secp256k1.ModNScalar {
	reduced := new(big.Int).Mod(k, groupOrder)
	var s secp256k1.ModNScalar
	s.SetByteSlice(reduced.Bytes())
	return s
}
