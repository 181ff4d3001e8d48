// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gf2192

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// hexElement decodes a hex encoded element and panics on failure.  It is only
// used with hard-coded values in the tests.
func hexElement(s string) Element {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	e, err := FromBytes(b)
	if err != nil {
		panic(err)
	}
	return e
}

const (
	elemA = "0102030405060708090a0b0c0d0e0f101112131415161718"
	elemB = "f0e0d0c0b0a090807060504030201000ffeeddccbbaa9988"
)

// TestMul tests multiplication against known products.
func TestMul(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want string
	}{{
		name: "mixed words",
		a:    elemA,
		b:    elemB,
		want: "9110ea4d3be3226d9678e17e7948089e6dfc868e87af6aad",
	}, {
		name: "reduction of x^192",
		a:    "000000000000000000000000000000000000000000000080",
		b:    "020000000000000000000000000000000000000000000000",
		want: "870000000000000000000000000000000000000000000000",
	}, {
		name: "by one",
		a:    elemA,
		b:    "010000000000000000000000000000000000000000000000",
		want: elemA,
	}, {
		name: "by zero",
		a:    elemA,
		b:    "000000000000000000000000000000000000000000000000",
		want: "000000000000000000000000000000000000000000000000",
	}}

	for _, test := range tests {
		got := hexElement(test.a).Mul(hexElement(test.b))
		require.Equal(t, test.want, got.String(), test.name)

		// Multiplication commutes.
		got = hexElement(test.b).Mul(hexElement(test.a))
		require.Equal(t, test.want, got.String(), test.name)
	}
}

// TestFieldLaws tests the distributive law, inverses and the small element
// multiplication.
func TestFieldLaws(t *testing.T) {
	t.Parallel()

	a, b := hexElement(elemA), hexElement(elemB)
	c := FromByte(0x35)

	require.Equal(t, a.Mul(b.Add(c)), a.Mul(b).Add(a.Mul(c)))
	require.Equal(t, a.Mul(c), a.MulByte(0x35))
	require.True(t, a.Add(a).IsZero())

	inv := a.Inverse()
	require.Equal(t, "3dfc86a75295179e37dfaabb45fbefac7540c479a2e2ce8d",
		inv.String())
	require.Equal(t, One, a.Mul(inv))
	require.Equal(t, One, c.Mul(c.Inverse()))
	require.True(t, Zero.Inverse().IsZero())
}

// TestFromBytes performs negative tests against decoding elements.
func TestFromBytes(t *testing.T) {
	t.Parallel()

	_, err := FromBytes(make([]byte, ElementSize-1))
	require.Error(t, err)

	e := hexElement(elemA)
	require.Equal(t, elemA, hex.EncodeToString(e.Bytes()))
	require.Equal(t, Element{0x0807060504030201, 0x100f0e0d0c0b0a09,
		0x1817161514131211}, e)
}

// TestInterpolate ensures interpolated polynomials pass through the given
// points and survive encoding.
func TestInterpolate(t *testing.T) {
	t.Parallel()

	at0 := hexElement(elemA)
	points := []byte{1, 3, 4}
	values := []Element{hexElement(elemB), FromByte(7), Zero}

	p, err := Interpolate(points, values, at0)
	require.NoError(t, err)
	require.Equal(t, len(points), p.Degree())
	require.Equal(t, at0, p.Evaluate(0))
	require.Equal(t, at0, p.Coefficient(0))
	for i, x := range points {
		require.Equal(t, values[i], p.Evaluate(x), "point %d", x)
	}

	decoded, err := PolyFromBytes(at0, p.Degree(), p.Bytes(false))
	require.NoError(t, err)
	for x := 0; x < 8; x++ {
		require.Equal(t, p.Evaluate(byte(x)), decoded.Evaluate(byte(x)))
	}
	require.Len(t, p.Bytes(true), (p.Degree()+1)*ElementSize)

	// A polynomial of degree zero is its constant term.
	constant, err := Interpolate(nil, nil, at0)
	require.NoError(t, err)
	require.Equal(t, at0, constant.Evaluate(9))

	_, err = Interpolate([]byte{1, 1}, []Element{One, One}, Zero)
	require.Error(t, err)
	_, err = Interpolate([]byte{0}, []Element{One}, Zero)
	require.Error(t, err)
	_, err = Interpolate([]byte{1}, nil, Zero)
	require.Error(t, err)
	_, err = PolyFromBytes(at0, 2, make([]byte, ElementSize))
	require.Error(t, err)
}
