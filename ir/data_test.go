// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/btcsuite/ergotree/sigma"
	"github.com/btcsuite/ergotree/stype"
	"github.com/btcsuite/ergotree/wire"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// TestBigIntSignedBytes tests the two's complement encoding of BigInt.
func TestBigIntSignedBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "00"},
		{1, "01"},
		{127, "7f"},
		{128, "0080"},
		{255, "00ff"},
		{-1, "ff"},
		{-128, "80"},
		{-129, "ff7f"},
		{-256, "ff00"},
	}

	for _, test := range tests {
		got := bigIntToSignedBytes(big.NewInt(test.in))
		require.Equal(t, test.want, hex.EncodeToString(got), test.in)

		back := signedBytesToBigInt(got)
		require.Equal(t, test.in, back.Int64(), test.in)
	}
}

// TestBigIntBound ensures BigInt values are limited to 256 bits.
func TestBigIntBound(t *testing.T) {
	t.Parallel()

	max := new(big.Int).Lsh(big.NewInt(1), BigIntMaxBits)
	max.Sub(max, big.NewInt(1))
	_, err := NewBigInt(max)
	require.NoError(t, err)
	_, err = NewBigInt(new(big.Int).Neg(max))
	require.NoError(t, err)

	over := new(big.Int).Add(max, big.NewInt(1))
	_, err = NewBigInt(over)
	var irErr Error
	require.True(t, errors.As(err, &irErr))
	require.Equal(t, ErrBoundsExceeded, irErr.ErrorCode)

	// A 33 byte encoding is rejected on parse.
	w := wire.NewWriter()
	w.PutU16(33)
	w.PutBytes(append([]byte{0x01}, make([]byte, 32)...))
	_, err = ParseData(wire.NewReader(w.Bytes()), stype.SBigInt)
	require.Error(t, err)
}

// TestDataRoundTrip tests values of every serializable type survive encoding.
func TestDataRoundTrip(t *testing.T) {
	t.Parallel()

	pk := sigma.MustParseEcPointHex(testPubKey)
	tests := []struct {
		name string
		tpe  stype.SType
		v    Value
	}{
		{"unit", stype.SUnit, Unit{}},
		{"boolean", stype.SBoolean, Boolean(true)},
		{"byte", stype.SByte, Byte(-3)},
		{"short", stype.SShort, Short(-300)},
		{"int", stype.SInt, Int(1 << 30)},
		{"long", stype.SLong, Long(-1 << 60)},
		{"bigint", stype.SBigInt, BigInt{V: big.NewInt(-129)}},
		{"group element", stype.SGroupElement, GroupElement{V: pk}},
		{"sigma prop", stype.SSigmaProp,
			SigmaProp{V: sigma.NewProveDlog(pk)}},
		{"bytes", stype.NewSColl(stype.SByte), BytesColl([]byte{1, 2, 3})},
		{"bools", stype.NewSColl(stype.SBoolean), Coll{
			Elem:  stype.SBoolean,
			Items: []Value{Boolean(true), Boolean(false), Boolean(true)},
		}},
		{"ints", stype.NewSColl(stype.SInt), Coll{
			Elem:  stype.SInt,
			Items: []Value{Int(1), Int(-1)},
		}},
		{"some", stype.NewSOption(stype.SLong),
			Some(stype.SLong, Long(5))},
		{"none", stype.NewSOption(stype.SLong), None(stype.SLong)},
		{"tuple", stype.Pair(stype.SInt, stype.SBoolean),
			Tup{Int(7), Boolean(false)}},
	}

	for _, test := range tests {
		w := wire.NewWriter()
		err := SerializeData(w, test.tpe, test.v)
		require.NoError(t, err, test.name)

		got, err := ParseData(wire.NewReader(w.Bytes()), test.tpe)
		require.NoError(t, err, test.name)
		if !Equal(test.v, got) {
			t.Errorf("%s: mismatched value - got %v, want %v",
				test.name, spew.Sdump(got), spew.Sdump(test.v))
		}
	}
}

// TestDataTypeMismatch ensures a value is not written under another type.
func TestDataTypeMismatch(t *testing.T) {
	t.Parallel()

	err := SerializeData(wire.NewWriter(), stype.SInt, Long(1))
	var irErr Error
	require.True(t, errors.As(err, &irErr))
	require.Equal(t, ErrInvalidNode, irErr.ErrorCode)
}

func testBox(t *testing.T) *Box {
	t.Helper()

	pk := sigma.MustParseEcPointHex(testPubKey)
	tree, err := NewErgoTree(HeaderConstantSegregationFlag,
		ConstSigmaProp(sigma.NewProveDlog(pk)))
	require.NoError(t, err)

	var tokenID, txID Digest32
	tokenID[0] = 0xaa
	txID[31] = 0x01
	box, err := NewBox(1000000, tree, []Token{{ID: tokenID, Amount: 50}},
		[]*Constant{ConstInt(42), ConstBytes([]byte("hi"))}, 100, txID, 2)
	require.NoError(t, err)
	return box
}

// TestBoxRoundTrip tests the encoding and identifier of boxes.
func TestBoxRoundTrip(t *testing.T) {
	t.Parallel()

	box := testBox(t)
	raw, err := box.Bytes()
	require.NoError(t, err)

	parsed, err := ParseBox(raw)
	require.NoError(t, err)
	again, err := parsed.Bytes()
	require.NoError(t, err)
	require.True(t, bytes.Equal(raw, again))

	id, err := box.ID()
	require.NoError(t, err)
	require.Equal(t, Blake2b256(raw), id)

	noRef, err := box.BytesWithoutRef()
	require.NoError(t, err)
	require.Equal(t, len(raw)-DigestSize-1, len(noRef))

	// Boxes are values of their own type.
	w := wire.NewWriter()
	require.NoError(t, SerializeData(w, stype.SBox, box))
	v, err := ParseData(wire.NewReader(w.Bytes()), stype.SBox)
	require.NoError(t, err)
	require.True(t, Equal(box, v))
}

// TestBoxRegisters tests the derived and additional registers of a box.
func TestBoxRegisters(t *testing.T) {
	t.Parallel()

	box := testBox(t)

	r0, ok := box.Register(RegValue)
	require.True(t, ok)
	require.Equal(t, Long(1000000), r0.V)

	r1, ok := box.Register(RegScript)
	require.True(t, ok)
	require.Equal(t, box.ScriptBytes(), r1.V.(Coll).Bytes())

	r2, ok := box.Register(RegTokens)
	require.True(t, ok)
	tokens := r2.V.(Coll)
	require.Len(t, tokens.Items, 1)
	require.Equal(t, Long(50), tokens.Items[0].(Tup)[1])

	r3, ok := box.Register(RegCreationInfo)
	require.True(t, ok)
	info := r3.V.(Tup)
	require.Equal(t, Int(100), info[0])
	ref := info[1].(Coll).Bytes()
	require.Len(t, ref, DigestSize+2)
	require.Equal(t, []byte{0x01, 0x00, 0x02}, ref[DigestSize-1:])

	r4, ok := box.Register(4)
	require.True(t, ok)
	require.Equal(t, Int(42), r4.V)

	_, ok = box.Register(6)
	require.False(t, ok)
	_, ok = box.Register(MaxRegisters)
	require.False(t, ok)
}

// TestBoxBounds ensures boxes with too many registers are rejected.
func TestBoxBounds(t *testing.T) {
	t.Parallel()

	tree, err := NewErgoTree(0, ConstBool(true))
	require.NoError(t, err)
	regs := make([]*Constant, MaxAdditionalRegisters+1)
	for i := range regs {
		regs[i] = ConstInt(int32(i))
	}
	_, err = NewBox(1, tree, nil, regs, 0, Digest32{}, 0)
	var irErr Error
	require.True(t, errors.As(err, &irErr))
	require.Equal(t, ErrBoundsExceeded, irErr.ErrorCode)

	// The value must fit a Long.
	_, err = NewBox(math.MaxInt64+1, tree, nil, nil, 0, Digest32{}, 0)
	require.True(t, errors.As(err, &irErr))
	require.Equal(t, ErrBoundsExceeded, irErr.ErrorCode)
	_, err = NewBox(math.MaxInt64, tree, nil, nil, 0, Digest32{}, 0)
	require.NoError(t, err)
}
