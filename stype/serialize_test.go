// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stype

import (
	"bytes"
	"errors"
	"testing"

	"github.com/btcsuite/ergotree/wire"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// TestTypeSerialization tests the compact type encoding in both directions.
func TestTypeSerialization(t *testing.T) {
	t.Parallel()

	tuple5, err := NewSTuple(SInt, SInt, SInt, SInt, SInt)
	require.NoError(t, err)

	tests := []struct {
		name string
		tpe  SType
		buf  []byte
	}{
		{"boolean", SBoolean, []byte{0x01}},
		{"sigma prop", SSigmaProp, []byte{0x08}},
		{"coll byte", NewSColl(SByte), []byte{0x0e}},
		{"nested coll", NewSColl(NewSColl(SByte)), []byte{0x1a}},
		{"coll box", NewSColl(SBox), []byte{0x0c, 0x63}},
		{"option int", NewSOption(SInt), []byte{0x28}},
		{"option coll byte", NewSOption(NewSColl(SByte)), []byte{0x32}},
		{"option box", NewSOption(SBox), []byte{0x24, 0x63}},
		{"pair symmetric", Pair(SInt, SInt), []byte{0x58}},
		{"pair1", Pair(SInt, SBox), []byte{0x40, 0x63}},
		{"pair2", Pair(SBox, SLong), []byte{0x4d, 0x63}},
		{"pair of non prims", Pair(SBox, SBox), []byte{0x3c, 0x63, 0x63}},
		{"triple", &STuple{Items: []SType{SInt, SBox, SLong}},
			[]byte{0x48, 0x04, 0x63, 0x05}},
		{"quadruple", &STuple{Items: []SType{SInt, SInt, SInt, SInt}},
			[]byte{0x54, 0x04, 0x04, 0x04, 0x04}},
		{"tuple5", tuple5, []byte{0x60, 0x05, 0x04, 0x04, 0x04, 0x04, 0x04}},
		{"token", NewSColl(Pair(NewSColl(SByte), SLong)),
			[]byte{0x0c, 0x4d, 0x0e}},
		{"unit", SUnit, []byte{0x62}},
		{"context", SContext, []byte{0x65}},
	}

	for _, test := range tests {
		w := wire.NewWriter()
		err := SerializeType(w, test.tpe)
		require.NoError(t, err, test.name)
		if !bytes.Equal(test.buf, w.Bytes()) {
			t.Errorf("%s: got %s want %s", test.name,
				spew.Sdump(w.Bytes()), spew.Sdump(test.buf))
			continue
		}

		r := wire.NewReader(test.buf)
		got, err := ParseType(r)
		require.NoError(t, err, test.name)
		require.True(t, Equal(test.tpe, got), "%s: got %v", test.name, got)
		require.Zero(t, r.Remaining(), test.name)
	}
}

// TestTypeSerializationErrors performs negative tests on the type codec.
func TestTypeSerializationErrors(t *testing.T) {
	t.Parallel()

	var terr Error
	for _, code := range []byte{0x00, 0x09, 0x0b, 0x6e, 0x70} {
		_, err := ParseType(wire.NewReader([]byte{code}))
		require.True(t, errors.As(err, &terr), "code %d", code)
		require.Equal(t, ErrInvalidTypeCode, terr.ErrorCode)
	}

	_, err := ParseType(wire.NewReader([]byte{0x0c}))
	var werr wire.Error
	require.True(t, errors.As(err, &werr))

	err = SerializeType(wire.NewWriter(), TypeVarT)
	require.True(t, errors.As(err, &terr))
	require.Equal(t, ErrNotSerializable, terr.ErrorCode)

	_, err = NewSTuple(SInt)
	require.True(t, errors.As(err, &terr))
	require.Equal(t, ErrTupleArity, terr.ErrorCode)
}
