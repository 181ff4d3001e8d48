// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/btcsuite/ergotree/sigma"
	"github.com/stretchr/testify/require"
)

const testPubKey = "03cb0d49e4eae7e57059a3da8ac52626d26fc11330af8fb093fa" +
	"597d8b93deb7b1"

// TestErgoTreeSegregation tests that constants move into the table and
// placeholders resolve back to the original proposition.
func TestErgoTreeSegregation(t *testing.T) {
	t.Parallel()

	cond := must(NewBinOp(OpGt, height(), ConstInt(100)))
	both := must(NewBinOp(OpBinAnd, cond,
		must(NewBinOp(OpLt, height(), ConstInt(100)))))
	root := must(NewUnaryOp(OpBoolToSigmaProp, both))

	tree, err := NewErgoTree(HeaderConstantSegregationFlag, root)
	require.NoError(t, err)
	require.Len(t, tree.Constants, 1)
	require.True(t, tree.HasSegregatedConstants())

	parsed, err := ParseErgoTree(tree.Bytes())
	require.NoError(t, err)
	require.Equal(t, tree.Bytes(), parsed.Bytes())
	require.Len(t, parsed.Constants, 1)

	prop, err := parsed.Proposition()
	require.NoError(t, err)
	requireSameExpr(t, root, prop, "proposition")

	// Without substitution the root keeps its placeholders.
	_, ok := Children(Children(Children(parsed.Root)[0])[0])[1].(*ConstantPlaceholder)
	require.True(t, ok)
}

// TestErgoTreeSigmaPropBytes tests the encoding of a segregated tree that
// holds a single proposition.
func TestErgoTreeSigmaPropBytes(t *testing.T) {
	t.Parallel()

	pk := sigma.MustParseEcPointHex(testPubKey)
	tree, err := NewErgoTree(HeaderConstantSegregationFlag,
		ConstSigmaProp(sigma.NewProveDlog(pk)))
	require.NoError(t, err)

	want := "100108cd" + testPubKey + "7300"
	require.Equal(t, want, hex.EncodeToString(tree.Bytes()))

	propBytes, err := SigmaPropBytes(sigma.NewProveDlog(pk))
	require.NoError(t, err)
	require.Equal(t, want, hex.EncodeToString(propBytes))
}

// TestErgoTreeP2PK tests parsing of an unsegregated pay to public key tree.
func TestErgoTreeP2PK(t *testing.T) {
	t.Parallel()

	b, err := hex.DecodeString("0008cd" + testPubKey)
	require.NoError(t, err)
	tree, err := ParseErgoTree(b)
	require.NoError(t, err)
	require.Equal(t, uint8(0), tree.Version())

	prop, err := tree.Proposition()
	require.NoError(t, err)
	c, ok := prop.(*Constant)
	require.True(t, ok)
	sp, ok := c.V.(SigmaProp)
	require.True(t, ok)
	require.Equal(t, "proveDlog("+testPubKey+")", sp.V.String())
}

// TestErgoTreeSizeFlag tests trees that carry their body size.
func TestErgoTreeSizeFlag(t *testing.T) {
	t.Parallel()

	tree, err := NewErgoTree(HeaderSizeFlag|1, ConstBool(true))
	require.NoError(t, err)
	require.Equal(t, []byte{0x09, 0x02, 0x01, 0x01}, tree.Bytes())

	parsed, err := ParseErgoTree(tree.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint8(1), parsed.Version())
}

// TestErgoTreeErrors performs negative tests against malformed trees.
func TestErgoTreeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  []byte
		code ErrorCode
	}{
		{"placeholder miss", []byte{0x10, 0x00, 0x73, 0x00},
			ErrPlaceholderNotFound},
		{"version without size", []byte{0x01, 0x7f}, ErrInvalidHeader},
		{"unknown flag", []byte{0x20, 0x7f}, ErrInvalidHeader},
		{"body shorter than size", []byte{0x08, 0x02, 0x7f, 0x7f},
			ErrInvalidHeader},
	}

	for _, test := range tests {
		_, err := ParseErgoTree(test.buf)
		var irErr Error
		require.True(t, errors.As(err, &irErr), test.name)
		require.Equal(t, test.code, irErr.ErrorCode, test.name)
	}
}
