// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigma

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

const generatorHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

// TestGroupElementEncoding tests the compressed encoding of points.
func TestGroupElementEncoding(t *testing.T) {
	t.Parallel()

	g := Generator()
	require.Equal(t, generatorHex, g.String())

	parsed := MustParseEcPointHex(generatorHex)
	require.True(t, parsed.Equal(g))

	id := Identity()
	require.Equal(t, make([]byte, GroupSize), id.Bytes())
	parsedID, err := ParseEcPoint(make([]byte, GroupSize))
	require.NoError(t, err)
	require.True(t, parsedID.IsIdentity())
}

// TestPublicImage checks a known secret against its public key.
func TestPublicImage(t *testing.T) {
	t.Parallel()

	secret, ok := new(big.Int).SetString("1097492058001948301279015953526"+
		"00384558037183218698112947062497909408298157746", 10)
	require.True(t, ok)

	s := ScalarFromBigInt(secret)
	pk := GeneratorMult(&s)
	require.Equal(t, "03cb0d49e4eae7e57059a3da8ac52626d26fc11330af8fb093fa"+
		"597d8b93deb7b1", pk.String())

	// The same point through the generic exponentiation.
	require.True(t, Generator().Exp(secret).Equal(pk))
}

// TestGroupLaws tests identity, inverse and exponent reduction.
func TestGroupLaws(t *testing.T) {
	t.Parallel()

	g := Generator()
	g2 := g.Add(g)
	require.True(t, g2.Equal(g.Exp(big.NewInt(2))))
	require.True(t, g.Add(Identity()).Equal(g))
	require.True(t, Identity().Add(g).Equal(g))
	require.True(t, g.Add(g.Negate()).IsIdentity())
	require.True(t, g.Exp(big.NewInt(0)).IsIdentity())
	require.True(t, g.Exp(GroupOrder()).IsIdentity())
	require.True(t, g.Exp(big.NewInt(-1)).Equal(g.Negate()))
	require.True(t, g2.Add(g.Negate()).Equal(g))
}

// TestParseEcPointErrors performs negative tests on point decoding.
func TestParseEcPointErrors(t *testing.T) {
	t.Parallel()

	uncompressed, _ := hex.DecodeString("04" + generatorHex[2:] + generatorHex[2:])
	overflowX, _ := hex.DecodeString("02" +
		"fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")

	tests := []struct {
		name string
		buf  []byte
	}{
		{"short", []byte{0x02, 0x01}},
		{"uncompressed", uncompressed},
		{"bad prefix", append([]byte{0x05}, make([]byte, 32)...)},
		{"x not in field", overflowX},
	}

	for _, test := range tests {
		_, err := ParseEcPoint(test.buf)
		var serr Error
		require.True(t, errors.As(err, &serr), test.name)
		require.Equal(t, ErrInvalidPoint, serr.ErrorCode, test.name)
	}
}
