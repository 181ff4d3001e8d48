// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigmaprotocol

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/btcsuite/ergotree/interpreter"
	"github.com/btcsuite/ergotree/ir"
	"github.com/btcsuite/ergotree/sigma"
	"github.com/stretchr/testify/require"
)

// hexToBytes converts the passed hex string into bytes and will panic if
// there is an error.  This is only provided for the hard-coded constants so
// errors in the source code can be detected.  It will only (and must only)
// be called with hard-coded values.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

const (
	vectorSecret = "1097492058001948301279015953526003845580371832186981" +
		"12947062497909408298157746"
	vectorPubKey = "03cb0d49e4eae7e57059a3da8ac52626d26fc11330af8fb093fa" +
		"597d8b93deb7b1"
	vectorMessage = "1dc01772ee0171f5f614c673e3c7fa1107a8cf727bdf5a6dadb3" +
		"79e93c0d1d00"
	vectorDlogSig = "bcb866ba434d5c77869ddcbc3f09ddd62dd2d2539bf99076674d" +
		"1ae0c32338ea95581fdc18a3b66789904938ac641eba1a66d234070207a2"
	vectorTuple = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f" +
		"2815b16f817980280c66feee88d56e47bf3f47c4109d9218c60c373a472a0d9" +
		"537507c7ee828c4802a96f19e97df31606183c1719400682d1d40b1ce50c9a1e" +
		"d1b19845e2b1b551bf0255ac02191cb229891fb1b674ea9df7fc8426350131d8" +
		"21fc4a53f29c3b1cb21a"
	vectorDhtSig = "eba93a69b28cfdea261e9ea8914fca9a0b3868d50ce68c94f32e8" +
		"75730f8ca361bd3783c5d3e25802e54f49bd4fb9fafe51f4e8aafbf9815"
)

func requireErrorCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()

	var proofErr Error
	require.True(t, errors.As(err, &proofErr), "unexpected error %v", err)
	require.Equal(t, code, proofErr.ErrorCode, "error %v", err)
}

func newDlogSecret(t *testing.T) *DlogProverInput {
	t.Helper()

	s, err := NewDlogProverInput()
	require.NoError(t, err)
	return s
}

func newDhtSecret(t *testing.T) *DhTupleProverInput {
	t.Helper()

	s, err := NewDhTupleProverInput()
	require.NoError(t, err)
	return s
}

// TestSignatureVectors verifies known signatures for a Schnorr and a
// Diffie-Hellman tuple statement.
func TestSignatureVectors(t *testing.T) {
	t.Parallel()

	secret, ok := new(big.Int).SetString(vectorSecret, 10)
	require.True(t, ok)
	input, err := DlogProverInputFromBytes(secret.FillBytes(
		make([]byte, SecretSize)))
	require.NoError(t, err)
	pk := sigma.MustParseEcPointHex(vectorPubKey)
	require.True(t, sigma.Equal(sigma.NewProveDlog(pk), input.PublicImage()))

	tuple, err := sigma.ParseProveDhTuple(hexToBytes(vectorTuple))
	require.NoError(t, err)

	tests := []struct {
		name string
		sb   sigma.SigmaBoolean
		sig  string
	}{
		{"prove dlog", sigma.NewProveDlog(pk), vectorDlogSig},
		{"prove dh tuple", tuple, vectorDhtSig},
	}

	msg := hexToBytes(vectorMessage)
	for _, test := range tests {
		sig := hexToBytes(test.sig)
		ok, err := VerifySignature(test.sb, msg, sig)
		require.NoError(t, err, test.name)
		require.True(t, ok, test.name)

		// Trailing bytes do not invalidate the proof.
		ok, err = VerifySignature(test.sb, msg, append(sig, 1, 2, 3))
		require.NoError(t, err, test.name)
		require.True(t, ok, test.name)

		ok, err = VerifySignature(test.sb, []byte("other"), sig)
		require.NoError(t, err, test.name)
		require.False(t, ok, test.name)
	}
}

// TestProveVerify tests proofs of leaves and conjectures produced by the
// prover.
func TestProveVerify(t *testing.T) {
	t.Parallel()

	s1, s2 := newDlogSecret(t), newDlogSecret(t)
	dht := newDhtSecret(t)
	unknown := newDlogSecret(t).PublicImage()
	p1, p2, pd := s1.PublicImage(), s2.PublicImage(), dht.PublicImage()

	tests := []struct {
		name    string
		secrets []PrivateInput
		sb      sigma.SigmaBoolean
	}{
		{"dlog", []PrivateInput{s1}, p1},
		{"dh tuple", []PrivateInput{dht}, pd},
		{"and", []PrivateInput{s1, dht},
			sigma.NewCAnd([]sigma.SigmaBoolean{p1, pd})},
		{"or of one known", []PrivateInput{s2},
			sigma.NewCOr([]sigma.SigmaBoolean{p1, p2, unknown})},
		{"or of all known", []PrivateInput{s1, s2},
			sigma.NewCOr([]sigma.SigmaBoolean{p1, p2})},
		{"threshold", []PrivateInput{s1, dht},
			sigma.NewCThreshold(2, []sigma.SigmaBoolean{p1, unknown, pd})},
		{"threshold of all known", []PrivateInput{s1, s2, dht},
			sigma.NewCThreshold(2, []sigma.SigmaBoolean{p1, p2, pd})},
		{"nested", []PrivateInput{s2}, sigma.NewCOr([]sigma.SigmaBoolean{
			sigma.NewCAnd([]sigma.SigmaBoolean{p1, unknown}),
			sigma.NewCThreshold(2, []sigma.SigmaBoolean{
				unknown, p2, sigma.NewCOr([]sigma.SigmaBoolean{
					p2, pd}),
			}),
		})},
	}

	msg := []byte("spending transaction bytes")
	for _, test := range tests {
		proof, err := NewProver(test.secrets...).Sign(test.sb, msg)
		require.NoError(t, err, test.name)

		ok, err := VerifySignature(test.sb, msg, proof)
		require.NoError(t, err, test.name)
		require.True(t, ok, test.name)

		ok, err = VerifySignature(test.sb, msg, append(proof, 0xff))
		require.NoError(t, err, test.name)
		require.True(t, ok, test.name)

		ok, err = VerifySignature(test.sb, msg[1:], proof)
		require.NoError(t, err, test.name)
		require.False(t, ok, test.name)

		// The proof survives parsing.
		tree, err := ParseSigBytes(test.sb, proof)
		require.NoError(t, err, test.name)
		require.Equal(t, proof, serializeSig(tree), test.name)
	}
}

// TestProveErrors performs negative tests against the prover.
func TestProveErrors(t *testing.T) {
	t.Parallel()

	s1 := newDlogSecret(t)
	unknown := newDlogSecret(t).PublicImage()
	prover := NewProver(s1)

	_, err := prover.Sign(unknown, nil)
	requireErrorCode(t, err, ErrProverNoRealRoot)

	_, err = prover.Sign(sigma.NewCAnd([]sigma.SigmaBoolean{
		s1.PublicImage(), unknown}), nil)
	requireErrorCode(t, err, ErrProverNoRealRoot)

	_, err = prover.Sign(sigma.NewCThreshold(2, []sigma.SigmaBoolean{
		s1.PublicImage(), unknown, newDlogSecret(t).PublicImage()}), nil)
	requireErrorCode(t, err, ErrProverNoRealRoot)

	_, err = prover.Sign(sigma.TrivialFalse, nil)
	requireErrorCode(t, err, ErrProverNoRealRoot)

	proof, err := prover.Sign(sigma.TrivialTrue, nil)
	require.NoError(t, err)
	require.Empty(t, proof)

	_, err = DlogProverInputFromBytes(make([]byte, SecretSize))
	requireErrorCode(t, err, ErrInvalidSecret)
	_, err = DlogProverInputFromBytes([]byte{1})
	requireErrorCode(t, err, ErrInvalidSecret)
}

// TestParseSigErrors performs negative tests against proof parsing.
func TestParseSigErrors(t *testing.T) {
	t.Parallel()

	pk := sigma.MustParseEcPointHex(vectorPubKey)
	sig := hexToBytes(vectorDlogSig)
	or := sigma.NewCOr([]sigma.SigmaBoolean{sigma.NewProveDlog(pk),
		sigma.NewProveDlog(sigma.Generator())})

	tests := []struct {
		name  string
		sb    sigma.SigmaBoolean
		proof []byte
		code  ErrorCode
	}{
		{"short challenge", sigma.NewProveDlog(pk), sig[:10], ErrSigParsing},
		{"short response", sigma.NewProveDlog(pk), sig[:40], ErrSigParsing},
		{"missing child", or, sig, ErrSigParsing},
		{"trivial statement", sigma.TrivialTrue, sig, ErrTreeShape},
		{"overflowing response", sigma.NewProveDlog(pk),
			append(make([]byte, ChallengeSize), hexToBytes("ffffffff"+
				"ffffffffffffffffffffffffffffffffffffffffffffffffffffffff")...),
			ErrSigParsing},
	}

	for _, test := range tests {
		_, err := ParseSigBytes(test.sb, test.proof)
		require.Error(t, err, test.name)
		requireErrorCode(t, err, test.code)
	}

	// A leaf of an unchecked tree has no commitment until it is computed.
	tree, err := ParseSigBytes(sigma.NewProveDlog(pk), sig)
	require.NoError(t, err)
	_, err = FiatShamirTreeBytes(tree)
	requireErrorCode(t, err, ErrFiatShamir)
}

// TestFiatShamirTreeBytes tests the serialization of a conjecture for the
// Fiat-Shamir hash.
func TestFiatShamirTreeBytes(t *testing.T) {
	t.Parallel()

	pk := sigma.MustParseEcPointHex(vectorPubKey)
	leaf := &UncheckedLeaf{
		Proposition: sigma.NewProveDlog(pk),
		Commitment:  []*sigma.EcPoint{sigma.Generator()},
	}
	tree := &UncheckedConjecture{
		Kind:     ConjectureThreshold,
		K:        1,
		Children: []UncheckedTree{leaf, leaf},
	}

	got, err := FiatShamirTreeBytes(tree)
	require.NoError(t, err)

	propBytes := "100108cd" + vectorPubKey + "7300"
	leafBytes := "01" + "0027" + propBytes + "0021" +
		hex.EncodeToString(sigma.Generator().Bytes())
	want := "00" + "02" + "01" + "0002" + leafBytes + leafBytes
	require.Equal(t, want, hex.EncodeToString(got))
}

// testContext returns a context spending a box guarded by tree.
func testContext(t *testing.T, tree *ir.ErgoTree) *interpreter.Context {
	t.Helper()

	self, err := ir.NewBox(1000, tree, nil, nil, 1, ir.Digest32{1}, 0)
	require.NoError(t, err)
	ctx, err := interpreter.NewContext(self, []*ir.Box{self},
		[]*ir.Box{self}, nil, 10, interpreter.PreHeader{Height: 10})
	require.NoError(t, err)
	return ctx
}

// TestVerify tests proving and verifying scripts.
func TestVerify(t *testing.T) {
	t.Parallel()

	secret := newDlogSecret(t)
	msg := []byte("message")

	tests := []struct {
		name  string
		root  ir.Expr
		proof []byte
		want  bool
	}{
		{"true ignores the proof", ir.ConstBool(true), []byte{1, 2}, true},
		{"false ignores the proof", ir.ConstBool(false), nil, false},
		{"empty proof", ir.ConstSigmaProp(secret.PublicImage()), nil,
			false},
	}

	verifier := NewVerifier(nil)
	for _, test := range tests {
		tree, err := ir.NewErgoTree(ir.HeaderConstantSegregationFlag,
			test.root)
		require.NoError(t, err, test.name)
		res, err := verifier.Verify(tree, testContext(t, tree), test.proof,
			msg)
		require.NoError(t, err, test.name)
		require.Equal(t, test.want, res.Result, test.name)
	}

	tree, err := ir.NewErgoTree(ir.HeaderConstantSegregationFlag,
		ir.ConstSigmaProp(secret.PublicImage()))
	require.NoError(t, err)
	ctx := testContext(t, tree)
	proved, err := NewProver(secret).Prove(tree, ctx, msg)
	require.NoError(t, err)
	require.Len(t, proved.Proof, ChallengeSize+responseSize)

	res, err := verifier.Verify(tree, ctx, proved.Proof, msg)
	require.NoError(t, err)
	require.True(t, res.Result)
	require.Equal(t, proved.Cost, res.Cost)

	res, err = verifier.Verify(tree, ctx, proved.Proof, []byte("other"))
	require.NoError(t, err)
	require.False(t, res.Result)
}

// TestProofCache ensures verified signatures are remembered.
func TestProofCache(t *testing.T) {
	t.Parallel()

	secret := newDlogSecret(t)
	sb := secret.PublicImage()
	msg := []byte("message")
	proof, err := NewProver(secret).Sign(sb, msg)
	require.NoError(t, err)

	cache := NewProofCache(2)
	verifier := NewVerifier(&Config{ProofCache: cache})
	require.False(t, cache.Contains(sb, msg, proof))

	ok, err := verifier.VerifySignature(sb, msg, proof)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, cache.Contains(sb, msg, proof))

	// Failed verifications are not cached.
	ok, err = verifier.VerifySignature(sb, []byte("other"), proof)
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, cache.Contains(sb, []byte("other"), proof))

	ok, err = verifier.VerifySignature(sb, msg, proof)
	require.NoError(t, err)
	require.True(t, ok)

	cache.Delete(sb, msg, proof)
	require.False(t, cache.Contains(sb, msg, proof))
}

// TestErrorCodeStringer tests the stringized output for the ErrorCode type.
func TestErrorCodeStringer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   ErrorCode
		want string
	}{
		{ErrSigParsing, "ErrSigParsing"},
		{ErrTreeShape, "ErrTreeShape"},
		{ErrFiatShamir, "ErrFiatShamir"},
		{ErrProverNoRealRoot, "ErrProverNoRealRoot"},
		{ErrProverMissingSecret, "ErrProverMissingSecret"},
		{ErrReduction, "ErrReduction"},
		{ErrInvalidSecret, "ErrInvalidSecret"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	// Detect additional error codes that don't have the stringer added.
	if len(tests)-1 != int(numErrorCodes) {
		t.Errorf("It appears an error code was added without adding an " +
			"associated stringer test")
	}

	for i, test := range tests {
		result := test.in.String()
		if result != test.want {
			t.Errorf("String #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}
}
