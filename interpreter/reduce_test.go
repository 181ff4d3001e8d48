// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interpreter

import (
	"errors"
	"testing"

	"github.com/btcsuite/ergotree/ir"
	"github.com/btcsuite/ergotree/sigma"
	"github.com/stretchr/testify/require"
)

// TestReduceToCrypto tests the propositions scripts reduce to.
func TestReduceToCrypto(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	pk := sigma.MustParseEcPointHex(testPubKey)
	tests := []struct {
		name string
		expr ir.Expr
		want sigma.SigmaBoolean
		diag string
	}{
		{"true", ir.ConstBool(true), sigma.TrivialTrue, ""},
		{"height check", bin(ir.OpLt, global(ir.OpHeight), ir.ConstInt(50)),
			sigma.TrivialFalse, "HEIGHT < 50"},
		{"p2pk", ir.ConstSigmaProp(sigma.NewProveDlog(pk)),
			sigma.NewProveDlog(pk), ""},
		{"bool to sigma", unary(ir.OpBoolToSigmaProp, bin(ir.OpGt,
			global(ir.OpHeight), ir.ConstInt(50))), sigma.TrivialTrue, ""},
	}

	for _, test := range tests {
		res, err := ReduceToCrypto(test.expr, ctx)
		require.NoError(t, err, test.name)
		require.True(t, sigma.Equal(test.want, res.SigmaProp),
			"%s: got %v", test.name, res.SigmaProp)
		require.Equal(t, test.diag, res.Diag.PrettyPrintedExpr, test.name)
		require.NotZero(t, res.Cost, test.name)
	}
}

// TestReduceInvalidResult ensures scripts of other types are rejected.
func TestReduceInvalidResult(t *testing.T) {
	t.Parallel()

	_, err := ReduceToCrypto(ir.ConstInt(1), testContext(t))
	requireErrorCode(t, err, ErrInvalidResultType, "Int result")

	var srcErr *SpannedWithSourceError
	require.True(t, errors.As(err, &srcErr))
	require.Equal(t, "1", srcErr.Source)
	require.Equal(t, ir.SourceSpan{Offset: 0, Length: 1}, srcErr.Span)
}

// TestReduceErrorSource tests the rendering of failed reductions against the
// printed script.
func TestReduceErrorSource(t *testing.T) {
	t.Parallel()

	ctx := testContext(t)
	tests := []struct {
		name string
		expr ir.Expr
		want string
	}{{
		name: "single line",
		expr: bin(ir.OpDivision, global(ir.OpHeight), ir.ConstInt(0)),
		want: "evaluation error at 1:1: Division by zero\n\n" +
			"   1 | HEIGHT / 0\n" +
			"     | ^^^^^^^^^^\n",
	}, {
		name: "nested in a branch",
		expr: must(ir.NewIf(bin(ir.OpGt, global(ir.OpHeight),
			ir.ConstInt(0)), bin(ir.OpDivision, global(ir.OpHeight),
			ir.ConstInt(0)), ir.ConstInt(0))),
		want: "evaluation error at 2:3: Division by zero\n\n" +
			"   1 | if (HEIGHT > 0) {\n" +
			"   2 |   HEIGHT / 0\n" +
			"     |   ^^^^^^^^^^\n" +
			"   3 | } else {\n",
	}}

	for _, test := range tests {
		_, err := ReduceToCrypto(test.expr, ctx)
		require.Error(t, err, test.name)
		require.Equal(t, test.want, err.Error(), test.name)
		requireErrorCode(t, err, ErrArithmetic, test.name)

		// The input tree is left without spans.
		require.True(t, test.expr.Span().IsEmpty(), test.name)
	}
}

// TestEnrich ensures an error keeps the span of the innermost node.
func TestEnrich(t *testing.T) {
	t.Parallel()

	inner := ir.SourceSpan{Offset: 9, Length: 1}
	outer := ir.SourceSpan{Offset: 0, Length: 10}
	err := enrich(evalError(ErrMisc, "failed"), inner)
	err = enrich(err, outer)

	var spanned *SpannedError
	require.True(t, errors.As(err, &spanned))
	require.Equal(t, inner, spanned.Span)
	require.Equal(t, "failed (at offset 9)", err.Error())

	// Errors without a span have no source to show.
	plain := evalError(ErrMisc, "plain")
	require.Equal(t, plain, withSource(plain, "HEIGHT"))
}

// TestExtractSigmaBoolean tests reading the proposition of a constant.
func TestExtractSigmaBoolean(t *testing.T) {
	t.Parallel()

	pk := sigma.MustParseEcPointHex(testPubKey)
	sb, err := ExtractSigmaBoolean(ir.ConstSigmaProp(sigma.NewProveDlog(pk)))
	require.NoError(t, err)
	require.True(t, sigma.Equal(sigma.NewProveDlog(pk), sb))

	_, err = ExtractSigmaBoolean(ir.ConstInt(1))
	requireErrorCode(t, err, ErrInvalidResultType, "Int constant")

	_, err = ExtractSigmaBoolean(global(ir.OpHeight))
	requireErrorCode(t, err, ErrInvalidResultType, "non-constant")
}
