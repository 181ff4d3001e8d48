// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"testing"

	"github.com/btcsuite/ergotree/stype"
	"github.com/stretchr/testify/require"
)

// TestPrint tests the rendering of expressions.
func TestPrint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"plus", must(NewBinOp(OpPlus, ConstInt(1), ConstInt(2))), "1 + 2"},
		{"nested", must(NewBinOp(OpMultiply,
			must(NewBinOp(OpPlus, ConstLong(1), ConstLong(2))),
			ConstLong(3))), "(1L + 2L) * 3L"},
		{"if", must(NewIf(must(NewBinOp(OpGt, height(), ConstInt(100))),
			ConstInt(1), ConstInt(2))),
			"if (HEIGHT > 100) {\n  1\n} else {\n  2\n}"},
		{"block", &BlockValue{
			Items: []*ValDef{{ID: 1, RHS: ConstInt(1)}},
			Result: must(NewBinOp(OpPlus, &ValUse{ID: 1, Type: stype.SInt},
				ConstInt(1))),
		}, "{\n  val v1 = 1\n  v1 + 1\n}"},
		{"register", must(NewUnaryOp(OpOptionGet,
			must(NewExtractRegisterAs(self(), 4, stype.SInt)))),
			"SELF.R4[Int].get"},
		{"sigma prop", must(NewUnaryOp(OpBoolToSigmaProp,
			must(NewUnaryOp(OpLogicalNot, ConstBool(false))))),
			"sigmaProp(!false)"},
		{"by index", must(NewByIndex(must(NewGlobalVar(OpOutputs)),
			ConstInt(0), nil)), "OUTPUTS(0)"},
		{"bytes", ConstBytes([]byte{0xab, 0x01}), "fromBase16(\"ab01\")"},
		{"cast", must(NewNumericCast(OpUpcast, ConstByte(5), stype.SInt)),
			"5.toByte.toInt"},
	}

	for _, test := range tests {
		spanned, text, err := Print(test.expr)
		require.NoError(t, err, test.name)
		require.Equal(t, test.want, text, test.name)

		root := spanned.Span()
		require.Equal(t, SourceSpan{Offset: 0, Length: len(text)}, root,
			test.name)
		require.True(t, test.expr.Span().IsEmpty(), test.name)
	}
}

// TestPrintSpans ensures children are given the span of their own text.
func TestPrintSpans(t *testing.T) {
	t.Parallel()

	expr := must(NewBinOp(OpDivision, height(), ConstInt(0)))
	spanned, text, err := Print(expr)
	require.NoError(t, err)
	require.Equal(t, "HEIGHT / 0", text)

	children := Children(spanned)
	require.Len(t, children, 2)
	require.Equal(t, SourceSpan{Offset: 0, Length: 6}, children[0].Span())
	require.Equal(t, SourceSpan{Offset: 9, Length: 1}, children[1].Span())
	require.Equal(t, "0", text[children[1].Span().Offset:][:1])

	// The input tree is untouched.
	for _, child := range Children(expr) {
		require.True(t, child.Span().IsEmpty())
	}
}
