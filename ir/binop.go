// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"

	"github.com/btcsuite/ergotree/stype"
)

// binOpInfo describes one two operand operator.
type binOpInfo struct {
	name   string
	form   printForm
	result func(l, r stype.SType) (stype.SType, bool)
}

// sameNumeric types arithmetic over operands of one numeric type.
func sameNumeric(l, r stype.SType) (stype.SType, bool) {
	return l, stype.IsNumeric(l) && stype.Equal(l, r)
}

// compareNumeric types ordering relations.
func compareNumeric(l, r stype.SType) (stype.SType, bool) {
	return stype.SBoolean, stype.IsNumeric(l) && stype.Equal(l, r)
}

// compareEqual types equality relations over operands of any one type.
func compareEqual(l, r stype.SType) (stype.SType, bool) {
	return stype.SBoolean, stype.Equal(l, r)
}

// both returns a result function for operators with fixed operand types.
func both(lt, rt, out stype.SType) func(l, r stype.SType) (stype.SType, bool) {
	return func(l, r stype.SType) (stype.SType, bool) {
		return out, stype.Equal(l, lt) && stype.Equal(r, rt)
	}
}

// binOps holds every operator represented by BinOp.
var binOps = map[OpCode]binOpInfo{
	OpPlus:     {"+", formInfix, sameNumeric},
	OpMinus:    {"-", formInfix, sameNumeric},
	OpMultiply: {"*", formInfix, sameNumeric},
	OpDivision: {"/", formInfix, sameNumeric},
	OpModulo:   {"%", formInfix, sameNumeric},
	OpMin:      {"min", formFunc, sameNumeric},
	OpMax:      {"max", formFunc, sameNumeric},
	OpBitOr:    {"|", formInfix, sameNumeric},
	OpBitAnd:   {"&", formInfix, sameNumeric},
	OpBitXor:   {"^", formInfix, sameNumeric},

	OpLt:  {"<", formInfix, compareNumeric},
	OpLe:  {"<=", formInfix, compareNumeric},
	OpGt:  {">", formInfix, compareNumeric},
	OpGe:  {">=", formInfix, compareNumeric},
	OpEq:  {"==", formInfix, compareEqual},
	OpNeq: {"!=", formInfix, compareEqual},

	OpBinAnd: {"&&", formInfix, both(stype.SBoolean, stype.SBoolean, stype.SBoolean)},
	OpBinOr:  {"||", formInfix, both(stype.SBoolean, stype.SBoolean, stype.SBoolean)},
	OpBinXor: {"^", formInfix, both(stype.SBoolean, stype.SBoolean, stype.SBoolean)},

	OpXor:           {"xor", formFunc, both(sBytes, sBytes, sBytes)},
	OpExponentiate:  {"exp", formProp, both(stype.SGroupElement, stype.SBigInt, stype.SGroupElement)},
	OpMultiplyGroup: {"multiply", formProp, both(stype.SGroupElement, stype.SGroupElement, stype.SGroupElement)},
	OpAtLeast: {"atLeast", formFunc, both(stype.SInt,
		stype.NewSColl(stype.SSigmaProp), stype.SSigmaProp)},

	OpAppend: {"append", formProp, func(l, r stype.SType) (stype.SType, bool) {
		_, ok := l.(*stype.SColl)
		return l, ok && stype.Equal(l, r)
	}},
	OpOptionGetOrElse: {"getOrElse", formProp, func(l, r stype.SType) (stype.SType, bool) {
		o, ok := l.(*stype.SOption)
		if !ok {
			return nil, false
		}
		return o.Elem, stype.Equal(o.Elem, r)
	}},
}

// BinOp is an operator with two operands: arithmetic, comparisons, boolean
// connectives and the binary collection, group and option operators.
type BinOp struct {
	Spanned
	Kind  OpCode
	Left  Expr
	Right Expr

	tpe stype.SType
}

// NewBinOp returns the operator kind applied to left and right after checking
// the operand types.
func NewBinOp(kind OpCode, left, right Expr) (*BinOp, error) {
	info, ok := binOps[kind]
	if !ok {
		str := fmt.Sprintf("%v is not a binary operator", kind)
		return nil, irError(ErrInvalidNode, str)
	}
	tpe, ok := info.result(left.Tpe(), right.Tpe())
	if !ok {
		str := fmt.Sprintf("%v does not apply to %v and %v", kind,
			left.Tpe(), right.Tpe())
		return nil, irError(ErrInvalidNode, str)
	}
	return &BinOp{Kind: kind, Left: left, Right: right, tpe: tpe}, nil
}

// Tpe returns the result type of the operator.
func (n *BinOp) Tpe() stype.SType { return n.tpe }

// OpCode returns the operator kind.
func (n *BinOp) OpCode() OpCode { return n.Kind }

func (n *BinOp) writeBody(w *SigmaByteWriter) error {
	if err := w.WriteExpr(n.Left); err != nil {
		return err
	}
	return w.WriteExpr(n.Right)
}

func parseBinOp(r *SigmaByteReader, op OpCode) (Expr, error) {
	left, err := r.ReadExpr()
	if err != nil {
		return nil, err
	}
	right, err := r.ReadExpr()
	if err != nil {
		return nil, err
	}
	return NewBinOp(op, left, right)
}
