// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"

	"github.com/btcsuite/ergotree/stype"
)

// printForm selects how an operator is rendered by the printer.
type printForm uint8

const (
	// formFunc renders op(args).
	formFunc printForm = iota

	// formProp renders arg.op for unary and arg.op(arg2) for binary
	// operators.
	formProp

	// formPrefix renders a unary operator symbol before its operand.
	formPrefix

	// formInfix renders a binary operator symbol between its operands.
	formInfix
)

// unaryOpInfo describes one single operand operator.
type unaryOpInfo struct {
	name   string
	form   printForm
	result func(in stype.SType) (stype.SType, bool)
}

var (
	sBytes    = stype.NewSColl(stype.SByte)
	sBooleans = stype.NewSColl(stype.SBoolean)
	sBoxes    = stype.NewSColl(stype.SBox)
)

// from returns a result function for operators with a fixed operand type.
func from(in, out stype.SType) func(stype.SType) (stype.SType, bool) {
	return func(t stype.SType) (stype.SType, bool) {
		return out, stype.Equal(t, in)
	}
}

// unaryOps holds every operator represented by UnaryOp.
var unaryOps = map[OpCode]unaryOpInfo{
	OpSizeOf: {"size", formProp, func(t stype.SType) (stype.SType, bool) {
		_, ok := t.(*stype.SColl)
		return stype.SInt, ok
	}},
	OpExtractAmount:         {"value", formProp, from(stype.SBox, stype.SLong)},
	OpExtractScriptBytes:    {"propositionBytes", formProp, from(stype.SBox, sBytes)},
	OpExtractBytes:          {"bytes", formProp, from(stype.SBox, sBytes)},
	OpExtractBytesWithNoRef: {"bytesWithoutRef", formProp, from(stype.SBox, sBytes)},
	OpExtractID:             {"id", formProp, from(stype.SBox, sBytes)},
	OpExtractCreationInfo: {"creationInfo", formProp,
		from(stype.SBox, stype.Pair(stype.SInt, sBytes))},
	OpCalcBlake2b256:    {"blake2b256", formFunc, from(sBytes, sBytes)},
	OpCalcSha256:        {"sha256", formFunc, from(sBytes, sBytes)},
	OpProveDlog:         {"proveDlog", formFunc, from(stype.SGroupElement, stype.SSigmaProp)},
	OpSigmaPropBytes:    {"propBytes", formProp, from(stype.SSigmaProp, sBytes)},
	OpBoolToSigmaProp:   {"sigmaProp", formFunc, from(stype.SBoolean, stype.SSigmaProp)},
	OpDecodePoint:       {"decodePoint", formFunc, from(sBytes, stype.SGroupElement)},
	OpLongToByteArray:   {"longToByteArray", formFunc, from(stype.SLong, sBytes)},
	OpByteArrayToLong:   {"byteArrayToLong", formFunc, from(sBytes, stype.SLong)},
	OpByteArrayToBigInt: {"byteArrayToBigInt", formFunc, from(sBytes, stype.SBigInt)},
	OpAnd:               {"allOf", formFunc, from(sBooleans, stype.SBoolean)},
	OpOr:                {"anyOf", formFunc, from(sBooleans, stype.SBoolean)},
	OpXorOf:             {"xorOf", formFunc, from(sBooleans, stype.SBoolean)},
	OpLogicalNot:        {"!", formPrefix, from(stype.SBoolean, stype.SBoolean)},
	OpNegation: {"-", formPrefix, func(t stype.SType) (stype.SType, bool) {
		return t, stype.IsNumeric(t)
	}},
	OpBitInversion: {"~", formPrefix, func(t stype.SType) (stype.SType, bool) {
		return t, stype.IsNumeric(t)
	}},
	OpOptionGet: {"get", formProp, func(t stype.SType) (stype.SType, bool) {
		o, ok := t.(*stype.SOption)
		if !ok {
			return nil, false
		}
		return o.Elem, true
	}},
	OpOptionIsDefined: {"isDefined", formProp, func(t stype.SType) (stype.SType, bool) {
		_, ok := t.(*stype.SOption)
		return stype.SBoolean, ok
	}},
}

// UnaryOp is an operator with a single operand, such as SizeOf, the box
// field extractors, hashing, option accessors and logical negation.
type UnaryOp struct {
	Spanned
	Kind  OpCode
	Input Expr

	tpe stype.SType
}

// NewUnaryOp returns the operator kind applied to input after checking the
// operand type.
func NewUnaryOp(kind OpCode, input Expr) (*UnaryOp, error) {
	info, ok := unaryOps[kind]
	if !ok {
		str := fmt.Sprintf("%v is not a unary operator", kind)
		return nil, irError(ErrInvalidNode, str)
	}
	tpe, ok := info.result(input.Tpe())
	if !ok {
		str := fmt.Sprintf("%v does not apply to %v", kind, input.Tpe())
		return nil, irError(ErrInvalidNode, str)
	}
	return &UnaryOp{Kind: kind, Input: input, tpe: tpe}, nil
}

// Tpe returns the result type of the operator.
func (n *UnaryOp) Tpe() stype.SType { return n.tpe }

// OpCode returns the operator kind.
func (n *UnaryOp) OpCode() OpCode { return n.Kind }

func (n *UnaryOp) writeBody(w *SigmaByteWriter) error {
	return w.WriteExpr(n.Input)
}

func parseUnaryOp(r *SigmaByteReader, op OpCode) (Expr, error) {
	input, err := r.ReadExpr()
	if err != nil {
		return nil, err
	}
	return NewUnaryOp(op, input)
}
