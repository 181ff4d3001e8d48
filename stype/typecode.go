// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stype

// TypeCode is the first byte of a serialized type.  Embeddable types occupy
// codes 1 through 8, and the type constructors reserve blocks of
// PrimRange codes so that a constructor applied to an embeddable type fits
// into one byte: code = constructor + embeddable code.
type TypeCode uint8

// Embeddable (primitive) type codes.
const (
	TypeCodeBoolean      TypeCode = 1
	TypeCodeByte         TypeCode = 2
	TypeCodeShort        TypeCode = 3
	TypeCodeInt          TypeCode = 4
	TypeCodeLong         TypeCode = 5
	TypeCodeBigInt       TypeCode = 6
	TypeCodeGroupElement TypeCode = 7
	TypeCodeSigmaProp    TypeCode = 8
)

// PrimRange is the number of codes reserved by every type constructor.
const PrimRange = 12

// Type constructor codes.
const (
	TypeCodeColl          TypeCode = PrimRange
	TypeCodeNestedColl    TypeCode = 2 * PrimRange
	TypeCodeOption        TypeCode = 3 * PrimRange
	TypeCodeOptionColl    TypeCode = 4 * PrimRange
	TypeCodePair1         TypeCode = 5 * PrimRange
	TypeCodePair2         TypeCode = 6 * PrimRange
	TypeCodePairSymmetric TypeCode = 7 * PrimRange
	TypeCodeTuple         TypeCode = 8 * PrimRange

	// TypeCodeTriple and TypeCodeQuadruple share the codes of Pair2 and
	// PairSymmetric without an embedded type.
	TypeCodeTriple    = TypeCodePair2
	TypeCodeQuadruple = TypeCodePairSymmetric
)

// Codes of types that are not built from constructors.
const (
	TypeCodeAny       TypeCode = 97
	TypeCodeUnit      TypeCode = 98
	TypeCodeBox       TypeCode = 99
	TypeCodeAvlTree   TypeCode = 100
	TypeCodeContext   TypeCode = 101
	TypeCodeString    TypeCode = 102
	TypeCodeTypeVar   TypeCode = 103
	TypeCodeHeader    TypeCode = 104
	TypeCodePreHeader TypeCode = 105
	TypeCodeGlobal    TypeCode = 106
	TypeCodeFunc      TypeCode = 112
)

// LastDataType is the largest code a serialized constant type may start
// with.
const LastDataType TypeCode = 111
