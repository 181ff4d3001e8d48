// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stype

import (
	"fmt"
	"strings"
)

// SType is the static type of an ErgoTree expression or value.  The set of
// implementations is closed: SimpleType, *SColl, *SOption, *STuple, *SFunc and
// STypeVar.
//
// Composite types are pointers, so types must be compared with Equal rather
// than ==.
type SType interface {
	// TypeCode returns the wire type code of the outermost constructor.
	TypeCode() TypeCode

	// String returns the type in ErgoScript syntax.
	String() string

	stype()
}

// SimpleType is a type without type parameters such as Int or Box.
type SimpleType TypeCode

// Types without type parameters.
const (
	SBoolean      = SimpleType(TypeCodeBoolean)
	SByte         = SimpleType(TypeCodeByte)
	SShort        = SimpleType(TypeCodeShort)
	SInt          = SimpleType(TypeCodeInt)
	SLong         = SimpleType(TypeCodeLong)
	SBigInt       = SimpleType(TypeCodeBigInt)
	SGroupElement = SimpleType(TypeCodeGroupElement)
	SSigmaProp    = SimpleType(TypeCodeSigmaProp)
	SAny          = SimpleType(TypeCodeAny)
	SUnit         = SimpleType(TypeCodeUnit)
	SBox          = SimpleType(TypeCodeBox)
	SAvlTree      = SimpleType(TypeCodeAvlTree)
	SContext      = SimpleType(TypeCodeContext)
	SHeader       = SimpleType(TypeCodeHeader)
	SPreHeader    = SimpleType(TypeCodePreHeader)
	SGlobal       = SimpleType(TypeCodeGlobal)
)

var simpleTypeNames = map[SimpleType]string{
	SBoolean:      "Boolean",
	SByte:         "Byte",
	SShort:        "Short",
	SInt:          "Int",
	SLong:         "Long",
	SBigInt:       "BigInt",
	SGroupElement: "GroupElement",
	SSigmaProp:    "SigmaProp",
	SAny:          "Any",
	SUnit:         "Unit",
	SBox:          "Box",
	SAvlTree:      "AvlTree",
	SContext:      "Context",
	SHeader:       "Header",
	SPreHeader:    "PreHeader",
	SGlobal:       "Global",
}

// TypeCode returns the wire type code.
func (t SimpleType) TypeCode() TypeCode { return TypeCode(t) }

// String returns the type name.
func (t SimpleType) String() string {
	if s, ok := simpleTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("SimpleType(%d)", uint8(t))
}

func (SimpleType) stype() {}

// SColl is the type of a collection with elements of type Elem.
type SColl struct {
	Elem SType
}

// NewSColl returns the collection type Coll[elem].
func NewSColl(elem SType) *SColl {
	return &SColl{Elem: elem}
}

// TypeCode returns TypeCodeColl.
func (t *SColl) TypeCode() TypeCode { return TypeCodeColl }

func (t *SColl) String() string { return "Coll[" + t.Elem.String() + "]" }

func (*SColl) stype() {}

// SOption is the type of an optional value of type Elem.
type SOption struct {
	Elem SType
}

// NewSOption returns the option type Option[elem].
func NewSOption(elem SType) *SOption {
	return &SOption{Elem: elem}
}

// TypeCode returns TypeCodeOption.
func (t *SOption) TypeCode() TypeCode { return TypeCodeOption }

func (t *SOption) String() string { return "Option[" + t.Elem.String() + "]" }

func (*SOption) stype() {}

// Tuple arity bounds.
const (
	MinTupleItems = 2
	MaxTupleItems = 255
)

// STuple is the type of a fixed size heterogeneous tuple.
type STuple struct {
	Items []SType
}

// NewSTuple returns a tuple type over items.  Tuples must have between
// MinTupleItems and MaxTupleItems items.
func NewSTuple(items ...SType) (*STuple, error) {
	if len(items) < MinTupleItems || len(items) > MaxTupleItems {
		str := fmt.Sprintf("tuple must have %d..%d items, got %d",
			MinTupleItems, MaxTupleItems, len(items))
		return nil, typeError(ErrTupleArity, str)
	}
	return &STuple{Items: items}, nil
}

// Pair returns the tuple type (a, b).
func Pair(a, b SType) *STuple {
	return &STuple{Items: []SType{a, b}}
}

// TypeCode returns TypeCodeTuple.
func (t *STuple) TypeCode() TypeCode { return TypeCodeTuple }

func (t *STuple) String() string {
	return "(" + joinTypes(t.Items) + ")"
}

func (*STuple) stype() {}

// Item returns the type of the 1-based field index, or false when the index
// is out of range.
func (t *STuple) Item(index uint8) (SType, bool) {
	if index == 0 || int(index) > len(t.Items) {
		return nil, false
	}
	return t.Items[index-1], true
}

// STypeVar is a free type variable in a method signature.
type STypeVar struct {
	Name string
}

// Type variables used in companion method signatures.
var (
	TypeVarT  = STypeVar{Name: "T"}
	TypeVarIV = STypeVar{Name: "IV"}
	TypeVarOV = STypeVar{Name: "OV"}
)

// TypeCode returns TypeCodeTypeVar.
func (STypeVar) TypeCode() TypeCode { return TypeCodeTypeVar }

func (t STypeVar) String() string { return t.Name }

func (STypeVar) stype() {}

// SFunc is the type of a function from Dom to Range.
type SFunc struct {
	Dom        []SType
	Range      SType
	TypeParams []STypeVar
}

// TypeCode returns TypeCodeFunc.
func (t *SFunc) TypeCode() TypeCode { return TypeCodeFunc }

func (t *SFunc) String() string {
	return "(" + joinTypes(t.Dom) + ") => " + t.Range.String()
}

func (*SFunc) stype() {}

func joinTypes(items []SType) string {
	strs := make([]string, len(items))
	for i, item := range items {
		strs[i] = item.String()
	}
	return strings.Join(strs, ", ")
}

// IsNumeric returns whether t is one of the integral number types.
func IsNumeric(t SType) bool {
	switch t {
	case SByte, SShort, SInt, SLong, SBigInt:
		return true
	}
	return false
}

// IsPrim returns whether t is a primitive type.  Unit and the object types
// such as Box are not primitive.
func IsPrim(t SType) bool {
	switch t {
	case SAny, SBoolean, SByte, SShort, SInt, SLong, SBigInt,
		SGroupElement, SSigmaProp:
		return true
	}
	return false
}

// IsEmbeddable returns whether t has a dedicated code that can be combined
// with a type constructor code into a single byte.
func IsEmbeddable(t SType) bool {
	s, ok := t.(SimpleType)
	return ok && s >= SBoolean && s <= SSigmaProp
}

// Equal reports whether a and b denote the same type.
func Equal(a, b SType) bool {
	switch a := a.(type) {
	case SimpleType:
		b, ok := b.(SimpleType)
		return ok && a == b

	case STypeVar:
		b, ok := b.(STypeVar)
		return ok && a == b

	case *SColl:
		b, ok := b.(*SColl)
		return ok && Equal(a.Elem, b.Elem)

	case *SOption:
		b, ok := b.(*SOption)
		return ok && Equal(a.Elem, b.Elem)

	case *STuple:
		b, ok := b.(*STuple)
		return ok && equalList(a.Items, b.Items)

	case *SFunc:
		b, ok := b.(*SFunc)
		return ok && equalList(a.Dom, b.Dom) && Equal(a.Range, b.Range)
	}
	return false
}

func equalList(a, b []SType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ElemType returns the element type of a collection type.
func ElemType(t SType) (SType, bool) {
	c, ok := t.(*SColl)
	if !ok {
		return nil, false
	}
	return c.Elem, true
}
