// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/btcsuite/ergotree/sigma"
	"github.com/btcsuite/ergotree/stype"
)

// Value is the result of evaluating an expression and the payload of a
// Constant.  The set of implementations is closed.
type Value interface {
	isValue()
}

// Unit is the single value of type Unit.
type Unit struct{}

// Boolean is a value of type Boolean.
type Boolean bool

// Byte is a value of type Byte.
type Byte int8

// Short is a value of type Short.
type Short int16

// Int is a value of type Int.
type Int int32

// Long is a value of type Long.
type Long int64

// BigInt is a value of type BigInt.  The magnitude is bounded to 256 bits in
// two's complement.
type BigInt struct {
	V *big.Int
}

// GroupElement is a value of type GroupElement.
type GroupElement struct {
	V *sigma.EcPoint
}

// SigmaProp is a value of type SigmaProp.
type SigmaProp struct {
	V sigma.SigmaBoolean
}

// Coll is a collection of values of type Elem.
type Coll struct {
	Elem  stype.SType
	Items []Value
}

// Opt is a value of type Option[Elem].  A nil V is None.
type Opt struct {
	Elem stype.SType
	V    Value
}

// Tup is a tuple value.
type Tup []Value

// ContextValue is the value of the CONTEXT expression.  Its content is held by
// the evaluator.
type ContextValue struct{}

// GlobalValue is the value of the Global expression.
type GlobalValue struct{}

func (Unit) isValue()         {}
func (Boolean) isValue()      {}
func (Byte) isValue()         {}
func (Short) isValue()        {}
func (Int) isValue()          {}
func (Long) isValue()         {}
func (BigInt) isValue()       {}
func (GroupElement) isValue() {}
func (SigmaProp) isValue()    {}
func (Coll) isValue()         {}
func (Opt) isValue()          {}
func (Tup) isValue()          {}
func (*Box) isValue()         {}
func (ContextValue) isValue() {}
func (GlobalValue) isValue()  {}

// BigIntMaxBits is the maximum bit length of a BigInt magnitude.
const BigIntMaxBits = 255

// NewBigInt returns a BigInt value for v, or an error when v does not fit into
// 256 bits.
func NewBigInt(v *big.Int) (BigInt, error) {
	if v.BitLen() > BigIntMaxBits {
		str := fmt.Sprintf("BigInt of %d bits exceeds the 256-bit bound",
			v.BitLen()+1)
		return BigInt{}, irError(ErrBoundsExceeded, str)
	}
	return BigInt{V: new(big.Int).Set(v)}, nil
}

// BytesColl returns b as a Coll[Byte].
func BytesColl(b []byte) Coll {
	items := make([]Value, len(b))
	for i, v := range b {
		items[i] = Byte(int8(v))
	}
	return Coll{Elem: stype.SByte, Items: items}
}

// Bytes returns the content of a Coll[Byte].  It panics when the collection
// holds anything but bytes.
func (c Coll) Bytes() []byte {
	b := make([]byte, len(c.Items))
	for i, v := range c.Items {
		b[i] = byte(v.(Byte))
	}
	return b
}

// Some returns the defined option holding v.
func Some(elem stype.SType, v Value) Opt {
	return Opt{Elem: elem, V: v}
}

// None returns the empty option of the given element type.
func None(elem stype.SType) Opt {
	return Opt{Elem: elem}
}

// IsDefined reports whether the option holds a value.
func (o Opt) IsDefined() bool {
	return o.V != nil
}

// TypeOf returns the static type of v.
func TypeOf(v Value) stype.SType {
	switch v := v.(type) {
	case Unit:
		return stype.SUnit
	case Boolean:
		return stype.SBoolean
	case Byte:
		return stype.SByte
	case Short:
		return stype.SShort
	case Int:
		return stype.SInt
	case Long:
		return stype.SLong
	case BigInt:
		return stype.SBigInt
	case GroupElement:
		return stype.SGroupElement
	case SigmaProp:
		return stype.SSigmaProp
	case Coll:
		return stype.NewSColl(v.Elem)
	case Opt:
		return stype.NewSOption(v.Elem)
	case Tup:
		items := make([]stype.SType, len(v))
		for i, item := range v {
			items[i] = TypeOf(item)
		}
		return &stype.STuple{Items: items}
	case *Box:
		return stype.SBox
	case ContextValue:
		return stype.SContext
	case GlobalValue:
		return stype.SGlobal
	}
	panic(fmt.Sprintf("unknown value %T", v))
}

// Equal reports whether two values are structurally equal.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case BigInt:
		b, ok := b.(BigInt)
		return ok && a.V.Cmp(b.V) == 0

	case GroupElement:
		b, ok := b.(GroupElement)
		return ok && a.V.Equal(b.V)

	case SigmaProp:
		b, ok := b.(SigmaProp)
		return ok && sigma.Equal(a.V, b.V)

	case Coll:
		b, ok := b.(Coll)
		if !ok || !stype.Equal(a.Elem, b.Elem) ||
			len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true

	case Opt:
		b, ok := b.(Opt)
		if !ok || !stype.Equal(a.Elem, b.Elem) {
			return false
		}
		if a.V == nil || b.V == nil {
			return a.V == nil && b.V == nil
		}
		return Equal(a.V, b.V)

	case Tup:
		b, ok := b.(Tup)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true

	case *Box:
		b, ok := b.(*Box)
		if !ok {
			return false
		}
		if a == b {
			return true
		}
		ab, errA := a.Bytes()
		bb, errB := b.Bytes()
		return errA == nil && errB == nil && bytes.Equal(ab, bb)
	}
	return a == b
}

// FormatValue returns v in ErgoScript literal syntax.
func FormatValue(v Value) string {
	switch v := v.(type) {
	case Unit:
		return "()"
	case Boolean:
		if v {
			return "true"
		}
		return "false"
	case Byte:
		return fmt.Sprintf("%d.toByte", int8(v))
	case Short:
		return fmt.Sprintf("%d.toShort", int16(v))
	case Int:
		return fmt.Sprintf("%d", int32(v))
	case Long:
		return fmt.Sprintf("%dL", int64(v))
	case BigInt:
		return fmt.Sprintf("bigInt(\"%s\")", v.V.String())
	case GroupElement:
		return fmt.Sprintf("decodePoint(fromBase16(\"%s\"))", v.V)
	case SigmaProp:
		return v.V.String()
	case Coll:
		if v.Elem == stype.SByte {
			return fmt.Sprintf("fromBase16(\"%s\")",
				hex.EncodeToString(v.Bytes()))
		}
		items := make([]string, len(v.Items))
		for i, item := range v.Items {
			items[i] = FormatValue(item)
		}
		return "Coll[" + v.Elem.String() + "](" +
			strings.Join(items, ", ") + ")"
	case Opt:
		if v.V == nil {
			return "None"
		}
		return "Some(" + FormatValue(v.V) + ")"
	case Tup:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = FormatValue(item)
		}
		return "(" + strings.Join(items, ", ") + ")"
	case *Box:
		id, err := v.ID()
		if err != nil {
			return "Box(?)"
		}
		return "Box(" + id.String() + ")"
	case ContextValue:
		return "CONTEXT"
	case GlobalValue:
		return "Global"
	}
	return fmt.Sprintf("%v", v)
}
