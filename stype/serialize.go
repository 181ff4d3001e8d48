// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stype

import (
	"fmt"

	"github.com/btcsuite/ergotree/wire"
)

// embeddableByCode maps the embeddable part of a type code back to its type.
var embeddableByCode = [PrimRange]SType{
	TypeCodeBoolean:      SBoolean,
	TypeCodeByte:         SByte,
	TypeCodeShort:        SShort,
	TypeCodeInt:          SInt,
	TypeCodeLong:         SLong,
	TypeCodeBigInt:       SBigInt,
	TypeCodeGroupElement: SGroupElement,
	TypeCodeSigmaProp:    SSigmaProp,
}

// SerializeType writes the wire encoding of t.
func SerializeType(w *wire.Writer, t SType) error {
	switch t := t.(type) {
	case SimpleType:
		if _, ok := simpleTypeNames[t]; !ok {
			str := fmt.Sprintf("unknown simple type %d", uint8(t))
			return typeError(ErrNotSerializable, str)
		}
		w.PutByte(byte(t))
		return nil

	case *SColl:
		if IsEmbeddable(t.Elem) {
			w.PutByte(byte(TypeCodeColl + t.Elem.TypeCode()))
			return nil
		}
		if inner, ok := t.Elem.(*SColl); ok && IsEmbeddable(inner.Elem) {
			w.PutByte(byte(TypeCodeNestedColl + inner.Elem.TypeCode()))
			return nil
		}
		w.PutByte(byte(TypeCodeColl))
		return SerializeType(w, t.Elem)

	case *SOption:
		if IsEmbeddable(t.Elem) {
			w.PutByte(byte(TypeCodeOption + t.Elem.TypeCode()))
			return nil
		}
		if inner, ok := t.Elem.(*SColl); ok && IsEmbeddable(inner.Elem) {
			w.PutByte(byte(TypeCodeOptionColl + inner.Elem.TypeCode()))
			return nil
		}
		w.PutByte(byte(TypeCodeOption))
		return SerializeType(w, t.Elem)

	case *STuple:
		return serializeTuple(w, t)
	}

	str := fmt.Sprintf("type %v has no wire encoding", t)
	return typeError(ErrNotSerializable, str)
}

func serializeTuple(w *wire.Writer, t *STuple) error {
	switch len(t.Items) {
	case 2:
		a, b := t.Items[0], t.Items[1]
		switch {
		case IsEmbeddable(a) && Equal(a, b):
			w.PutByte(byte(TypeCodePairSymmetric + a.TypeCode()))
			return nil

		case IsEmbeddable(a):
			w.PutByte(byte(TypeCodePair1 + a.TypeCode()))
			return SerializeType(w, b)

		case IsEmbeddable(b):
			w.PutByte(byte(TypeCodePair2 + b.TypeCode()))
			return SerializeType(w, a)
		}
		w.PutByte(byte(TypeCodePair1))

	case 3:
		w.PutByte(byte(TypeCodeTriple))

	case 4:
		w.PutByte(byte(TypeCodeQuadruple))

	default:
		if len(t.Items) < MinTupleItems || len(t.Items) > MaxTupleItems {
			str := fmt.Sprintf("tuple with %d items", len(t.Items))
			return typeError(ErrTupleArity, str)
		}
		w.PutByte(byte(TypeCodeTuple))
		w.PutByte(byte(len(t.Items)))
	}
	for _, item := range t.Items {
		if err := SerializeType(w, item); err != nil {
			return err
		}
	}
	return nil
}

// ParseType reads a serialized type.
func ParseType(r *wire.Reader) (SType, error) {
	c, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	return ParseTypeWithCode(r, TypeCode(c))
}

// ParseTypeWithCode reads the remainder of a serialized type whose first
// byte c has already been consumed.
func ParseTypeWithCode(r *wire.Reader, c TypeCode) (SType, error) {
	if c > 0 && c < TypeCodeTuple {
		return parseConstructed(r, c)
	}

	switch c {
	case TypeCodeTuple:
		n, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		items, err := parseTypes(r, int(n))
		if err != nil {
			return nil, err
		}
		return NewSTuple(items...)

	case TypeCodeAny, TypeCodeUnit, TypeCodeBox, TypeCodeAvlTree,
		TypeCodeContext, TypeCodeHeader, TypeCodePreHeader,
		TypeCodeGlobal:
		return SimpleType(c), nil
	}

	str := fmt.Sprintf("invalid type code %d", c)
	return nil, typeError(ErrInvalidTypeCode, str)
}

func parseConstructed(r *wire.Reader, c TypeCode) (SType, error) {
	constrID := c / PrimRange
	primID := c % PrimRange

	// embedded returns the embeddable type encoded in the low part of c.
	embedded := func() (SType, error) {
		if t := embeddableByCode[primID]; t != nil {
			return t, nil
		}
		str := fmt.Sprintf("invalid embeddable type code %d in %d", primID, c)
		return nil, typeError(ErrInvalidTypeCode, str)
	}

	// elem returns the embedded type, or reads one when none is embedded.
	elem := func() (SType, error) {
		if primID == 0 {
			return ParseType(r)
		}
		return embedded()
	}

	switch TypeCode(constrID) * PrimRange {
	case 0:
		return embedded()

	case TypeCodeColl:
		e, err := elem()
		if err != nil {
			return nil, err
		}
		return NewSColl(e), nil

	case TypeCodeNestedColl:
		e, err := elem()
		if err != nil {
			return nil, err
		}
		return NewSColl(NewSColl(e)), nil

	case TypeCodeOption:
		e, err := elem()
		if err != nil {
			return nil, err
		}
		return NewSOption(e), nil

	case TypeCodeOptionColl:
		e, err := elem()
		if err != nil {
			return nil, err
		}
		return NewSOption(NewSColl(e)), nil

	case TypeCodePair1:
		if primID == 0 {
			items, err := parseTypes(r, 2)
			if err != nil {
				return nil, err
			}
			return Pair(items[0], items[1]), nil
		}
		a, err := embedded()
		if err != nil {
			return nil, err
		}
		b, err := ParseType(r)
		if err != nil {
			return nil, err
		}
		return Pair(a, b), nil

	case TypeCodePair2:
		if primID == 0 {
			items, err := parseTypes(r, 3)
			if err != nil {
				return nil, err
			}
			return &STuple{Items: items}, nil
		}
		a, err := ParseType(r)
		if err != nil {
			return nil, err
		}
		b, err := embedded()
		if err != nil {
			return nil, err
		}
		return Pair(a, b), nil

	case TypeCodePairSymmetric:
		if primID == 0 {
			items, err := parseTypes(r, 4)
			if err != nil {
				return nil, err
			}
			return &STuple{Items: items}, nil
		}
		a, err := embedded()
		if err != nil {
			return nil, err
		}
		return Pair(a, a), nil
	}

	str := fmt.Sprintf("invalid type code %d", c)
	return nil, typeError(ErrInvalidTypeCode, str)
}

func parseTypes(r *wire.Reader, n int) ([]SType, error) {
	items := make([]SType, n)
	for i := range items {
		t, err := ParseType(r)
		if err != nil {
			return nil, err
		}
		items[i] = t
	}
	return items, nil
}
