// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/ergotree/sigma"
	"github.com/btcsuite/ergotree/stype"
)

// Constant is a literal value of a given type.
type Constant struct {
	Spanned
	Type stype.SType
	V    Value
}

// NewConstant returns a constant after checking that v is of type tpe.
func NewConstant(tpe stype.SType, v Value) (*Constant, error) {
	if !stype.Equal(TypeOf(v), tpe) {
		str := fmt.Sprintf("value of type %v in a constant of type %v",
			TypeOf(v), tpe)
		return nil, irError(ErrInvalidNode, str)
	}
	return &Constant{Type: tpe, V: v}, nil
}

// Tpe returns the type of the constant.
func (c *Constant) Tpe() stype.SType { return c.Type }

// OpCode returns OpCodeConstant.  Constants are serialized starting with
// their type rather than with an operator code.
func (c *Constant) OpCode() OpCode { return OpCodeConstant }

func (c *Constant) writeBody(w *SigmaByteWriter) error {
	if err := stype.SerializeType(w.Writer, c.Type); err != nil {
		return err
	}
	return SerializeData(w.Writer, c.Type, c.V)
}

// Constructors for constants of the common types.

func ConstBool(v bool) *Constant {
	return &Constant{Type: stype.SBoolean, V: Boolean(v)}
}

func ConstByte(v int8) *Constant {
	return &Constant{Type: stype.SByte, V: Byte(v)}
}

func ConstShort(v int16) *Constant {
	return &Constant{Type: stype.SShort, V: Short(v)}
}

func ConstInt(v int32) *Constant {
	return &Constant{Type: stype.SInt, V: Int(v)}
}

func ConstLong(v int64) *Constant {
	return &Constant{Type: stype.SLong, V: Long(v)}
}

func ConstUnit() *Constant {
	return &Constant{Type: stype.SUnit, V: Unit{}}
}

func ConstBytes(b []byte) *Constant {
	return &Constant{Type: stype.NewSColl(stype.SByte), V: BytesColl(b)}
}

func ConstGroupElement(p *sigma.EcPoint) *Constant {
	return &Constant{Type: stype.SGroupElement, V: GroupElement{V: p}}
}

func ConstSigmaProp(sb sigma.SigmaBoolean) *Constant {
	return &Constant{Type: stype.SSigmaProp, V: SigmaProp{V: sb}}
}

func ConstBox(b *Box) *Constant {
	return &Constant{Type: stype.SBox, V: b}
}

// ConstBigInt returns a BigInt constant, failing when v is out of bounds.
func ConstBigInt(v *big.Int) (*Constant, error) {
	b, err := NewBigInt(v)
	if err != nil {
		return nil, err
	}
	return &Constant{Type: stype.SBigInt, V: b}, nil
}

// ConstantPlaceholder refers to a segregated constant of the given type by its
// index in the constant store.
type ConstantPlaceholder struct {
	Spanned
	ID   uint32
	Type stype.SType
}

// Tpe returns the type of the referenced constant.
func (p *ConstantPlaceholder) Tpe() stype.SType { return p.Type }

// OpCode returns OpConstantPlaceholder.
func (p *ConstantPlaceholder) OpCode() OpCode { return OpConstantPlaceholder }

func (p *ConstantPlaceholder) writeBody(w *SigmaByteWriter) error {
	w.PutU32(p.ID)
	return nil
}

func parseConstantPlaceholder(r *SigmaByteReader, _ OpCode) (Expr, error) {
	id, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	c, ok := r.store.Get(id)
	if !ok {
		str := fmt.Sprintf("placeholder %d refers past the %d stored "+
			"constants", id, r.store.Len())
		return nil, irError(ErrPlaceholderNotFound, str)
	}
	if r.substitute {
		return &Constant{Type: c.Type, V: c.V}, nil
	}
	return &ConstantPlaceholder{ID: id, Type: c.Type}, nil
}
