// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"
	"math"
	"math/big"

	"github.com/btcsuite/ergotree/sigma"
	"github.com/btcsuite/ergotree/stype"
	"github.com/btcsuite/ergotree/wire"
)

// maxBigIntBytes is the longest two's complement encoding of a BigInt.
const maxBigIntBytes = 32

// notSerializable returns the error for data of tpe without an encoding.
func notSerializable(tpe stype.SType) error {
	str := fmt.Sprintf("values of type %v have no wire encoding", tpe)
	return irError(ErrNotSerializable, str)
}

// mismatchedValue returns the error for a value that does not match tpe.
func mismatchedValue(tpe stype.SType, v Value) error {
	str := fmt.Sprintf("value %T does not match type %v", v, tpe)
	return irError(ErrInvalidNode, str)
}

// SerializeData writes the encoding of v, which must be of type tpe.  The type
// itself is not written.
func SerializeData(w *wire.Writer, tpe stype.SType, v Value) error {
	switch tpe := tpe.(type) {
	case stype.SimpleType:
		return serializeSimple(w, tpe, v)

	case *stype.SColl:
		c, ok := v.(Coll)
		if !ok {
			return mismatchedValue(tpe, v)
		}
		if len(c.Items) > math.MaxUint16 {
			str := fmt.Sprintf("collection of %d items", len(c.Items))
			return irError(ErrBoundsExceeded, str)
		}
		w.PutU16(uint16(len(c.Items)))
		switch tpe.Elem {
		case stype.SBoolean:
			bits := make([]bool, len(c.Items))
			for i, item := range c.Items {
				b, ok := item.(Boolean)
				if !ok {
					return mismatchedValue(tpe.Elem, item)
				}
				bits[i] = bool(b)
			}
			w.PutBits(bits)
			return nil

		case stype.SByte:
			for _, item := range c.Items {
				b, ok := item.(Byte)
				if !ok {
					return mismatchedValue(tpe.Elem, item)
				}
				w.PutByte(byte(b))
			}
			return nil
		}
		for _, item := range c.Items {
			if err := SerializeData(w, tpe.Elem, item); err != nil {
				return err
			}
		}
		return nil

	case *stype.SOption:
		o, ok := v.(Opt)
		if !ok {
			return mismatchedValue(tpe, v)
		}
		if o.V == nil {
			w.PutByte(0)
			return nil
		}
		w.PutByte(1)
		return SerializeData(w, tpe.Elem, o.V)

	case *stype.STuple:
		t, ok := v.(Tup)
		if !ok || len(t) != len(tpe.Items) {
			return mismatchedValue(tpe, v)
		}
		for i, item := range t {
			if err := SerializeData(w, tpe.Items[i], item); err != nil {
				return err
			}
		}
		return nil
	}
	return notSerializable(tpe)
}

func serializeSimple(w *wire.Writer, tpe stype.SimpleType, v Value) error {
	switch tpe {
	case stype.SUnit:
		if _, ok := v.(Unit); ok {
			return nil
		}

	case stype.SBoolean:
		if v, ok := v.(Boolean); ok {
			if v {
				w.PutByte(1)
			} else {
				w.PutByte(0)
			}
			return nil
		}

	case stype.SByte:
		if v, ok := v.(Byte); ok {
			w.PutByte(byte(v))
			return nil
		}

	case stype.SShort:
		if v, ok := v.(Short); ok {
			w.PutI16(int16(v))
			return nil
		}

	case stype.SInt:
		if v, ok := v.(Int); ok {
			w.PutI32(int32(v))
			return nil
		}

	case stype.SLong:
		if v, ok := v.(Long); ok {
			w.PutI64(int64(v))
			return nil
		}

	case stype.SBigInt:
		if v, ok := v.(BigInt); ok {
			b := bigIntToSignedBytes(v.V)
			if len(b) > maxBigIntBytes {
				str := fmt.Sprintf("BigInt of %d bytes", len(b))
				return irError(ErrBoundsExceeded, str)
			}
			w.PutU16(uint16(len(b)))
			w.PutBytes(b)
			return nil
		}

	case stype.SGroupElement:
		if v, ok := v.(GroupElement); ok {
			v.V.Write(w)
			return nil
		}

	case stype.SSigmaProp:
		if v, ok := v.(SigmaProp); ok {
			sigma.Serialize(w, v.V)
			return nil
		}

	case stype.SBox:
		if v, ok := v.(*Box); ok {
			return v.write(w, true)
		}

	default:
		return notSerializable(tpe)
	}
	return mismatchedValue(tpe, v)
}

// ParseData reads a value of type tpe.
func ParseData(r *wire.Reader, tpe stype.SType) (Value, error) {
	switch tpe := tpe.(type) {
	case stype.SimpleType:
		return parseSimple(r, tpe)

	case *stype.SColl:
		n, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		items := make([]Value, n)
		switch tpe.Elem {
		case stype.SBoolean:
			bits, err := r.ReadBits(int(n))
			if err != nil {
				return nil, err
			}
			for i, b := range bits {
				items[i] = Boolean(b)
			}
			return Coll{Elem: tpe.Elem, Items: items}, nil

		case stype.SByte:
			b, err := r.ReadBytes(int(n))
			if err != nil {
				return nil, err
			}
			return BytesColl(b), nil
		}
		for i := range items {
			if items[i], err = ParseData(r, tpe.Elem); err != nil {
				return nil, err
			}
		}
		return Coll{Elem: tpe.Elem, Items: items}, nil

	case *stype.SOption:
		flag, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if flag == 0 {
			return None(tpe.Elem), nil
		}
		v, err := ParseData(r, tpe.Elem)
		if err != nil {
			return nil, err
		}
		return Some(tpe.Elem, v), nil

	case *stype.STuple:
		items := make(Tup, len(tpe.Items))
		for i, itemTpe := range tpe.Items {
			v, err := ParseData(r, itemTpe)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return items, nil
	}
	return nil, notSerializable(tpe)
}

func parseSimple(r *wire.Reader, tpe stype.SimpleType) (Value, error) {
	switch tpe {
	case stype.SUnit:
		return Unit{}, nil

	case stype.SBoolean:
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return Boolean(b != 0), nil

	case stype.SByte:
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		return Byte(int8(b)), nil

	case stype.SShort:
		v, err := r.ReadI16()
		return Short(v), err

	case stype.SInt:
		v, err := r.ReadI32()
		return Int(v), err

	case stype.SLong:
		v, err := r.ReadI64()
		return Long(v), err

	case stype.SBigInt:
		n, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		if n == 0 || n > maxBigIntBytes {
			str := fmt.Sprintf("BigInt of %d bytes", n)
			return nil, irError(ErrBoundsExceeded, str)
		}
		b, err := r.ReadBytes(int(n))
		if err != nil {
			return nil, err
		}
		return BigInt{V: signedBytesToBigInt(b)}, nil

	case stype.SGroupElement:
		p, err := sigma.ReadEcPoint(r)
		if err != nil {
			return nil, err
		}
		return GroupElement{V: p}, nil

	case stype.SSigmaProp:
		sb, err := sigma.Parse(r)
		if err != nil {
			return nil, err
		}
		return SigmaProp{V: sb}, nil

	case stype.SBox:
		return readBox(r, true)
	}
	return nil, notSerializable(tpe)
}

// bigIntToSignedBytes returns the minimal big-endian two's complement
// encoding of v.
func bigIntToSignedBytes(v *big.Int) []byte {
	if v.Sign() >= 0 {
		b := v.Bytes()
		if len(b) == 0 || b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}

	// -v - 1 has the complemented bits of v.
	m := new(big.Int).Add(v, big.NewInt(1))
	b := m.Neg(m).Bytes()
	for i := range b {
		b[i] = ^b[i]
	}
	if len(b) == 0 || b[0]&0x80 == 0 {
		b = append([]byte{0xff}, b...)
	}
	return b
}

// signedBytesToBigInt decodes a big-endian two's complement integer.
func signedBytesToBigInt(b []byte) *big.Int {
	if len(b) == 0 || b[0]&0x80 == 0 {
		return new(big.Int).SetBytes(b)
	}
	inv := make([]byte, len(b))
	for i := range b {
		inv[i] = ^b[i]
	}
	v := new(big.Int).SetBytes(inv)
	v.Add(v, big.NewInt(1))
	return v.Neg(v)
}
