// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gf2192 implements arithmetic in the binary field GF(2^192) and
// polynomials over it.
//
// Field elements are polynomials over GF(2) reduced modulo the irreducible
// pentanomial x^192 + x^7 + x^2 + x + 1.  The 24-byte encoding of an element
// is little endian: bit i of byte j is the coefficient of x^(8j+i).  Since
// addition is xor, adding two elements is the same as xoring their encodings,
// which is what lets challenges of a threshold proof be shared with
// polynomials over this field.
package gf2192

import (
	"encoding/binary"
	"fmt"
)

// ElementSize is the size of an encoded field element.
const ElementSize = 24

// reduction holds the low terms x^7 + x^2 + x + 1 of the field modulus.
const reduction = 0x87

// Element is an element of GF(2^192) as three 64-bit words, least significant
// word first.
type Element [3]uint64

// Zero and One are the additive and multiplicative identities.
var (
	Zero = Element{}
	One  = Element{1, 0, 0}
)

// FromBytes decodes a 24-byte little-endian element.
func FromBytes(b []byte) (Element, error) {
	var e Element
	if len(b) != ElementSize {
		return e, fmt.Errorf("field element of %d bytes, want %d", len(b),
			ElementSize)
	}
	for i := range e {
		e[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return e, nil
}

// FromByte returns the element whose low coefficients are the bits of b.
func FromByte(b byte) Element {
	return Element{uint64(b), 0, 0}
}

// Bytes returns the 24-byte little-endian encoding of e.
func (e Element) Bytes() []byte {
	b := make([]byte, ElementSize)
	e.PutBytes(b)
	return b
}

// PutBytes writes the encoding of e into the first 24 bytes of b.
func (e Element) PutBytes(b []byte) {
	for i, w := range e {
		binary.LittleEndian.PutUint64(b[i*8:], w)
	}
}

// IsZero reports whether e is the zero element.
func (e Element) IsZero() bool {
	return e == Zero
}

// Add returns e + o, which is also e - o.
func (e Element) Add(o Element) Element {
	return Element{e[0] ^ o[0], e[1] ^ o[1], e[2] ^ o[2]}
}

// mulX returns e·x.
func (e Element) mulX() Element {
	carry := e[2] >> 63
	r := Element{
		e[0] << 1,
		e[1]<<1 | e[0]>>63,
		e[2]<<1 | e[1]>>63,
	}
	r[0] ^= carry * reduction
	return r
}

// Mul returns e·o.
func (e Element) Mul(o Element) Element {
	var r Element
	for i := len(o) - 1; i >= 0; i-- {
		for bit := 63; bit >= 0; bit-- {
			r = r.mulX()
			if o[i]>>uint(bit)&1 == 1 {
				r = r.Add(e)
			}
		}
	}
	return r
}

// MulByte returns e·b for a small element b.
func (e Element) MulByte(b byte) Element {
	var r Element
	for bit := 7; bit >= 0; bit-- {
		r = r.mulX()
		if b>>uint(bit)&1 == 1 {
			r = r.Add(e)
		}
	}
	return r
}

// Square returns e·e.
func (e Element) Square() Element {
	return e.Mul(e)
}

// Inverse returns the multiplicative inverse of e, computed as
// e^(2^192-2).  The inverse of zero is zero.
func (e Element) Inverse() Element {
	r := One
	t := e
	for i := 1; i < 192; i++ {
		t = t.Square()
		r = r.Mul(t)
	}
	return r
}

// String returns the encoding of e as hex.
func (e Element) String() string {
	return fmt.Sprintf("%x", e.Bytes())
}
