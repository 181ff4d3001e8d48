// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gf2192

import (
	"fmt"
)

// Poly is a polynomial over GF(2^192).  Coefficient i is the coefficient of
// x^i.
type Poly struct {
	coeffs []Element
}

// NewPoly returns the polynomial with the given coefficients, constant term
// first.  A polynomial always has at least the constant term.
func NewPoly(coeffs []Element) *Poly {
	p := &Poly{coeffs: make([]Element, len(coeffs))}
	copy(p.coeffs, coeffs)
	if len(p.coeffs) == 0 {
		p.coeffs = []Element{Zero}
	}
	return p
}

// PolyFromBytes returns the polynomial with constant term at0 followed by the
// encoded coefficients of x^1 through x^degree held in b.
func PolyFromBytes(at0 Element, degree int, b []byte) (*Poly, error) {
	if len(b) != degree*ElementSize {
		return nil, fmt.Errorf("%d bytes for the coefficients of a "+
			"polynomial of degree %d", len(b), degree)
	}
	coeffs := make([]Element, degree+1)
	coeffs[0] = at0
	for i := 1; i <= degree; i++ {
		c, err := FromBytes(b[(i-1)*ElementSize : i*ElementSize])
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}
	return &Poly{coeffs: coeffs}, nil
}

// Degree returns the degree bound of p, the number of coefficients minus one.
func (p *Poly) Degree() int {
	return len(p.coeffs) - 1
}

// Coefficient returns the coefficient of x^i.
func (p *Poly) Coefficient(i int) Element {
	if i < 0 || i >= len(p.coeffs) {
		return Zero
	}
	return p.coeffs[i]
}

// Bytes returns the concatenated encodings of the coefficients.  The constant
// term is left out unless withConstant is set.
func (p *Poly) Bytes(withConstant bool) []byte {
	coeffs := p.coeffs
	if !withConstant {
		coeffs = coeffs[1:]
	}
	b := make([]byte, len(coeffs)*ElementSize)
	for i, c := range coeffs {
		c.PutBytes(b[i*ElementSize:])
	}
	return b
}

// Evaluate returns p(x).
func (p *Poly) Evaluate(x byte) Element {
	r := p.coeffs[len(p.coeffs)-1]
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		r = r.MulByte(x).Add(p.coeffs[i])
	}
	return r
}

// mulLinear returns p·(x + a).
func (p *Poly) mulLinear(a byte) *Poly {
	coeffs := make([]Element, len(p.coeffs)+1)
	for i, c := range p.coeffs {
		coeffs[i+1] = coeffs[i+1].Add(c)
		coeffs[i] = coeffs[i].Add(c.MulByte(a))
	}
	return &Poly{coeffs: coeffs}
}

// addScaled adds s·o to p in place.  o must not have more coefficients than
// p.
func (p *Poly) addScaled(o *Poly, s Element) {
	for i, c := range o.coeffs {
		p.coeffs[i] = p.coeffs[i].Add(c.Mul(s))
	}
}

// Interpolate returns the polynomial of degree len(points) that takes the
// value at0 at zero and values[i] at points[i].  The points must be distinct
// and nonzero.
func Interpolate(points []byte, values []Element, at0 Element) (*Poly, error) {
	if len(points) != len(values) {
		return nil, fmt.Errorf("%d points with %d values", len(points),
			len(values))
	}
	xs := append([]byte{0}, points...)
	ys := append([]Element{at0}, values...)
	seen := make(map[byte]struct{}, len(xs))
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			return nil, fmt.Errorf("interpolation point %d is not "+
				"unique", x)
		}
		seen[x] = struct{}{}
	}

	// Lagrange form: sum over j of ys[j] times the basis polynomial that is
	// one at xs[j] and zero at every other point.
	result := &Poly{coeffs: make([]Element, len(xs))}
	for j, xj := range xs {
		basis := NewPoly([]Element{One})
		denom := One
		for m, xm := range xs {
			if m == j {
				continue
			}
			basis = basis.mulLinear(xm)
			denom = denom.Mul(FromByte(xj ^ xm))
		}
		result.addScaled(basis, ys[j].Mul(denom.Inverse()))
	}
	return result, nil
}
