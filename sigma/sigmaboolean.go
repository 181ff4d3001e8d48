// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigma

import (
	"fmt"
	"strings"
)

// SigmaBoolean is a statement that can be proven with a sigma protocol.  The
// set of implementations is closed: TrivialProp, *ProveDlog, *ProveDhTuple,
// *CAnd, *COr and *CThreshold.
type SigmaBoolean interface {
	fmt.Stringer
	sigmaBoolean()
}

// TrivialProp is a statement whose truth value is known without a proof.
type TrivialProp bool

// Trivial statements.
const (
	TrivialFalse = TrivialProp(false)
	TrivialTrue  = TrivialProp(true)
)

func (TrivialProp) sigmaBoolean() {}

func (t TrivialProp) String() string {
	if t {
		return "TrivialProp(true)"
	}
	return "TrivialProp(false)"
}

// ProveDlog is knowledge of the discrete logarithm w of H = g^w.
type ProveDlog struct {
	H *EcPoint
}

// NewProveDlog returns the statement "I know the secret key of h".
func NewProveDlog(h *EcPoint) *ProveDlog {
	return &ProveDlog{H: h}
}

func (*ProveDlog) sigmaBoolean() {}

func (p *ProveDlog) String() string {
	return "proveDlog(" + p.H.String() + ")"
}

// Bytes returns the encoding of the public image without an opcode.
func (p *ProveDlog) Bytes() []byte {
	return p.H.Bytes()
}

// ProveDhTuple is knowledge of w such that U = G^w and V = H^w.
type ProveDhTuple struct {
	G, H, U, V *EcPoint
}

// NewProveDhTuple returns the Diffie-Hellman tuple statement over g, h, u, v.
func NewProveDhTuple(g, h, u, v *EcPoint) *ProveDhTuple {
	return &ProveDhTuple{G: g, H: h, U: u, V: v}
}

func (*ProveDhTuple) sigmaBoolean() {}

func (p *ProveDhTuple) String() string {
	return fmt.Sprintf("proveDHTuple(%v, %v, %v, %v)", p.G, p.H, p.U, p.V)
}

// Bytes returns the four points without an opcode.
func (p *ProveDhTuple) Bytes() []byte {
	b := make([]byte, 0, 4*GroupSize)
	for _, e := range []*EcPoint{p.G, p.H, p.U, p.V} {
		b = append(b, e.Bytes()...)
	}
	return b
}

// ParseProveDhTuple decodes four concatenated points.
func ParseProveDhTuple(b []byte) (*ProveDhTuple, error) {
	if len(b) != 4*GroupSize {
		str := fmt.Sprintf("Diffie-Hellman tuple must be %d bytes, got %d",
			4*GroupSize, len(b))
		return nil, sigmaError(ErrInvalidPoint, str)
	}
	var points [4]*EcPoint
	for i := range points {
		p, err := ParseEcPoint(b[i*GroupSize : (i+1)*GroupSize])
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return NewProveDhTuple(points[0], points[1], points[2], points[3]), nil
}

// CAnd is the conjunction of its children.
type CAnd struct {
	Children []SigmaBoolean
}

func (*CAnd) sigmaBoolean() {}

func (c *CAnd) String() string { return "allOf(" + joinProps(c.Children) + ")" }

// COr is the disjunction of its children.
type COr struct {
	Children []SigmaBoolean
}

func (*COr) sigmaBoolean() {}

func (c *COr) String() string { return "anyOf(" + joinProps(c.Children) + ")" }

// CThreshold holds when at least K of its children hold.
type CThreshold struct {
	K        uint16
	Children []SigmaBoolean
}

func (*CThreshold) sigmaBoolean() {}

func (c *CThreshold) String() string {
	return fmt.Sprintf("atLeast(%d, %s)", c.K, joinProps(c.Children))
}

func joinProps(props []SigmaBoolean) string {
	strs := make([]string, len(props))
	for i, p := range props {
		strs[i] = p.String()
	}
	return strings.Join(strs, ", ")
}

// Children returns the children of a conjecture, or nil for a leaf.
func Children(sb SigmaBoolean) []SigmaBoolean {
	switch sb := sb.(type) {
	case *CAnd:
		return sb.Children
	case *COr:
		return sb.Children
	case *CThreshold:
		return sb.Children
	}
	return nil
}

// IsTrivial returns whether sb is a TrivialProp and its value.
func IsTrivial(sb SigmaBoolean) (value, ok bool) {
	t, ok := sb.(TrivialProp)
	return bool(t), ok
}

// NewCAnd returns the conjunction of items with trivial items folded away.
func NewCAnd(items []SigmaBoolean) SigmaBoolean {
	var children []SigmaBoolean
	for _, item := range items {
		if v, ok := IsTrivial(item); ok {
			if !v {
				return TrivialFalse
			}
			continue
		}
		children = append(children, item)
	}
	switch len(children) {
	case 0:
		return TrivialTrue
	case 1:
		return children[0]
	}
	return &CAnd{Children: children}
}

// NewCOr returns the disjunction of items with trivial items folded away.
func NewCOr(items []SigmaBoolean) SigmaBoolean {
	var children []SigmaBoolean
	for _, item := range items {
		if v, ok := IsTrivial(item); ok {
			if v {
				return TrivialTrue
			}
			continue
		}
		children = append(children, item)
	}
	switch len(children) {
	case 0:
		return TrivialFalse
	case 1:
		return children[0]
	}
	return &COr{Children: children}
}

// NewCThreshold returns the statement that at least k of items hold.  True
// items lower the bound, false items are dropped, and degenerate bounds
// collapse into trivial statements, a disjunction or a conjunction.
func NewCThreshold(k int, items []SigmaBoolean) SigmaBoolean {
	var children []SigmaBoolean
	for _, item := range items {
		if v, ok := IsTrivial(item); ok {
			if v {
				k--
			}
			continue
		}
		children = append(children, item)
	}
	switch {
	case k <= 0:
		return TrivialTrue
	case k > len(children):
		return TrivialFalse
	case k == 1:
		return NewCOr(children)
	case k == len(children):
		return NewCAnd(children)
	}
	return &CThreshold{K: uint16(k), Children: children}
}
