// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigma

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/ergotree/wire"
)

// Leading bytes of serialized propositions.  They coincide with the operator
// codes of the expressions that create the same statements.
const (
	codeAnd          = 0x96
	codeOr           = 0x97
	codeAtLeast      = 0x98
	codeProveDlog    = 0xcd
	codeProveDhTuple = 0xce
	codeTrivialFalse = 0xd2
	codeTrivialTrue  = 0xd3
)

// Serialize writes sb to w.
func Serialize(w *wire.Writer, sb SigmaBoolean) {
	switch sb := sb.(type) {
	case TrivialProp:
		if sb {
			w.PutByte(codeTrivialTrue)
		} else {
			w.PutByte(codeTrivialFalse)
		}

	case *ProveDlog:
		w.PutByte(codeProveDlog)
		sb.H.Write(w)

	case *ProveDhTuple:
		w.PutByte(codeProveDhTuple)
		w.PutBytes(sb.Bytes())

	case *CAnd:
		w.PutByte(codeAnd)
		serializeChildren(w, sb.Children)

	case *COr:
		w.PutByte(codeOr)
		serializeChildren(w, sb.Children)

	case *CThreshold:
		w.PutByte(codeAtLeast)
		w.PutU16(sb.K)
		serializeChildren(w, sb.Children)
	}
}

func serializeChildren(w *wire.Writer, children []SigmaBoolean) {
	w.PutU16(uint16(len(children)))
	for _, c := range children {
		Serialize(w, c)
	}
}

// Bytes returns the serialization of sb.
func Bytes(sb SigmaBoolean) []byte {
	w := wire.NewWriter()
	Serialize(w, sb)
	return w.Bytes()
}

// Equal reports whether a and b are the same statement.
func Equal(a, b SigmaBoolean) bool {
	return bytes.Equal(Bytes(a), Bytes(b))
}

// Parse reads a serialized proposition from r.
//
// Conjectures are returned as encoded.  They are neither normalised nor
// checked to have at least two children, so a statement such as
// CAnd(TrivialFalse, pk) is kept and verifying a proof for it reports a tree
// shape error instead of false.  Callers wanting the canonical form can rebuild the children
// through NewCAnd, NewCOr and NewCThreshold.
func Parse(r *wire.Reader) (SigmaBoolean, error) {
	c, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch c {
	case codeTrivialFalse:
		return TrivialFalse, nil

	case codeTrivialTrue:
		return TrivialTrue, nil

	case codeProveDlog:
		h, err := ReadEcPoint(r)
		if err != nil {
			return nil, err
		}
		return NewProveDlog(h), nil

	case codeProveDhTuple:
		b, err := r.ReadBytes(4 * GroupSize)
		if err != nil {
			return nil, err
		}
		return ParseProveDhTuple(b)

	case codeAnd:
		children, err := parseChildren(r)
		if err != nil {
			return nil, err
		}
		return &CAnd{Children: children}, nil

	case codeOr:
		children, err := parseChildren(r)
		if err != nil {
			return nil, err
		}
		return &COr{Children: children}, nil

	case codeAtLeast:
		k, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		children, err := parseChildren(r)
		if err != nil {
			return nil, err
		}
		return &CThreshold{K: k, Children: children}, nil
	}

	str := fmt.Sprintf("unknown sigma proposition code 0x%02x", c)
	return nil, sigmaError(ErrInvalidSigmaBoolean, str)
}

func parseChildren(r *wire.Reader) ([]SigmaBoolean, error) {
	n, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	// Every child takes at least one byte.
	if int(n) > r.Remaining() {
		str := fmt.Sprintf("conjecture claims %d children with only %d "+
			"bytes left", n, r.Remaining())
		return nil, sigmaError(ErrInvalidSigmaBoolean, str)
	}
	children := make([]SigmaBoolean, n)
	for i := range children {
		child, err := Parse(r)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return children, nil
}

// ParseBytes decodes a serialized proposition.
func ParseBytes(b []byte) (SigmaBoolean, error) {
	return Parse(wire.NewReader(b))
}
