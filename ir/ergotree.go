// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"

	"github.com/btcsuite/ergotree/sigma"
	"github.com/btcsuite/ergotree/stype"
	"github.com/btcsuite/ergotree/wire"
)

// ErgoTree header bits.
const (
	// HeaderVersionMask selects the language version of the tree.
	HeaderVersionMask = 0x07

	// HeaderSizeFlag indicates that the size of the tree body follows the
	// header.  It is mandatory for all versions above zero.
	HeaderSizeFlag = 0x08

	// HeaderConstantSegregationFlag indicates that the constants of the
	// tree are stored in a table ahead of the root expression.
	HeaderConstantSegregationFlag = 0x10

	// headerKnownBits are the bits with an assigned meaning.
	headerKnownBits = HeaderVersionMask | HeaderSizeFlag |
		HeaderConstantSegregationFlag
)

// ErgoTree is a serialized guarding script: a header, an optional table of
// segregated constants and the root expression.  When constants are
// segregated the root refers to them through placeholders.
type ErgoTree struct {
	Header    byte
	Constants []*Constant
	Root      Expr

	// bytes is the encoding of the tree, fixed at construction.
	bytes []byte
}

func checkHeader(header byte) error {
	if header&^headerKnownBits != 0 {
		str := fmt.Sprintf("unknown header flags %#02x", header)
		return irError(ErrInvalidHeader, str)
	}
	if header&HeaderVersionMask > 0 && header&HeaderSizeFlag == 0 {
		str := fmt.Sprintf("version %d tree without a size",
			header&HeaderVersionMask)
		return irError(ErrInvalidHeader, str)
	}
	return nil
}

// NewErgoTree builds a tree rooted at root.  When the header asks for constant
// segregation, every constant of root is moved into the constant table.
func NewErgoTree(header byte, root Expr) (*ErgoTree, error) {
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	t := &ErgoTree{Header: header, Root: root}
	if header&HeaderConstantSegregationFlag != 0 {
		store := NewConstantStore(nil)
		w := NewSigmaByteWriter(store)
		if err := w.WriteExpr(root); err != nil {
			return nil, err
		}
		r := NewSigmaByteReader(w.Bytes(), store, false)
		segregated, err := r.ReadExpr()
		if err != nil {
			return nil, err
		}
		t.Root = segregated
		t.Constants = store.Constants()
		log.Tracef("Segregated %d constants", len(t.Constants))
	}

	body, err := t.serializeBody()
	if err != nil {
		return nil, err
	}
	w := wire.NewWriter()
	w.PutByte(header)
	if header&HeaderSizeFlag != 0 {
		w.PutU32(uint32(len(body)))
	}
	w.PutBytes(body)
	t.bytes = w.Bytes()
	return t, nil
}

func (t *ErgoTree) serializeBody() ([]byte, error) {
	w := NewSigmaByteWriter(nil)
	if t.Header&HeaderConstantSegregationFlag != 0 {
		w.PutU32(uint32(len(t.Constants)))
		for _, c := range t.Constants {
			if err := c.writeBody(w); err != nil {
				return nil, err
			}
		}
	}
	if err := w.WriteExpr(t.Root); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// SigmaPropBytes returns the bytes of a segregated tree whose root is the
// single proposition sb.  This is the propBytes form of a proposition.
func SigmaPropBytes(sb sigma.SigmaBoolean) ([]byte, error) {
	t, err := NewErgoTree(HeaderConstantSegregationFlag, ConstSigmaProp(sb))
	if err != nil {
		return nil, err
	}
	return t.Bytes(), nil
}

// Version returns the language version of the tree.
func (t *ErgoTree) Version() uint8 {
	return t.Header & HeaderVersionMask
}

// HasSegregatedConstants reports whether the tree keeps its constants in a
// table.
func (t *ErgoTree) HasSegregatedConstants() bool {
	return t.Header&HeaderConstantSegregationFlag != 0
}

// Bytes returns the encoding of the tree.
func (t *ErgoTree) Bytes() []byte {
	b := make([]byte, len(t.bytes))
	copy(b, t.bytes)
	return b
}

// Proposition returns the root expression with every placeholder replaced by
// its constant.
func (t *ErgoTree) Proposition() (Expr, error) {
	if !t.HasSegregatedConstants() {
		return t.Root, nil
	}
	store := NewConstantStore(t.Constants)
	return Transform(t.Root, func(e Expr) (Expr, error) {
		p, ok := e.(*ConstantPlaceholder)
		if !ok {
			return e, nil
		}
		c, ok := store.Get(p.ID)
		if !ok {
			str := fmt.Sprintf("placeholder %d refers past the %d "+
				"stored constants", p.ID, store.Len())
			return nil, irError(ErrPlaceholderNotFound, str)
		}
		return &Constant{Type: c.Type, V: c.V}, nil
	})
}

// ParseErgoTree decodes a tree that must span all of b.
func ParseErgoTree(b []byte) (*ErgoTree, error) {
	r := wire.NewReader(b)
	t, err := readErgoTree(r)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		str := fmt.Sprintf("%d trailing bytes after tree", r.Remaining())
		return nil, irError(ErrInvalidNode, str)
	}
	return t, nil
}

func readErgoTree(r *wire.Reader) (*ErgoTree, error) {
	start := r.Pos()
	header, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	body := r
	if header&HeaderSizeFlag != 0 {
		size, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		raw, err := r.ReadBytes(int(size))
		if err != nil {
			return nil, err
		}
		body = wire.NewReader(raw)
	}

	t := &ErgoTree{Header: header}
	store := NewConstantStore(nil)
	if header&HeaderConstantSegregationFlag != 0 {
		n, err := body.ReadU32()
		if err != nil {
			return nil, err
		}
		if int64(n) > int64(body.Remaining()) {
			str := fmt.Sprintf("%d constants exceed the %d remaining "+
				"bytes", n, body.Remaining())
			return nil, irError(ErrBoundsExceeded, str)
		}
		for i := uint32(0); i < n; i++ {
			tpe, err := stype.ParseType(body)
			if err != nil {
				return nil, err
			}
			v, err := ParseData(body, tpe)
			if err != nil {
				return nil, err
			}
			t.Constants = append(t.Constants,
				&Constant{Type: tpe, V: v})
		}
		store = NewConstantStore(t.Constants)
	}

	sr := &SigmaByteReader{
		Reader:  body,
		store:   store,
		valDefs: make(map[uint32]stype.SType),
	}
	if t.Root, err = sr.ReadExpr(); err != nil {
		return nil, err
	}
	if body != r && body.Remaining() != 0 {
		str := fmt.Sprintf("%d bytes left in a tree body of declared "+
			"size", body.Remaining())
		return nil, irError(ErrInvalidHeader, str)
	}

	t.bytes = r.Consumed(start)
	log.Tracef("Parsed ErgoTree header %#02x with %d constants: %v",
		header, len(t.Constants), newLogClosure(func() string {
			return DebugTree(t.Root)
		}))
	return t, nil
}
