// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"

	"github.com/btcsuite/ergotree/stype"
)

// ValDef binds the value of RHS to the identifier ID for the rest of the
// enclosing block.
type ValDef struct {
	Spanned
	ID  uint32
	RHS Expr
}

// Tpe returns the type of the bound value.
func (n *ValDef) Tpe() stype.SType { return n.RHS.Tpe() }

// OpCode returns OpValDef.
func (n *ValDef) OpCode() OpCode { return OpValDef }

func (n *ValDef) writeBody(w *SigmaByteWriter) error {
	w.PutU32(n.ID)
	return w.WriteExpr(n.RHS)
}

func parseValDef(r *SigmaByteReader, _ OpCode) (Expr, error) {
	id, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	rhs, err := r.ReadExpr()
	if err != nil {
		return nil, err
	}
	r.valDefs[id] = rhs.Tpe()
	return &ValDef{ID: id, RHS: rhs}, nil
}

// ValUse refers to the value bound by the ValDef with the same ID.
type ValUse struct {
	Spanned
	ID   uint32
	Type stype.SType
}

// Tpe returns the type of the referenced value.
func (n *ValUse) Tpe() stype.SType { return n.Type }

// OpCode returns OpValUse.
func (n *ValUse) OpCode() OpCode { return OpValUse }

func (n *ValUse) writeBody(w *SigmaByteWriter) error {
	w.PutU32(n.ID)
	return nil
}

func parseValUse(r *SigmaByteReader, _ OpCode) (Expr, error) {
	id, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	tpe, ok := r.valDefs[id]
	if !ok {
		str := fmt.Sprintf("use of undefined value v%d", id)
		return nil, irError(ErrValDefNotFound, str)
	}
	return &ValUse{ID: id, Type: tpe}, nil
}

// BlockValue evaluates its value definitions in order and then its result,
// which may refer to them.
type BlockValue struct {
	Spanned
	Items  []*ValDef
	Result Expr
}

// Tpe returns the type of the result.
func (n *BlockValue) Tpe() stype.SType { return n.Result.Tpe() }

// OpCode returns OpBlockValue.
func (n *BlockValue) OpCode() OpCode { return OpBlockValue }

func (n *BlockValue) writeBody(w *SigmaByteWriter) error {
	w.PutU32(uint32(len(n.Items)))
	for _, item := range n.Items {
		if err := w.WriteExpr(item); err != nil {
			return err
		}
	}
	return w.WriteExpr(n.Result)
}

func parseBlockValue(r *SigmaByteReader, _ OpCode) (Expr, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if int64(n) > int64(r.Remaining()) {
		str := fmt.Sprintf("block of %d items exceeds the %d remaining "+
			"bytes", n, r.Remaining())
		return nil, irError(ErrBoundsExceeded, str)
	}
	items := make([]*ValDef, n)
	for i := range items {
		e, err := r.ReadExpr()
		if err != nil {
			return nil, err
		}
		def, ok := e.(*ValDef)
		if !ok {
			str := fmt.Sprintf("block item %d is %v, not a value "+
				"definition", i, e.OpCode())
			return nil, irError(ErrInvalidNode, str)
		}
		items[i] = def
	}
	result, err := r.ReadExpr()
	if err != nil {
		return nil, err
	}
	return &BlockValue{Items: items, Result: result}, nil
}
