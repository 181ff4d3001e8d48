// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"github.com/btcsuite/ergotree/stype"
)

// SourceSpan is the position of a node in its pretty printed source.
type SourceSpan struct {
	Offset int
	Length int
}

// IsEmpty reports whether the span has not been set.
func (s SourceSpan) IsEmpty() bool {
	return s.Offset == 0 && s.Length == 0
}

// Spanned is embedded by every node to carry its source span.
type Spanned struct {
	SourceSpan SourceSpan
}

// Span returns the source span of the node.
func (s *Spanned) Span() SourceSpan {
	return s.SourceSpan
}

func (s *Spanned) setSpan(span SourceSpan) {
	s.SourceSpan = span
}

// Expr is a node of an ErgoTree expression.  Nodes own their children
// exclusively, so a tree never shares subtrees.  The set of implementations
// is closed.
type Expr interface {
	// Tpe returns the static type of the value the node evaluates to.
	Tpe() stype.SType

	// OpCode returns the code the node is serialized with.
	OpCode() OpCode

	// Span returns the position of the node in its printed source, if
	// the tree has been printed.
	Span() SourceSpan

	setSpan(SourceSpan)
	writeBody(w *SigmaByteWriter) error
}

// Children returns the direct children of e in serialization order.
func Children(e Expr) []Expr {
	var children []Expr
	_, _ = mapChildren(e, func(child Expr) (Expr, error) {
		children = append(children, child)
		return child, nil
	})
	return children
}

// Transform rebuilds e bottom up, replacing every node n with f(n) after its
// children have been transformed.  The input tree is left untouched.
func Transform(e Expr, f func(Expr) (Expr, error)) (Expr, error) {
	e, err := mapChildren(e, func(child Expr) (Expr, error) {
		return Transform(child, f)
	})
	if err != nil {
		return nil, err
	}
	return f(e)
}

// Clone returns a deep copy of e.
func Clone(e Expr) Expr {
	c, _ := Transform(e, func(n Expr) (Expr, error) { return n, nil })
	return c
}

// mapChildren returns a shallow copy of e with each child replaced by the
// result of f, applied in serialization order.
func mapChildren(e Expr, f func(Expr) (Expr, error)) (Expr, error) {
	var err error
	apply := func(child Expr) Expr {
		if err != nil || child == nil {
			return child
		}
		var res Expr
		res, err = f(child)
		return res
	}
	applyAll := func(items []Expr) []Expr {
		if items == nil {
			return nil
		}
		res := make([]Expr, len(items))
		for i, item := range items {
			res[i] = apply(item)
		}
		return res
	}

	var res Expr
	switch n := e.(type) {
	case *Constant:
		c := *n
		res = &c

	case *ConstantPlaceholder:
		c := *n
		res = &c

	case *GlobalVar:
		c := *n
		res = &c

	case *ValUse:
		c := *n
		res = &c

	case *GetVar:
		c := *n
		res = &c

	case *Collection:
		c := *n
		c.Items = applyAll(n.Items)
		res = &c

	case *Tuple:
		c := *n
		c.Items = applyAll(n.Items)
		res = &c

	case *SelectField:
		c := *n
		c.Input = apply(n.Input)
		res = &c

	case *UnaryOp:
		c := *n
		c.Input = apply(n.Input)
		res = &c

	case *BinOp:
		c := *n
		c.Left = apply(n.Left)
		c.Right = apply(n.Right)
		res = &c

	case *If:
		c := *n
		c.Condition = apply(n.Condition)
		c.TrueBranch = apply(n.TrueBranch)
		c.FalseBranch = apply(n.FalseBranch)
		res = &c

	case *ByIndex:
		c := *n
		c.Input = apply(n.Input)
		c.Index = apply(n.Index)
		c.Default = apply(n.Default)
		res = &c

	case *ExtractRegisterAs:
		c := *n
		c.Input = apply(n.Input)
		res = &c

	case *CreateProveDhTuple:
		c := *n
		c.G = apply(n.G)
		c.H = apply(n.H)
		c.U = apply(n.U)
		c.V = apply(n.V)
		res = &c

	case *SigmaConj:
		c := *n
		c.Items = applyAll(n.Items)
		res = &c

	case *NumericCast:
		c := *n
		c.Input = apply(n.Input)
		res = &c

	case *ValDef:
		c := *n
		c.RHS = apply(n.RHS)
		res = &c

	case *BlockValue:
		c := *n
		c.Items = make([]*ValDef, len(n.Items))
		for i, item := range n.Items {
			d, ok := apply(item).(*ValDef)
			if !ok && err == nil {
				err = irError(ErrInvalidNode, "block item is not a "+
					"value definition")
			}
			c.Items[i] = d
		}
		c.Result = apply(n.Result)
		res = &c

	case *PropertyCall:
		c := *n
		c.Obj = apply(n.Obj)
		res = &c

	case *MethodCall:
		c := *n
		c.Obj = apply(n.Obj)
		c.Args = applyAll(n.Args)
		res = &c

	default:
		str := "unknown node " + e.OpCode().String()
		return nil, irError(ErrInvalidNode, str)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
