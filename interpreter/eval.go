// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interpreter

import (
	"fmt"
	"math"

	"github.com/btcsuite/ergotree/ir"
	"github.com/btcsuite/ergotree/sigma"
	"github.com/btcsuite/ergotree/stype"
)

// evaluator holds the state of a single evaluation: the read-only context,
// the cost accumulator and the values bound by the enclosing blocks.
type evaluator struct {
	ctx  *Context
	cost *CostAccumulator
	env  map[uint32]ir.Value
}

func newEvaluator(ctx *Context) *evaluator {
	return &evaluator{
		ctx:  ctx,
		cost: NewCostAccumulator(0, ctx.CostLimit),
		env:  make(map[uint32]ir.Value),
	}
}

// Eval evaluates expr in ctx.  It returns the value of expr and the cost
// accumulated by the evaluation, which is also returned on failure.
//
// Errors raised while evaluating a node are wrapped in a *SpannedError
// carrying the span of the innermost failing node.
func Eval(expr ir.Expr, ctx *Context) (ir.Value, uint64, error) {
	e := newEvaluator(ctx)
	v, err := e.eval(expr)
	return v, e.cost.Total(), err
}

// eval charges the cost of expr and evaluates it.
func (e *evaluator) eval(expr ir.Expr) (ir.Value, error) {
	if err := e.cost.Add(nodeCost(expr)); err != nil {
		return nil, enrich(err, expr.Span())
	}
	v, err := e.evalNode(expr)
	if err != nil {
		return nil, enrich(err, expr.Span())
	}
	return v, nil
}

// evalAll evaluates items from left to right.
func (e *evaluator) evalAll(items []ir.Expr) ([]ir.Value, error) {
	values := make([]ir.Value, len(items))
	for i, item := range items {
		v, err := e.eval(item)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (e *evaluator) evalNode(expr ir.Expr) (ir.Value, error) {
	switch n := expr.(type) {
	case *ir.Constant:
		return n.V, nil

	case *ir.ConstantPlaceholder:
		str := fmt.Sprintf("unresolved constant placeholder %d", n.ID)
		return nil, evalError(ErrUnexpectedExpr, str)

	case *ir.GlobalVar:
		return e.globalVar(n.Kind)

	case *ir.ValUse:
		v, ok := e.env[n.ID]
		if !ok {
			str := fmt.Sprintf("value v%d is not defined", n.ID)
			return nil, evalError(ErrNotFound, str)
		}
		return v, nil

	case *ir.ValDef:
		return nil, evalError(ErrUnexpectedExpr,
			"value definition outside of a block")

	case *ir.BlockValue:
		return e.block(n)

	case *ir.GetVar:
		c, ok := e.ctx.Extension[n.VarID]
		if !ok {
			return ir.None(n.VarTpe), nil
		}
		if !stype.Equal(c.Type, n.VarTpe) {
			str := fmt.Sprintf("context variable %d has type %v, "+
				"expected %v", n.VarID, c.Type, n.VarTpe)
			return nil, evalError(ErrUnexpectedValue, str)
		}
		return ir.Some(n.VarTpe, c.V), nil

	case *ir.Collection:
		items, err := e.evalAll(n.Items)
		if err != nil {
			return nil, err
		}
		if err := e.cost.Add(itemsCost(len(items))); err != nil {
			return nil, err
		}
		return ir.Coll{Elem: n.ElemTpe, Items: items}, nil

	case *ir.Tuple:
		items, err := e.evalAll(n.Items)
		if err != nil {
			return nil, err
		}
		return ir.Tup(items), nil

	case *ir.SelectField:
		v, err := e.eval(n.Input)
		if err != nil {
			return nil, err
		}
		tup, ok := v.(ir.Tup)
		if !ok {
			return nil, unexpectedValue("tuple", v)
		}
		if n.FieldIndex == 0 || int(n.FieldIndex) > len(tup) {
			str := fmt.Sprintf("field %d of a %d-tuple", n.FieldIndex,
				len(tup))
			return nil, evalError(ErrNotFound, str)
		}
		return tup[n.FieldIndex-1], nil

	case *ir.UnaryOp:
		return e.unaryOp(n)

	case *ir.BinOp:
		return e.binOp(n)

	case *ir.If:
		v, err := e.eval(n.Condition)
		if err != nil {
			return nil, err
		}
		cond, err := asBool(v)
		if err != nil {
			return nil, err
		}
		if cond {
			return e.eval(n.TrueBranch)
		}
		return e.eval(n.FalseBranch)

	case *ir.ByIndex:
		return e.byIndex(n)

	case *ir.ExtractRegisterAs:
		return e.extractRegister(n)

	case *ir.CreateProveDhTuple:
		var points [4]*sigma.EcPoint
		for i, child := range []ir.Expr{n.G, n.H, n.U, n.V} {
			v, err := e.eval(child)
			if err != nil {
				return nil, err
			}
			if points[i], err = asGroupElement(v); err != nil {
				return nil, err
			}
		}
		dht := sigma.NewProveDhTuple(points[0], points[1], points[2],
			points[3])
		return ir.SigmaProp{V: dht}, nil

	case *ir.SigmaConj:
		items, err := e.evalAll(n.Items)
		if err != nil {
			return nil, err
		}
		props := make([]sigma.SigmaBoolean, len(items))
		for i, item := range items {
			if props[i], err = asSigmaProp(item); err != nil {
				return nil, err
			}
		}
		if n.Kind == ir.OpSigmaAnd {
			return ir.SigmaProp{V: sigma.NewCAnd(props)}, nil
		}
		return ir.SigmaProp{V: sigma.NewCOr(props)}, nil

	case *ir.NumericCast:
		v, err := e.eval(n.Input)
		if err != nil {
			return nil, err
		}
		return castNumeric(v, n.Type)

	case *ir.PropertyCall:
		obj, err := e.eval(n.Obj)
		if err != nil {
			return nil, err
		}
		return e.callMethod(n.Method, obj, nil)

	case *ir.MethodCall:
		obj, err := e.eval(n.Obj)
		if err != nil {
			return nil, err
		}
		args, err := e.evalAll(n.Args)
		if err != nil {
			return nil, err
		}
		return e.callMethod(n.Method, obj, args)
	}

	str := fmt.Sprintf("cannot evaluate %T", expr)
	return nil, evalError(ErrUnexpectedExpr, str)
}

// globalVar reads a context accessor.
func (e *evaluator) globalVar(kind ir.OpCode) (ir.Value, error) {
	switch kind {
	case ir.OpHeight:
		return e.height()
	case ir.OpInputs:
		return boxes(e.ctx.Inputs), nil
	case ir.OpOutputs:
		return boxes(e.ctx.Outputs), nil
	case ir.OpSelf:
		return e.self()
	case ir.OpMinerPubKey:
		return e.ctx.minerPubKey()
	case ir.OpGroupGenerator:
		return ir.GroupElement{V: sigma.Generator()}, nil
	case ir.OpContext:
		return ir.ContextValue{}, nil
	case ir.OpGlobal:
		return ir.GlobalValue{}, nil
	}
	str := fmt.Sprintf("%v is not a global accessor", kind)
	return nil, evalError(ErrUnexpectedExpr, str)
}

func (e *evaluator) height() (ir.Value, error) {
	if e.ctx.Height > math.MaxInt32 {
		str := fmt.Sprintf("height %d overflows Int", e.ctx.Height)
		return nil, evalError(ErrArithmetic, str)
	}
	return ir.Int(int32(e.ctx.Height)), nil
}

func (e *evaluator) self() (ir.Value, error) {
	if e.ctx.Self == nil {
		return nil, evalError(ErrNotFound, "context without a self box")
	}
	return e.ctx.Self, nil
}

// block evaluates the definitions of n in order and then its result.  The
// definitions are only visible while the block is evaluated.
func (e *evaluator) block(n *ir.BlockValue) (ir.Value, error) {
	defer func() {
		for _, def := range n.Items {
			delete(e.env, def.ID)
		}
	}()

	for _, def := range n.Items {
		if err := e.cost.Add(nodeCost(def)); err != nil {
			return nil, enrich(err, def.Span())
		}
		v, err := e.eval(def.RHS)
		if err != nil {
			return nil, enrich(err, def.Span())
		}
		e.env[def.ID] = v
	}
	return e.eval(n.Result)
}

func (e *evaluator) byIndex(n *ir.ByIndex) (ir.Value, error) {
	v, err := e.eval(n.Input)
	if err != nil {
		return nil, err
	}
	coll, err := asColl(v)
	if err != nil {
		return nil, err
	}
	v, err = e.eval(n.Index)
	if err != nil {
		return nil, err
	}
	idx, err := asInt(v)
	if err != nil {
		return nil, err
	}

	if idx >= 0 && int(idx) < len(coll.Items) {
		return coll.Items[idx], nil
	}
	if n.Default != nil {
		return e.eval(n.Default)
	}
	str := fmt.Sprintf("index %d out of bounds for a collection of %d "+
		"items", idx, len(coll.Items))
	return nil, evalError(ErrNotFound, str)
}

func (e *evaluator) extractRegister(n *ir.ExtractRegisterAs) (ir.Value, error) {
	v, err := e.eval(n.Input)
	if err != nil {
		return nil, err
	}
	box, err := asBox(v)
	if err != nil {
		return nil, err
	}

	if n.RegisterID == ir.RegValue && box.Value > math.MaxInt64 {
		str := fmt.Sprintf("box value %d overflows Long", box.Value)
		return nil, evalError(ErrArithmetic, str)
	}
	c, ok := box.Register(int(n.RegisterID))
	if !ok {
		return ir.None(n.ElemTpe), nil
	}
	if !stype.Equal(c.Type, n.ElemTpe) {
		str := fmt.Sprintf("register R%d holds %v, expected %v",
			n.RegisterID, c.Type, n.ElemTpe)
		return nil, evalError(ErrRegisterRead, str)
	}
	return ir.Some(n.ElemTpe, c.V), nil
}
