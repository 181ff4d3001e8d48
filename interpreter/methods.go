// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interpreter

import (
	"fmt"

	"github.com/btcsuite/ergotree/ir"
	"github.com/btcsuite/ergotree/sigma"
	"github.com/btcsuite/ergotree/stype"
)

// methodKey identifies a method by the type code of its companion and its id.
type methodKey struct {
	code stype.TypeCode
	id   stype.MethodID
}

// methodFunc evaluates a method on an evaluated receiver and arguments.
type methodFunc func(e *evaluator, obj ir.Value, args []ir.Value) (ir.Value, error)

// methods holds the evaluation of every implemented method.  It is filled
// once by init and only read afterwards.
var methods map[methodKey]methodFunc

// property adapts a function of the receiver alone.
func property(f func(e *evaluator, obj ir.Value) (ir.Value, error)) methodFunc {
	return func(e *evaluator, obj ir.Value, _ []ir.Value) (ir.Value, error) {
		return f(e, obj)
	}
}

// boxProperty adapts a box field reader.
func boxProperty(kind ir.OpCode) methodFunc {
	return property(func(_ *evaluator, obj ir.Value) (ir.Value, error) {
		box, err := asBox(obj)
		if err != nil {
			return nil, err
		}
		return boxField(kind, box)
	})
}

func init() {
	methods = make(map[methodKey]methodFunc)
	add := func(code stype.TypeCode, id stype.MethodID, f methodFunc) {
		methods[methodKey{code, id}] = f
	}

	add(stype.TypeCodeColl, stype.MethodCollSize, property(collSize))
	add(stype.TypeCodeColl, stype.MethodCollGetOrElse, collGetOrElse)
	add(stype.TypeCodeColl, stype.MethodCollIndices, property(collIndices))

	add(stype.TypeCodeOption, stype.MethodOptionIsDefined,
		property(optionIsDefined))
	add(stype.TypeCodeOption, stype.MethodOptionGet, property(optionGet))
	add(stype.TypeCodeOption, stype.MethodOptionGetOrElse, optionGetOrElse)

	add(stype.TypeCodeGroupElement, stype.MethodGroupGetEncoded,
		property(groupGetEncoded))
	add(stype.TypeCodeGroupElement, stype.MethodGroupExp, groupExp)
	add(stype.TypeCodeGroupElement, stype.MethodGroupMultiply, groupMultiply)
	add(stype.TypeCodeGroupElement, stype.MethodGroupNegate,
		property(groupNegate))

	add(stype.TypeCodeBox, stype.MethodBoxValue,
		boxProperty(ir.OpExtractAmount))
	add(stype.TypeCodeBox, stype.MethodBoxPropositionBytes,
		boxProperty(ir.OpExtractScriptBytes))
	add(stype.TypeCodeBox, stype.MethodBoxBytes,
		boxProperty(ir.OpExtractBytes))
	add(stype.TypeCodeBox, stype.MethodBoxBytesWithoutRef,
		boxProperty(ir.OpExtractBytesWithNoRef))
	add(stype.TypeCodeBox, stype.MethodBoxID, boxProperty(ir.OpExtractID))
	add(stype.TypeCodeBox, stype.MethodBoxCreationInfo,
		boxProperty(ir.OpExtractCreationInfo))
	add(stype.TypeCodeBox, stype.MethodBoxTokens, property(boxTokens))

	add(stype.TypeCodeContext, stype.MethodContextDataInputs,
		property(func(e *evaluator, _ ir.Value) (ir.Value, error) {
			return boxes(e.ctx.DataInputs), nil
		}))
	add(stype.TypeCodeContext, stype.MethodContextInputs,
		property(func(e *evaluator, _ ir.Value) (ir.Value, error) {
			return boxes(e.ctx.Inputs), nil
		}))
	add(stype.TypeCodeContext, stype.MethodContextOutputs,
		property(func(e *evaluator, _ ir.Value) (ir.Value, error) {
			return boxes(e.ctx.Outputs), nil
		}))
	add(stype.TypeCodeContext, stype.MethodContextHeight,
		property(func(e *evaluator, _ ir.Value) (ir.Value, error) {
			return e.height()
		}))
	add(stype.TypeCodeContext, stype.MethodContextSelf,
		property(func(e *evaluator, _ ir.Value) (ir.Value, error) {
			return e.self()
		}))
	add(stype.TypeCodeContext, stype.MethodContextSelfBoxIndex,
		property(func(e *evaluator, _ ir.Value) (ir.Value, error) {
			return ir.Int(int32(e.ctx.selfIndex())), nil
		}))
	add(stype.TypeCodeContext, stype.MethodContextMinerPubKey,
		property(func(e *evaluator, _ ir.Value) (ir.Value, error) {
			return e.ctx.minerPubKey()
		}))

	add(stype.TypeCodeGlobal, stype.MethodGlobalGroupGenerator,
		property(func(*evaluator, ir.Value) (ir.Value, error) {
			return ir.GroupElement{V: sigma.Generator()}, nil
		}))
	add(stype.TypeCodeGlobal, stype.MethodGlobalXor,
		func(e *evaluator, _ ir.Value, args []ir.Value) (ir.Value, error) {
			return e.xorBytes(args[0], args[1])
		})
}

func collSize(_ *evaluator, obj ir.Value) (ir.Value, error) {
	c, err := asColl(obj)
	if err != nil {
		return nil, err
	}
	return ir.Int(int32(len(c.Items))), nil
}

func collIndices(e *evaluator, obj ir.Value) (ir.Value, error) {
	c, err := asColl(obj)
	if err != nil {
		return nil, err
	}
	if err := e.cost.Add(itemsCost(len(c.Items))); err != nil {
		return nil, err
	}
	items := make([]ir.Value, len(c.Items))
	for i := range items {
		items[i] = ir.Int(int32(i))
	}
	return ir.Coll{Elem: stype.SInt, Items: items}, nil
}

func optionIsDefined(_ *evaluator, obj ir.Value) (ir.Value, error) {
	o, err := asOpt(obj)
	if err != nil {
		return nil, err
	}
	return ir.Boolean(o.IsDefined()), nil
}

func optionGet(_ *evaluator, obj ir.Value) (ir.Value, error) {
	o, err := asOpt(obj)
	if err != nil {
		return nil, err
	}
	if !o.IsDefined() {
		return nil, evalError(ErrNotFound, "get of an empty option")
	}
	return o.V, nil
}

func groupGetEncoded(_ *evaluator, obj ir.Value) (ir.Value, error) {
	p, err := asGroupElement(obj)
	if err != nil {
		return nil, err
	}
	return ir.BytesColl(p.Bytes()), nil
}

func groupNegate(_ *evaluator, obj ir.Value) (ir.Value, error) {
	p, err := asGroupElement(obj)
	if err != nil {
		return nil, err
	}
	return ir.GroupElement{V: p.Negate()}, nil
}

func boxTokens(_ *evaluator, obj ir.Value) (ir.Value, error) {
	box, err := asBox(obj)
	if err != nil {
		return nil, err
	}
	return box.TokensValue(), nil
}

func collGetOrElse(_ *evaluator, obj ir.Value, args []ir.Value) (ir.Value, error) {
	c, err := asColl(obj)
	if err != nil {
		return nil, err
	}
	idx, err := asInt(args[0])
	if err != nil {
		return nil, err
	}
	if idx >= 0 && int(idx) < len(c.Items) {
		return c.Items[idx], nil
	}
	return args[1], nil
}

func optionGetOrElse(_ *evaluator, obj ir.Value, args []ir.Value) (ir.Value, error) {
	o, err := asOpt(obj)
	if err != nil {
		return nil, err
	}
	if o.IsDefined() {
		return o.V, nil
	}
	return args[0], nil
}

func groupExp(e *evaluator, obj ir.Value, args []ir.Value) (ir.Value, error) {
	if err := e.cost.Add(costExponentiate); err != nil {
		return nil, err
	}
	p, err := asGroupElement(obj)
	if err != nil {
		return nil, err
	}
	k, err := asBigInt(args[0])
	if err != nil {
		return nil, err
	}
	return ir.GroupElement{V: p.Exp(k)}, nil
}

func groupMultiply(e *evaluator, obj ir.Value, args []ir.Value) (ir.Value, error) {
	if err := e.cost.Add(costGroupOp); err != nil {
		return nil, err
	}
	p, err := asGroupElement(obj)
	if err != nil {
		return nil, err
	}
	q, err := asGroupElement(args[0])
	if err != nil {
		return nil, err
	}
	return ir.GroupElement{V: p.Add(q)}, nil
}

// callMethod evaluates method m on obj.  The number of arguments is checked
// against the signature of m.
func (e *evaluator) callMethod(m *stype.SMethod, obj ir.Value,
	args []ir.Value) (ir.Value, error) {

	f, ok := methods[methodKey{m.TypeCode, m.MethodID}]
	if !ok {
		str := fmt.Sprintf("method %s (type code %d, id %d) is not "+
			"implemented", m.Name, m.TypeCode, m.MethodID)
		return nil, evalError(ErrUnexpectedExpr, str)
	}
	if want := len(m.Tpe.Dom) - 1; len(args) != want {
		str := fmt.Sprintf("method %s called with %d arguments, "+
			"expected %d", m.Name, len(args), want)
		return nil, evalError(ErrUnexpectedValue, str)
	}
	return f(e, obj, args)
}
