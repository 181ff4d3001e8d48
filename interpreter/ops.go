// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interpreter

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/ergotree/ir"
	"github.com/btcsuite/ergotree/sigma"
)

// maxBigIntBytes is the longest two's complement encoding of a BigInt.
const maxBigIntBytes = 32

// maxThresholdChildren is the largest number of propositions of atLeast.
const maxThresholdChildren = math.MaxUint8

// boxField returns the value of the box field read by kind.
func boxField(kind ir.OpCode, box *ir.Box) (ir.Value, error) {
	switch kind {
	case ir.OpExtractAmount:
		if box.Value > math.MaxInt64 {
			str := fmt.Sprintf("box value %d overflows Long", box.Value)
			return nil, evalError(ErrArithmetic, str)
		}
		return ir.Long(int64(box.Value)), nil

	case ir.OpExtractScriptBytes:
		return ir.BytesColl(box.ScriptBytes()), nil

	case ir.OpExtractBytes:
		b, err := box.Bytes()
		if err != nil {
			return nil, evalError(ErrUnexpectedValue, err.Error())
		}
		return ir.BytesColl(b), nil

	case ir.OpExtractBytesWithNoRef:
		b, err := box.BytesWithoutRef()
		if err != nil {
			return nil, evalError(ErrUnexpectedValue, err.Error())
		}
		return ir.BytesColl(b), nil

	case ir.OpExtractID:
		id, err := box.ID()
		if err != nil {
			return nil, evalError(ErrUnexpectedValue, err.Error())
		}
		return ir.BytesColl(id[:]), nil

	case ir.OpExtractCreationInfo:
		return box.CreationInfo(), nil
	}
	str := fmt.Sprintf("%v is not a box field", kind)
	return nil, evalError(ErrUnexpectedExpr, str)
}

// hash returns the digest of b computed by the hash operator kind.
func (e *evaluator) hash(kind ir.OpCode, b []byte) (ir.Value, error) {
	if err := e.cost.Add(hashCost(len(b))); err != nil {
		return nil, err
	}
	if kind == ir.OpCalcSha256 {
		return ir.BytesColl(chainhash.HashB(b)), nil
	}
	d := ir.Blake2b256(b)
	return ir.BytesColl(d[:]), nil
}

// bytesToBigInt decodes a big-endian two's complement integer.
func bytesToBigInt(b []byte) (ir.Value, error) {
	if len(b) == 0 || len(b) > maxBigIntBytes {
		str := fmt.Sprintf("BigInt from %d bytes", len(b))
		return nil, evalError(ErrArithmetic, str)
	}
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(len(b))*8))
	}
	return newBigInt(v)
}

func (e *evaluator) unaryOp(n *ir.UnaryOp) (ir.Value, error) {
	v, err := e.eval(n.Input)
	if err != nil {
		return nil, err
	}

	switch n.Kind {
	case ir.OpSizeOf:
		c, err := asColl(v)
		if err != nil {
			return nil, err
		}
		return ir.Int(int32(len(c.Items))), nil

	case ir.OpExtractAmount, ir.OpExtractScriptBytes, ir.OpExtractBytes,
		ir.OpExtractBytesWithNoRef, ir.OpExtractID,
		ir.OpExtractCreationInfo:

		box, err := asBox(v)
		if err != nil {
			return nil, err
		}
		return boxField(n.Kind, box)

	case ir.OpCalcBlake2b256, ir.OpCalcSha256:
		b, err := asBytes(v)
		if err != nil {
			return nil, err
		}
		return e.hash(n.Kind, b)

	case ir.OpProveDlog:
		p, err := asGroupElement(v)
		if err != nil {
			return nil, err
		}
		return ir.SigmaProp{V: sigma.NewProveDlog(p)}, nil

	case ir.OpSigmaPropBytes:
		sb, err := asSigmaProp(v)
		if err != nil {
			return nil, err
		}
		b, err := ir.SigmaPropBytes(sb)
		if err != nil {
			return nil, evalError(ErrUnexpectedValue, err.Error())
		}
		return ir.BytesColl(b), nil

	case ir.OpBoolToSigmaProp:
		b, err := asBool(v)
		if err != nil {
			return nil, err
		}
		return ir.SigmaProp{V: sigma.TrivialProp(b)}, nil

	case ir.OpDecodePoint:
		b, err := asBytes(v)
		if err != nil {
			return nil, err
		}
		p, err := sigma.ParseEcPoint(b)
		if err != nil {
			return nil, evalError(ErrUnexpectedValue, err.Error())
		}
		return ir.GroupElement{V: p}, nil

	case ir.OpLongToByteArray:
		l, err := asLong(v)
		if err != nil {
			return nil, err
		}
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(l))
		return ir.BytesColl(b[:]), nil

	case ir.OpByteArrayToLong:
		b, err := asBytes(v)
		if err != nil {
			return nil, err
		}
		if len(b) < 8 {
			str := fmt.Sprintf("Long from %d bytes", len(b))
			return nil, evalError(ErrUnexpectedValue, str)
		}
		return ir.Long(int64(binary.BigEndian.Uint64(b))), nil

	case ir.OpByteArrayToBigInt:
		b, err := asBytes(v)
		if err != nil {
			return nil, err
		}
		return bytesToBigInt(b)

	case ir.OpAnd, ir.OpOr, ir.OpXorOf:
		bools, err := asBools(v)
		if err != nil {
			return nil, err
		}
		if err := e.cost.Add(itemsCost(len(bools))); err != nil {
			return nil, err
		}
		return ir.Boolean(foldBools(n.Kind, bools)), nil

	case ir.OpLogicalNot:
		b, err := asBool(v)
		if err != nil {
			return nil, err
		}
		return ir.Boolean(!b), nil

	case ir.OpNegation:
		return negate(v)

	case ir.OpBitInversion:
		return invertBits(v)

	case ir.OpOptionGet:
		o, err := asOpt(v)
		if err != nil {
			return nil, err
		}
		if !o.IsDefined() {
			return nil, evalError(ErrNotFound, "get of an empty option")
		}
		return o.V, nil

	case ir.OpOptionIsDefined:
		o, err := asOpt(v)
		if err != nil {
			return nil, err
		}
		return ir.Boolean(o.IsDefined()), nil
	}

	str := fmt.Sprintf("%v is not a unary operator", n.Kind)
	return nil, evalError(ErrUnexpectedExpr, str)
}

// foldBools combines bools with allOf, anyOf or xorOf.
func foldBools(kind ir.OpCode, bools []bool) bool {
	switch kind {
	case ir.OpAnd:
		for _, b := range bools {
			if !b {
				return false
			}
		}
		return true

	case ir.OpOr:
		for _, b := range bools {
			if b {
				return true
			}
		}
		return false
	}

	res := false
	for _, b := range bools {
		res = res != b
	}
	return res
}

func (e *evaluator) binOp(n *ir.BinOp) (ir.Value, error) {
	// The connectives only evaluate their right operand when the left one
	// does not decide the result.
	if n.Kind == ir.OpBinAnd || n.Kind == ir.OpBinOr {
		v, err := e.eval(n.Left)
		if err != nil {
			return nil, err
		}
		l, err := asBool(v)
		if err != nil {
			return nil, err
		}
		if l == (n.Kind == ir.OpBinOr) {
			return ir.Boolean(l), nil
		}
		if v, err = e.eval(n.Right); err != nil {
			return nil, err
		}
		r, err := asBool(v)
		if err != nil {
			return nil, err
		}
		return ir.Boolean(r), nil
	}

	l, err := e.eval(n.Left)
	if err != nil {
		return nil, err
	}
	r, err := e.eval(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Kind {
	case ir.OpPlus, ir.OpMinus, ir.OpMultiply, ir.OpDivision, ir.OpModulo,
		ir.OpMin, ir.OpMax, ir.OpBitOr, ir.OpBitAnd, ir.OpBitXor:

		return arith(n.Kind, l, r)

	case ir.OpLt, ir.OpLe, ir.OpGt, ir.OpGe:
		c, err := compare(n.Kind, l, r)
		if err != nil {
			return nil, err
		}
		switch n.Kind {
		case ir.OpLt:
			return ir.Boolean(c < 0), nil
		case ir.OpLe:
			return ir.Boolean(c <= 0), nil
		case ir.OpGt:
			return ir.Boolean(c > 0), nil
		}
		return ir.Boolean(c >= 0), nil

	case ir.OpEq:
		return ir.Boolean(ir.Equal(l, r)), nil

	case ir.OpNeq:
		return ir.Boolean(!ir.Equal(l, r)), nil

	case ir.OpBinXor:
		lb, err := asBool(l)
		if err != nil {
			return nil, err
		}
		rb, err := asBool(r)
		if err != nil {
			return nil, err
		}
		return ir.Boolean(lb != rb), nil

	case ir.OpXor:
		return e.xorBytes(l, r)

	case ir.OpExponentiate:
		p, err := asGroupElement(l)
		if err != nil {
			return nil, err
		}
		k, err := asBigInt(r)
		if err != nil {
			return nil, err
		}
		return ir.GroupElement{V: p.Exp(k)}, nil

	case ir.OpMultiplyGroup:
		p, err := asGroupElement(l)
		if err != nil {
			return nil, err
		}
		q, err := asGroupElement(r)
		if err != nil {
			return nil, err
		}
		return ir.GroupElement{V: p.Add(q)}, nil

	case ir.OpAtLeast:
		bound, err := asInt(l)
		if err != nil {
			return nil, err
		}
		props, err := asSigmaProps(r)
		if err != nil {
			return nil, err
		}
		if len(props) > maxThresholdChildren {
			str := fmt.Sprintf("atLeast over %d propositions, at "+
				"most %d allowed", len(props), maxThresholdChildren)
			return nil, evalError(ErrUnexpectedValue, str)
		}
		sb := sigma.NewCThreshold(int(bound), props)
		return ir.SigmaProp{V: sb}, nil

	case ir.OpAppend:
		lc, err := asColl(l)
		if err != nil {
			return nil, err
		}
		rc, err := asColl(r)
		if err != nil {
			return nil, err
		}
		total := len(lc.Items) + len(rc.Items)
		if err := e.cost.Add(itemsCost(total)); err != nil {
			return nil, err
		}
		items := make([]ir.Value, 0, total)
		items = append(append(items, lc.Items...), rc.Items...)
		return ir.Coll{Elem: lc.Elem, Items: items}, nil

	case ir.OpOptionGetOrElse:
		o, err := asOpt(l)
		if err != nil {
			return nil, err
		}
		if o.IsDefined() {
			return o.V, nil
		}
		return r, nil
	}

	str := fmt.Sprintf("%v is not a binary operator", n.Kind)
	return nil, evalError(ErrUnexpectedExpr, str)
}

// xorBytes returns the bytewise exclusive or of two byte collections,
// truncated to the shorter one.
func (e *evaluator) xorBytes(l, r ir.Value) (ir.Value, error) {
	lb, err := asBytes(l)
	if err != nil {
		return nil, err
	}
	rb, err := asBytes(r)
	if err != nil {
		return nil, err
	}
	if len(rb) < len(lb) {
		lb = lb[:len(rb)]
	}
	if err := e.cost.Add(itemsCost(len(lb))); err != nil {
		return nil, err
	}
	res := make([]byte, len(lb))
	for i := range res {
		res[i] = lb[i] ^ rb[i]
	}
	return ir.BytesColl(res), nil
}
