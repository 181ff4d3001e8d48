// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interpreter

import (
	"fmt"
	"math"
	"math/big"

	"github.com/btcsuite/ergotree/ir"
	"github.com/btcsuite/ergotree/stype"
)

// intKind identifies one of the fixed width integer types.
type intKind uint8

const (
	kindByte intKind = iota
	kindShort
	kindInt
	kindLong
)

var kindNames = [...]string{"Byte", "Short", "Int", "Long"}

// bounds returns the range of values of the kind.
func (k intKind) bounds() (int64, int64) {
	switch k {
	case kindByte:
		return math.MinInt8, math.MaxInt8
	case kindShort:
		return math.MinInt16, math.MaxInt16
	case kindInt:
		return math.MinInt32, math.MaxInt32
	}
	return math.MinInt64, math.MaxInt64
}

// wrap returns v as a value of the kind, or an arithmetic error when v is out
// of range.
func (k intKind) wrap(v int64) (ir.Value, error) {
	min, max := k.bounds()
	if v < min || v > max {
		str := fmt.Sprintf("%d overflows %s", v, kindNames[k])
		return nil, evalError(ErrArithmetic, str)
	}
	switch k {
	case kindByte:
		return ir.Byte(v), nil
	case kindShort:
		return ir.Short(v), nil
	case kindInt:
		return ir.Int(v), nil
	}
	return ir.Long(v), nil
}

// intValue returns the value and kind of a fixed width integer.
func intValue(v ir.Value) (int64, intKind, bool) {
	switch v := v.(type) {
	case ir.Byte:
		return int64(v), kindByte, true
	case ir.Short:
		return int64(v), kindShort, true
	case ir.Int:
		return int64(v), kindInt, true
	case ir.Long:
		return int64(v), kindLong, true
	}
	return 0, 0, false
}

func overflow(op ir.OpCode, k intKind) error {
	str := fmt.Sprintf("%v overflows %s", op, kindNames[k])
	return evalError(ErrArithmetic, str)
}

func divisionByZero(op ir.OpCode) error {
	return evalError(ErrArithmetic, fmt.Sprintf("%v by zero", op))
}

// intArith applies an arithmetic or bitwise operator to two integers of the
// same kind.
func intArith(op ir.OpCode, l, r int64, k intKind) (ir.Value, error) {
	var res int64
	switch op {
	case ir.OpPlus:
		res = l + r
		if (r > 0 && res < l) || (r < 0 && res > l) {
			return nil, overflow(op, k)
		}

	case ir.OpMinus:
		res = l - r
		if (r > 0 && res > l) || (r < 0 && res < l) {
			return nil, overflow(op, k)
		}

	case ir.OpMultiply:
		if l != 0 && r != 0 {
			res = l * r
			if res/r != l || (l == -1 && r == math.MinInt64) ||
				(r == -1 && l == math.MinInt64) {

				return nil, overflow(op, k)
			}
		}

	case ir.OpDivision:
		if r == 0 {
			return nil, divisionByZero(op)
		}
		if l == math.MinInt64 && r == -1 {
			return nil, overflow(op, k)
		}
		res = l / r

	case ir.OpModulo:
		if r == 0 {
			return nil, divisionByZero(op)
		}
		if r != -1 {
			res = l % r
		}

	case ir.OpMin:
		res = l
		if r < l {
			res = r
		}

	case ir.OpMax:
		res = l
		if r > l {
			res = r
		}

	case ir.OpBitOr:
		res = l | r

	case ir.OpBitAnd:
		res = l & r

	case ir.OpBitXor:
		res = l ^ r

	default:
		str := fmt.Sprintf("%v is not an arithmetic operator", op)
		return nil, evalError(ErrUnexpectedExpr, str)
	}
	return k.wrap(res)
}

// bigArith applies an arithmetic or bitwise operator to two BigInt values.
// Results outside of the 256-bit signed range are arithmetic errors.
func bigArith(op ir.OpCode, l, r *big.Int) (ir.Value, error) {
	res := new(big.Int)
	switch op {
	case ir.OpPlus:
		res.Add(l, r)
	case ir.OpMinus:
		res.Sub(l, r)
	case ir.OpMultiply:
		res.Mul(l, r)
	case ir.OpDivision:
		if r.Sign() == 0 {
			return nil, divisionByZero(op)
		}
		res.Quo(l, r)
	case ir.OpModulo:
		if r.Sign() == 0 {
			return nil, divisionByZero(op)
		}
		res.Rem(l, r)
	case ir.OpMin:
		res.Set(l)
		if r.Cmp(l) < 0 {
			res.Set(r)
		}
	case ir.OpMax:
		res.Set(l)
		if r.Cmp(l) > 0 {
			res.Set(r)
		}
	case ir.OpBitOr:
		res.Or(l, r)
	case ir.OpBitAnd:
		res.And(l, r)
	case ir.OpBitXor:
		res.Xor(l, r)
	default:
		str := fmt.Sprintf("%v is not an arithmetic operator", op)
		return nil, evalError(ErrUnexpectedExpr, str)
	}
	return newBigInt(res)
}

// newBigInt returns v as a BigInt value, mapping a range violation to an
// arithmetic error.
func newBigInt(v *big.Int) (ir.Value, error) {
	b, err := ir.NewBigInt(v)
	if err != nil {
		return nil, evalError(ErrArithmetic, err.Error())
	}
	return b, nil
}

// arith applies op to two numeric values of the same type.
func arith(op ir.OpCode, l, r ir.Value) (ir.Value, error) {
	if lb, ok := l.(ir.BigInt); ok {
		rb, ok := r.(ir.BigInt)
		if !ok {
			return nil, mismatch(op, l, r)
		}
		return bigArith(op, lb.V, rb.V)
	}
	lv, lk, lok := intValue(l)
	rv, rk, rok := intValue(r)
	if !lok || !rok || lk != rk {
		return nil, mismatch(op, l, r)
	}
	return intArith(op, lv, rv, lk)
}

// compare returns the ordering of two numeric values of the same type.
func compare(op ir.OpCode, l, r ir.Value) (int, error) {
	if lb, ok := l.(ir.BigInt); ok {
		rb, ok := r.(ir.BigInt)
		if !ok {
			return 0, mismatch(op, l, r)
		}
		return lb.V.Cmp(rb.V), nil
	}
	lv, lk, lok := intValue(l)
	rv, rk, rok := intValue(r)
	if !lok || !rok || lk != rk {
		return 0, mismatch(op, l, r)
	}
	switch {
	case lv < rv:
		return -1, nil
	case lv > rv:
		return 1, nil
	}
	return 0, nil
}

// negate returns -v.
func negate(v ir.Value) (ir.Value, error) {
	if b, ok := v.(ir.BigInt); ok {
		return newBigInt(new(big.Int).Neg(b.V))
	}
	n, k, ok := intValue(v)
	if !ok {
		return nil, unexpectedValue("numeric", v)
	}
	if n == math.MinInt64 {
		return nil, overflow(ir.OpNegation, k)
	}
	return k.wrap(-n)
}

// invertBits returns the bitwise complement of v.
func invertBits(v ir.Value) (ir.Value, error) {
	if b, ok := v.(ir.BigInt); ok {
		return newBigInt(new(big.Int).Not(b.V))
	}
	n, k, ok := intValue(v)
	if !ok {
		return nil, unexpectedValue("numeric", v)
	}
	return k.wrap(^n)
}

// castKinds maps the fixed width integer types to their kinds.
var castKinds = map[stype.SType]intKind{
	stype.SByte:  kindByte,
	stype.SShort: kindShort,
	stype.SInt:   kindInt,
	stype.SLong:  kindLong,
}

// castNumeric converts v to the numeric type to.
func castNumeric(v ir.Value, to stype.SType) (ir.Value, error) {
	var n *big.Int
	switch v := v.(type) {
	case ir.BigInt:
		n = v.V
	default:
		i, _, ok := intValue(v)
		if !ok {
			return nil, unexpectedValue("numeric", v)
		}
		n = big.NewInt(i)
	}

	if stype.Equal(to, stype.SBigInt) {
		return newBigInt(n)
	}
	k, ok := castKinds[to]
	if !ok {
		str := fmt.Sprintf("cast to non-numeric type %v", to)
		return nil, evalError(ErrUnexpectedValue, str)
	}
	if !n.IsInt64() {
		str := fmt.Sprintf("%v overflows %v", n, to)
		return nil, evalError(ErrArithmetic, str)
	}
	return k.wrap(n.Int64())
}

func mismatch(op ir.OpCode, l, r ir.Value) error {
	str := fmt.Sprintf("%v on mismatched operands %T and %T", op, l, r)
	return evalError(ErrUnexpectedValue, str)
}

func unexpectedValue(want string, v ir.Value) error {
	str := fmt.Sprintf("expected %s value, got %T", want, v)
	return evalError(ErrUnexpectedValue, str)
}
