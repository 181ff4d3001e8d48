// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interpreter

import (
	"math/big"

	"github.com/btcsuite/ergotree/ir"
	"github.com/btcsuite/ergotree/sigma"
)

func asBool(v ir.Value) (bool, error) {
	b, ok := v.(ir.Boolean)
	if !ok {
		return false, unexpectedValue("Boolean", v)
	}
	return bool(b), nil
}

func asInt(v ir.Value) (int32, error) {
	i, ok := v.(ir.Int)
	if !ok {
		return 0, unexpectedValue("Int", v)
	}
	return int32(i), nil
}

func asLong(v ir.Value) (int64, error) {
	l, ok := v.(ir.Long)
	if !ok {
		return 0, unexpectedValue("Long", v)
	}
	return int64(l), nil
}

func asBigInt(v ir.Value) (*big.Int, error) {
	b, ok := v.(ir.BigInt)
	if !ok {
		return nil, unexpectedValue("BigInt", v)
	}
	return b.V, nil
}

func asColl(v ir.Value) (ir.Coll, error) {
	c, ok := v.(ir.Coll)
	if !ok {
		return ir.Coll{}, unexpectedValue("Coll", v)
	}
	return c, nil
}

// asBytes returns the content of a Coll[Byte].
func asBytes(v ir.Value) ([]byte, error) {
	c, ok := v.(ir.Coll)
	if !ok {
		return nil, unexpectedValue("Coll[Byte]", v)
	}
	b := make([]byte, len(c.Items))
	for i, item := range c.Items {
		x, ok := item.(ir.Byte)
		if !ok {
			return nil, unexpectedValue("Byte", item)
		}
		b[i] = byte(x)
	}
	return b, nil
}

func asOpt(v ir.Value) (ir.Opt, error) {
	o, ok := v.(ir.Opt)
	if !ok {
		return ir.Opt{}, unexpectedValue("Option", v)
	}
	return o, nil
}

func asBox(v ir.Value) (*ir.Box, error) {
	b, ok := v.(*ir.Box)
	if !ok || b == nil {
		return nil, unexpectedValue("Box", v)
	}
	return b, nil
}

func asGroupElement(v ir.Value) (*sigma.EcPoint, error) {
	g, ok := v.(ir.GroupElement)
	if !ok {
		return nil, unexpectedValue("GroupElement", v)
	}
	return g.V, nil
}

func asSigmaProp(v ir.Value) (sigma.SigmaBoolean, error) {
	sp, ok := v.(ir.SigmaProp)
	if !ok {
		return nil, unexpectedValue("SigmaProp", v)
	}
	return sp.V, nil
}

// asSigmaProps returns the items of a Coll[SigmaProp].
func asSigmaProps(v ir.Value) ([]sigma.SigmaBoolean, error) {
	c, err := asColl(v)
	if err != nil {
		return nil, err
	}
	props := make([]sigma.SigmaBoolean, len(c.Items))
	for i, item := range c.Items {
		if props[i], err = asSigmaProp(item); err != nil {
			return nil, err
		}
	}
	return props, nil
}

// asBools returns the items of a Coll[Boolean].
func asBools(v ir.Value) ([]bool, error) {
	c, err := asColl(v)
	if err != nil {
		return nil, err
	}
	bools := make([]bool, len(c.Items))
	for i, item := range c.Items {
		if bools[i], err = asBool(item); err != nil {
			return nil, err
		}
	}
	return bools, nil
}
