// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interpreter

import (
	"fmt"
	"math"

	"github.com/btcsuite/ergotree/ir"
)

// CostAccumulator is the running cost of one evaluation.  It is owned by a
// single evaluation and must not be shared.
type CostAccumulator struct {
	total uint64
	limit uint64
}

// NewCostAccumulator returns an accumulator starting at initial.  A limit of
// zero disables the limit.
func NewCostAccumulator(initial, limit uint64) *CostAccumulator {
	return &CostAccumulator{total: initial, limit: limit}
}

// Add charges cost and returns ErrCostLimitExceeded when the total passes the
// limit.
func (c *CostAccumulator) Add(cost uint64) error {
	if cost > math.MaxUint64-c.total {
		c.total = math.MaxUint64
	} else {
		c.total += cost
	}
	if c.limit != 0 && c.total > c.limit {
		str := fmt.Sprintf("cost %d exceeds the limit %d", c.total,
			c.limit)
		return evalError(ErrCostLimitExceeded, str)
	}
	return nil
}

// Total returns the accumulated cost.
func (c *CostAccumulator) Total() uint64 {
	return c.total
}

// Base costs of evaluating a node, charged before its operands.
const (
	costConstant     = 5
	costAccess       = 10
	costSimpleOp     = 15
	costCompare      = 10
	costBoxAccess    = 20
	costSerialize    = 100
	costHash         = 100
	costDecodePoint  = 300
	costGroupOp      = 50
	costExponentiate = 5100
	costSigmaProp    = 20
	costMethodCall   = 20

	// defaultCost is charged for nodes without an entry in opCosts.
	defaultCost = costSimpleOp
)

// opCosts maps operator codes to the base cost of their nodes.
var opCosts = map[ir.OpCode]uint64{
	ir.OpCodeConstant:          costConstant,
	ir.OpConstantPlaceholder:   costConstant,
	ir.OpValUse:                costAccess,
	ir.OpValDef:                costAccess,
	ir.OpBlockValue:            costAccess,
	ir.OpGetVar:                costAccess,
	ir.OpHeight:                costAccess,
	ir.OpInputs:                costAccess,
	ir.OpOutputs:               costAccess,
	ir.OpSelf:                  costAccess,
	ir.OpMinerPubKey:           costAccess,
	ir.OpGroupGenerator:        costAccess,
	ir.OpContext:               costAccess,
	ir.OpGlobal:                costAccess,
	ir.OpSelectField:           costAccess,
	ir.OpLt:                    costCompare,
	ir.OpLe:                    costCompare,
	ir.OpGt:                    costCompare,
	ir.OpGe:                    costCompare,
	ir.OpEq:                    costCompare,
	ir.OpNeq:                   costCompare,
	ir.OpExtractAmount:         costBoxAccess,
	ir.OpExtractScriptBytes:    costBoxAccess,
	ir.OpExtractCreationInfo:   costBoxAccess,
	ir.OpExtractRegisterAs:     costBoxAccess,
	ir.OpExtractBytes:          costSerialize,
	ir.OpExtractBytesWithNoRef: costSerialize,
	ir.OpExtractID:             costSerialize,
	ir.OpSigmaPropBytes:        costSerialize,
	ir.OpCalcBlake2b256:        costHash,
	ir.OpCalcSha256:            costHash,
	ir.OpDecodePoint:           costDecodePoint,
	ir.OpMultiplyGroup:         costGroupOp,
	ir.OpExponentiate:          costExponentiate,
	ir.OpProveDlog:             costSigmaProp,
	ir.OpProveDhTuple:          costSigmaProp,
	ir.OpBoolToSigmaProp:       costSigmaProp,
	ir.OpSigmaAnd:              costSigmaProp,
	ir.OpSigmaOr:               costSigmaProp,
	ir.OpAtLeast:               costSigmaProp,
	ir.OpPropertyCall:          costMethodCall,
	ir.OpMethodCall:            costMethodCall,
}

// Costs charged per item of a collection operand and per block of hashed
// bytes.
const (
	costPerItem      = 2
	costPerHashBlock = 10
	hashBlockSize    = 64
)

// nodeCost returns the base cost of e.
func nodeCost(e ir.Expr) uint64 {
	if cost, ok := opCosts[e.OpCode()]; ok {
		return cost
	}
	return defaultCost
}

// itemsCost returns the cost of processing n collection items.
func itemsCost(n int) uint64 {
	return uint64(n) * costPerItem
}

// hashCost returns the cost of hashing n bytes.
func hashCost(n int) uint64 {
	blocks := (n + hashBlockSize - 1) / hashBlockSize
	return uint64(blocks) * costPerHashBlock
}
