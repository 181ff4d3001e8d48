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

// MaxBoxes is the largest number of inputs, outputs or data inputs of a
// spending transaction.
const MaxBoxes = math.MaxUint16

// PreHeader holds the fields of the block being formed that a script may read.
type PreHeader struct {
	Version   uint8
	ParentID  ir.Digest32
	Timestamp uint64
	NBits     uint64
	Height    uint32
	MinerPk   *sigma.EcPoint
	Votes     [3]byte
}

// Context is the environment a script is evaluated in: the box being spent,
// the boxes of the spending transaction, the chain height and the extension
// supplied by the prover.  A Context is never modified by evaluation and may
// be shared by concurrent evaluations.
type Context struct {
	Self       *ir.Box
	Inputs     []*ir.Box
	Outputs    []*ir.Box
	DataInputs []*ir.Box
	Height     uint32
	PreHeader  PreHeader

	// Extension holds the context variables read with getVar.
	Extension map[uint8]*ir.Constant

	// CostLimit bounds the cost of one evaluation.  Zero disables the
	// limit.
	CostLimit uint64
}

// NewContext returns a context after checking that there is at least one
// input and one output and that no list holds more than MaxBoxes boxes.
func NewContext(self *ir.Box, inputs, outputs, dataInputs []*ir.Box,
	height uint32, preHeader PreHeader) (*Context, error) {

	check := func(name string, boxes []*ir.Box, min int) error {
		if len(boxes) < min || len(boxes) > MaxBoxes {
			str := fmt.Sprintf("%d %s, must be between %d and %d",
				len(boxes), name, min, MaxBoxes)
			return evalError(ErrInvalidContext, str)
		}
		return nil
	}
	if self == nil {
		return nil, evalError(ErrInvalidContext, "context without a self box")
	}
	if err := check("inputs", inputs, 1); err != nil {
		return nil, err
	}
	if err := check("outputs", outputs, 1); err != nil {
		return nil, err
	}
	if err := check("data inputs", dataInputs, 0); err != nil {
		return nil, err
	}

	return &Context{
		Self:       self,
		Inputs:     inputs,
		Outputs:    outputs,
		DataInputs: dataInputs,
		Height:     height,
		PreHeader:  preHeader,
		Extension:  make(map[uint8]*ir.Constant),
	}, nil
}

// WithExtension returns a copy of c with the given context variables.
func (c *Context) WithExtension(ext map[uint8]*ir.Constant) *Context {
	cp := *c
	cp.Extension = ext
	return &cp
}

// selfIndex returns the position of the self box among the inputs, or -1.
func (c *Context) selfIndex() int {
	for i, in := range c.Inputs {
		if in == c.Self {
			return i
		}
	}
	return -1
}

// minerPubKey returns the encoded public key of the miner.
func (c *Context) minerPubKey() (ir.Coll, error) {
	if c.PreHeader.MinerPk == nil {
		return ir.Coll{}, evalError(ErrNotFound, "no miner public key")
	}
	return ir.BytesColl(c.PreHeader.MinerPk.Bytes()), nil
}

// boxes returns boxes as a Coll[Box].
func boxes(b []*ir.Box) ir.Coll {
	items := make([]ir.Value, len(b))
	for i, box := range b {
		items[i] = box
	}
	return ir.Coll{Elem: stype.SBox, Items: items}
}
