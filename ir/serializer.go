// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"

	"github.com/btcsuite/ergotree/stype"
	"github.com/btcsuite/ergotree/wire"
)

// ConstantStore is the table of segregated constants of an ErgoTree.
// Placeholders refer to constants by their index in the store.
type ConstantStore struct {
	constants []*Constant
}

// NewConstantStore returns a store holding the given constants in order.
func NewConstantStore(constants []*Constant) *ConstantStore {
	return &ConstantStore{constants: constants}
}

// Put adds c to the store and returns its index.  A constant equal to one
// already stored is not added again.
func (s *ConstantStore) Put(c *Constant) uint32 {
	for i, have := range s.constants {
		if stype.Equal(have.Type, c.Type) && Equal(have.V, c.V) {
			return uint32(i)
		}
	}
	s.constants = append(s.constants, &Constant{Type: c.Type, V: c.V})
	return uint32(len(s.constants) - 1)
}

// Get returns the constant with the given index.
func (s *ConstantStore) Get(id uint32) (*Constant, bool) {
	if int64(id) >= int64(len(s.constants)) {
		return nil, false
	}
	return s.constants[id], true
}

// Len returns the number of stored constants.
func (s *ConstantStore) Len() int {
	return len(s.constants)
}

// Constants returns the stored constants in index order.
func (s *ConstantStore) Constants() []*Constant {
	return s.constants
}

// SigmaByteWriter serializes expressions.  When a constant store is set,
// every constant is written as a placeholder into the store instead.
type SigmaByteWriter struct {
	*wire.Writer
	store *ConstantStore
}

// NewSigmaByteWriter returns a writer.  store may be nil.
func NewSigmaByteWriter(store *ConstantStore) *SigmaByteWriter {
	return &SigmaByteWriter{Writer: wire.NewWriter(), store: store}
}

// WriteExpr writes e with its leading code.
func (w *SigmaByteWriter) WriteExpr(e Expr) error {
	if c, ok := e.(*Constant); ok && w.store != nil {
		id := w.store.Put(c)
		w.PutByte(byte(OpConstantPlaceholder))
		w.PutU32(id)
		return nil
	}
	if _, ok := e.(*Constant); !ok {
		w.PutByte(byte(e.OpCode()))
	}
	return e.writeBody(w)
}

// writeExprs writes a VLQ count followed by every item.
func (w *SigmaByteWriter) writeExprs(items []Expr) error {
	w.PutU32(uint32(len(items)))
	for _, item := range items {
		if err := w.WriteExpr(item); err != nil {
			return err
		}
	}
	return nil
}

// SigmaByteReader parses expressions.  Placeholders are resolved against the
// constant store, either into the constants themselves when substitution is
// enabled or into typed placeholders otherwise.
type SigmaByteReader struct {
	*wire.Reader
	store      *ConstantStore
	substitute bool

	// valDefs holds the types of the value definitions in scope.
	valDefs map[uint32]stype.SType
}

// NewSigmaByteReader returns a reader over b.  store may be nil, in which case
// every placeholder fails to resolve.
func NewSigmaByteReader(b []byte, store *ConstantStore,
	substitute bool) *SigmaByteReader {

	if store == nil {
		store = NewConstantStore(nil)
	}
	return &SigmaByteReader{
		Reader:     wire.NewReader(b),
		store:      store,
		substitute: substitute,
		valDefs:    make(map[uint32]stype.SType),
	}
}

// parseFunc parses the body of a node whose code has been consumed.
type parseFunc func(r *SigmaByteReader, op OpCode) (Expr, error)

// parseTable dispatches operator codes to their parsers.  It is populated in
// init since the parsers themselves parse nested expressions through it.
var parseTable [256]parseFunc

func init() {
	parseTable[OpConstantPlaceholder] = parseConstantPlaceholder
	parseTable[OpCollection] = parseCollection
	parseTable[OpCollectionBoolConstants] = parseBoolCollection
	parseTable[OpTuple] = parseTuple
	parseTable[OpSelectField] = parseSelectField
	parseTable[OpIf] = parseIf
	parseTable[OpByIndex] = parseByIndex
	parseTable[OpExtractRegisterAs] = parseExtractRegisterAs
	parseTable[OpProveDhTuple] = parseCreateProveDhTuple
	parseTable[OpGetVar] = parseGetVar
	parseTable[OpSigmaAnd] = parseSigmaConj
	parseTable[OpSigmaOr] = parseSigmaConj
	parseTable[OpUpcast] = parseNumericCast
	parseTable[OpDowncast] = parseNumericCast
	parseTable[OpValDef] = parseValDef
	parseTable[OpValUse] = parseValUse
	parseTable[OpBlockValue] = parseBlockValue
	parseTable[OpPropertyCall] = parsePropertyCall
	parseTable[OpMethodCall] = parseMethodCall
	for _, op := range []OpCode{OpTrue, OpFalse, OpUnitConstant,
		OpTrivialPropTrue, OpTrivialPropFalse} {

		parseTable[op] = parseConstantShorthand
	}
	for op := range globalVarTypes {
		parseTable[op] = parseGlobalVar
	}
	for op := range unaryOps {
		parseTable[op] = parseUnaryOp
	}
	for op := range binOps {
		parseTable[op] = parseBinOp
	}
}

// ReadExpr parses the next expression.
func (r *SigmaByteReader) ReadExpr() (Expr, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	return r.readExprWithTag(OpCode(tag))
}

// readExprWithTag parses an expression whose leading byte has been consumed.
func (r *SigmaByteReader) readExprWithTag(tag OpCode) (Expr, error) {
	if tag <= LastConstantCode {
		tpe, err := r.readConstantType(tag)
		if err != nil {
			return nil, err
		}
		v, err := ParseData(r.Reader, tpe)
		if err != nil {
			return nil, err
		}
		return &Constant{Type: tpe, V: v}, nil
	}

	parse := parseTable[tag]
	if parse == nil {
		return nil, NotImplementedError{Code: tag}
	}
	return parse(r, tag)
}

// readConstantType reads the type of a constant whose tag is either the
// first byte of its type or OpCodeConstant followed by a type.
func (r *SigmaByteReader) readConstantType(tag OpCode) (stype.SType, error) {
	if tag == OpCodeConstant {
		return stype.ParseType(r.Reader)
	}
	return stype.ParseTypeWithCode(r.Reader, stype.TypeCode(tag))
}

// readExprs reads a VLQ count followed by that many expressions.
func (r *SigmaByteReader) readExprs() ([]Expr, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if int64(n) > int64(r.Remaining()) {
		str := fmt.Sprintf("%d expressions exceed the %d remaining bytes",
			n, r.Remaining())
		return nil, irError(ErrBoundsExceeded, str)
	}
	items := make([]Expr, n)
	for i := range items {
		if items[i], err = r.ReadExpr(); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// SerializeExpr returns the encoding of e without constant segregation.
func SerializeExpr(e Expr) ([]byte, error) {
	w := NewSigmaByteWriter(nil)
	if err := w.WriteExpr(e); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// ParseExpr parses an expression that must span all of b.
func ParseExpr(b []byte) (Expr, error) {
	r := NewSigmaByteReader(b, nil, false)
	e, err := r.ReadExpr()
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		str := fmt.Sprintf("%d trailing bytes after expression",
			r.Remaining())
		return nil, irError(ErrInvalidNode, str)
	}
	return e, nil
}
