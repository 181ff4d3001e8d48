// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"
	"math"

	"github.com/btcsuite/ergotree/sigma"
	"github.com/btcsuite/ergotree/stype"
)

// Collection is a collection literal built from expressions of one type.
type Collection struct {
	Spanned
	ElemTpe stype.SType
	Items   []Expr
}

// NewCollection returns a collection literal after checking that every item
// is of type elemTpe.
func NewCollection(elemTpe stype.SType, items []Expr) (*Collection, error) {
	if len(items) > math.MaxUint16 {
		str := fmt.Sprintf("collection literal of %d items", len(items))
		return nil, irError(ErrBoundsExceeded, str)
	}
	for i, item := range items {
		if !stype.Equal(item.Tpe(), elemTpe) {
			str := fmt.Sprintf("item %d of type %v in a collection of "+
				"%v", i, item.Tpe(), elemTpe)
			return nil, irError(ErrInvalidNode, str)
		}
	}
	return &Collection{ElemTpe: elemTpe, Items: items}, nil
}

// Tpe returns Coll[ElemTpe].
func (n *Collection) Tpe() stype.SType { return stype.NewSColl(n.ElemTpe) }

// boolConstants returns the items as booleans if the collection holds only
// boolean constants.
func (n *Collection) boolConstants() ([]bool, bool) {
	if n.ElemTpe != stype.SBoolean {
		return nil, false
	}
	bits := make([]bool, len(n.Items))
	for i, item := range n.Items {
		c, ok := item.(*Constant)
		if !ok {
			return nil, false
		}
		bits[i] = bool(c.V.(Boolean))
	}
	return bits, true
}

// OpCode returns OpCollectionBoolConstants for collections of boolean
// constants and OpCollection otherwise.
func (n *Collection) OpCode() OpCode {
	if _, ok := n.boolConstants(); ok {
		return OpCollectionBoolConstants
	}
	return OpCollection
}

func (n *Collection) writeBody(w *SigmaByteWriter) error {
	w.PutU16(uint16(len(n.Items)))
	if bits, ok := n.boolConstants(); ok {
		w.PutBits(bits)
		return nil
	}
	if err := stype.SerializeType(w.Writer, n.ElemTpe); err != nil {
		return err
	}
	for _, item := range n.Items {
		if err := w.WriteExpr(item); err != nil {
			return err
		}
	}
	return nil
}

func parseCollection(r *SigmaByteReader, _ OpCode) (Expr, error) {
	n, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	elemTpe, err := stype.ParseType(r.Reader)
	if err != nil {
		return nil, err
	}
	items := make([]Expr, n)
	for i := range items {
		if items[i], err = r.ReadExpr(); err != nil {
			return nil, err
		}
	}
	return NewCollection(elemTpe, items)
}

func parseBoolCollection(r *SigmaByteReader, _ OpCode) (Expr, error) {
	n, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	bits, err := r.ReadBits(int(n))
	if err != nil {
		return nil, err
	}
	items := make([]Expr, n)
	for i, b := range bits {
		items[i] = ConstBool(b)
	}
	return &Collection{ElemTpe: stype.SBoolean, Items: items}, nil
}

// Tuple is a tuple literal.
type Tuple struct {
	Spanned
	Items []Expr
}

// NewTuple returns a tuple of 2 to 255 items.
func NewTuple(items []Expr) (*Tuple, error) {
	if len(items) < stype.MinTupleItems || len(items) > stype.MaxTupleItems {
		str := fmt.Sprintf("tuple of %d items", len(items))
		return nil, irError(ErrBoundsExceeded, str)
	}
	return &Tuple{Items: items}, nil
}

// Tpe returns the tuple type of the item types.
func (n *Tuple) Tpe() stype.SType {
	items := make([]stype.SType, len(n.Items))
	for i, item := range n.Items {
		items[i] = item.Tpe()
	}
	return &stype.STuple{Items: items}
}

// OpCode returns OpTuple.
func (n *Tuple) OpCode() OpCode { return OpTuple }

func (n *Tuple) writeBody(w *SigmaByteWriter) error {
	w.PutU8(uint8(len(n.Items)))
	for _, item := range n.Items {
		if err := w.WriteExpr(item); err != nil {
			return err
		}
	}
	return nil
}

func parseTuple(r *SigmaByteReader, _ OpCode) (Expr, error) {
	n, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	items := make([]Expr, n)
	for i := range items {
		if items[i], err = r.ReadExpr(); err != nil {
			return nil, err
		}
	}
	return NewTuple(items)
}

// SelectField selects the 1-based field of a tuple.
type SelectField struct {
	Spanned
	Input      Expr
	FieldIndex uint8

	fieldTpe stype.SType
}

// NewSelectField returns the selection of field index of input.
func NewSelectField(input Expr, index uint8) (*SelectField, error) {
	tuple, ok := input.Tpe().(*stype.STuple)
	if !ok {
		str := fmt.Sprintf("field selection from %v", input.Tpe())
		return nil, irError(ErrInvalidNode, str)
	}
	fieldTpe, ok := tuple.Item(index)
	if !ok {
		str := fmt.Sprintf("field %d of %v", index, tuple)
		return nil, irError(ErrInvalidNode, str)
	}
	return &SelectField{Input: input, FieldIndex: index,
		fieldTpe: fieldTpe}, nil
}

// Tpe returns the type of the selected field.
func (n *SelectField) Tpe() stype.SType { return n.fieldTpe }

// OpCode returns OpSelectField.
func (n *SelectField) OpCode() OpCode { return OpSelectField }

func (n *SelectField) writeBody(w *SigmaByteWriter) error {
	if err := w.WriteExpr(n.Input); err != nil {
		return err
	}
	w.PutU8(n.FieldIndex)
	return nil
}

func parseSelectField(r *SigmaByteReader, _ OpCode) (Expr, error) {
	input, err := r.ReadExpr()
	if err != nil {
		return nil, err
	}
	index, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	return NewSelectField(input, index)
}

// If is a conditional expression.
type If struct {
	Spanned
	Condition   Expr
	TrueBranch  Expr
	FalseBranch Expr
}

// NewIf returns a conditional after checking that the condition is Boolean
// and that the branches agree in type.
func NewIf(cond, trueBranch, falseBranch Expr) (*If, error) {
	if !stype.Equal(cond.Tpe(), stype.SBoolean) {
		str := fmt.Sprintf("condition of type %v", cond.Tpe())
		return nil, irError(ErrInvalidNode, str)
	}
	if !stype.Equal(trueBranch.Tpe(), falseBranch.Tpe()) {
		str := fmt.Sprintf("branches of types %v and %v",
			trueBranch.Tpe(), falseBranch.Tpe())
		return nil, irError(ErrInvalidNode, str)
	}
	return &If{Condition: cond, TrueBranch: trueBranch,
		FalseBranch: falseBranch}, nil
}

// Tpe returns the type of the branches.
func (n *If) Tpe() stype.SType { return n.TrueBranch.Tpe() }

// OpCode returns OpIf.
func (n *If) OpCode() OpCode { return OpIf }

func (n *If) writeBody(w *SigmaByteWriter) error {
	for _, e := range []Expr{n.Condition, n.TrueBranch, n.FalseBranch} {
		if err := w.WriteExpr(e); err != nil {
			return err
		}
	}
	return nil
}

func parseIf(r *SigmaByteReader, _ OpCode) (Expr, error) {
	var parts [3]Expr
	for i := range parts {
		e, err := r.ReadExpr()
		if err != nil {
			return nil, err
		}
		parts[i] = e
	}
	return NewIf(parts[0], parts[1], parts[2])
}

// globalVarInfo describes a context or global accessor without operands.
type globalVarInfo struct {
	name string
	tpe  stype.SType
}

// globalVarTypes holds every accessor represented by GlobalVar.
var globalVarTypes = map[OpCode]globalVarInfo{
	OpHeight:         {"HEIGHT", stype.SInt},
	OpInputs:         {"INPUTS", sBoxes},
	OpOutputs:        {"OUTPUTS", sBoxes},
	OpSelf:           {"SELF", stype.SBox},
	OpMinerPubKey:    {"MinerPubkey", sBytes},
	OpGroupGenerator: {"groupGenerator", stype.SGroupElement},
	OpContext:        {"CONTEXT", stype.SContext},
	OpGlobal:         {"Global", stype.SGlobal},
}

// GlobalVar reads a value from the evaluation context or a global constant
// such as HEIGHT, SELF or the group generator.
type GlobalVar struct {
	Spanned
	Kind OpCode
}

// NewGlobalVar returns the accessor kind.
func NewGlobalVar(kind OpCode) (*GlobalVar, error) {
	if _, ok := globalVarTypes[kind]; !ok {
		str := fmt.Sprintf("%v is not a global accessor", kind)
		return nil, irError(ErrInvalidNode, str)
	}
	return &GlobalVar{Kind: kind}, nil
}

// Tpe returns the type of the accessed value.
func (n *GlobalVar) Tpe() stype.SType { return globalVarTypes[n.Kind].tpe }

// OpCode returns the accessor kind.
func (n *GlobalVar) OpCode() OpCode { return n.Kind }

func (n *GlobalVar) writeBody(*SigmaByteWriter) error { return nil }

func parseGlobalVar(_ *SigmaByteReader, op OpCode) (Expr, error) {
	return NewGlobalVar(op)
}

// parseConstantShorthand decodes the single byte encodings of common
// constants.
func parseConstantShorthand(_ *SigmaByteReader, op OpCode) (Expr, error) {
	switch op {
	case OpTrue:
		return ConstBool(true), nil
	case OpFalse:
		return ConstBool(false), nil
	case OpUnitConstant:
		return ConstUnit(), nil
	case OpTrivialPropTrue:
		return ConstSigmaProp(sigma.TrivialProp(true)), nil
	case OpTrivialPropFalse:
		return ConstSigmaProp(sigma.TrivialProp(false)), nil
	}
	str := fmt.Sprintf("%v is not a constant shorthand", op)
	return nil, irError(ErrInvalidNode, str)
}

// ByIndex returns the item of a collection at an index, or the default value
// when the index is out of bounds and a default is given.
type ByIndex struct {
	Spanned
	Input   Expr
	Index   Expr
	Default Expr
}

// NewByIndex returns the indexing of input.  def may be nil.
func NewByIndex(input, index, def Expr) (*ByIndex, error) {
	elem, ok := stype.ElemType(input.Tpe())
	if !ok {
		str := fmt.Sprintf("indexing into %v", input.Tpe())
		return nil, irError(ErrInvalidNode, str)
	}
	if !stype.Equal(index.Tpe(), stype.SInt) {
		str := fmt.Sprintf("index of type %v", index.Tpe())
		return nil, irError(ErrInvalidNode, str)
	}
	if def != nil && !stype.Equal(def.Tpe(), elem) {
		str := fmt.Sprintf("default of type %v for %v", def.Tpe(), elem)
		return nil, irError(ErrInvalidNode, str)
	}
	return &ByIndex{Input: input, Index: index, Default: def}, nil
}

// Tpe returns the element type of the collection.
func (n *ByIndex) Tpe() stype.SType {
	elem, _ := stype.ElemType(n.Input.Tpe())
	return elem
}

// OpCode returns OpByIndex.
func (n *ByIndex) OpCode() OpCode { return OpByIndex }

func (n *ByIndex) writeBody(w *SigmaByteWriter) error {
	if err := w.WriteExpr(n.Input); err != nil {
		return err
	}
	if err := w.WriteExpr(n.Index); err != nil {
		return err
	}
	if n.Default == nil {
		w.PutU8(0)
		return nil
	}
	w.PutU8(1)
	return w.WriteExpr(n.Default)
}

func parseByIndex(r *SigmaByteReader, _ OpCode) (Expr, error) {
	input, err := r.ReadExpr()
	if err != nil {
		return nil, err
	}
	index, err := r.ReadExpr()
	if err != nil {
		return nil, err
	}
	flag, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	var def Expr
	if flag != 0 {
		if def, err = r.ReadExpr(); err != nil {
			return nil, err
		}
	}
	return NewByIndex(input, index, def)
}

// ExtractRegisterAs reads register R<RegisterID> of a box as an optional
// value of type ElemTpe.
type ExtractRegisterAs struct {
	Spanned
	Input      Expr
	RegisterID int8
	ElemTpe    stype.SType
}

// NewExtractRegisterAs returns the register access on input, a Box.
func NewExtractRegisterAs(input Expr, id int8,
	elemTpe stype.SType) (*ExtractRegisterAs, error) {

	if !stype.Equal(input.Tpe(), stype.SBox) {
		str := fmt.Sprintf("register access on %v", input.Tpe())
		return nil, irError(ErrInvalidNode, str)
	}
	if id < 0 || id >= MaxRegisters {
		str := fmt.Sprintf("register id %d out of range", id)
		return nil, irError(ErrInvalidNode, str)
	}
	return &ExtractRegisterAs{Input: input, RegisterID: id,
		ElemTpe: elemTpe}, nil
}

// Tpe returns Option[ElemTpe].
func (n *ExtractRegisterAs) Tpe() stype.SType {
	return stype.NewSOption(n.ElemTpe)
}

// OpCode returns OpExtractRegisterAs.
func (n *ExtractRegisterAs) OpCode() OpCode { return OpExtractRegisterAs }

func (n *ExtractRegisterAs) writeBody(w *SigmaByteWriter) error {
	if err := w.WriteExpr(n.Input); err != nil {
		return err
	}
	w.PutByte(byte(n.RegisterID))
	return stype.SerializeType(w.Writer, n.ElemTpe)
}

func parseExtractRegisterAs(r *SigmaByteReader, _ OpCode) (Expr, error) {
	input, err := r.ReadExpr()
	if err != nil {
		return nil, err
	}
	id, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	elemTpe, err := stype.ParseType(r.Reader)
	if err != nil {
		return nil, err
	}
	return NewExtractRegisterAs(input, int8(id), elemTpe)
}

// CreateProveDhTuple builds the Diffie-Hellman tuple statement over four
// group elements.
type CreateProveDhTuple struct {
	Spanned
	G, H, U, V Expr
}

// NewCreateProveDhTuple returns the statement node after checking that all
// four operands are group elements.
func NewCreateProveDhTuple(g, h, u, v Expr) (*CreateProveDhTuple, error) {
	for _, e := range []Expr{g, h, u, v} {
		if !stype.Equal(e.Tpe(), stype.SGroupElement) {
			str := fmt.Sprintf("DH tuple operand of type %v", e.Tpe())
			return nil, irError(ErrInvalidNode, str)
		}
	}
	return &CreateProveDhTuple{G: g, H: h, U: u, V: v}, nil
}

// Tpe returns SigmaProp.
func (n *CreateProveDhTuple) Tpe() stype.SType { return stype.SSigmaProp }

// OpCode returns OpProveDhTuple.
func (n *CreateProveDhTuple) OpCode() OpCode { return OpProveDhTuple }

func (n *CreateProveDhTuple) writeBody(w *SigmaByteWriter) error {
	for _, e := range []Expr{n.G, n.H, n.U, n.V} {
		if err := w.WriteExpr(e); err != nil {
			return err
		}
	}
	return nil
}

func parseCreateProveDhTuple(r *SigmaByteReader, _ OpCode) (Expr, error) {
	var parts [4]Expr
	for i := range parts {
		e, err := r.ReadExpr()
		if err != nil {
			return nil, err
		}
		parts[i] = e
	}
	return NewCreateProveDhTuple(parts[0], parts[1], parts[2], parts[3])
}

// GetVar reads variable VarID of the context extension as an optional value
// of type VarTpe.
type GetVar struct {
	Spanned
	VarID  uint8
	VarTpe stype.SType
}

// Tpe returns Option[VarTpe].
func (n *GetVar) Tpe() stype.SType { return stype.NewSOption(n.VarTpe) }

// OpCode returns OpGetVar.
func (n *GetVar) OpCode() OpCode { return OpGetVar }

func (n *GetVar) writeBody(w *SigmaByteWriter) error {
	w.PutU8(n.VarID)
	return stype.SerializeType(w.Writer, n.VarTpe)
}

func parseGetVar(r *SigmaByteReader, _ OpCode) (Expr, error) {
	id, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	tpe, err := stype.ParseType(r.Reader)
	if err != nil {
		return nil, err
	}
	return &GetVar{VarID: id, VarTpe: tpe}, nil
}

// SigmaConj is the conjunction (OpSigmaAnd) or disjunction (OpSigmaOr) of at
// least two SigmaProp expressions.
type SigmaConj struct {
	Spanned
	Kind  OpCode
	Items []Expr
}

// NewSigmaConj returns the sigma conjunction or disjunction of items.
func NewSigmaConj(kind OpCode, items []Expr) (*SigmaConj, error) {
	if kind != OpSigmaAnd && kind != OpSigmaOr {
		str := fmt.Sprintf("%v is not a sigma connective", kind)
		return nil, irError(ErrInvalidNode, str)
	}
	if len(items) < 2 {
		str := fmt.Sprintf("%v of %d items", kind, len(items))
		return nil, irError(ErrInvalidNode, str)
	}
	for _, item := range items {
		if !stype.Equal(item.Tpe(), stype.SSigmaProp) {
			str := fmt.Sprintf("%v item of type %v", kind, item.Tpe())
			return nil, irError(ErrInvalidNode, str)
		}
	}
	return &SigmaConj{Kind: kind, Items: items}, nil
}

// Tpe returns SigmaProp.
func (n *SigmaConj) Tpe() stype.SType { return stype.SSigmaProp }

// OpCode returns the connective.
func (n *SigmaConj) OpCode() OpCode { return n.Kind }

func (n *SigmaConj) writeBody(w *SigmaByteWriter) error {
	return w.writeExprs(n.Items)
}

func parseSigmaConj(r *SigmaByteReader, op OpCode) (Expr, error) {
	items, err := r.readExprs()
	if err != nil {
		return nil, err
	}
	return NewSigmaConj(op, items)
}

// numericRank orders the numeric types by width.
var numericRank = map[stype.SType]int{
	stype.SByte:   0,
	stype.SShort:  1,
	stype.SInt:    2,
	stype.SLong:   3,
	stype.SBigInt: 4,
}

// NumericCast converts a numeric value to a wider (OpUpcast) or narrower
// (OpDowncast) numeric type.
type NumericCast struct {
	Spanned
	Kind  OpCode
	Input Expr
	Type  stype.SType
}

// NewNumericCast returns the conversion of input to tpe.
func NewNumericCast(kind OpCode, input Expr,
	tpe stype.SType) (*NumericCast, error) {

	fromRank, okFrom := numericRank[input.Tpe()]
	toRank, okTo := numericRank[tpe]
	if !okFrom || !okTo {
		str := fmt.Sprintf("%v from %v to %v", kind, input.Tpe(), tpe)
		return nil, irError(ErrInvalidNode, str)
	}
	widens := toRank >= fromRank
	narrows := toRank <= fromRank
	if (kind != OpUpcast || !widens) && (kind != OpDowncast || !narrows) {
		str := fmt.Sprintf("%v from %v to %v", kind, input.Tpe(), tpe)
		return nil, irError(ErrInvalidNode, str)
	}
	return &NumericCast{Kind: kind, Input: input, Type: tpe}, nil
}

// Tpe returns the target type.
func (n *NumericCast) Tpe() stype.SType { return n.Type }

// OpCode returns the conversion direction.
func (n *NumericCast) OpCode() OpCode { return n.Kind }

func (n *NumericCast) writeBody(w *SigmaByteWriter) error {
	if err := w.WriteExpr(n.Input); err != nil {
		return err
	}
	return stype.SerializeType(w.Writer, n.Type)
}

func parseNumericCast(r *SigmaByteReader, op OpCode) (Expr, error) {
	input, err := r.ReadExpr()
	if err != nil {
		return nil, err
	}
	tpe, err := stype.ParseType(r.Reader)
	if err != nil {
		return nil, err
	}
	return NewNumericCast(op, input, tpe)
}
