// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stype

import (
	"fmt"
)

// MethodID identifies a method within its companion type.
type MethodID uint8

// SMethod describes a method callable on values of a companion type.  The
// first element of Tpe.Dom is always the receiver type.
type SMethod struct {
	TypeCode TypeCode
	MethodID MethodID
	Name     string
	Tpe      *SFunc
}

// SpecializeFor returns a copy of m whose signature has its type variables
// replaced by the types found when unifying the declared domain with the actual
// receiver and argument types.
func (m *SMethod) SpecializeFor(objTpe SType, args []SType) (*SMethod, error) {
	actual := append([]SType{objTpe}, args...)
	subst, err := UnifyMany(m.Tpe.Dom, actual)
	if err != nil {
		return nil, err
	}
	specialized := *m
	specialized.Tpe = subst.Apply(m.Tpe).(*SFunc)
	return &specialized, nil
}

// TypeCompanion is the table of methods defined for one type.
type TypeCompanion struct {
	TypeCode TypeCode
	Name     string
	Methods  []*SMethod
}

// MethodByID returns the method with the given id.
func (c *TypeCompanion) MethodByID(id MethodID) (*SMethod, bool) {
	for _, m := range c.Methods {
		if m.MethodID == id {
			return m, true
		}
	}
	return nil, false
}

// MethodByName returns the method with the given name.
func (c *TypeCompanion) MethodByName(name string) (*SMethod, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// companions holds every companion table.  It is populated once by init and
// read only afterwards.
var companions = make(map[TypeCode]*TypeCompanion)

// CompanionByTypeCode returns the companion registered for code.
func CompanionByTypeCode(code TypeCode) (*TypeCompanion, error) {
	c, ok := companions[code]
	if !ok {
		str := fmt.Sprintf("no companion type for type code %d", code)
		return nil, typeError(ErrMethodNotFound, str)
	}
	return c, nil
}

// MethodByID returns the method id of the companion registered for code.
func MethodByID(code TypeCode, id MethodID) (*SMethod, error) {
	c, err := CompanionByTypeCode(code)
	if err != nil {
		return nil, err
	}
	m, ok := c.MethodByID(id)
	if !ok {
		str := fmt.Sprintf("no method with id %d in %s", id, c.Name)
		return nil, typeError(ErrMethodNotFound, str)
	}
	return m, nil
}

// MustMethod is like MethodByID but panics when the method does not exist.
// It is meant for static method references.
func MustMethod(code TypeCode, id MethodID) *SMethod {
	m, err := MethodByID(code, id)
	if err != nil {
		panic(err)
	}
	return m
}

// Method ids of the companion tables.
const (
	MethodCollSize      MethodID = 1
	MethodCollGetOrElse MethodID = 2
	MethodCollIndices   MethodID = 14

	MethodOptionIsDefined MethodID = 2
	MethodOptionGet       MethodID = 3
	MethodOptionGetOrElse MethodID = 4

	MethodGroupGetEncoded MethodID = 2
	MethodGroupExp        MethodID = 3
	MethodGroupMultiply   MethodID = 4
	MethodGroupNegate     MethodID = 5

	MethodBoxValue            MethodID = 1
	MethodBoxPropositionBytes MethodID = 2
	MethodBoxBytes            MethodID = 3
	MethodBoxBytesWithoutRef  MethodID = 4
	MethodBoxID               MethodID = 5
	MethodBoxCreationInfo     MethodID = 6
	MethodBoxTokens           MethodID = 8

	MethodContextDataInputs   MethodID = 1
	MethodContextInputs       MethodID = 4
	MethodContextOutputs      MethodID = 5
	MethodContextHeight       MethodID = 6
	MethodContextSelf         MethodID = 7
	MethodContextSelfBoxIndex MethodID = 8
	MethodContextMinerPubKey  MethodID = 10

	MethodGlobalGroupGenerator MethodID = 1
	MethodGlobalXor            MethodID = 2
)

func fn(dom []SType, rng SType, params ...STypeVar) *SFunc {
	return &SFunc{Dom: dom, Range: rng, TypeParams: params}
}

func register(code TypeCode, name string, methods ...*SMethod) {
	for _, m := range methods {
		m.TypeCode = code
	}
	companions[code] = &TypeCompanion{
		TypeCode: code,
		Name:     name,
		Methods:  methods,
	}
}

func init() {
	t := TypeVarT
	collT := NewSColl(t)
	optT := NewSOption(t)
	bytes := NewSColl(SByte)

	register(TypeCodeColl, "Coll",
		&SMethod{MethodID: MethodCollSize, Name: "size",
			Tpe: fn([]SType{collT}, SInt, t)},
		&SMethod{MethodID: MethodCollGetOrElse, Name: "getOrElse",
			Tpe: fn([]SType{collT, SInt, t}, t, t)},
		&SMethod{MethodID: MethodCollIndices, Name: "indices",
			Tpe: fn([]SType{collT}, NewSColl(SInt), t)},
	)

	register(TypeCodeOption, "Option",
		&SMethod{MethodID: MethodOptionIsDefined, Name: "isDefined",
			Tpe: fn([]SType{optT}, SBoolean, t)},
		&SMethod{MethodID: MethodOptionGet, Name: "get",
			Tpe: fn([]SType{optT}, t, t)},
		&SMethod{MethodID: MethodOptionGetOrElse, Name: "getOrElse",
			Tpe: fn([]SType{optT, t}, t, t)},
	)

	register(TypeCodeGroupElement, "GroupElement",
		&SMethod{MethodID: MethodGroupGetEncoded, Name: "getEncoded",
			Tpe: fn([]SType{SGroupElement}, bytes)},
		&SMethod{MethodID: MethodGroupExp, Name: "exp",
			Tpe: fn([]SType{SGroupElement, SBigInt}, SGroupElement)},
		&SMethod{MethodID: MethodGroupMultiply, Name: "multiply",
			Tpe: fn([]SType{SGroupElement, SGroupElement}, SGroupElement)},
		&SMethod{MethodID: MethodGroupNegate, Name: "negate",
			Tpe: fn([]SType{SGroupElement}, SGroupElement)},
	)

	register(TypeCodeBox, "Box",
		&SMethod{MethodID: MethodBoxValue, Name: "value",
			Tpe: fn([]SType{SBox}, SLong)},
		&SMethod{MethodID: MethodBoxPropositionBytes, Name: "propositionBytes",
			Tpe: fn([]SType{SBox}, bytes)},
		&SMethod{MethodID: MethodBoxBytes, Name: "bytes",
			Tpe: fn([]SType{SBox}, bytes)},
		&SMethod{MethodID: MethodBoxBytesWithoutRef, Name: "bytesWithoutRef",
			Tpe: fn([]SType{SBox}, bytes)},
		&SMethod{MethodID: MethodBoxID, Name: "id",
			Tpe: fn([]SType{SBox}, bytes)},
		&SMethod{MethodID: MethodBoxCreationInfo, Name: "creationInfo",
			Tpe: fn([]SType{SBox}, Pair(SInt, bytes))},
		&SMethod{MethodID: MethodBoxTokens, Name: "tokens",
			Tpe: fn([]SType{SBox}, NewSColl(Pair(bytes, SLong)))},
	)

	register(TypeCodeContext, "Context",
		&SMethod{MethodID: MethodContextDataInputs, Name: "dataInputs",
			Tpe: fn([]SType{SContext}, NewSColl(SBox))},
		&SMethod{MethodID: MethodContextInputs, Name: "INPUTS",
			Tpe: fn([]SType{SContext}, NewSColl(SBox))},
		&SMethod{MethodID: MethodContextOutputs, Name: "OUTPUTS",
			Tpe: fn([]SType{SContext}, NewSColl(SBox))},
		&SMethod{MethodID: MethodContextHeight, Name: "HEIGHT",
			Tpe: fn([]SType{SContext}, SInt)},
		&SMethod{MethodID: MethodContextSelf, Name: "SELF",
			Tpe: fn([]SType{SContext}, SBox)},
		&SMethod{MethodID: MethodContextSelfBoxIndex, Name: "selfBoxIndex",
			Tpe: fn([]SType{SContext}, SInt)},
		&SMethod{MethodID: MethodContextMinerPubKey, Name: "minerPubKey",
			Tpe: fn([]SType{SContext}, bytes)},
	)

	register(TypeCodeGlobal, "Global",
		&SMethod{MethodID: MethodGlobalGroupGenerator, Name: "groupGenerator",
			Tpe: fn([]SType{SGlobal}, SGroupElement)},
		&SMethod{MethodID: MethodGlobalXor, Name: "xor",
			Tpe: fn([]SType{SGlobal, bytes, bytes}, bytes)},
	)
}
