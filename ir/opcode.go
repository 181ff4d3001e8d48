// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"

	"github.com/btcsuite/ergotree/stype"
)

// OpCode is the leading byte of a serialized expression.  Codes up to
// LastConstantCode start a constant; all larger codes are operators, numbered
// as a shift from LastConstantCode.
type OpCode uint8

// Constant code boundaries.
const (
	// OpCodeConstant is followed by a type and the constant's data.
	OpCodeConstant OpCode = 0

	// FirstDataType and LastDataType delimit the codes of serialized
	// constant types.
	FirstDataType OpCode = 1
	LastDataType  OpCode = OpCode(stype.LastDataType)

	// LastConstantCode is the last code that does not denote an operator.
	LastConstantCode OpCode = LastDataType + 1
)

// Shift returns the distance of c from LastConstantCode.
func (c OpCode) Shift() uint8 {
	return uint8(c - LastConstantCode)
}

// Operator codes.
const (
	OpTaggedVariable      = LastConstantCode + 1
	OpValUse              = LastConstantCode + 2
	OpConstantPlaceholder = LastConstantCode + 3
	OpSubstConstants      = LastConstantCode + 4

	OpLongToByteArray   = LastConstantCode + 10
	OpByteArrayToBigInt = LastConstantCode + 11
	OpByteArrayToLong   = LastConstantCode + 12
	OpDowncast          = LastConstantCode + 13
	OpUpcast            = LastConstantCode + 14

	OpTrue                    = LastConstantCode + 15
	OpFalse                   = LastConstantCode + 16
	OpUnitConstant            = LastConstantCode + 17
	OpGroupGenerator          = LastConstantCode + 18
	OpCollection              = LastConstantCode + 19
	OpCollectionBoolConstants = LastConstantCode + 21
	OpTuple                   = LastConstantCode + 22
	OpSelect1                 = LastConstantCode + 23
	OpSelect2                 = LastConstantCode + 24
	OpSelect3                 = LastConstantCode + 25
	OpSelect4                 = LastConstantCode + 26
	OpSelect5                 = LastConstantCode + 27
	OpSelectField             = LastConstantCode + 28

	OpLt      = LastConstantCode + 31
	OpLe      = LastConstantCode + 32
	OpGt      = LastConstantCode + 33
	OpGe      = LastConstantCode + 34
	OpEq      = LastConstantCode + 35
	OpNeq     = LastConstantCode + 36
	OpIf      = LastConstantCode + 37
	OpAnd     = LastConstantCode + 38
	OpOr      = LastConstantCode + 39
	OpAtLeast = LastConstantCode + 40

	OpMinus         = LastConstantCode + 41
	OpPlus          = LastConstantCode + 42
	OpXor           = LastConstantCode + 43
	OpMultiply      = LastConstantCode + 44
	OpDivision      = LastConstantCode + 45
	OpModulo        = LastConstantCode + 46
	OpExponentiate  = LastConstantCode + 47
	OpMultiplyGroup = LastConstantCode + 48
	OpMin           = LastConstantCode + 49
	OpMax           = LastConstantCode + 50

	OpHeight                = LastConstantCode + 51
	OpInputs                = LastConstantCode + 52
	OpOutputs               = LastConstantCode + 53
	OpLastBlockUtxoRootHash = LastConstantCode + 54
	OpSelf                  = LastConstantCode + 55
	OpMinerPubKey           = LastConstantCode + 60

	OpMap        = LastConstantCode + 61
	OpExists     = LastConstantCode + 62
	OpForAll     = LastConstantCode + 63
	OpFold       = LastConstantCode + 64
	OpSizeOf     = LastConstantCode + 65
	OpByIndex    = LastConstantCode + 66
	OpAppend     = LastConstantCode + 67
	OpSlice      = LastConstantCode + 68
	OpFilter     = LastConstantCode + 69
	OpAvlTree    = LastConstantCode + 70
	OpAvlTreeGet = LastConstantCode + 71
	OpFlatMap    = LastConstantCode + 72

	OpExtractAmount         = LastConstantCode + 81
	OpExtractScriptBytes    = LastConstantCode + 82
	OpExtractBytes          = LastConstantCode + 83
	OpExtractBytesWithNoRef = LastConstantCode + 84
	OpExtractID             = LastConstantCode + 85
	OpExtractRegisterAs     = LastConstantCode + 86
	OpExtractCreationInfo   = LastConstantCode + 87

	OpCalcBlake2b256    = LastConstantCode + 91
	OpCalcSha256        = LastConstantCode + 92
	OpProveDlog         = LastConstantCode + 93
	OpProveDhTuple      = LastConstantCode + 94
	OpSigmaPropIsProven = LastConstantCode + 95
	OpSigmaPropBytes    = LastConstantCode + 96
	OpBoolToSigmaProp   = LastConstantCode + 97
	OpTrivialPropFalse  = LastConstantCode + 98
	OpTrivialPropTrue   = LastConstantCode + 99

	OpDeserializeContext  = LastConstantCode + 100
	OpDeserializeRegister = LastConstantCode + 101
	OpValDef              = LastConstantCode + 102
	OpFunDef              = LastConstantCode + 103
	OpBlockValue          = LastConstantCode + 104
	OpFuncValue           = LastConstantCode + 105
	OpFuncApply           = LastConstantCode + 106
	OpPropertyCall        = LastConstantCode + 107
	OpMethodCall          = LastConstantCode + 108
	OpGlobal              = LastConstantCode + 109
	OpSomeValue           = LastConstantCode + 110
	OpNoneValue           = LastConstantCode + 111

	OpGetVar          = LastConstantCode + 115
	OpOptionGet       = LastConstantCode + 116
	OpOptionGetOrElse = LastConstantCode + 117
	OpOptionIsDefined = LastConstantCode + 118
	OpModQ            = LastConstantCode + 119
	OpPlusModQ        = LastConstantCode + 120
	OpMinusModQ       = LastConstantCode + 121
	OpSigmaAnd        = LastConstantCode + 122
	OpSigmaOr         = LastConstantCode + 123
	OpBinOr           = LastConstantCode + 124
	OpBinAnd          = LastConstantCode + 125
	OpDecodePoint     = LastConstantCode + 126
	OpLogicalNot      = LastConstantCode + 127
	OpNegation        = LastConstantCode + 128
	OpBitInversion    = LastConstantCode + 129
	OpBitOr           = LastConstantCode + 130
	OpBitAnd          = LastConstantCode + 131
	OpBinXor          = LastConstantCode + 132
	OpBitXor          = LastConstantCode + 133

	OpBitShiftRight        = LastConstantCode + 134
	OpBitShiftLeft         = LastConstantCode + 135
	OpBitShiftRightZeroed  = LastConstantCode + 136
	OpCollShiftRight       = LastConstantCode + 137
	OpCollShiftLeft        = LastConstantCode + 138
	OpCollShiftRightZeroed = LastConstantCode + 139
	OpCollRotateLeft       = LastConstantCode + 140
	OpCollRotateRight      = LastConstantCode + 141

	OpContext = LastConstantCode + 142
	OpXorOf   = LastConstantCode + 143
)

// opcodeNames maps operator codes to their names for diagnostics.
var opcodeNames = map[OpCode]string{
	OpTaggedVariable:          "TaggedVariable",
	OpValUse:                  "ValUse",
	OpConstantPlaceholder:     "ConstantPlaceholder",
	OpSubstConstants:          "SubstConstants",
	OpLongToByteArray:         "LongToByteArray",
	OpByteArrayToBigInt:       "ByteArrayToBigInt",
	OpByteArrayToLong:         "ByteArrayToLong",
	OpDowncast:                "Downcast",
	OpUpcast:                  "Upcast",
	OpTrue:                    "True",
	OpFalse:                   "False",
	OpUnitConstant:            "UnitConstant",
	OpGroupGenerator:          "GroupGenerator",
	OpCollection:              "Collection",
	OpCollectionBoolConstants: "CollectionBoolConstants",
	OpTuple:                   "Tuple",
	OpSelect1:                 "Select1",
	OpSelect2:                 "Select2",
	OpSelect3:                 "Select3",
	OpSelect4:                 "Select4",
	OpSelect5:                 "Select5",
	OpSelectField:             "SelectField",
	OpLt:                      "Lt",
	OpLe:                      "Le",
	OpGt:                      "Gt",
	OpGe:                      "Ge",
	OpEq:                      "Eq",
	OpNeq:                     "Neq",
	OpIf:                      "If",
	OpAnd:                     "And",
	OpOr:                      "Or",
	OpAtLeast:                 "AtLeast",
	OpMinus:                   "Minus",
	OpPlus:                    "Plus",
	OpXor:                     "Xor",
	OpMultiply:                "Multiply",
	OpDivision:                "Division",
	OpModulo:                  "Modulo",
	OpExponentiate:            "Exponentiate",
	OpMultiplyGroup:           "MultiplyGroup",
	OpMin:                     "Min",
	OpMax:                     "Max",
	OpHeight:                  "Height",
	OpInputs:                  "Inputs",
	OpOutputs:                 "Outputs",
	OpLastBlockUtxoRootHash:   "LastBlockUtxoRootHash",
	OpSelf:                    "Self",
	OpMinerPubKey:             "MinerPubkey",
	OpMap:                     "MapCollection",
	OpExists:                  "Exists",
	OpForAll:                  "ForAll",
	OpFold:                    "Fold",
	OpSizeOf:                  "SizeOf",
	OpByIndex:                 "ByIndex",
	OpAppend:                  "Append",
	OpSlice:                   "Slice",
	OpFilter:                  "Filter",
	OpAvlTree:                 "AvlTree",
	OpAvlTreeGet:              "AvlTreeGet",
	OpFlatMap:                 "FlatMapCollection",
	OpExtractAmount:           "ExtractAmount",
	OpExtractScriptBytes:      "ExtractScriptBytes",
	OpExtractBytes:            "ExtractBytes",
	OpExtractBytesWithNoRef:   "ExtractBytesWithNoRef",
	OpExtractID:               "ExtractId",
	OpExtractRegisterAs:       "ExtractRegisterAs",
	OpExtractCreationInfo:     "ExtractCreationInfo",
	OpCalcBlake2b256:          "CalcBlake2b256",
	OpCalcSha256:              "CalcSha256",
	OpProveDlog:               "ProveDlog",
	OpProveDhTuple:            "ProveDHTuple",
	OpSigmaPropIsProven:       "SigmaPropIsProven",
	OpSigmaPropBytes:          "SigmaPropBytes",
	OpBoolToSigmaProp:         "BoolToSigmaProp",
	OpTrivialPropFalse:        "TrivialPropFalse",
	OpTrivialPropTrue:         "TrivialPropTrue",
	OpDeserializeContext:      "DeserializeContext",
	OpDeserializeRegister:     "DeserializeRegister",
	OpValDef:                  "ValDef",
	OpFunDef:                  "FunDef",
	OpBlockValue:              "BlockValue",
	OpFuncValue:               "FuncValue",
	OpFuncApply:               "FuncApply",
	OpPropertyCall:            "PropertyCall",
	OpMethodCall:              "MethodCall",
	OpGlobal:                  "Global",
	OpSomeValue:               "SomeValue",
	OpNoneValue:               "NoneValue",
	OpGetVar:                  "GetVar",
	OpOptionGet:               "OptionGet",
	OpOptionGetOrElse:         "OptionGetOrElse",
	OpOptionIsDefined:         "OptionIsDefined",
	OpModQ:                    "ModQ",
	OpPlusModQ:                "PlusModQ",
	OpMinusModQ:               "MinusModQ",
	OpSigmaAnd:                "SigmaAnd",
	OpSigmaOr:                 "SigmaOr",
	OpBinOr:                   "BinOr",
	OpBinAnd:                  "BinAnd",
	OpDecodePoint:             "DecodePoint",
	OpLogicalNot:              "LogicalNot",
	OpNegation:                "Negation",
	OpBitInversion:            "BitInversion",
	OpBitOr:                   "BitOr",
	OpBitAnd:                  "BitAnd",
	OpBinXor:                  "BinXor",
	OpBitXor:                  "BitXor",
	OpBitShiftRight:           "BitShiftRight",
	OpBitShiftLeft:            "BitShiftLeft",
	OpBitShiftRightZeroed:     "BitShiftRightZeroed",
	OpCollShiftRight:          "CollShiftRight",
	OpCollShiftLeft:           "CollShiftLeft",
	OpCollShiftRightZeroed:    "CollShiftRightZeroed",
	OpCollRotateLeft:          "CollRotateLeft",
	OpCollRotateRight:         "CollRotateRight",
	OpContext:                 "Context",
	OpXorOf:                   "XorOf",
}

// String returns the name of the operator, or the constant code for codes
// that start a constant.
func (c OpCode) String() string {
	if c <= LastConstantCode {
		return fmt.Sprintf("Constant(%d)", uint8(c))
	}
	if name, ok := opcodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("OpCode(%d)", uint8(c))
}
