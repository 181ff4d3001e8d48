// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/btcsuite/ergotree/stype"
	"github.com/btcsuite/ergotree/wire"
	"golang.org/x/crypto/blake2b"
)

// DigestSize is the size of box and transaction identifiers.
const DigestSize = 32

// Digest32 is a 32-byte identifier such as a box, token or transaction id.
type Digest32 [DigestSize]byte

// String returns the identifier as hex.
func (d Digest32) String() string {
	return hex.EncodeToString(d[:])
}

// Blake2b256 returns the blake2b-256 digest of b.
func Blake2b256(b []byte) Digest32 {
	return Digest32(blake2b.Sum256(b))
}

// Token is an amount of the token with the given id held by a box.
type Token struct {
	ID     Digest32
	Amount uint64
}

// Register ids.  R0 through R3 are derived from the box fields; R4 through
// R9 are the additional registers.
const (
	RegValue          = 0
	RegScript         = 1
	RegTokens         = 2
	RegCreationInfo   = 3
	FirstNonMandatory = 4
	MaxRegisters      = 10

	// MaxAdditionalRegisters is the number of registers R4..R9.
	MaxAdditionalRegisters = MaxRegisters - FirstNonMandatory

	// MaxTokens is the largest number of tokens a box may hold.
	MaxTokens = math.MaxUint8
)

// Box is an unspent output, the unit of state guarded by an ErgoTree.
type Box struct {
	Value          uint64
	ErgoTree       *ErgoTree
	Tokens         []Token
	Registers      []*Constant
	CreationHeight uint32
	TransactionID  Digest32
	Index          uint16
}

// NewBox returns a box after validating its value fits a Long, its token and
// register counts and the encodability of its registers.
func NewBox(value uint64, tree *ErgoTree, tokens []Token, registers []*Constant,
	creationHeight uint32, txID Digest32, index uint16) (*Box, error) {

	if value > math.MaxInt64 {
		str := fmt.Sprintf("box value %d overflows Long", value)
		return nil, irError(ErrBoundsExceeded, str)
	}
	b := &Box{
		Value:          value,
		ErgoTree:       tree,
		Tokens:         tokens,
		Registers:      registers,
		CreationHeight: creationHeight,
		TransactionID:  txID,
		Index:          index,
	}
	if _, err := b.Bytes(); err != nil {
		return nil, err
	}
	return b, nil
}

// Bytes returns the encoding of the box including its transaction reference.
func (b *Box) Bytes() ([]byte, error) {
	w := wire.NewWriter()
	if err := b.write(w, true); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// BytesWithoutRef returns the encoding of the box without the transaction id
// and output index.
func (b *Box) BytesWithoutRef() ([]byte, error) {
	w := wire.NewWriter()
	if err := b.write(w, false); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// ID returns the identifier of the box, the blake2b-256 digest of its bytes.
func (b *Box) ID() (Digest32, error) {
	raw, err := b.Bytes()
	if err != nil {
		return Digest32{}, err
	}
	return Blake2b256(raw), nil
}

// ScriptBytes returns the serialized ErgoTree of the box.
func (b *Box) ScriptBytes() []byte {
	if b.ErgoTree == nil {
		return nil
	}
	return b.ErgoTree.Bytes()
}

// CreationInfo returns the creation height and the transaction id followed by
// the big-endian output index.
func (b *Box) CreationInfo() Tup {
	ref := make([]byte, DigestSize+2)
	copy(ref, b.TransactionID[:])
	binary.BigEndian.PutUint16(ref[DigestSize:], b.Index)
	return Tup{Int(int32(b.CreationHeight)), BytesColl(ref)}
}

// tokenType is the type of the tokens register.
var tokenType = stype.Pair(stype.NewSColl(stype.SByte), stype.SLong)

// TokensValue returns the tokens as a Coll[(Coll[Byte], Long)].
func (b *Box) TokensValue() Coll {
	items := make([]Value, len(b.Tokens))
	for i, t := range b.Tokens {
		items[i] = Tup{BytesColl(t.ID[:]), Long(int64(t.Amount))}
	}
	return Coll{Elem: tokenType, Items: items}
}

// Register returns the content of register R<id>, or false when the register
// is empty or id is out of range.
func (b *Box) Register(id int) (*Constant, bool) {
	switch id {
	case RegValue:
		return ConstLong(int64(b.Value)), true

	case RegScript:
		return ConstBytes(b.ScriptBytes()), true

	case RegTokens:
		v := b.TokensValue()
		return &Constant{Type: stype.NewSColl(tokenType), V: v}, true

	case RegCreationInfo:
		tpe := stype.Pair(stype.SInt, stype.NewSColl(stype.SByte))
		return &Constant{Type: tpe, V: b.CreationInfo()}, true
	}
	idx := id - FirstNonMandatory
	if idx < 0 || idx >= len(b.Registers) {
		return nil, false
	}
	return b.Registers[idx], true
}

func (b *Box) write(w *wire.Writer, withRef bool) error {
	if b.ErgoTree == nil {
		return irError(ErrInvalidNode, "box without an ErgoTree")
	}
	if len(b.Tokens) > MaxTokens {
		str := fmt.Sprintf("box with %d tokens", len(b.Tokens))
		return irError(ErrBoundsExceeded, str)
	}
	if len(b.Registers) > MaxAdditionalRegisters {
		str := fmt.Sprintf("box with %d additional registers",
			len(b.Registers))
		return irError(ErrBoundsExceeded, str)
	}

	w.PutU64(b.Value)
	w.PutBytes(b.ErgoTree.Bytes())
	w.PutU32(b.CreationHeight)
	w.PutU8(uint8(len(b.Tokens)))
	for _, t := range b.Tokens {
		w.PutBytes(t.ID[:])
		w.PutU64(t.Amount)
	}
	w.PutU8(uint8(len(b.Registers)))
	for i, c := range b.Registers {
		if c == nil {
			str := fmt.Sprintf("register R%d is empty",
				i+FirstNonMandatory)
			return irError(ErrInvalidNode, str)
		}
		if err := stype.SerializeType(w, c.Type); err != nil {
			return err
		}
		if err := SerializeData(w, c.Type, c.V); err != nil {
			return err
		}
	}
	if withRef {
		w.PutBytes(b.TransactionID[:])
		w.PutU16(b.Index)
	}
	return nil
}

func readDigest(r *wire.Reader) (Digest32, error) {
	var d Digest32
	b, err := r.ReadBytes(DigestSize)
	if err != nil {
		return d, err
	}
	copy(d[:], b)
	return d, nil
}

func readBox(r *wire.Reader, withRef bool) (*Box, error) {
	var b Box
	var err error
	if b.Value, err = r.ReadU64(); err != nil {
		return nil, err
	}
	if b.ErgoTree, err = readErgoTree(r); err != nil {
		return nil, err
	}
	if b.CreationHeight, err = r.ReadU32(); err != nil {
		return nil, err
	}

	numTokens, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if numTokens > 0 {
		b.Tokens = make([]Token, numTokens)
	}
	for i := range b.Tokens {
		if b.Tokens[i].ID, err = readDigest(r); err != nil {
			return nil, err
		}
		if b.Tokens[i].Amount, err = r.ReadU64(); err != nil {
			return nil, err
		}
	}

	numRegs, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if int(numRegs) > MaxAdditionalRegisters {
		str := fmt.Sprintf("box with %d additional registers", numRegs)
		return nil, irError(ErrBoundsExceeded, str)
	}
	for i := 0; i < int(numRegs); i++ {
		tpe, err := stype.ParseType(r)
		if err != nil {
			return nil, err
		}
		v, err := ParseData(r, tpe)
		if err != nil {
			return nil, err
		}
		b.Registers = append(b.Registers, &Constant{Type: tpe, V: v})
	}

	if withRef {
		if b.TransactionID, err = readDigest(r); err != nil {
			return nil, err
		}
		if b.Index, err = r.ReadU16(); err != nil {
			return nil, err
		}
	}
	return &b, nil
}

// ParseBox decodes a box with its transaction reference.
func ParseBox(raw []byte) (*Box, error) {
	r := wire.NewReader(raw)
	b, err := readBox(r, true)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		str := fmt.Sprintf("%d trailing bytes after box", r.Remaining())
		return nil, irError(ErrInvalidNode, str)
	}
	return b, nil
}
