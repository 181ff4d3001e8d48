// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"math"
)

// MaxVLQBytes is the maximum number of bytes a 64-bit VLQ may occupy.
const MaxVLQBytes = 10

// Reader decodes values from an in-memory byte slice.
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a reader positioned at the start of b.  The reader does
// not copy b, so b must not be modified while the reader is in use.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Consumed returns a copy of the bytes read since offset from.
func (r *Reader) Consumed(from int) []byte {
	if from < 0 || from > r.pos {
		return nil
	}
	b := make([]byte, r.pos-from)
	copy(b, r.buf[from:r.pos])
	return b
}

// ReadByte reads a single byte.  It satisfies io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		str := fmt.Sprintf("unexpected end of input at offset %d", r.pos)
		return 0, wireError(ErrUnexpectedEOF, str)
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes and returns a copy of them.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		str := fmt.Sprintf("unable to read %d bytes at offset %d, only "+
			"%d remaining", n, r.pos, r.Remaining())
		return nil, wireError(ErrUnexpectedEOF, str)
	}
	b := make([]byte, n)
	copy(b, r.buf[r.pos:r.pos+n])
	r.pos += n
	return b, nil
}

// ReadUvarint reads an unsigned VLQ encoded integer.
func (r *Reader) ReadUvarint() (uint64, error) {
	var result uint64
	for shift := uint(0); shift < 64; shift += 7 {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if shift == 63 && b > 1 {
			break
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
	}
	str := fmt.Sprintf("variable length quantity at offset %d overflows "+
		"64 bits", r.pos)
	return 0, wireError(ErrVLQOverflow, str)
}

func (r *Reader) readBoundedUvarint(max uint64, width string) (uint64, error) {
	v, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if v > max {
		str := fmt.Sprintf("value %d does not fit into %s", v, width)
		return 0, wireError(ErrValueOutOfBounds, str)
	}
	return v, nil
}

// ReadU8 reads a single unencoded byte.
func (r *Reader) ReadU8() (uint8, error) {
	return r.ReadByte()
}

// ReadU16 reads a VLQ encoded integer that must fit into 16 bits.
func (r *Reader) ReadU16() (uint16, error) {
	v, err := r.readBoundedUvarint(math.MaxUint16, "uint16")
	return uint16(v), err
}

// ReadU32 reads a VLQ encoded integer that must fit into 32 bits.
func (r *Reader) ReadU32() (uint32, error) {
	v, err := r.readBoundedUvarint(math.MaxUint32, "uint32")
	return uint32(v), err
}

// ReadU64 reads a VLQ encoded 64-bit integer.
func (r *Reader) ReadU64() (uint64, error) {
	return r.ReadUvarint()
}

// decodeZigZag maps an unsigned ZigZag value back to its signed value.
func decodeZigZag(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

func (r *Reader) readBoundedVarint(min, max int64, width string) (int64, error) {
	u, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}
	v := decodeZigZag(u)
	if v < min || v > max {
		str := fmt.Sprintf("value %d does not fit into %s", v, width)
		return 0, wireError(ErrValueOutOfBounds, str)
	}
	return v, nil
}

// ReadI16 reads a ZigZag VLQ encoded integer that must fit into 16 bits.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.readBoundedVarint(math.MinInt16, math.MaxInt16, "int16")
	return int16(v), err
}

// ReadI32 reads a ZigZag VLQ encoded integer that must fit into 32 bits.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.readBoundedVarint(math.MinInt32, math.MaxInt32, "int32")
	return int32(v), err
}

// ReadI64 reads a ZigZag VLQ encoded 64-bit integer.
func (r *Reader) ReadI64() (int64, error) {
	u, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}
	return decodeZigZag(u), nil
}

// ReadBits reads n bit-packed booleans.
func (r *Reader) ReadBits(n int) ([]bool, error) {
	packed, err := r.ReadBytes((n + 7) / 8)
	if err != nil {
		return nil, err
	}
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = packed[i/8]&(1<<uint(i%8)) != 0
	}
	return bits, nil
}
