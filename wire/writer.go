// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
)

// Writer encodes values into a growing in-memory buffer.  Writes to the
// buffer cannot fail, so the Put methods do not return errors.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded bytes.  The slice aliases the writer's buffer
// until the next write.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteByte writes a single byte.  It satisfies io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	return w.buf.WriteByte(b)
}

// Write satisfies io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// PutByte writes a single byte.
func (w *Writer) PutByte(b byte) {
	w.buf.WriteByte(b)
}

// PutBytes writes b verbatim.
func (w *Writer) PutBytes(b []byte) {
	w.buf.Write(b)
}

// PutUvarint writes v as an unsigned VLQ.
func (w *Writer) PutUvarint(v uint64) {
	for v >= 0x80 {
		w.buf.WriteByte(byte(v) | 0x80)
		v >>= 7
	}
	w.buf.WriteByte(byte(v))
}

// PutU8 writes v as a single unencoded byte.
func (w *Writer) PutU8(v uint8) { w.buf.WriteByte(v) }

// PutU16 writes v as an unsigned VLQ.
func (w *Writer) PutU16(v uint16) { w.PutUvarint(uint64(v)) }

// PutU32 writes v as an unsigned VLQ.
func (w *Writer) PutU32(v uint32) { w.PutUvarint(uint64(v)) }

// PutU64 writes v as an unsigned VLQ.
func (w *Writer) PutU64(v uint64) { w.PutUvarint(v) }

// encodeZigZag maps signed integers onto unsigned integers so that numbers
// with a small absolute value have a small encoding.
func encodeZigZag(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// PutI16 writes v as a ZigZag VLQ.
func (w *Writer) PutI16(v int16) { w.PutUvarint(encodeZigZag(int64(v))) }

// PutI32 writes v as a ZigZag VLQ.
func (w *Writer) PutI32(v int32) { w.PutUvarint(encodeZigZag(int64(v))) }

// PutI64 writes v as a ZigZag VLQ.
func (w *Writer) PutI64(v int64) { w.PutUvarint(encodeZigZag(v)) }

// PutBits writes bits packed eight to a byte, least significant bit first.
func (w *Writer) PutBits(bits []bool) {
	packed := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit {
			packed[i/8] |= 1 << uint(i%8)
		}
	}
	w.buf.Write(packed)
}
