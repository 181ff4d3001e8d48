// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// TestUvarintWire tests encoding and decoding of unsigned VLQ values.
func TestUvarintWire(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in  uint64 // Value to encode
		buf []byte // Wire encoding
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		// Max single byte
		{0x7f, []byte{0x7f}},
		// Min 2-byte
		{0x80, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		// Max 2-byte
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x80, 0x80, 0x01}},
		{math.MaxUint32, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		{
			math.MaxUint64,
			[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
		},
	}

	for i, test := range tests {
		w := NewWriter()
		w.PutUvarint(test.in)
		if !bytes.Equal(w.Bytes(), test.buf) {
			t.Errorf("PutUvarint #%d\n got: %s want: %s", i,
				spew.Sdump(w.Bytes()), spew.Sdump(test.buf))
			continue
		}

		r := NewReader(test.buf)
		val, err := r.ReadUvarint()
		if err != nil {
			t.Errorf("ReadUvarint #%d error %v", i, err)
			continue
		}
		if val != test.in {
			t.Errorf("ReadUvarint #%d\n got: %d want: %d", i, val,
				test.in)
			continue
		}
		require.Zero(t, r.Remaining())
	}
}

// TestZigZagWire tests encoding and decoding of signed values.
func TestZigZagWire(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in  int64
		buf []byte
	}{
		{0, []byte{0x00}},
		{-1, []byte{0x01}},
		{1, []byte{0x02}},
		{-64, []byte{0x7f}},
		{64, []byte{0x80, 0x01}},
		{math.MaxInt32, []byte{0xfe, 0xff, 0xff, 0xff, 0x0f}},
		{math.MinInt32, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		{
			math.MinInt64,
			[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
		},
	}

	for _, test := range tests {
		w := NewWriter()
		w.PutI64(test.in)
		require.Equal(t, test.buf, w.Bytes(), "value %d", test.in)

		v, err := NewReader(test.buf).ReadI64()
		require.NoError(t, err)
		require.Equal(t, test.in, v)
	}
}

// TestBoundedReads ensures narrow reads reject values that do not fit.
func TestBoundedReads(t *testing.T) {
	t.Parallel()

	w := NewWriter()
	w.PutUvarint(math.MaxUint16 + 1)
	_, err := NewReader(w.Bytes()).ReadU16()
	var werr Error
	require.True(t, errors.As(err, &werr))
	require.Equal(t, ErrValueOutOfBounds, werr.ErrorCode)

	w = NewWriter()
	w.PutI32(math.MinInt16 - 1)
	_, err = NewReader(w.Bytes()).ReadI16()
	require.True(t, errors.As(err, &werr))
	require.Equal(t, ErrValueOutOfBounds, werr.ErrorCode)

	w = NewWriter()
	w.PutI16(math.MinInt16)
	v, err := NewReader(w.Bytes()).ReadI16()
	require.NoError(t, err)
	require.Equal(t, int16(math.MinInt16), v)
}

// TestReadErrors performs negative tests against truncated and overflowing
// input.
func TestReadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  []byte
		code ErrorCode
	}{{
		name: "empty",
		buf:  nil,
		code: ErrUnexpectedEOF,
	}, {
		name: "dangling continuation",
		buf:  []byte{0x80},
		code: ErrUnexpectedEOF,
	}, {
		name: "eleven bytes",
		buf: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
			0xff, 0x81, 0x01},
		code: ErrVLQOverflow,
	}, {
		name: "tenth byte too large",
		buf: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
			0xff, 0x02},
		code: ErrVLQOverflow,
	}}

	for _, test := range tests {
		_, err := NewReader(test.buf).ReadUvarint()
		var werr Error
		if !errors.As(err, &werr) {
			t.Errorf("%s: unexpected error %v", test.name, err)
			continue
		}
		if werr.ErrorCode != test.code {
			t.Errorf("%s: got code %v, want %v", test.name,
				werr.ErrorCode, test.code)
		}
	}

	_, err := NewReader([]byte{1, 2}).ReadBytes(3)
	require.Error(t, err)
}

// TestBitsWire tests the bit-packed boolean encoding.
func TestBitsWire(t *testing.T) {
	t.Parallel()

	bits := []bool{true, false, true, true, false, false, false, false, true}
	w := NewWriter()
	w.PutBits(bits)
	require.Equal(t, []byte{0x0d, 0x01}, w.Bytes())

	got, err := NewReader(w.Bytes()).ReadBits(len(bits))
	require.NoError(t, err)
	require.Equal(t, bits, got)
}

// TestErrorCodeStringer tests the stringized output for the ErrorCode type.
func TestErrorCodeStringer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   ErrorCode
		want string
	}{
		{ErrUnexpectedEOF, "ErrUnexpectedEOF"},
		{ErrVLQOverflow, "ErrVLQOverflow"},
		{ErrValueOutOfBounds, "ErrValueOutOfBounds"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	// Detect additional error codes that don't have the stringer added.
	if len(tests)-1 != int(numErrorCodes) {
		t.Errorf("It appears an error code was added without adding an " +
			"associated stringer test")
	}

	for i, test := range tests {
		result := test.in.String()
		if result != test.want {
			t.Errorf("String #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}
}
