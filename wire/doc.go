// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package wire implements the low level byte encoding shared by ErgoTree scripts,
constants and sigma propositions.

Integers are written as variable length quantities (VLQ): seven bits per byte,
least significant group first, with the high bit of every byte except the last
set.  Signed integers are ZigZag mapped before the VLQ step so that values of
small magnitude stay short regardless of sign.

	value   zigzag  bytes
	0       0       00
	-1      1       01
	1       2       02
	-64     127     7f
	64      128     80 01

Collections of booleans are bit-packed, least significant bit first, into
ceil(n/8) bytes.

Readers never panic on malformed input.  Every failure is an Error carrying an
ErrorCode so callers can tell truncated input from overflowing values.
*/
package wire
