// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrUnexpectedEOF indicates the reader ran out of bytes before the
	// requested value was fully read.
	ErrUnexpectedEOF ErrorCode = iota

	// ErrVLQOverflow indicates a variable length quantity encoded more bits
	// than fit into 64 bits.
	ErrVLQOverflow

	// ErrValueOutOfBounds indicates a decoded integer does not fit into the
	// requested integer width.
	ErrValueOutOfBounds

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrUnexpectedEOF:    "ErrUnexpectedEOF",
	ErrVLQOverflow:      "ErrVLQOverflow",
	ErrValueOutOfBounds: "ErrValueOutOfBounds",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a malformed byte stream.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// wireError creates an Error given a set of arguments.
func wireError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}
