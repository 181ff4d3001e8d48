// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigma

import (
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrInvalidPoint indicates bytes that do not encode a point on the
	// secp256k1 curve.
	ErrInvalidPoint ErrorCode = iota

	// ErrInvalidSigmaBoolean indicates a malformed serialized sigma
	// proposition.
	ErrInvalidSigmaBoolean

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidPoint:        "ErrInvalidPoint",
	ErrInvalidSigmaBoolean: "ErrInvalidSigmaBoolean",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a malformed group element or proposition.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// sigmaError creates an Error given a set of arguments.
func sigmaError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}
