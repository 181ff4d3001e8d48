// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrNotImplementedOpCode indicates an operator code without a parser.
	ErrNotImplementedOpCode ErrorCode = iota

	// ErrPlaceholderNotFound indicates a constant placeholder whose index is
	// missing from the constant store.
	ErrPlaceholderNotFound

	// ErrInvalidNode indicates a node built from arguments of the wrong
	// type or shape.
	ErrInvalidNode

	// ErrBoundsExceeded indicates a collection, tuple or integer that is
	// larger than the format permits.
	ErrBoundsExceeded

	// ErrInvalidHeader indicates an ErgoTree header with unknown flags or
	// an inconsistent size.
	ErrInvalidHeader

	// ErrNotSerializable indicates a value or node with no wire encoding.
	ErrNotSerializable

	// ErrValDefNotFound indicates a reference to a value definition that
	// is not in scope.
	ErrValDefNotFound

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrNotImplementedOpCode: "ErrNotImplementedOpCode",
	ErrPlaceholderNotFound:  "ErrPlaceholderNotFound",
	ErrInvalidNode:          "ErrInvalidNode",
	ErrBoundsExceeded:       "ErrBoundsExceeded",
	ErrInvalidHeader:        "ErrInvalidHeader",
	ErrNotSerializable:      "ErrNotSerializable",
	ErrValDefNotFound:       "ErrValDefNotFound",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a malformed script or an ill-typed expression.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// irError creates an Error given a set of arguments.
func irError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// NotImplementedError is returned when parsing reaches an operator code that
// has no parser.  It carries the raw code and its shift from
// LastConstantCode.
type NotImplementedError struct {
	Code OpCode
}

// Error satisfies the error interface.
func (e NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented op code %d (shift %d)", e.Code,
		e.Code.Shift())
}

// Unwrap returns the equivalent Error so callers can match on
// ErrNotImplementedOpCode.
func (e NotImplementedError) Unwrap() error {
	return irError(ErrNotImplementedOpCode, e.Error())
}
