// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stype

import (
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrUnifyMismatch indicates two types are structurally different and
	// no substitution can make them equal.
	ErrUnifyMismatch ErrorCode = iota

	// ErrUnifyListLength indicates two type lists of different lengths were
	// unified pairwise.
	ErrUnifyListLength

	// ErrUnifyConflict indicates a type variable received two different
	// bindings while merging substitutions.
	ErrUnifyConflict

	// ErrInvalidTypeCode indicates a serialized type used a code that does
	// not describe any type.
	ErrInvalidTypeCode

	// ErrTupleArity indicates a tuple with fewer than 2 or more than 255
	// items.
	ErrTupleArity

	// ErrNotSerializable indicates a type that has no wire encoding, such
	// as a function type or a free type variable.
	ErrNotSerializable

	// ErrMethodNotFound indicates an unknown companion type or method id.
	ErrMethodNotFound

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrUnifyMismatch:   "ErrUnifyMismatch",
	ErrUnifyListLength: "ErrUnifyListLength",
	ErrUnifyConflict:   "ErrUnifyConflict",
	ErrInvalidTypeCode: "ErrInvalidTypeCode",
	ErrTupleArity:      "ErrTupleArity",
	ErrNotSerializable: "ErrNotSerializable",
	ErrMethodNotFound:  "ErrMethodNotFound",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a type level violation.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// typeError creates an Error given a set of arguments.
func typeError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}
