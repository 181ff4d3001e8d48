// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigmaprotocol

import (
	"fmt"
)

// ErrorCode identifies a kind of proving or verification error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrSigParsing indicates a proof that is too short for the statement
	// it is parsed against or holds an out of range response.
	ErrSigParsing ErrorCode = iota

	// ErrTreeShape indicates a statement or proof tree with a node that
	// cannot take part in a proof, such as a trivial proposition nested in
	// a conjecture.
	ErrTreeShape

	// ErrFiatShamir indicates a tree that cannot be serialized for the
	// Fiat-Shamir hash, for instance a leaf without a commitment.
	ErrFiatShamir

	// ErrProverNoRealRoot indicates that the secrets known to the prover
	// are not enough to prove the statement.
	ErrProverNoRealRoot

	// ErrProverMissingSecret indicates a leaf marked real whose secret is
	// not known to the prover.
	ErrProverMissingSecret

	// ErrReduction indicates a script whose proposition could not be
	// extracted for reduction.
	ErrReduction

	// ErrInvalidSecret indicates an encoded secret of the wrong size or
	// equal to zero modulo the group order.
	ErrInvalidSecret

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrSigParsing:          "ErrSigParsing",
	ErrTreeShape:           "ErrTreeShape",
	ErrFiatShamir:          "ErrFiatShamir",
	ErrProverNoRealRoot:    "ErrProverNoRealRoot",
	ErrProverMissingSecret: "ErrProverMissingSecret",
	ErrReduction:           "ErrReduction",
	ErrInvalidSecret:       "ErrInvalidSecret",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a proof that could not be produced or checked.  A proof
// that is well formed but wrong is not an error; verification reports it as
// a false result.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// proofError creates an Error given a set of arguments.
func proofError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}
