// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/ergotree/ir"
)

// ErrorCode identifies a kind of evaluation error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrUnexpectedExpr indicates a node that cannot be evaluated, such as
	// an unresolved constant placeholder.
	ErrUnexpectedExpr ErrorCode = iota

	// ErrUnexpectedValue indicates an operand of the wrong type or an
	// invalid value such as undecodable point bytes.
	ErrUnexpectedValue

	// ErrArithmetic indicates an overflow, a division or modulo by zero or
	// a BigInt outside of the 256-bit range.
	ErrArithmetic

	// ErrCostLimitExceeded indicates that the accumulated cost went past
	// the limit of the context.
	ErrCostLimitExceeded

	// ErrNotFound indicates a missing value, such as get on an empty option
	// or an index out of bounds.
	ErrNotFound

	// ErrInvalidResultType indicates a script that does not reduce to a
	// Boolean or a SigmaProp.
	ErrInvalidResultType

	// ErrRegisterRead indicates a register whose content does not have the
	// requested type.
	ErrRegisterRead

	// ErrInvalidContext indicates a context with too few or too many
	// boxes.
	ErrInvalidContext

	// ErrMisc indicates any other failure.
	ErrMisc

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrUnexpectedExpr:    "ErrUnexpectedExpr",
	ErrUnexpectedValue:   "ErrUnexpectedValue",
	ErrArithmetic:        "ErrArithmetic",
	ErrCostLimitExceeded: "ErrCostLimitExceeded",
	ErrNotFound:          "ErrNotFound",
	ErrInvalidResultType: "ErrInvalidResultType",
	ErrRegisterRead:      "ErrRegisterRead",
	ErrInvalidContext:    "ErrInvalidContext",
	ErrMisc:              "ErrMisc",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a failed evaluation.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// evalError creates an Error given a set of arguments.
func evalError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// SpannedError is an evaluation error tagged with the source span of the
// innermost node that failed.
type SpannedError struct {
	Err  error
	Span ir.SourceSpan
}

// Error satisfies the error interface.
func (e *SpannedError) Error() string {
	return fmt.Sprintf("%v (at offset %d)", e.Err, e.Span.Offset)
}

// Unwrap returns the underlying error.
func (e *SpannedError) Unwrap() error {
	return e.Err
}

// SpannedWithSourceError is a SpannedError together with the pretty printed
// source the span refers to.  Its message shows the failing source lines
// with the failing node underlined.
type SpannedWithSourceError struct {
	Err    error
	Span   ir.SourceSpan
	Source string
}

// Unwrap returns the underlying error.
func (e *SpannedWithSourceError) Unwrap() error {
	return e.Err
}

// lineCol returns the 1-based line and column of offset in src.
func lineCol(src string, offset int) (int, int) {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndex(before, "\n")
	return line, col
}

// Error satisfies the error interface.  The message has the form:
//
//	evaluation error at 1:1: Division by zero
//
//	   1 | HEIGHT / 0
//	     | ^^^^^^^^^^
func (e *SpannedWithSourceError) Error() string {
	lines := strings.Split(e.Source, "\n")
	first, firstCol := lineCol(e.Source, e.Span.Offset)
	end := e.Span.Offset + e.Span.Length
	last, lastCol := lineCol(e.Source, end)
	if e.Span.Length > 0 && lastCol == 1 && last > first {
		last--
		lastCol = len(lines[last-1]) + 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "evaluation error at %d:%d: %v\n\n", first, firstCol,
		e.Err)
	if first > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", first-1, lines[first-2])
	}
	for line := first; line <= last; line++ {
		text := lines[line-1]
		fmt.Fprintf(&b, "%4d | %s\n", line, text)

		from, to := 1, len(text)+1
		if line == first {
			from = firstCol
		}
		if line == last {
			to = lastCol
		}
		width := to - from
		if width < 1 {
			width = 1
		}
		fmt.Fprintf(&b, "     | %s%s\n", strings.Repeat(" ", from-1),
			strings.Repeat("^", width))
	}
	if last < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", last+1, lines[last])
	}
	return b.String()
}

// enrich tags err with span unless it already carries the span of a node
// deeper in the tree.
func enrich(err error, span ir.SourceSpan) error {
	var spanned *SpannedError
	if errors.As(err, &spanned) {
		return err
	}
	return &SpannedError{Err: err, Span: span}
}

// withSource attaches the printed source to a spanned error.  Errors without a
// span are returned unchanged.
func withSource(err error, source string) error {
	var spanned *SpannedError
	if !errors.As(err, &spanned) {
		return err
	}
	return &SpannedWithSourceError{
		Err:    spanned.Err,
		Span:   spanned.Span,
		Source: source,
	}
}
