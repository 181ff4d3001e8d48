// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interpreter

import (
	"math"
	"testing"
)

// TestErrorCodeStringer tests the stringized output for the ErrorCode type.
func TestErrorCodeStringer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   ErrorCode
		want string
	}{
		{ErrUnexpectedExpr, "ErrUnexpectedExpr"},
		{ErrUnexpectedValue, "ErrUnexpectedValue"},
		{ErrArithmetic, "ErrArithmetic"},
		{ErrCostLimitExceeded, "ErrCostLimitExceeded"},
		{ErrNotFound, "ErrNotFound"},
		{ErrInvalidResultType, "ErrInvalidResultType"},
		{ErrRegisterRead, "ErrRegisterRead"},
		{ErrInvalidContext, "ErrInvalidContext"},
		{ErrMisc, "ErrMisc"},
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

// TestCostAccumulator tests the limit and saturation of the accumulator.
func TestCostAccumulator(t *testing.T) {
	t.Parallel()

	acc := NewCostAccumulator(10, 100)
	if err := acc.Add(90); err != nil {
		t.Fatalf("Add: unexpected error at the limit: %v", err)
	}
	if err := acc.Add(1); err == nil {
		t.Fatal("Add: expected an error past the limit")
	}

	unlimited := NewCostAccumulator(math.MaxUint64-1, 0)
	if err := unlimited.Add(5); err != nil {
		t.Fatalf("Add: unexpected error without a limit: %v", err)
	}
	if unlimited.Total() != math.MaxUint64 {
		t.Fatalf("Total: got %d, want the saturated maximum",
			unlimited.Total())
	}
}
