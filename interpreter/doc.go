// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package interpreter implements the evaluation of ErgoTree expressions.

Eval walks an expression tree and computes its value in a Context, which holds
the box being spent, the boxes of the spending transaction, the current height
and the context extension supplied by the prover.  Every node is charged its
cost before it is evaluated, and evaluation stops with ErrCostLimitExceeded as
soon as the total passes the limit of the context.

ReduceToCrypto is the entry point used to validate a spend: it evaluates the
proposition of a script to the SigmaBoolean statement that must be proven.

Errors

Evaluation errors are of type Error.  On the way out of the tree they are
wrapped in a SpannedError carrying the source span of the innermost failing
node.  ReduceToCrypto additionally prints the script once on failure and
returns a SpannedWithSourceError whose message shows the failing source:

	evaluation error at 1:1: Division by zero

	   1 | HEIGHT / 0
	     | ^^^^^^^^^^

Use errors.As to recover the underlying Error and its ErrorCode.
*/
package interpreter
