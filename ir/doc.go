// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package ir implements the typed expression tree of ErgoTree along with its
binary serialization.

Expressions

Every node implements Expr and knows its static type and operator code.  Nodes
are built through constructors such as NewBinOp and NewIf which reject
ill-typed arguments, so a tree obtained from this package is always well
typed.  Operators that differ only in their operator code and typing rule,
such as the arithmetic and comparison operators, share the UnaryOp and BinOp
nodes.

Serialization

An expression is written as its operator code followed by the body of the
node.  Constants are the exception: their leading byte is the code of their
type, which never collides with an operator code since operator codes start
after LastConstantCode.

	b, err := ir.SerializeExpr(expr)
	...
	expr, err := ir.ParseExpr(b)

An ErgoTree wraps a root expression with a header.  When the header carries
HeaderConstantSegregationFlag every constant of the root is moved into a table
ahead of the root and replaced with a ConstantPlaceholder.  Proposition
returns the root with the placeholders resolved.

Boxes

Box models an unspent output with its value, guarding ErgoTree, tokens and
registers.  Its identifier is the blake2b-256 digest of its encoding.

Printing

Print renders an expression in ErgoScript syntax and returns a copy of the
tree whose nodes carry their span in the rendered text, which lets evaluation
errors point at the failing part of the source.
*/
package ir
