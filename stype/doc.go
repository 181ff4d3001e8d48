// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package stype implements the static type system of ErgoTree.

Every expression has exactly one type that can be computed without evaluating
it.  Types are serialized with a compact scheme in which a type constructor
applied to one of the eight embeddable types (Boolean through SigmaProp)
occupies a single byte.

Unify computes the substitution that instantiates the type variables of a
generic signature, such as the methods of the companion tables, for concrete
argument types.
*/
package stype
