// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package sigma defines the statements proven by ErgoTree sigma protocols.

A SigmaBoolean is a tree whose leaves are knowledge of a discrete logarithm
(ProveDlog) or of a Diffie-Hellman tuple (ProveDhTuple) over the secp256k1
group, composed with AND, OR and k-of-n THRESHOLD conjectures.  Evaluating a
script reduces it to such a statement; TrivialProp covers scripts whose
outcome does not depend on any secret.

The group is written multiplicatively throughout, so EcPoint.Add is the group
operation and EcPoint.Exp is exponentiation.
*/
package sigma
