// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package sigmaprotocol proves and verifies sigma statements non-interactively.

A Prover holds secrets and produces a proof that it can satisfy a
SigmaBoolean.  The interactive protocol is turned into a signature with the
Fiat-Shamir transform: the challenge of the root is the first 24 bytes of the
blake2b-256 digest of the proof tree and the message being signed.

Conjectures are handled by simulation.  Children of an OR that the prover
cannot prove honestly get random challenges and simulated transcripts, and
the remaining child takes the challenge that makes all of them add up to the
challenge of the parent.  THRESHOLD children share the challenge of their
parent through a polynomial over GF(2^192) whose value at zero is that
challenge.

Proof format

A proof is the root challenge followed by the tree in depth-first order.  A
leaf carries its 32-byte response.  The challenges of the children of an OR
are written for all but the last child, whose challenge is implied.  A
THRESHOLD carries the coefficients of its polynomial above the constant.  AND
children carry nothing besides their own subtrees.  Commitments are never
sent; the verifier recomputes them from the challenges and responses.

A Verifier may be given a ProofCache, in which case signatures that verified
once are accepted again without the group operations.
*/
package sigmaprotocol
