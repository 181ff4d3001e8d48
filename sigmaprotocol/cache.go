// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sigmaprotocol

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/ergotree/sigma"
	"github.com/decred/dcrd/lru"
)

// defaultProofCacheSize is the number of entries of a proof cache created
// with a zero size.
const defaultProofCacheSize = 1000

// ProofCache remembers signatures that verified successfully, so that checking
// the same signature again skips the group operations.  Entries are evicted
// least recently used first.  It is safe for concurrent use.
type ProofCache struct {
	cache lru.Cache
}

// NewProofCache returns a cache holding up to maxEntries verified proofs.
func NewProofCache(maxEntries uint) *ProofCache {
	if maxEntries == 0 {
		maxEntries = defaultProofCacheSize
	}
	return &ProofCache{
		cache: lru.NewCache(maxEntries),
	}
}

// proofKey identifies the verification of proof for sb and message.
func proofKey(sb sigma.SigmaBoolean, message, proof []byte) chainhash.Hash {
	prop := sigma.Bytes(sb)
	b := make([]byte, 0, len(prop)+8+len(message)+len(proof))
	b = append(b, prop...)
	b = binary.BigEndian.AppendUint32(b, uint32(len(message)))
	b = append(b, message...)
	b = binary.BigEndian.AppendUint32(b, uint32(len(proof)))
	b = append(b, proof...)
	return chainhash.HashH(b)
}

// Contains reports whether proof was found valid for sb and message.
func (c *ProofCache) Contains(sb sigma.SigmaBoolean, message, proof []byte) bool {
	return c.cache.Contains(proofKey(sb, message, proof))
}

// Add records that proof is valid for sb and message.
func (c *ProofCache) Add(sb sigma.SigmaBoolean, message, proof []byte) {
	c.cache.Add(proofKey(sb, message, proof))
}

// Delete forgets the proof.
func (c *ProofCache) Delete(sb sigma.SigmaBoolean, message, proof []byte) {
	c.cache.Delete(proofKey(sb, message, proof))
}
