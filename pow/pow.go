// Package pow implements the proof-of-work nonce search consumed by block
// producers. The search is probabilistic with no termination bound; the
// expected number of attempts is the inverse of the threshold fraction.
package pow

import (
	"math/rand"

	"raicore/block"
	"raicore/types"
)

// FindWork brute-forces candidate nonces until the block's work digest
// clears the active threshold, then returns the winning nonce. The block is
// not modified.
func FindWork(b block.Block, rng *rand.Rand) types.Work {
	threshold := block.WorkThreshold()
	for {
		candidate := types.Work(rng.Uint64())
		if block.WorkCalculate(b, candidate).ValidAgainst(threshold) {
			return candidate
		}
	}
}

// FillWork finds a valid nonce and installs it on the block
func FillWork(b block.Block, rng *rand.Rand) {
	b.SetWork(FindWork(b, rng))
}
