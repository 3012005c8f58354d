package block

import (
	"sync/atomic"

	"raicore/crypto"
	"raicore/errors"
	"raicore/types"
)

// workThreshold is the active admission threshold. It defaults to the
// protocol constant and may be overridden from config at startup (test
// networks run with a much cheaper threshold).
var workThreshold atomic.Uint64

func init() {
	workThreshold.Store(types.DefaultWorkThreshold)
}

// WorkThreshold returns the active proof-of-work threshold
func WorkThreshold() uint64 {
	return workThreshold.Load()
}

// SetWorkThreshold overrides the active threshold. Intended for
// configuration at startup, before any block is verified.
func SetWorkThreshold(threshold uint64) {
	workThreshold.Store(threshold)
}

// WorkCalculate digests candidate||work_element to an 8-byte work hash.
// The element binds the nonce to one specific block, so a nonce cannot be
// reused across blocks.
func WorkCalculate(b Block, candidate types.Work) types.WorkHash {
	wb := candidate.Bytes8()
	sum, err := crypto.Digest(types.WorkHashSize, wb[:], b.WorkElement())
	if err != nil {
		panic(err)
	}
	var wh types.WorkHash
	copy(wh[:], sum)
	return wh
}

// WorkValidate digests the block's stored nonce
func WorkValidate(b Block) types.WorkHash {
	return WorkCalculate(b, b.WorkValue())
}

// VerifyWork fails with a Work error unless the block's stored nonce clears
// the active threshold
func VerifyWork(b Block) error {
	if WorkValidate(b).ValidAgainst(workThreshold.Load()) {
		return nil
	}
	return errors.ErrWork
}
