package block

import (
	"raicore/crypto"
	"raicore/types"
)

// Kind tags the four block variants of the lattice
type Kind uint8

const (
	KindOpen Kind = iota
	KindSend
	KindReceive
	KindChange
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindSend:
		return "send"
	case KindReceive:
		return "receive"
	case KindChange:
		return "change"
	}
	return "unknown"
}

// Reader is the view of the ledger a block consults during verification.
// Implementations must resolve cross-chain references: a block on one
// account's chain may reference a block on another account's chain.
type Reader interface {
	// Lookup returns the block with the given hash, or nil
	Lookup(hash types.Hash) Block
	// FindHead returns the most recent block hash of an account's chain
	FindHead(account types.PubKey) (types.Hash, bool)
	// FindOpen walks previous links from any block to its chain's open root
	FindOpen(hash types.Hash) *Open
	// FindKey resolves the key that signs the chain containing hash
	FindKey(hash types.Hash) (types.PubKey, bool)
	// FindBalance returns the account balance immediately after the given block
	FindBalance(hash types.Hash) (types.Balance, bool)
	// IsUnspent reports whether the given send hash has not yet been received
	IsUnspent(hash types.Hash) bool
}

// Block is one signed, work-gated entry of an account chain. The four
// variants are sealed in this package; a tagged-variant switch over Kind is
// the intended dispatch.
type Block interface {
	Kind() Kind
	// Hash derives the canonical identifier from the variant's semantic
	// fields. Work and Signature are never part of it.
	Hash() types.Hash
	// Parent returns the previous hash; ok is false for open blocks
	Parent() (types.Hash, bool)
	WorkValue() types.Work
	// WorkElement is the block-identifying field mixed into the work digest
	WorkElement() []byte
	// SetWork installs a nonce found by the proof-of-work collaborator
	SetWork(w types.Work)
	// Verify runs the variant's acceptance checks against the ledger view
	Verify(r Reader) error

	hashElements() [][]byte
}

// hashOf derives the canonical 32-byte block hash shared by all variants
func hashOf(elements [][]byte) types.Hash {
	sum, err := crypto.Digest(types.HashSize, elements...)
	if err != nil {
		// blake2b accepts any size in 1..64; 32 cannot fail
		panic(err)
	}
	var h types.Hash
	copy(h[:], sum)
	return h
}
