package ledger

import (
	"fmt"
	"sync"

	"raicore/block"
	"raicore/config"
	"raicore/logx"
	"raicore/types"
)

// Store is the full storage engine contract: the read view consulted during
// verification plus the atomic insert transaction. Ledger is the in-memory
// implementation; store.BlockStore is the persistent one.
type Store interface {
	block.Reader
	Insert(b block.Block) error
}

type entry struct {
	blk     block.Block
	balance types.Balance
}

// Ledger is the in-memory storage engine: a hash index of blocks with their
// cached resulting balances, the per-account heads, and the unspent send
// set. All three evolve only through Insert and the genesis seed.
type Ledger struct {
	mu      sync.RWMutex
	blocks  map[types.Hash]entry
	heads   map[types.PubKey]types.Hash
	unspent map[types.Hash]struct{}
}

// NewLedger creates a ledger seeded with the given genesis. The genesis open
// block bypasses verification; it has no real predecessor to check against.
func NewLedger(gen *config.Genesis) *Ledger {
	l := &Ledger{
		blocks:  make(map[types.Hash]entry),
		heads:   make(map[types.PubKey]types.Hash),
		unspent: make(map[types.Hash]struct{}),
	}
	open := gen.OpenBlock()
	hash := open.Hash()
	l.blocks[hash] = entry{blk: open, balance: gen.Balance}
	l.heads[open.Account] = hash
	logx.Info("LEDGER", fmt.Sprintf("Seeded genesis block %s for account %s", hash, open.Account))
	return l
}

// ledgerView exposes the engine state without locking. Insert holds the
// write lock across verification and commit, so the view it hands to Plan
// must not re-acquire the mutex.
type ledgerView struct {
	l *Ledger
}

func (v ledgerView) Lookup(hash types.Hash) block.Block {
	if e, ok := v.l.blocks[hash]; ok {
		return e.blk
	}
	return nil
}

func (v ledgerView) FindHead(account types.PubKey) (types.Hash, bool) {
	hash, ok := v.l.heads[account]
	return hash, ok
}

func (v ledgerView) FindOpen(hash types.Hash) *block.Open {
	return WalkToOpen(v.Lookup, hash)
}

func (v ledgerView) FindKey(hash types.Hash) (types.PubKey, bool) {
	open := v.FindOpen(hash)
	if open == nil {
		return types.PubKey{}, false
	}
	return open.Account, true
}

func (v ledgerView) FindBalance(hash types.Hash) (types.Balance, bool) {
	if e, ok := v.l.blocks[hash]; ok {
		return e.balance, true
	}
	return types.Balance{}, false
}

func (v ledgerView) IsUnspent(hash types.Hash) bool {
	_, ok := v.l.unspent[hash]
	return ok
}

// Lookup returns the block with the given hash, or nil
func (l *Ledger) Lookup(hash types.Hash) block.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return ledgerView{l}.Lookup(hash)
}

// FindHead returns the current chain tip of an account
func (l *Ledger) FindHead(account types.PubKey) (types.Hash, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return ledgerView{l}.FindHead(account)
}

// FindOpen walks previous links from any block to its chain's open root
func (l *Ledger) FindOpen(hash types.Hash) *block.Open {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return ledgerView{l}.FindOpen(hash)
}

// FindKey resolves the key that signs the chain containing hash
func (l *Ledger) FindKey(hash types.Hash) (types.PubKey, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return ledgerView{l}.FindKey(hash)
}

// FindBalance returns the cached balance immediately after the given block
func (l *Ledger) FindBalance(hash types.Hash) (types.Balance, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return ledgerView{l}.FindBalance(hash)
}

// IsUnspent reports whether the given send hash has not yet been received
func (l *Ledger) IsUnspent(hash types.Hash) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return ledgerView{l}.IsUnspent(hash)
}

// Insert runs the atomic acceptance transaction: verify the block, derive
// its resulting balance and owner, check the fork invariant against the
// owner's head, and commit. No partial state is observable on failure, and
// no other insert can interleave between the fork check and the commit.
func (l *Ledger) Insert(b block.Block) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := Plan(ledgerView{l}, b)
	if err != nil {
		logx.Debug("LEDGER", fmt.Sprintf("Rejected %s block %s: %v", b.Kind(), b.Hash(), err))
		return err
	}

	l.blocks[c.Hash] = entry{blk: c.Block, balance: c.Balance}
	l.heads[c.Owner] = c.Hash
	if c.AddUnspent {
		l.unspent[c.Hash] = struct{}{}
	}
	if c.HasSpend {
		delete(l.unspent, c.Spend)
	}
	logx.Info("LEDGER", fmt.Sprintf("Inserted %s block %s for account %s", c.Block.Kind(), c.Hash, c.Owner))
	return nil
}
