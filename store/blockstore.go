package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"raicore/block"
	"raicore/config"
	"raicore/db"
	"raicore/jsonx"
	"raicore/ledger"
	"raicore/logx"
	"raicore/types"
)

// blockRecord is the persisted form of an indexed block: the tagged block
// envelope plus the account balance cached at insertion time.
type blockRecord struct {
	Block   json.RawMessage `json:"block"`
	Balance types.Balance   `json:"balance"`
}

// BlockStore is the persistent storage engine: the same contract as the
// in-memory ledger, backed by a DatabaseProvider. Durability is the only
// difference; verification, balance derivation and the fork check are the
// shared acceptance transaction.
type BlockStore struct {
	mu       sync.RWMutex
	provider db.DatabaseProvider
}

// NewBlockStore opens a block store over the given provider, seeding the
// genesis block if the database is empty.
func NewBlockStore(provider db.DatabaseProvider, gen *config.Genesis) (*BlockStore, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}
	s := &BlockStore{provider: provider}

	open := gen.OpenBlock()
	hash := open.Hash()
	seeded, err := provider.Has(blockKey(hash[:]))
	if err != nil {
		return nil, fmt.Errorf("could not check for genesis block: %w", err)
	}
	if !seeded {
		batch := provider.Batch()
		record, err := encodeRecord(open, gen.Balance)
		if err != nil {
			return nil, err
		}
		batch.Put(blockKey(hash[:]), record)
		batch.Put(headKey(open.Account[:]), hash[:])
		if err := batch.Write(); err != nil {
			return nil, fmt.Errorf("could not seed genesis block: %w", err)
		}
		logx.Info("BLOCKSTORE", fmt.Sprintf("Seeded genesis block %s for account %s", hash, open.Account))
	}
	return s, nil
}

// MustClose closes the underlying provider
func (s *BlockStore) MustClose() {
	if err := s.provider.Close(); err != nil {
		logx.Error("BLOCKSTORE", "Failed to close db provider:", err.Error())
	}
}

func encodeRecord(b block.Block, balance types.Balance) ([]byte, error) {
	blockData, err := block.Marshal(b)
	if err != nil {
		return nil, err
	}
	record, err := jsonx.Marshal(blockRecord{Block: blockData, Balance: balance})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal block record: %w", err)
	}
	return record, nil
}

// storeView reads provider state without taking the store mutex. Insert
// holds the write lock across verification and commit and hands this view
// to the shared acceptance transaction. Read failures from the provider are
// logged and surface as misses; the acceptance checks then reject the block
// rather than commit against unknown state.
type storeView struct {
	s *BlockStore
}

func (v storeView) record(hash types.Hash) *blockRecord {
	data, err := v.s.provider.Get(blockKey(hash[:]))
	if err != nil {
		logx.Error("BLOCKSTORE", fmt.Sprintf("Failed to read block %s: %v", hash, err))
		return nil
	}
	if data == nil {
		return nil
	}
	var record blockRecord
	if err := jsonx.Unmarshal(data, &record); err != nil {
		logx.Error("BLOCKSTORE", fmt.Sprintf("Failed to decode block record %s: %v", hash, err))
		return nil
	}
	return &record
}

func (v storeView) Lookup(hash types.Hash) block.Block {
	record := v.record(hash)
	if record == nil {
		return nil
	}
	b, err := block.Unmarshal(record.Block)
	if err != nil {
		logx.Error("BLOCKSTORE", fmt.Sprintf("Failed to decode block %s: %v", hash, err))
		return nil
	}
	return b
}

func (v storeView) FindHead(account types.PubKey) (types.Hash, bool) {
	data, err := v.s.provider.Get(headKey(account[:]))
	if err != nil {
		logx.Error("BLOCKSTORE", fmt.Sprintf("Failed to read head of %s: %v", account, err))
		return types.Hash{}, false
	}
	if len(data) != types.HashSize {
		return types.Hash{}, false
	}
	var hash types.Hash
	copy(hash[:], data)
	return hash, true
}

func (v storeView) FindOpen(hash types.Hash) *block.Open {
	return ledger.WalkToOpen(v.Lookup, hash)
}

func (v storeView) FindKey(hash types.Hash) (types.PubKey, bool) {
	open := v.FindOpen(hash)
	if open == nil {
		return types.PubKey{}, false
	}
	return open.Account, true
}

func (v storeView) FindBalance(hash types.Hash) (types.Balance, bool) {
	record := v.record(hash)
	if record == nil {
		return types.Balance{}, false
	}
	return record.Balance, true
}

func (v storeView) IsUnspent(hash types.Hash) bool {
	found, err := v.s.provider.Has(unspentKey(hash[:]))
	if err != nil {
		logx.Error("BLOCKSTORE", fmt.Sprintf("Failed to check unspent %s: %v", hash, err))
		return false
	}
	return found
}

// Lookup returns the block with the given hash, or nil
func (s *BlockStore) Lookup(hash types.Hash) block.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeView{s}.Lookup(hash)
}

// FindHead returns the current chain tip of an account
func (s *BlockStore) FindHead(account types.PubKey) (types.Hash, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeView{s}.FindHead(account)
}

// FindOpen walks previous links from any block to its chain's open root
func (s *BlockStore) FindOpen(hash types.Hash) *block.Open {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeView{s}.FindOpen(hash)
}

// FindKey resolves the key that signs the chain containing hash
func (s *BlockStore) FindKey(hash types.Hash) (types.PubKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeView{s}.FindKey(hash)
}

// FindBalance returns the cached balance immediately after the given block
func (s *BlockStore) FindBalance(hash types.Hash) (types.Balance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeView{s}.FindBalance(hash)
}

// IsUnspent reports whether the given send hash has not yet been received
func (s *BlockStore) IsUnspent(hash types.Hash) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeView{s}.IsUnspent(hash)
}

// Insert runs the shared acceptance transaction and commits the state delta
// in one provider batch, so a crash between writes cannot leave a partial
// insert behind.
func (s *BlockStore) Insert(b block.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := ledger.Plan(storeView{s}, b)
	if err != nil {
		logx.Debug("BLOCKSTORE", fmt.Sprintf("Rejected %s block %s: %v", b.Kind(), b.Hash(), err))
		return err
	}

	record, err := encodeRecord(c.Block, c.Balance)
	if err != nil {
		return err
	}
	batch := s.provider.Batch()
	batch.Put(blockKey(c.Hash[:]), record)
	batch.Put(headKey(c.Owner[:]), c.Hash[:])
	if c.AddUnspent {
		batch.Put(unspentKey(c.Hash[:]), []byte{1})
	}
	if c.HasSpend {
		batch.Delete(unspentKey(c.Spend[:]))
	}
	if err := batch.Write(); err != nil {
		return fmt.Errorf("failed to commit block %s: %w", c.Hash, err)
	}
	logx.Info("BLOCKSTORE", fmt.Sprintf("Inserted %s block %s for account %s", c.Block.Kind(), c.Hash, c.Owner))
	return nil
}

var _ ledger.Store = (*BlockStore)(nil)
