package ledger

import (
	"raicore/block"
	"raicore/errors"
	"raicore/logx"
	"raicore/types"
)

// maxChainWalk bounds the previous-link walk in WalkToOpen. Every valid
// chain terminates at an open block; hitting the cap means the ledger state
// is corrupt, and the walk reports failure instead of hanging.
const maxChainWalk = 1 << 22

// WalkToOpen follows previous links from any block in a chain to its open
// root. A nil result means the start hash is unknown or the chain has no
// terminus, which only occurs on a corrupt ledger.
func WalkToOpen(lookup func(types.Hash) block.Block, start types.Hash) *block.Open {
	hash := start
	for i := 0; i < maxChainWalk; i++ {
		b := lookup(hash)
		if b == nil {
			return nil
		}
		if open, ok := b.(*block.Open); ok {
			return open
		}
		hash, _ = b.Parent()
	}
	logx.Error("LEDGER", "chain walk exceeded cap at ", start, "; ledger state is corrupt")
	return nil
}

// Commit is the state delta produced by a successful acceptance check,
// applied atomically by a Store implementation.
type Commit struct {
	Hash    types.Hash
	Block   block.Block
	Balance types.Balance
	Owner   types.PubKey

	// Parent is the hash the owner's head must equal at commit time; for an
	// open block HasParent is false and the account must have no head.
	Parent    types.Hash
	HasParent bool

	// Spend is the source send consumed by an open or receive block
	Spend    types.Hash
	HasSpend bool

	// AddUnspent marks the block itself as an unspent send
	AddUnspent bool
}

// Plan runs the acceptance transaction up to the commit point: duplicate
// check, block verification, balance and ownership derivation, and the fork
// check against the owner's current head. The caller applies the returned
// Commit atomically under the same lock it passed the Reader from.
func Plan(r block.Reader, b block.Block) (*Commit, error) {
	hash := b.Hash()
	if r.Lookup(hash) != nil {
		return nil, errors.ErrDuplicate
	}
	if err := b.Verify(r); err != nil {
		return nil, err
	}

	c := &Commit{Hash: hash, Block: b}
	switch v := b.(type) {
	case *block.Open:
		amount, err := transferredAmount(r, v.Source)
		if err != nil {
			return nil, err
		}
		c.Balance = amount
		c.Owner = v.Account
		c.Spend = v.Source
		c.HasSpend = true
	case *block.Receive:
		amount, err := transferredAmount(r, v.Source)
		if err != nil {
			return nil, err
		}
		prevBalance, ok := r.FindBalance(v.Previous)
		if !ok {
			return nil, errors.ErrUnreachable
		}
		balance, ok := prevBalance.Add(amount)
		if !ok {
			return nil, errors.ErrUnreachable
		}
		key, ok := r.FindKey(v.Previous)
		if !ok {
			return nil, errors.ErrUnreachable
		}
		c.Balance = balance
		c.Owner = key
		c.Parent = v.Previous
		c.HasParent = true
		c.Spend = v.Source
		c.HasSpend = true
	case *block.Send:
		key, ok := r.FindKey(v.Previous)
		if !ok {
			return nil, errors.ErrUnreachable
		}
		c.Balance = v.Balance
		c.Owner = key
		c.Parent = v.Previous
		c.HasParent = true
		c.AddUnspent = true
	case *block.Change:
		balance, ok := r.FindBalance(v.Previous)
		if !ok {
			return nil, errors.ErrUnreachable
		}
		key, ok := r.FindKey(v.Previous)
		if !ok {
			return nil, errors.ErrUnreachable
		}
		c.Balance = balance
		c.Owner = key
		c.Parent = v.Previous
		c.HasParent = true
	default:
		return nil, errors.NewError(errors.ErrCodeUnreachable, "unknown block variant")
	}

	// Sole fork-prevention mechanism: the owner's head must equal the
	// required parent at commit time, guaranteeing one successor per head.
	head, hasHead := r.FindHead(c.Owner)
	if hasHead != c.HasParent || (hasHead && head != c.Parent) {
		return nil, errors.ErrFork
	}
	return c, nil
}

// transferredAmount derives the value moved by the send at source: the
// sender's balance before the send minus the declared balance after it.
func transferredAmount(r block.Reader, source types.Hash) (types.Balance, error) {
	post, ok := r.FindBalance(source)
	if !ok {
		return types.Balance{}, errors.ErrUnreachable
	}
	src := r.Lookup(source)
	if src == nil {
		return types.Balance{}, errors.ErrUnreachable
	}
	send, ok := src.(*block.Send)
	if !ok {
		return types.Balance{}, errors.ErrInvalid
	}
	pre, ok := r.FindBalance(send.Previous)
	if !ok {
		return types.Balance{}, errors.ErrUnreachable
	}
	amount, ok := pre.Sub(post)
	if !ok {
		// a send recording more funds after than before can only come from
		// corrupt historical state
		return types.Balance{}, errors.ErrUnreachable
	}
	return amount, nil
}
