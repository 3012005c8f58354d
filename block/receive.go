package block

import (
	"crypto/ed25519"

	"raicore/crypto"
	"raicore/errors"
	"raicore/types"
)

// Receive appends to the receiver's chain, claiming the funds of a send
// block destined for this account.
type Receive struct {
	Previous  types.Hash      `json:"previous"`
	Source    types.Hash      `json:"source"`
	Work      types.Work      `json:"work"`
	Signature types.Signature `json:"signature"`
}

// NewReceive builds and signs a receive block. Work is left zero for the
// proof-of-work collaborator.
func NewReceive(priv ed25519.PrivateKey, previous, source types.Hash) *Receive {
	rc := &Receive{
		Previous: previous,
		Source:   source,
	}
	h := rc.Hash()
	rc.Signature = crypto.Sign(priv, h[:])
	return rc
}

func (rc *Receive) Kind() Kind { return KindReceive }

func (rc *Receive) hashElements() [][]byte {
	return [][]byte{rc.Previous[:], rc.Source[:]}
}

func (rc *Receive) Hash() types.Hash {
	return hashOf(rc.hashElements())
}

func (rc *Receive) Parent() (types.Hash, bool) {
	return rc.Previous, true
}

func (rc *Receive) WorkElement() []byte { return rc.Previous[:] }

func (rc *Receive) WorkValue() types.Work { return rc.Work }

func (rc *Receive) SetWork(w types.Work) { rc.Work = w }

// Verify checks work, the signature resolved from the chain's open block,
// and that the source send is destined for this account and still unspent.
func (rc *Receive) Verify(r Reader) error {
	if err := VerifyWork(rc); err != nil {
		return err
	}
	key, err := rc.verifySig(r)
	if err != nil {
		return err
	}
	return rc.verifySource(r, key)
}

func (rc *Receive) verifySig(r Reader) (types.PubKey, error) {
	open := r.FindOpen(rc.Previous)
	if open == nil {
		return types.PubKey{}, errors.ErrMissing
	}
	h := rc.Hash()
	if !crypto.Verify(open.Account, h[:], rc.Signature) {
		return types.PubKey{}, errors.ErrSignature
	}
	return open.Account, nil
}

func (rc *Receive) verifySource(r Reader, key types.PubKey) error {
	src := r.Lookup(rc.Source)
	if src == nil {
		return errors.ErrMissing
	}
	send, ok := src.(*Send)
	if !ok {
		return errors.ErrInvalid
	}
	if send.Destination != key {
		return errors.ErrInvalid
	}
	if !r.IsUnspent(rc.Source) {
		return errors.ErrReceived
	}
	return nil
}
