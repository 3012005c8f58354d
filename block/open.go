package block

import (
	"crypto/ed25519"

	"raicore/crypto"
	"raicore/errors"
	"raicore/types"
)

// Open is the first block of an account's chain. Source must reference a
// send block whose destination is the new account.
type Open struct {
	Account        types.PubKey    `json:"account"`
	Source         types.Hash      `json:"source"`
	Representative types.PubKey    `json:"representative"`
	Work           types.Work      `json:"work"`
	Signature      types.Signature `json:"signature"`
}

// NewOpen builds and signs an open block for the account owning priv. A nil
// representative defaults to the account itself. Work is left zero for the
// proof-of-work collaborator.
func NewOpen(priv ed25519.PrivateKey, source types.Hash, representative *types.PubKey) *Open {
	account := crypto.PublicKey(priv)
	rep := account
	if representative != nil {
		rep = *representative
	}
	o := &Open{
		Account:        account,
		Source:         source,
		Representative: rep,
	}
	h := o.Hash()
	o.Signature = crypto.Sign(priv, h[:])
	return o
}

func (o *Open) Kind() Kind { return KindOpen }

func (o *Open) hashElements() [][]byte {
	return [][]byte{o.Source[:], o.Representative[:], o.Account[:]}
}

func (o *Open) Hash() types.Hash {
	return hashOf(o.hashElements())
}

func (o *Open) Parent() (types.Hash, bool) {
	return types.Hash{}, false
}

func (o *Open) WorkElement() []byte { return o.Account[:] }

func (o *Open) WorkValue() types.Work { return o.Work }

func (o *Open) SetWork(w types.Work) { o.Work = w }

// Verify checks the open block: the account key is self-certifying for its
// own open, then work, then the source send.
func (o *Open) Verify(r Reader) error {
	if err := o.verifySig(); err != nil {
		return err
	}
	if err := VerifyWork(o); err != nil {
		return err
	}
	return o.verifySource(r)
}

func (o *Open) verifySig() error {
	h := o.Hash()
	if !crypto.Verify(o.Account, h[:], o.Signature) {
		return errors.ErrSignature
	}
	return nil
}

func (o *Open) verifySource(r Reader) error {
	src := r.Lookup(o.Source)
	if src == nil {
		return errors.ErrMissing
	}
	send, ok := src.(*Send)
	if !ok {
		return errors.ErrInvalid
	}
	if send.Destination != o.Account {
		return errors.ErrInvalid
	}
	if !r.IsUnspent(o.Source) {
		return errors.ErrReceived
	}
	return nil
}
