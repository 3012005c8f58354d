package block

import (
	"crypto/ed25519"

	"raicore/crypto"
	"raicore/errors"
	"raicore/types"
)

// Change appends to the chain, switching the account's voting
// representative without moving funds.
type Change struct {
	Previous       types.Hash      `json:"previous"`
	Representative types.PubKey    `json:"representative"`
	Work           types.Work      `json:"work"`
	Signature      types.Signature `json:"signature"`
}

// NewChange builds and signs a change block. Work is left zero for the
// proof-of-work collaborator.
func NewChange(priv ed25519.PrivateKey, previous types.Hash, representative types.PubKey) *Change {
	c := &Change{
		Previous:       previous,
		Representative: representative,
	}
	h := c.Hash()
	c.Signature = crypto.Sign(priv, h[:])
	return c
}

func (c *Change) Kind() Kind { return KindChange }

func (c *Change) hashElements() [][]byte {
	return [][]byte{c.Previous[:], c.Representative[:]}
}

func (c *Change) Hash() types.Hash {
	return hashOf(c.hashElements())
}

func (c *Change) Parent() (types.Hash, bool) {
	return c.Previous, true
}

func (c *Change) WorkElement() []byte { return c.Previous[:] }

func (c *Change) WorkValue() types.Work { return c.Work }

func (c *Change) SetWork(w types.Work) { c.Work = w }

// Verify checks the signature resolved from the chain's open block, then work
func (c *Change) Verify(r Reader) error {
	if err := c.verifySig(r); err != nil {
		return err
	}
	return VerifyWork(c)
}

func (c *Change) verifySig(r Reader) error {
	open := r.FindOpen(c.Previous)
	if open == nil {
		return errors.ErrMissing
	}
	h := c.Hash()
	if !crypto.Verify(open.Account, h[:], c.Signature) {
		return errors.ErrSignature
	}
	return nil
}
