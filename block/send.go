package block

import (
	"crypto/ed25519"

	"raicore/crypto"
	"raicore/errors"
	"raicore/types"
)

// Send appends to the sender's chain. Balance is the resulting balance of
// the sender's account after this send, not the amount transferred.
type Send struct {
	Previous    types.Hash      `json:"previous"`
	Balance     types.Balance   `json:"balance"`
	Destination types.PubKey    `json:"destination"`
	Work        types.Work      `json:"work"`
	Signature   types.Signature `json:"signature"`
}

// NewSend builds and signs a send block. Work is left zero for the
// proof-of-work collaborator.
func NewSend(priv ed25519.PrivateKey, previous types.Hash, balance types.Balance, destination types.PubKey) *Send {
	s := &Send{
		Previous:    previous,
		Balance:     balance,
		Destination: destination,
	}
	h := s.Hash()
	s.Signature = crypto.Sign(priv, h[:])
	return s
}

func (s *Send) Kind() Kind { return KindSend }

func (s *Send) hashElements() [][]byte {
	bal := s.Balance.Bytes16()
	return [][]byte{s.Previous[:], s.Destination[:], bal[:]}
}

func (s *Send) Hash() types.Hash {
	return hashOf(s.hashElements())
}

func (s *Send) Parent() (types.Hash, bool) {
	return s.Previous, true
}

func (s *Send) WorkElement() []byte { return s.Previous[:] }

func (s *Send) WorkValue() types.Work { return s.Work }

func (s *Send) SetWork(w types.Work) { s.Work = w }

// Verify checks work, the signature resolved from the chain's open block,
// and that the declared balance does not exceed the funds at previous.
func (s *Send) Verify(r Reader) error {
	if err := VerifyWork(s); err != nil {
		return err
	}
	if _, err := s.verifySig(r); err != nil {
		return err
	}
	return s.verifyBalance(r)
}

func (s *Send) verifySig(r Reader) (types.PubKey, error) {
	open := r.FindOpen(s.Previous)
	if open == nil {
		return types.PubKey{}, errors.ErrMissing
	}
	h := s.Hash()
	if !crypto.Verify(open.Account, h[:], s.Signature) {
		return types.PubKey{}, errors.ErrSignature
	}
	return open.Account, nil
}

func (s *Send) verifyBalance(r Reader) error {
	available, ok := r.FindBalance(s.Previous)
	if !ok {
		return errors.ErrUnreachable
	}
	if s.Balance.Cmp(available) > 0 {
		return errors.ErrOverSend
	}
	return nil
}

// TransfersNothing reports whether this send moves no value, i.e. the
// declared balance equals the balance at previous. Reserved for stricter
// enforcement; insert does not reject these.
func (s *Send) TransfersNothing(r Reader) bool {
	available, ok := r.FindBalance(s.Previous)
	if !ok {
		return false
	}
	amount, ok := available.Sub(s.Balance)
	return ok && amount.IsZero()
}
