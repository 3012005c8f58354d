package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"raicore/common"
	"raicore/crypto"
	"raicore/types"
)

// Wallet holds an account keypair. The address is the base58 form of the
// public key; the ledger itself only ever sees the raw key.
type Wallet struct {
	PrivateKey ed25519.PrivateKey
	PublicKey  types.PubKey
	Address    string
}

// NewWallet generates a new account keypair
func NewWallet() (*Wallet, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return FromPrivateKey(priv), nil
}

// FromSeed derives a wallet deterministically from a 32-byte seed
func FromSeed(seed []byte) (*Wallet, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return FromPrivateKey(ed25519.NewKeyFromSeed(seed)), nil
}

// FromPrivateKey wraps an existing private key
func FromPrivateKey(priv ed25519.PrivateKey) *Wallet {
	pub := crypto.PublicKey(priv)
	return &Wallet{
		PrivateKey: priv,
		PublicKey:  pub,
		Address:    common.EncodeBytesToBase58(pub[:]),
	}
}

// LoadPrivateKey loads an ed25519 private key from a file (expects hex encoding)
func LoadPrivateKey(path string) (*Wallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key, err := hex.DecodeString(string(data))
	if err != nil {
		return nil, fmt.Errorf("private key file is not hex: %w", err)
	}
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(key))
	}
	return FromPrivateKey(ed25519.PrivateKey(key)), nil
}

// SavePrivateKey writes the private key hex-encoded to a file
func (w *Wallet) SavePrivateKey(path string) error {
	return os.WriteFile(path, []byte(hex.EncodeToString(w.PrivateKey)), 0o600)
}

// SignHash signs a block hash with the wallet's private key
func (w *Wallet) SignHash(h types.Hash) types.Signature {
	return crypto.Sign(w.PrivateKey, h[:])
}
