package crypto

import (
	"crypto/ed25519"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"raicore/types"
)

// Digest hashes the given byte strings, in order, to a digest of size bytes
// using unkeyed blake2b
func Digest(size int, parts ...[]byte) ([]byte, error) {
	h, err := blake2b.New(size, nil)
	if err != nil {
		return nil, fmt.Errorf("blake2b digest size %d: %w", size, err)
	}
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil), nil
}

// Sign signs message with the ed25519 private key
func Sign(priv ed25519.PrivateKey, message []byte) types.Signature {
	var sig types.Signature
	copy(sig[:], ed25519.Sign(priv, message))
	return sig
}

// Verify reports whether sig is a valid signature of message under key
func Verify(key types.PubKey, message []byte, sig types.Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(key[:]), message, sig[:])
}

// PublicKey extracts the account key from an ed25519 private key
func PublicKey(priv ed25519.PrivateKey) types.PubKey {
	var key types.PubKey
	copy(key[:], priv.Public().(ed25519.PublicKey))
	return key
}
