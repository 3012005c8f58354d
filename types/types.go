package types

import (
	"encoding/binary"

	"raicore/common"
)

const (
	HashSize      = 32
	PubKeySize    = 32
	SignatureSize = 64
	WorkHashSize  = 8
)

// DefaultWorkThreshold is the protocol proof-of-work threshold. A work digest
// is acceptable iff its little-endian uint64 value strictly exceeds it.
const DefaultWorkThreshold uint64 = 0xffffffc000000000

// Hash is the canonical 32-byte blake2b identifier of a block
type Hash [HashSize]byte

func (h Hash) String() string {
	return common.EncodeBytesToBase58(h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(common.EncodeBytesToBase58(h[:])), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	b, err := common.DecodeBase58Sized(string(text), HashSize)
	if err != nil {
		return err
	}
	copy(h[:], b)
	return nil
}

// IsZero reports whether h is the all-zero hash
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// PubKey is a 32-byte ed25519 public key; it doubles as the account identifier
type PubKey [PubKeySize]byte

func (k PubKey) String() string {
	return common.EncodeBytesToBase58(k[:])
}

func (k PubKey) MarshalText() ([]byte, error) {
	return []byte(common.EncodeBytesToBase58(k[:])), nil
}

func (k *PubKey) UnmarshalText(text []byte) error {
	b, err := common.DecodeBase58Sized(string(text), PubKeySize)
	if err != nil {
		return err
	}
	copy(k[:], b)
	return nil
}

// Signature is a 64-byte ed25519 signature over a block hash
type Signature [SignatureSize]byte

func (s Signature) String() string {
	return common.EncodeBytesToBase58(s[:])
}

func (s Signature) MarshalText() ([]byte, error) {
	return []byte(common.EncodeBytesToBase58(s[:])), nil
}

func (s *Signature) UnmarshalText(text []byte) error {
	b, err := common.DecodeBase58Sized(string(text), SignatureSize)
	if err != nil {
		return err
	}
	copy(s[:], b)
	return nil
}

// Work is the 8-byte proof-of-work nonce attached to every block
type Work uint64

// Bytes8 returns the little-endian byte form fed into the work digest
func (w Work) Bytes8() [8]byte {
	var out [8]byte
	binary.LittleEndian.PutUint64(out[:], uint64(w))
	return out
}

// WorkHash is the 8-byte digest of work||element used to gate block admission
type WorkHash [WorkHashSize]byte

// Uint64 interprets the digest as a little-endian uint64
func (wh WorkHash) Uint64() uint64 {
	return binary.LittleEndian.Uint64(wh[:])
}

// ValidAgainst reports whether the digest clears the given threshold.
// The comparison is strict: a digest equal to the threshold is rejected.
func (wh WorkHash) ValidAgainst(threshold uint64) bool {
	return wh.Uint64() > threshold
}

// Valid reports whether the digest clears the protocol threshold
func (wh WorkHash) Valid() bool {
	return wh.ValidAgainst(DefaultWorkThreshold)
}
