package types

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"
)

// balanceBits is the width of a ledger amount. Balances are carried in a
// uint256 but every value stored or derived must fit in 128 bits.
const balanceBits = 128

// Balance is an unsigned 128-bit quantity of funds. The zero value is a zero
// balance. Arithmetic is checked: operations report underflow/overflow
// instead of wrapping.
type Balance struct {
	v uint256.Int
}

// NewBalance returns a balance holding the given amount
func NewBalance(amount uint64) Balance {
	var b Balance
	b.v.SetUint64(amount)
	return b
}

// MaxBalance returns the largest representable balance, 2^128-1. The genesis
// account is seeded with this amount.
func MaxBalance() Balance {
	return Balance{v: uint256.Int{^uint64(0), ^uint64(0), 0, 0}}
}

// BalanceFromString parses a decimal amount, rejecting values beyond 128 bits
func BalanceFromString(s string) (Balance, error) {
	var b Balance
	if err := b.v.SetFromDecimal(s); err != nil {
		return Balance{}, fmt.Errorf("invalid balance %q: %w", s, err)
	}
	if b.v.BitLen() > balanceBits {
		return Balance{}, fmt.Errorf("balance %q exceeds 128 bits", s)
	}
	return b, nil
}

// Add returns b+o. ok is false if the sum does not fit in 128 bits.
func (b Balance) Add(o Balance) (Balance, bool) {
	var z uint256.Int
	_, carry := z.AddOverflow(&b.v, &o.v)
	if carry || z.BitLen() > balanceBits {
		return Balance{}, false
	}
	return Balance{v: z}, true
}

// Sub returns b-o. ok is false on underflow.
func (b Balance) Sub(o Balance) (Balance, bool) {
	var z uint256.Int
	_, underflow := z.SubOverflow(&b.v, &o.v)
	if underflow {
		return Balance{}, false
	}
	return Balance{v: z}, true
}

// Cmp returns -1, 0 or 1 comparing b to o
func (b Balance) Cmp(o Balance) int {
	return b.v.Cmp(&o.v)
}

func (b Balance) IsZero() bool {
	return b.v.IsZero()
}

// Bytes16 returns the little-endian 16-byte form used as a hash element
func (b Balance) Bytes16() [16]byte {
	var out [16]byte
	binary.LittleEndian.PutUint64(out[0:8], b.v[0])
	binary.LittleEndian.PutUint64(out[8:16], b.v[1])
	return out
}

// BalanceFromBytes16 reconstructs a balance from its little-endian 16-byte form
func BalanceFromBytes16(raw [16]byte) Balance {
	var b Balance
	b.v[0] = binary.LittleEndian.Uint64(raw[0:8])
	b.v[1] = binary.LittleEndian.Uint64(raw[8:16])
	return b
}

// String formats the balance as a decimal amount
func (b Balance) String() string {
	return b.v.Dec()
}

func (b Balance) MarshalText() ([]byte, error) {
	return []byte(b.v.Dec()), nil
}

func (b *Balance) UnmarshalText(text []byte) error {
	parsed, err := BalanceFromString(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
