package types

import (
	"testing"
)

func TestBalanceCheckedArithmetic(t *testing.T) {
	a := NewBalance(1000)
	b := NewBalance(400)

	sum, ok := a.Add(b)
	if !ok || sum.Cmp(NewBalance(1400)) != 0 {
		t.Fatalf("1000+400 = %s, ok=%v", sum, ok)
	}

	diff, ok := a.Sub(b)
	if !ok || diff.Cmp(NewBalance(600)) != 0 {
		t.Fatalf("1000-400 = %s, ok=%v", diff, ok)
	}

	// underflow must be reported, not wrapped
	if _, ok := b.Sub(a); ok {
		t.Fatal("400-1000 should underflow")
	}

	// overflow past 128 bits must be reported
	if _, ok := MaxBalance().Add(NewBalance(1)); ok {
		t.Fatal("max+1 should overflow")
	}

	// max is still reachable
	if sum, ok := MaxBalance().Sub(NewBalance(1)); !ok {
		t.Fatal("max-1 should not underflow")
	} else if back, ok := sum.Add(NewBalance(1)); !ok || back.Cmp(MaxBalance()) != 0 {
		t.Fatalf("(max-1)+1 = %s, ok=%v", back, ok)
	}
}

func TestBalanceFromString(t *testing.T) {
	b, err := BalanceFromString("340282366920938463463374607431768211455") // 2^128-1
	if err != nil {
		t.Fatalf("parse max: %v", err)
	}
	if b.Cmp(MaxBalance()) != 0 {
		t.Fatalf("parsed %s, want max", b)
	}

	if _, err := BalanceFromString("340282366920938463463374607431768211456"); err == nil {
		t.Fatal("2^128 should be rejected")
	}
	if _, err := BalanceFromString("not a number"); err == nil {
		t.Fatal("garbage should be rejected")
	}
}

func TestBalanceBytes16RoundTrip(t *testing.T) {
	for _, b := range []Balance{NewBalance(0), NewBalance(1), NewBalance(1 << 40), MaxBalance()} {
		raw := b.Bytes16()
		if got := BalanceFromBytes16(raw); got.Cmp(b) != 0 {
			t.Fatalf("round trip of %s gave %s", b, got)
		}
	}

	// little-endian layout
	raw := NewBalance(0x0102).Bytes16()
	if raw[0] != 0x02 || raw[1] != 0x01 {
		t.Fatalf("expected little-endian layout, got % x", raw)
	}
}

func TestBalanceText(t *testing.T) {
	b := NewBalance(123456789)
	text, err := b.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "123456789" {
		t.Fatalf("marshal = %q", text)
	}
	var back Balance
	if err := back.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if back.Cmp(b) != 0 {
		t.Fatalf("round trip gave %s", back)
	}
}
