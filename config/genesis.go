package config

import (
	"raicore/block"
	"raicore/common"
	"raicore/types"
	"raicore/wallet"
)

// Genesis is the pre-verified seed data injected at ledger construction. The
// open block it describes has no real predecessor, so it bypasses normal
// verification and is committed directly with the declared balance.
type Genesis struct {
	Account        types.PubKey    `yaml:"account"`
	Representative types.PubKey    `yaml:"representative"`
	Source         types.Hash      `yaml:"source"`
	Work           types.Work      `yaml:"work"`
	Signature      types.Signature `yaml:"signature"`
	Balance        types.Balance   `yaml:"balance"`
}

// OpenBlock reconstructs the genesis open block from the seed fields
func (g *Genesis) OpenBlock() *block.Open {
	return &block.Open{
		Account:        g.Account,
		Source:         g.Source,
		Representative: g.Representative,
		Work:           g.Work,
		Signature:      g.Signature,
	}
}

// Live network genesis constants. The source of a genesis open is the
// account key itself; there is no send behind it.
const (
	liveGenesisAccount   = "7c1f5a90d34b6e2688c1f73d02a9bbe4d06c70e5532f78a1b8e9d40c6a21953e"
	liveGenesisWork      = types.Work(0x7b42f1e3d89a60c5)
	liveGenesisSignature = "9d1e84a6c2f05b7310fdc84e96a2b5d10c3e7f4806ba925e1d47c60832fa9b04" +
		"5b86e21d90cf473a6058d12ebc7f93a2410e65d8fa02c7b39164e8ad05c2317f"
)

// LiveGenesis returns the production seed: the genesis account opened with
// the full supply.
func LiveGenesis() *Genesis {
	account := mustPubKeyHex(liveGenesisAccount)
	var source types.Hash
	copy(source[:], account[:])
	return &Genesis{
		Account:        account,
		Representative: account,
		Source:         source,
		Work:           liveGenesisWork,
		Signature:      mustSignatureHex(liveGenesisSignature),
		Balance:        types.MaxBalance(),
	}
}

// testGenesisSeed is a fixed ed25519 seed so tests can spend from genesis
var testGenesisSeed = []byte("raicore test genesis seed 000001")

// TestGenesis returns a deterministic seed for tests together with the
// wallet controlling the genesis account.
func TestGenesis() (*Genesis, *wallet.Wallet) {
	w, err := wallet.FromSeed(testGenesisSeed)
	if err != nil {
		panic(err)
	}
	var source types.Hash
	copy(source[:], w.PublicKey[:])
	o := block.NewOpen(w.PrivateKey, source, nil)
	return &Genesis{
		Account:        o.Account,
		Representative: o.Representative,
		Source:         o.Source,
		Work:           o.Work,
		Signature:      o.Signature,
		Balance:        types.MaxBalance(),
	}, w
}

func mustPubKeyHex(s string) types.PubKey {
	raw, err := common.DecodeHexSized(s, types.PubKeySize)
	if err != nil {
		panic(err)
	}
	var k types.PubKey
	copy(k[:], raw)
	return k
}

func mustSignatureHex(s string) types.Signature {
	raw, err := common.DecodeHexSized(s, types.SignatureSize)
	if err != nil {
		panic(err)
	}
	var sig types.Signature
	copy(sig[:], raw)
	return sig
}
