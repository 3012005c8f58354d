package ledger_test

import (
	"math/rand"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"raicore/block"
	"raicore/config"
	"raicore/errors"
	"raicore/ledger"
	"raicore/pow"
	"raicore/types"
	"raicore/wallet"
)

// testWorkThreshold keeps the nonce search to a handful of attempts while
// still exercising the work gate.
const testWorkThreshold = 0x1000000000000000

func TestMain(m *testing.M) {
	block.SetWorkThreshold(testWorkThreshold)
	os.Exit(m.Run())
}

var powRng = rand.New(rand.NewSource(1))

func fillWork(t *testing.T, b block.Block) {
	t.Helper()
	pow.FillWork(b, powRng)
}

// newTestLedger seeds a fresh ledger with the deterministic test genesis
func newTestLedger(t *testing.T) (*ledger.Ledger, *config.Genesis, *wallet.Wallet) {
	t.Helper()
	gen, gw := config.TestGenesis()
	return ledger.NewLedger(gen), gen, gw
}

func newWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	w, err := wallet.NewWallet()
	require.NoError(t, err)
	return w
}

// sendFrom builds, works and inserts a send leaving `remaining` on the
// sender's chain
func sendFrom(t *testing.T, l *ledger.Ledger, w *wallet.Wallet, previous types.Hash, remaining types.Balance, dest types.PubKey) *block.Send {
	t.Helper()
	send := block.NewSend(w.PrivateKey, previous, remaining, dest)
	fillWork(t, send)
	require.NoError(t, l.Insert(send))
	return send
}

func TestGenesisSeed(t *testing.T) {
	l, gen, _ := newTestLedger(t)
	genesisHash := gen.OpenBlock().Hash()

	head, ok := l.FindHead(gen.Account)
	require.True(t, ok)
	require.Equal(t, genesisHash, head)

	balance, ok := l.FindBalance(genesisHash)
	require.True(t, ok)
	require.Zero(t, balance.Cmp(types.MaxBalance()))

	key, ok := l.FindKey(genesisHash)
	require.True(t, ok)
	require.Equal(t, gen.Account, key)

	open := l.FindOpen(genesisHash)
	require.NotNil(t, open)
	require.Equal(t, gen.Account, open.Account)
}

func TestSendThenOpenTransfersAmount(t *testing.T) {
	l, gen, gw := newTestLedger(t)
	genesisHash := gen.OpenBlock().Hash()
	dest := newWallet(t)

	amount := types.NewBalance(500)
	remaining, ok := types.MaxBalance().Sub(amount)
	require.True(t, ok)

	send := sendFrom(t, l, gw, genesisHash, remaining, dest.PublicKey)
	require.True(t, l.IsUnspent(send.Hash()), "a committed send is unspent until received")

	senderBalance, ok := l.FindBalance(send.Hash())
	require.True(t, ok)
	require.Zero(t, senderBalance.Cmp(remaining))

	open := block.NewOpen(dest.PrivateKey, send.Hash(), nil)
	fillWork(t, open)
	require.NoError(t, l.Insert(open))

	// the new account's balance equals the transferred amount
	openBalance, ok := l.FindBalance(open.Hash())
	require.True(t, ok)
	require.Zero(t, openBalance.Cmp(amount))

	head, ok := l.FindHead(dest.PublicKey)
	require.True(t, ok)
	require.Equal(t, open.Hash(), head)

	require.False(t, l.IsUnspent(send.Hash()), "the open consumed the send")
}

func TestInsertDuplicateRejected(t *testing.T) {
	l, gen, gw := newTestLedger(t)
	genesisHash := gen.OpenBlock().Hash()
	dest := newWallet(t)

	remaining, _ := types.MaxBalance().Sub(types.NewBalance(1))
	send := sendFrom(t, l, gw, genesisHash, remaining, dest.PublicKey)

	err := l.Insert(send)
	require.ErrorIs(t, err, errors.ErrDuplicate)
}

func TestSendConsumedOnlyOnce(t *testing.T) {
	l, gen, gw := newTestLedger(t)
	genesisHash := gen.OpenBlock().Hash()
	dest := newWallet(t)

	remaining, _ := types.MaxBalance().Sub(types.NewBalance(500))
	send := sendFrom(t, l, gw, genesisHash, remaining, dest.PublicKey)

	open := block.NewOpen(dest.PrivateKey, send.Hash(), nil)
	fillWork(t, open)
	require.NoError(t, l.Insert(open))

	// receiving the same send again on the destination chain must fail
	receive := block.NewReceive(dest.PrivateKey, open.Hash(), send.Hash())
	fillWork(t, receive)
	err := l.Insert(receive)
	require.ErrorIs(t, err, errors.ErrReceived)
}

func TestForkRejected(t *testing.T) {
	l, gen, gw := newTestLedger(t)
	genesisHash := gen.OpenBlock().Hash()
	dest := newWallet(t)

	remaining, _ := types.MaxBalance().Sub(types.NewBalance(10))
	sendFrom(t, l, gw, genesisHash, remaining, dest.PublicKey)

	// a second send off the same parent no longer matches the head
	other, _ := types.MaxBalance().Sub(types.NewBalance(20))
	fork := block.NewSend(gw.PrivateKey, genesisHash, other, dest.PublicKey)
	fillWork(t, fork)
	err := l.Insert(fork)
	require.ErrorIs(t, err, errors.ErrFork)
}

func TestOverSendRejected(t *testing.T) {
	l, gen, gw := newTestLedger(t)
	genesisHash := gen.OpenBlock().Hash()
	dest := newWallet(t)

	remaining, _ := types.MaxBalance().Sub(types.NewBalance(500))
	send := sendFrom(t, l, gw, genesisHash, remaining, dest.PublicKey)

	open := block.NewOpen(dest.PrivateKey, send.Hash(), nil)
	fillWork(t, open)
	require.NoError(t, l.Insert(open))

	// the destination holds 500 but declares 600 remaining after its send
	overSend := block.NewSend(dest.PrivateKey, open.Hash(), types.NewBalance(600), gen.Account)
	fillWork(t, overSend)
	err := l.Insert(overSend)
	require.ErrorIs(t, err, errors.ErrOverSend)
}

func TestReceiveAddsAmount(t *testing.T) {
	l, gen, gw := newTestLedger(t)
	genesisHash := gen.OpenBlock().Hash()
	dest := newWallet(t)

	remaining1, _ := types.MaxBalance().Sub(types.NewBalance(500))
	send1 := sendFrom(t, l, gw, genesisHash, remaining1, dest.PublicKey)

	open := block.NewOpen(dest.PrivateKey, send1.Hash(), nil)
	fillWork(t, open)
	require.NoError(t, l.Insert(open))

	remaining2, _ := remaining1.Sub(types.NewBalance(250))
	send2 := sendFrom(t, l, gw, send1.Hash(), remaining2, dest.PublicKey)

	receive := block.NewReceive(dest.PrivateKey, open.Hash(), send2.Hash())
	fillWork(t, receive)
	require.NoError(t, l.Insert(receive))

	balance, ok := l.FindBalance(receive.Hash())
	require.True(t, ok)
	require.Zero(t, balance.Cmp(types.NewBalance(750)))

	require.False(t, l.IsUnspent(send2.Hash()))
}

func TestChangeKeepsBalance(t *testing.T) {
	l, gen, gw := newTestLedger(t)
	genesisHash := gen.OpenBlock().Hash()
	rep := newWallet(t)

	change := block.NewChange(gw.PrivateKey, genesisHash, rep.PublicKey)
	fillWork(t, change)
	require.NoError(t, l.Insert(change))

	balance, ok := l.FindBalance(change.Hash())
	require.True(t, ok)
	require.Zero(t, balance.Cmp(types.MaxBalance()))

	head, ok := l.FindHead(gen.Account)
	require.True(t, ok)
	require.Equal(t, change.Hash(), head)
}

func TestWrongSignerRejected(t *testing.T) {
	l, gen, _ := newTestLedger(t)
	genesisHash := gen.OpenBlock().Hash()
	mallory := newWallet(t)

	// signed by a key that does not own the genesis chain
	theft := block.NewSend(mallory.PrivateKey, genesisHash, types.NewBalance(0), mallory.PublicKey)
	fillWork(t, theft)
	err := l.Insert(theft)
	require.ErrorIs(t, err, errors.ErrSignature)
}

func TestInsufficientWorkRejected(t *testing.T) {
	l, gen, gw := newTestLedger(t)
	genesisHash := gen.OpenBlock().Hash()
	dest := newWallet(t)

	t.Cleanup(func() { block.SetWorkThreshold(testWorkThreshold) })
	block.SetWorkThreshold(^uint64(0)) // nothing clears the maximum threshold

	remaining, _ := types.MaxBalance().Sub(types.NewBalance(1))
	send := block.NewSend(gw.PrivateKey, genesisHash, remaining, dest.PublicKey)
	err := l.Insert(send)
	require.ErrorIs(t, err, errors.ErrWork)
}

func TestMissingReferencesRejected(t *testing.T) {
	l, _, gw := newTestLedger(t)
	dest := newWallet(t)
	unknown := types.Hash{0xde, 0xad}

	send := block.NewSend(gw.PrivateKey, unknown, types.NewBalance(1), dest.PublicKey)
	fillWork(t, send)
	require.ErrorIs(t, l.Insert(send), errors.ErrMissing)

	open := block.NewOpen(dest.PrivateKey, unknown, nil)
	fillWork(t, open)
	require.ErrorIs(t, l.Insert(open), errors.ErrMissing)

	receive := block.NewReceive(gw.PrivateKey, unknown, unknown)
	fillWork(t, receive)
	require.ErrorIs(t, l.Insert(receive), errors.ErrMissing)
}

func TestOpenSourceMustBeSend(t *testing.T) {
	l, gen, _ := newTestLedger(t)
	genesisHash := gen.OpenBlock().Hash()
	dest := newWallet(t)

	// source references the genesis open block, not a send
	open := block.NewOpen(dest.PrivateKey, genesisHash, nil)
	fillWork(t, open)
	err := l.Insert(open)
	require.ErrorIs(t, err, errors.ErrInvalid)
}

func TestOpenForWrongDestinationRejected(t *testing.T) {
	l, gen, gw := newTestLedger(t)
	genesisHash := gen.OpenBlock().Hash()
	dest := newWallet(t)
	bystander := newWallet(t)

	remaining, _ := types.MaxBalance().Sub(types.NewBalance(5))
	send := sendFrom(t, l, gw, genesisHash, remaining, dest.PublicKey)

	// the send is destined for dest, not bystander
	open := block.NewOpen(bystander.PrivateKey, send.Hash(), nil)
	fillWork(t, open)
	err := l.Insert(open)
	require.ErrorIs(t, err, errors.ErrInvalid)
}

func TestInsertedBlockRoundTrip(t *testing.T) {
	l, gen, gw := newTestLedger(t)
	genesisHash := gen.OpenBlock().Hash()
	dest := newWallet(t)

	remaining, _ := types.MaxBalance().Sub(types.NewBalance(9))
	send := sendFrom(t, l, gw, genesisHash, remaining, dest.PublicKey)

	got := l.Lookup(send.Hash())
	require.NotNil(t, got)
	require.Equal(t, send.Hash(), got.Hash(), "re-derived hash must match the lookup key")

	// the signing key of any block on the genesis chain resolves to genesis
	key, ok := l.FindKey(send.Hash())
	require.True(t, ok)
	require.Equal(t, gen.Account, key)
}

func TestZeroSendAcceptedButReported(t *testing.T) {
	l, gen, gw := newTestLedger(t)
	genesisHash := gen.OpenBlock().Hash()
	dest := newWallet(t)

	// declares the full current balance: transfers nothing
	zero := block.NewSend(gw.PrivateKey, genesisHash, types.MaxBalance(), dest.PublicKey)
	fillWork(t, zero)
	require.True(t, zero.TransfersNothing(l))
	require.NoError(t, l.Insert(zero), "zero sends are reported, not rejected")

	remaining, _ := types.MaxBalance().Sub(types.NewBalance(1))
	moving := block.NewSend(gw.PrivateKey, zero.Hash(), remaining, dest.PublicKey)
	require.False(t, moving.TransfersNothing(l))
}
