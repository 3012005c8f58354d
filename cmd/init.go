package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"raicore/config"
	"raicore/logx"
	"raicore/store"
	"raicore/wallet"
)

var (
	initDataDir  string
	initDatabase string
	initTestNet  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a data directory with a keypair and genesis seed",
	Long: `Initialize a ledger data directory by:
- Generating a new Ed25519 private key
- Writing the genesis seed to genesis.yml
- Seeding the block store with the chosen database backend`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initializeDataDir()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initDataDir, "data-dir", ".", "Directory to save ledger data")
	initCmd.Flags().StringVar(&initDatabase, "database", "leveldb", "Database backend (leveldb or bolt)")
	initCmd.Flags().BoolVar(&initTestNet, "testnet", false, "Seed the deterministic test genesis instead of the live one")
}

func initializeDataDir() error {
	w, err := wallet.NewWallet()
	if err != nil {
		return err
	}
	keyPath := filepath.Join(initDataDir, "node.key")
	if err := w.SavePrivateKey(keyPath); err != nil {
		return fmt.Errorf("could not save private key: %w", err)
	}
	logx.Info("CMD", "Generated keypair for account ", w.Address)

	gen := config.LiveGenesis()
	if initTestNet {
		gen, _ = config.TestGenesis()
	}
	genesisPath := filepath.Join(initDataDir, "genesis.yml")
	if err := config.SaveGenesisConfig(genesisPath, gen); err != nil {
		return fmt.Errorf("could not save genesis config: %w", err)
	}

	settings := &config.LedgerSettings{
		Backend: initDatabase,
		Path:    filepath.Join(initDataDir, "blocks"),
	}
	if initDatabase == "bolt" {
		settings.Path = filepath.Join(initDataDir, "blocks.db")
	}
	provider, err := store.OpenProvider(settings)
	if err != nil {
		return err
	}
	s, err := store.NewBlockStore(provider, gen)
	if err != nil {
		return err
	}
	s.MustClose()

	fmt.Printf("Initialized %s ledger in %s (account %s)\n", settings.Backend, initDataDir, w.Address)
	return nil
}
