package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"raicore/block"
	"raicore/config"
	"raicore/errors"
	"raicore/jsonx"
	"raicore/logx"
	"raicore/store"
)

var (
	insertGenesisPath  string
	insertSettingsPath string
	insertBlocksPath   string
)

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Validate and insert blocks from a JSON file",
	Long: `Read a JSON array of tagged blocks, run each through the full
acceptance transaction (signature, work, cross-chain references, fork and
double-spend checks) and commit the ones that pass.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return insertBlocks()
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)

	insertCmd.Flags().StringVar(&insertGenesisPath, "genesis", "genesis.yml", "Path to genesis configuration file")
	insertCmd.Flags().StringVar(&insertSettingsPath, "settings", "", "Path to ledger settings .ini file")
	insertCmd.Flags().StringVar(&insertBlocksPath, "blocks", "", "Path to JSON file with candidate blocks")
}

func insertBlocks() error {
	gen, err := config.LoadGenesisConfig(insertGenesisPath)
	if err != nil {
		return err
	}

	settings := config.DefaultLedgerSettings()
	if insertSettingsPath != "" {
		if settings, err = config.LoadLedgerSettings(insertSettingsPath); err != nil {
			return err
		}
	}
	if settings.WorkThreshold != 0 {
		block.SetWorkThreshold(settings.WorkThreshold)
	}

	provider, err := store.OpenProvider(settings)
	if err != nil {
		return err
	}
	s, err := store.NewBlockStore(provider, gen)
	if err != nil {
		return err
	}
	defer s.MustClose()

	file, err := os.Open(insertBlocksPath)
	if err != nil {
		return fmt.Errorf("could not open blocks file: %w", err)
	}
	defer file.Close()
	var raws []json.RawMessage
	if err := jsonx.NewDecoder(file).Decode(&raws); err != nil {
		return fmt.Errorf("blocks file is not a JSON array: %w", err)
	}

	accepted := 0
	for i, raw := range raws {
		b, err := block.Unmarshal(raw)
		if err != nil {
			logx.Warn("CMD", fmt.Sprintf("Skipping malformed block %d: %v", i, err))
			fmt.Printf("block %d: malformed: %v\n", i, err)
			continue
		}
		if err := s.Insert(b); err != nil {
			fmt.Printf("block %d (%s %s): rejected [%s]: %v\n", i, b.Kind(), b.Hash(), errors.Code(err), err)
			continue
		}
		fmt.Printf("block %d (%s %s): accepted\n", i, b.Kind(), b.Hash())
		accepted++
	}
	fmt.Printf("accepted %d of %d blocks\n", accepted, len(raws))
	return nil
}
