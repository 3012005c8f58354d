package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"raicore/wallet"
)

var keygenOutPath string

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an Ed25519 account keypair",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.NewWallet()
		if err != nil {
			return err
		}
		if keygenOutPath != "" {
			if err := w.SavePrivateKey(keygenOutPath); err != nil {
				return err
			}
			fmt.Printf("Wrote private key to %s\n", keygenOutPath)
		}
		fmt.Printf("Account: %s\n", w.Address)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)

	keygenCmd.Flags().StringVar(&keygenOutPath, "out", "", "File to write the hex private key to")
}
