package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"raicore/logx"
)

var rootCmd = &cobra.Command{
	Use:   "raicore",
	Short: "Block-lattice ledger core CLI",
	Long:  "Command line interface for validating and storing block-lattice ledger blocks.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
