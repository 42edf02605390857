package cmd

import (
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored Kaggle credential (login, logout, status)",
	Long: `Manage the Kaggle API credential this tool authenticates with.

The credential is a username plus API key, stored as a JSON payload in
the OS keyring. Every kaggle CLI invocation resolves it from, in order:
the keyring, the KAGGLE_JSON environment variable, or the
KAGGLE_USERNAME/KAGGLE_KEY pair.

Examples:
  kagglectl auth login
  kagglectl auth status
  kagglectl auth logout`,
}

func init() {
	rootCmd.AddCommand(authCmd)
}
