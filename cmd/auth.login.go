package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kagglekit/kagglectl/internal/creds"
)

var (
	loginUsername string
	loginKey      string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a Kaggle API credential in the OS keyring",
	Long: `Store your Kaggle username and API key in the OS keyring.

The API key comes from your Kaggle account page ("Create New API
Token"). When run without flags the key is read from the terminal with
echo disabled.

Examples:
  # interactive
  kagglectl auth login

  # non-interactive (the key still never touches argv of the kaggle CLI)
  kagglectl auth login --username alice --key <KEY>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := GetApp(cmd)
		if err != nil {
			return err
		}

		username := strings.TrimSpace(loginUsername)
		if username == "" {
			fmt.Print("Kaggle username: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading username: %w", err)
			}
			username = strings.TrimSpace(line)
		}

		key := loginKey
		if key == "" {
			fmt.Print("API key (input hidden): ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("reading key: %w", err)
			}
			key = strings.TrimSpace(string(raw))
		}

		if err := creds.Store(creds.Credentials{Username: username, Key: key}); err != nil {
			return err
		}
		app.Log.Info("credential saved", "username", username)
		return nil
	},
}

func init() {
	authCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginUsername, "username", "", "Kaggle username")
	loginCmd.Flags().StringVar(&loginKey, "key", "", "Kaggle API key (prefer the interactive prompt)")
}
