package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kagglekit/kagglectl/internal/creds"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored credential from the OS keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := GetApp(cmd)
		if err != nil {
			return err
		}
		if err := creds.Clear(); err != nil {
			return err
		}
		app.Log.Info("credential removed from keyring")
		return nil
	},
}

func init() {
	authCmd.AddCommand(logoutCmd)
}
