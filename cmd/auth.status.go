package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kagglekit/kagglectl/internal/creds"
)

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which credential would be used, with the key masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := GetApp(cmd)
		if err != nil {
			return err
		}

		c, err := creds.Resolve()
		if err != nil {
			return err
		}
		app.Log.Printf("Signed in as: %s\n", c.Username)
		app.Log.Printf("API key: %s\n", creds.Mask(c.Key))
		return nil
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}
