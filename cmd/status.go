package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kagglekit/kagglectl/internal/project"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the most recent run and whether its outputs have arrived",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := GetApp(cmd)
		if err != nil {
			return err
		}
		dir, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg, err := project.Load(dir)
		if err != nil {
			return err
		}

		rec, status, ok, err := project.LatestRun(dir, cfg.Outputs.DownloadTo)
		if err != nil {
			return err
		}
		if !ok {
			app.Log.Printf("No runs recorded yet; start one with 'kagglectl push'.\n")
			return nil
		}

		app.Log.Printf("Last run: %s (%s)\n", rec.Timestamp.Local().Format(time.RFC1123), status)
		if rec.URL != "" {
			app.Log.Printf("URL: %s\n", rec.URL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
