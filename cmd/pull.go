package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kagglekit/kagglectl/internal/project"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch the latest run outputs once, without polling",
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

		orch := newOrchestrator(app, dir, false)
		if err := orch.Pull(cmd.Context(), cfg); err != nil {
			return err
		}
		app.Log.Printf("Outputs downloaded to %s\n", cfg.Outputs.DownloadTo)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pullCmd)
}
