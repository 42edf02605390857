package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kagglekit/kagglectl/internal/listing"
	"github.com/kagglekit/kagglectl/internal/project"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List this project's run history",
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

		records, err := project.ListRuns(dir)
		if err != nil {
			return err
		}
		_, latest, ok, err := project.LatestRun(dir, cfg.Outputs.DownloadTo)
		if err != nil {
			return err
		}
		if !ok {
			latest = project.RunStatusComplete
		}

		listing.Render(app.Log.Sink(), listing.RunItems(records, latest))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
