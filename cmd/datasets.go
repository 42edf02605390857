package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kagglekit/kagglectl/internal/listing"
	"github.com/kagglekit/kagglectl/internal/project"
)

var datasetsSearch string

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List, download, and attach datasets",
}

var datasetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List datasets on the remote service",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := GetApp(cmd)
		if err != nil {
			return err
		}

		cliArgs := []string{"datasets", "list", "--csv"}
		if datasetsSearch != "" {
			cliArgs = append(cliArgs, "-s", datasetsSearch)
		}
		res, err := app.QuietInvoker().Run(cmd.Context(), "", cliArgs...)
		if err != nil {
			return err
		}
		items, err := listing.DatasetItems(res.Stdout)
		if err != nil {
			return err
		}
		listing.Render(app.Log.Sink(), items)
		return nil
	},
}

var datasetsDownloadCmd = &cobra.Command{
	Use:   "download <owner/dataset>",
	Short: "Download a dataset into the current directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := GetApp(cmd)
		if err != nil {
			return err
		}
		_, err = app.Invoker().Run(cmd.Context(), "", "datasets", "download", args[0], "--unzip")
		return err
	},
}

var datasetsAttachCmd = &cobra.Command{
	Use:   "attach <owner/dataset>",
	Short: "Attach a dataset to this project's next runs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := GetApp(cmd)
		if err != nil {
			return err
		}
		dir, err := os.Getwd()
		if err != nil {
			return err
		}

		// read-modify-write with set semantics; the store itself only
		// does whole-file rewrites
		cfg, err := project.Load(dir)
		if err != nil {
			return err
		}
		if !cfg.AttachDataset(args[0]) {
			app.Log.Info("dataset already attached", "slug", args[0])
			return nil
		}
		if err := cfg.Save(dir); err != nil {
			return err
		}
		app.Log.Info("dataset attached", "slug", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
	datasetsCmd.AddCommand(datasetsListCmd, datasetsDownloadCmd, datasetsAttachCmd)
	datasetsListCmd.Flags().StringVarP(&datasetsSearch, "search", "s", "", "search term")
}
