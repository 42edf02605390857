package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kagglekit/kagglectl/internal/listing"
	"github.com/kagglekit/kagglectl/internal/project"
)

var (
	submitFile    string
	submitMessage string
)

var competitionsCmd = &cobra.Command{
	Use:     "competitions",
	Aliases: []string{"comps"},
	Short:   "List, download, attach, and submit to competitions",
}

var competitionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List competitions on the remote service",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := GetApp(cmd)
		if err != nil {
			return err
		}

		res, err := app.QuietInvoker().Run(cmd.Context(), "", "competitions", "list", "--csv")
		if err != nil {
			return err
		}
		items, err := listing.CompetitionItems(res.Stdout)
		if err != nil {
			return err
		}
		listing.Render(app.Log.Sink(), items)
		return nil
	},
}

var competitionsDownloadCmd = &cobra.Command{
	Use:   "download <competition>",
	Short: "Download a competition's data files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := GetApp(cmd)
		if err != nil {
			return err
		}
		_, err = app.Invoker().Run(cmd.Context(), "", "competitions", "download", args[0])
		return err
	},
}

var competitionsAttachCmd = &cobra.Command{
	Use:   "attach <competition>",
	Short: "Attach a competition's data to this project's next runs",
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

		cfg, err := project.Load(dir)
		if err != nil {
			return err
		}
		if !cfg.AttachCompetition(args[0]) {
			app.Log.Info("competition already attached", "slug", args[0])
			return nil
		}
		if err := cfg.Save(dir); err != nil {
			return err
		}
		app.Log.Info("competition attached", "slug", args[0])
		return nil
	},
}

var competitionsSubmitCmd = &cobra.Command{
	Use:   "submit <competition>",
	Short: "Submit a predictions file to a competition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := GetApp(cmd)
		if err != nil {
			return err
		}
		_, err = app.Invoker().Run(cmd.Context(), "",
			"competitions", "submit", args[0], "-f", submitFile, "-m", submitMessage)
		return err
	},
}

func init() {
	rootCmd.AddCommand(competitionsCmd)
	competitionsCmd.AddCommand(competitionsListCmd, competitionsDownloadCmd,
		competitionsAttachCmd, competitionsSubmitCmd)
	competitionsSubmitCmd.Flags().StringVarP(&submitFile, "file", "f", "", "predictions file to submit")
	competitionsSubmitCmd.Flags().StringVarP(&submitMessage, "message", "m", "", "submission message")
	competitionsSubmitCmd.MarkFlagRequired("file")
	competitionsSubmitCmd.MarkFlagRequired("message")
}
