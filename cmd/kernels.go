package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kagglekit/kagglectl/internal/listing"
)

var kernelsCmd = &cobra.Command{
	Use:   "kernels",
	Short: "List your kernels on the remote service",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := GetApp(cmd)
		if err != nil {
			return err
		}

		res, err := app.QuietInvoker().Run(cmd.Context(), "", "kernels", "list", "--mine", "--csv")
		if err != nil {
			return err
		}
		items, err := listing.KernelItems(res.Stdout)
		if err != nil {
			return err
		}
		listing.Render(app.Log.Sink(), items)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(kernelsCmd)
}
