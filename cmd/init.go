package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kagglekit/kagglectl/internal/creds"
	"github.com/kagglekit/kagglectl/internal/project"
)

var (
	initProject string
	initCode    string
	initForce   bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create kaggle.yml for the current directory",
	Long: `Create the declarative project descriptor (kaggle.yml) and derive the
stable kernel slug from your Kaggle username and the project name.

The slug identifies the kernel on the remote service and is written
once; re-running init refuses to change it unless --force is given,
because silently relinking an existing remote kernel loses its history.

Examples:
  kagglectl init --project "My Experiment" --code train.py
  kagglectl init --project "Iris Notebook" --code explore.ipynb`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := GetApp(cmd)
		if err != nil {
			return err
		}

		dir, err := os.Getwd()
		if err != nil {
			return err
		}

		if _, err := os.Stat(filepath.Join(dir, project.ConfigFile)); err == nil && !initForce {
			return fmt.Errorf("%s already exists; use --force to relink the project", project.ConfigFile)
		}

		c, err := creds.Resolve()
		if err != nil {
			return err
		}

		cfg := &project.Config{
			Project:    initProject,
			KernelSlug: project.DeriveSlug(c.Username, initProject),
			CodeFile:   initCode,
		}
		if err := cfg.Save(dir); err != nil {
			return err
		}
		if err := cfg.Metadata().Save(dir); err != nil {
			return err
		}

		app.Log.Info("project initialized",
			"slug", cfg.KernelSlug, "code", cfg.CodeFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initProject, "project", "", "project name (becomes the kernel title)")
	initCmd.Flags().StringVar(&initCode, "code", "main.py", "entry file to execute remotely (.py or .ipynb)")
	initCmd.MarkFlagRequired("project")
}
