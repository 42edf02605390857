package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/kagglekit/kagglectl/internal/kagglecli"
	"github.com/kagglekit/kagglectl/internal/settings"
	"github.com/kagglekit/kagglectl/pkg/kerr"
	"github.com/kagglekit/kagglectl/pkg/termlog"
)

type contextKey string

const appContextKey contextKey = "kagglectlapp"

// App bundles what every subcommand needs: resolved settings and the
// logger that owns the visible output stream.
type App struct {
	Settings *settings.Settings
	Log      *termlog.Logger
}

// Invoker builds a CLI invoker echoing into the app's output sink.
func (a *App) Invoker() *kagglecli.Invoker {
	return kagglecli.New(a.Settings.Binary, nil, a.Log.Sink())
}

// QuietInvoker builds an invoker that does not echo, for commands that
// parse and re-render the CLI output themselves.
func (a *App) QuietInvoker() *kagglecli.Invoker {
	return kagglecli.New(a.Settings.Binary, nil, nil)
}

var (
	cfgFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "kagglectl",
		Short: "Push notebooks and scripts to Kaggle and fetch their outputs",
		Long: `kagglectl keeps a small declarative descriptor (kaggle.yml) next to
your notebook or script and drives the official kaggle CLI from it:
push the code for remote execution, poll for outputs, and browse your
runs, kernels, datasets and competitions.

Authenticate once with 'kagglectl auth login'; credentials live in the
OS keyring, or in the KAGGLE_JSON / KAGGLE_USERNAME+KAGGLE_KEY
environment variables for CI use.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load(cfgFile)
			if err != nil {
				return err
			}
			if err := s.Viper().BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := s.Refresh(); err != nil {
				return err
			}

			log := termlog.NewDefault()
			if verbose {
				log = termlog.NewVerbose()
			}

			app := &App{Settings: s, Log: log}
			cmd.SetContext(withApp(cmd.Context(), app))
			return nil
		},
	}
)

func withApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appContextKey, app)
}

// GetApp retrieves the App from the command context.
func GetApp(cmd *cobra.Command) (*App, error) {
	app, ok := cmd.Context().Value(appContextKey).(*App)
	if !ok {
		return nil, errors.New("no app in context")
	}
	return app, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := termlog.NewDefault()
		log.Error(err.Error())
		switch kerr.CodeOf(err) {
		case kerr.CodeNotInitialized:
			log.Printf("Hint: run 'kagglectl init --project <name>' in your project directory.\n")
		case kerr.CodeCliUnavailable:
			log.Printf("Hint: the kaggle CLI installs with 'pip install kaggle'.\n")
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (YAML). Default search: .kagglectl.yaml in the working directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("binary", "", "kaggle CLI binary to invoke (overrides settings)")
}
