package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kagglekit/kagglectl/internal/orchestrator"
	"github.com/kagglekit/kagglectl/internal/project"
)

var (
	pushWatch      bool
	pushNoDownload bool
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push the project for remote execution",
	Long: `Sync kaggle.yml into kernel-metadata.json, push the kernel through the
kaggle CLI, and record the run URL in .run.log. Unless auto-download is
disabled, then poll the remote service and download outputs into the
configured directory when they appear.

Examples:
  kagglectl push
  kagglectl push --no-download
  kagglectl push --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := GetApp(cmd)
		if err != nil {
			return err
		}
		dir, err := os.Getwd()
		if err != nil {
			return err
		}

		orch := newOrchestrator(app, dir, !pushNoDownload)

		if !pushWatch {
			cfg, err := project.Load(dir)
			if err != nil {
				return err
			}
			return pushOnce(cmd.Context(), app, orch, cfg)
		}
		return watchAndPush(cmd.Context(), app, orch, dir)
	},
}

func newOrchestrator(app *App, dir string, download bool) *orchestrator.Orchestrator {
	return orchestrator.New(app.Invoker(), dir,
		orchestrator.WithLogger(app.Log),
		orchestrator.WithServiceURL(app.Settings.ServiceURL),
		orchestrator.WithPollSettings(app.Settings.Interval(), app.Settings.Timeout()),
		orchestrator.WithAutoDownload(app.Settings.AutoDownload && download),
		orchestrator.WithObserver(func(rec project.RunRecord) {
			app.Log.Debug("run recorded", "url", rec.URL)
		}),
	)
}

func pushOnce(ctx context.Context, app *App, orch *orchestrator.Orchestrator, cfg *project.Config) error {
	outcome, err := orch.Execute(ctx, cfg)
	if err != nil {
		return err
	}

	switch outcome.State {
	case orchestrator.StateComplete:
		app.Log.Printf("Outputs downloaded to %s\n", cfg.Outputs.DownloadTo)
	case orchestrator.StateTimedOut:
		app.Log.Printf("Run is still executing remotely; fetch later with 'kagglectl pull'.\n")
	}
	if outcome.URL != "" {
		app.Log.Printf("View the run at %s\n", outcome.URL)
	}
	return nil
}

// watchAndPush re-pushes whenever the entry file changes. Editor saves
// often arrive as remove+create pairs, so the watch is on the directory
// and events are filtered by name and debounced.
func watchAndPush(ctx context.Context, app *App, orch *orchestrator.Orchestrator, dir string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cfg, err := project.Load(dir)
	if err != nil {
		return err
	}
	target := filepath.Join(dir, cfg.CodeFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	if err := pushOnce(ctx, app, orch, cfg); err != nil {
		app.Log.Error(err.Error())
	}
	app.Log.Info("watching for changes", "file", cfg.CodeFile)

	const debounce = 500 * time.Millisecond
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(debounce, func() { pending <- struct{}{} })
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			app.Log.Warn("watch error", "err", err.Error())
		case <-pending:
			timer = nil
			// reload so config edits between saves are honored too
			cfg, err := project.Load(dir)
			if err != nil {
				app.Log.Error(err.Error())
				continue
			}
			if err := pushOnce(ctx, app, orch, cfg); err != nil {
				app.Log.Error(err.Error())
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(pushCmd)
	pushCmd.Flags().BoolVar(&pushWatch, "watch", false, "re-push whenever the entry file changes")
	pushCmd.Flags().BoolVar(&pushNoDownload, "no-download", false, "skip polling for outputs after the push")
}
