// Package orchestrator coordinates the push/poll/download lifecycle:
// sync the declarative config into the CLI's submission descriptor,
// push the kernel, record the run URL, and optionally poll the remote
// service until outputs land locally or a timeout elapses.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/kagglekit/kagglectl/internal/kagglecli"
	"github.com/kagglekit/kagglectl/internal/project"
	"github.com/kagglekit/kagglectl/pkg/termlog"
)

// State is one step of the submit/poll lifecycle.
type State string

const (
	StateIdle         State = "idle"
	StateSyncing      State = "syncing"
	StateSubmitting   State = "submitting"
	StateSubmitted    State = "submitted"
	StateSubmitFailed State = "submit_failed"
	StatePolling      State = "polling"
	StateComplete     State = "complete"
	StateTimedOut     State = "timed_out"
)

// Runner is the slice of the CLI invoker the orchestrator needs.
type Runner interface {
	Run(ctx context.Context, workDir string, args ...string) (kagglecli.Result, error)
}

// Outcome reports where a submission ended up. URL is empty when the
// push succeeded without printing a recognizable kernel URL.
type Outcome struct {
	State State
	URL   string
}

// Orchestrator drives one project's submissions. It is not safe for
// concurrent submissions of the same project and does not try to be;
// usage is human-paced and single-writer by convention.
type Orchestrator struct {
	run Runner
	dir string

	log          *termlog.Logger
	serviceURL   string
	interval     time.Duration
	timeout      time.Duration
	autoDownload bool
	onSubmitted  func(project.RunRecord)
	onState      func(State)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the log sink for lifecycle events.
func WithLogger(l *termlog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// WithServiceURL sets the base URL used to recognize kernel URLs in
// push output.
func WithServiceURL(base string) Option {
	return func(o *Orchestrator) { o.serviceURL = base }
}

// WithPollSettings sets the fetch interval and overall poll timeout.
// Callers are expected to have applied the 1s interval floor already
// (settings.Interval does).
func WithPollSettings(interval, timeout time.Duration) Option {
	return func(o *Orchestrator) {
		o.interval = interval
		o.timeout = timeout
	}
}

// WithAutoDownload controls whether Execute enters the poll loop after
// a successful push.
func WithAutoDownload(enabled bool) Option {
	return func(o *Orchestrator) { o.autoDownload = enabled }
}

// WithObserver registers a callback fired after a RunRecord is
// appended, so list views can refresh.
func WithObserver(fn func(project.RunRecord)) Option {
	return func(o *Orchestrator) { o.onSubmitted = fn }
}

// WithStateFunc registers a callback fired on every state transition.
func WithStateFunc(fn func(State)) Option {
	return func(o *Orchestrator) { o.onState = fn }
}

// New builds an Orchestrator for the project rooted at dir.
func New(run Runner, dir string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		run:        run,
		dir:        dir,
		log:        termlog.NewDefault(),
		serviceURL: "https://www.kaggle.com",
		interval:   5 * time.Second,
		timeout:    5 * time.Minute,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) setState(s State) {
	if o.onState != nil {
		o.onState(s)
	}
}

// Sync re-derives kernel-metadata.json from the config and persists
// both files. It runs before every submission so the descriptor the
// CLI reads never drifts from kaggle.yml.
func (o *Orchestrator) Sync(cfg *project.Config) error {
	if err := cfg.Save(o.dir); err != nil {
		return err
	}
	return cfg.Metadata().Save(o.dir)
}

// Submit syncs and pushes the kernel. A URL matching the service
// domain in the push output yields a RunRecord; no match is not an
// error. Push failures surface verbatim with no retry.
func (o *Orchestrator) Submit(ctx context.Context, cfg *project.Config) (Outcome, error) {
	runID := shortID()

	o.setState(StateSyncing)
	if err := o.Sync(cfg); err != nil {
		o.setState(StateSubmitFailed)
		return Outcome{State: StateSubmitFailed}, err
	}

	o.setState(StateSubmitting)
	o.log.Info("pushing kernel", "slug", cfg.KernelSlug, "run_id", runID)
	res, err := o.run.Run(ctx, o.dir, "kernels", "push", "-p", ".")
	if err != nil {
		o.setState(StateSubmitFailed)
		return Outcome{State: StateSubmitFailed}, err
	}

	outcome := Outcome{State: StateSubmitted}
	if url := ExtractURL(res.Combined(), o.serviceURL); url != "" {
		rec := project.RunRecord{Timestamp: time.Now(), URL: url}
		if err := project.AppendRun(o.dir, rec); err != nil {
			return Outcome{State: StateSubmitFailed}, err
		}
		if o.onSubmitted != nil {
			o.onSubmitted(rec)
		}
		outcome.URL = url
		o.log.Info("kernel submitted", "url", url, "run_id", runID)
	} else {
		o.log.Warn("push succeeded but no kernel URL found in output", "run_id", runID)
	}

	o.setState(StateSubmitted)
	return outcome, nil
}

// Poll fetches outputs at the configured interval until the download
// directory is non-empty or the timeout elapses. Fetch failures are
// treated as "not ready yet" and swallowed; only the timeout or the
// caller's context stops the loop.
func (o *Orchestrator) Poll(ctx context.Context, cfg *project.Config) (State, error) {
	outDir := filepath.Join(o.dir, cfg.Outputs.DownloadTo)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return StateIdle, fmt.Errorf("creating output dir: %w", err)
	}

	o.setState(StatePolling)
	o.log.Info("waiting for outputs", "slug", cfg.KernelSlug,
		"interval", o.interval.String(), "timeout", o.timeout.String())

	start := time.Now()
	attempt := 0
	for {
		if time.Since(start) > o.timeout {
			o.setState(StateTimedOut)
			o.log.Warn("timed out waiting for outputs", "attempts", fmt.Sprint(attempt))
			return StateTimedOut, nil
		}

		attempt++
		if _, err := o.fetchOutputs(ctx, cfg, outDir); err != nil {
			// not ready yet, or a real failure we cannot tell apart;
			// the timeout bounds how long we keep trying
			o.log.Debug("outputs not ready", "attempt", fmt.Sprint(attempt), "err", err.Error())
		}
		if dirNonEmpty(outDir) {
			o.setState(StateComplete)
			o.log.Info("outputs downloaded", "dir", outDir, "attempts", fmt.Sprint(attempt))
			return StateComplete, nil
		}

		select {
		case <-ctx.Done():
			return StateTimedOut, ctx.Err()
		case <-time.After(o.interval):
		}
	}
}

// Execute runs the full lifecycle: submit, then poll when auto-download
// is on and the project has a kernel slug to fetch from.
func (o *Orchestrator) Execute(ctx context.Context, cfg *project.Config) (Outcome, error) {
	outcome, err := o.Submit(ctx, cfg)
	if err != nil {
		return outcome, err
	}
	if !o.autoDownload || cfg.KernelSlug == "" {
		return outcome, nil
	}

	state, err := o.Poll(ctx, cfg)
	outcome.State = state
	return outcome, err
}

// Pull performs a single output fetch with no polling.
func (o *Orchestrator) Pull(ctx context.Context, cfg *project.Config) error {
	outDir := filepath.Join(o.dir, cfg.Outputs.DownloadTo)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	_, err := o.fetchOutputs(ctx, cfg, outDir)
	return err
}

func (o *Orchestrator) fetchOutputs(ctx context.Context, cfg *project.Config, outDir string) (kagglecli.Result, error) {
	return o.run.Run(ctx, o.dir, "kernels", "output", cfg.KernelSlug, "-p", outDir)
}

func dirNonEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

// ExtractURL returns the first substring of text that looks like a
// kernel URL under base, or "" when none is present. Trailing sentence
// punctuation is not part of the URL.
func ExtractURL(text, base string) string {
	re := regexp.MustCompile(regexp.QuoteMeta(base) + `/\S+`)
	m := re.FindString(text)
	if m == "" {
		return ""
	}
	return trimTrailingPunct(m)
}

func trimTrailingPunct(s string) string {
	for len(s) > 0 {
		switch s[len(s)-1] {
		case '.', ',', ')', ']', '\'', '"', ';':
			s = s[:len(s)-1]
		default:
			return s
		}
	}
	return s
}

func shortID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()[:8]
	}
	return id.String()[:8]
}
