// Package kagglecli invokes the external kaggle CLI binary. Every call
// re-probes the binary before spawning; the binary can be installed or
// removed between calls and this tool is human-paced, so the extra
// probe latency is acceptable.
package kagglecli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/kagglekit/kagglectl/internal/creds"
	"github.com/kagglekit/kagglectl/internal/shellquote"
	"github.com/kagglekit/kagglectl/pkg/kerr"
)

const (
	// DefaultBinary is the kaggle CLI executable name resolved via PATH.
	DefaultBinary = "kaggle"

	// EnvUsername and EnvKey are how credentials reach the CLI. They are
	// layered onto the environment, never placed in argv, so secrets do
	// not show up in process listings.
	EnvUsername = "KAGGLE_USERNAME"
	EnvKey      = "KAGGLE_KEY"
)

// Result carries the captured output of one invocation.
type Result struct {
	Stdout string
	Stderr string
}

// Combined returns stdout followed by stderr, for callers that scan
// output text without caring which stream a line came from.
func (r Result) Combined() string {
	if r.Stderr == "" {
		return r.Stdout
	}
	return r.Stdout + "\n" + r.Stderr
}

// Resolver supplies credentials at invocation time.
type Resolver func() (creds.Credentials, error)

// Invoker runs kaggle CLI subcommands with credentials injected into
// the environment. The echo sink receives a quoted rendering of each
// command line plus the subprocess output, giving the user one visible
// stream of what the tool did on their behalf.
type Invoker struct {
	Binary  string
	resolve Resolver
	echo    io.Writer
}

// New builds an Invoker. A nil resolver defaults to creds.Resolve and a
// nil echo sink discards the echoed stream.
func New(binary string, resolver Resolver, echo io.Writer) *Invoker {
	if binary == "" {
		binary = DefaultBinary
	}
	if resolver == nil {
		resolver = creds.Resolve
	}
	if echo == nil {
		echo = io.Discard
	}
	return &Invoker{Binary: binary, resolve: resolver, echo: echo}
}

// Probe checks that the binary exists and answers a version query.
func (v *Invoker) Probe(ctx context.Context) error {
	path, err := exec.LookPath(v.Binary)
	if err != nil {
		return kerr.Newf(kerr.CodeCliUnavailable,
			"%q not found on PATH; install it with 'pip install kaggle'", v.Binary)
	}
	if err := exec.CommandContext(ctx, path, "--version").Run(); err != nil {
		return kerr.Newf(kerr.CodeCliUnavailable,
			"%q is present but failed a version probe: %v", v.Binary, err)
	}
	return nil
}

// Run probes the binary, resolves credentials, and executes one
// subcommand. workDir may be empty for the current directory. A
// non-zero exit is a cli_error carrying the captured streams.
func (v *Invoker) Run(ctx context.Context, workDir string, args ...string) (Result, error) {
	if err := v.Probe(ctx); err != nil {
		return Result{}, err
	}

	cr, err := v.resolve()
	if err != nil {
		return Result{}, err
	}

	cmd := exec.CommandContext(ctx, v.Binary, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("%s=%s", EnvUsername, cr.Username),
		fmt.Sprintf("%s=%s", EnvKey, cr.Key),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	fmt.Fprintf(v.echo, "$ %s\n", shellquote.Join(append([]string{v.Binary}, args...)))

	runErr := cmd.Run()

	res := Result{
		Stdout: strings.TrimRight(stdout.String(), "\n"),
		Stderr: strings.TrimRight(stderr.String(), "\n"),
	}
	if res.Stdout != "" {
		fmt.Fprintln(v.echo, res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprintln(v.echo, res.Stderr)
	}

	if runErr != nil {
		detail := res.Stderr
		if detail == "" {
			detail = res.Stdout
		}
		if detail == "" {
			detail = runErr.Error()
		}
		return res, kerr.Newf(kerr.CodeCliError, "%s %s: %s",
			v.Binary, strings.Join(args, " "), detail)
	}
	return res, nil
}
