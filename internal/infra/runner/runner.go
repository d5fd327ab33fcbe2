// Package runner executes external commands on behalf of koda.
// It is the single place where child processes are spawned; everything
// above it depends on domain.CommandRunner so tests can substitute a fake.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ExecRunner runs commands via os/exec with the caller's stdio attached.
// It implements domain.CommandRunner.
type ExecRunner struct {
	Stdout io.Writer // Defaults to os.Stdout
	Stderr io.Writer // Defaults to os.Stderr
}

// New returns an ExecRunner wired to the process stdio.
func New() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args, streaming the command's output directly
// to stdout/stderr. Interactive tools (progress bars, prompts) work
// unmodified. Blocks until the command exits.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Output executes name with args, feeding stdin (may be nil) and
// capturing stdout. Stderr passes through for diagnostics.
func (r *ExecRunner) Output(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = r.stderr()

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out.Bytes(), nil
}

// LookPath reports the resolved path of an executable.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
