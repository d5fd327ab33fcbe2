package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/koda-tools/koda/internal/domain"
)

// Puller extracts the base model from each Modelfile in a batch and hands
// it to the external pull tool. Files are processed strictly in order,
// one at a time, with no state carried between them.
type Puller struct {
	Runner domain.CommandRunner
	Tool   string    // Pull tool binary, e.g. "ollama"
	Args   []string  // Arguments placed before the model name, e.g. ["pull"]
	Out    io.Writer // Progress and per-file diagnostics; defaults to os.Stdout
}

// PullFiles scans each path for a FROM directive and invokes the pull tool
// with the referenced model, waiting for each invocation to finish before
// moving on.
//
// A file without a usable FROM directive is reported and skipped. A file
// that cannot be opened, or a pull invocation that exits non-zero, aborts
// the whole batch; remaining files are never touched.
func (p *Puller) PullFiles(ctx context.Context, paths []string) error {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}

		mf, perr := ParseModelfile(f)
		f.Close()
		if perr != nil {
			if errors.Is(perr, domain.ErrNoFromDirective) {
				fmt.Fprintf(out, "no FROM directive in %s, skipping\n", path)
				continue
			}
			return fmt.Errorf("parse %s: %w", path, perr)
		}

		fmt.Fprintf(out, "pulling %s\n", mf.From)

		args := append(append([]string{}, p.Args...), mf.From)
		if err := p.Runner.Run(ctx, p.Tool, args...); err != nil {
			return fmt.Errorf("pull %s: %w", mf.From, err)
		}
	}

	return nil
}
