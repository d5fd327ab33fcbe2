package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/koda-tools/koda/internal/domain"
)

// Decompiler feeds raw decompiler output through an enhancement model
// and optionally through a source formatter.
type Decompiler struct {
	Client        domain.GenerateClient
	Runner        domain.CommandRunner
	Model         string
	ContextLength int
	Formatter     string    // e.g. "clang-format"; empty disables formatting
	ErrOut        io.Writer // Formatter diagnostics; defaults to os.Stderr
}

// Enhance rewrites the input with the enhancement model. Unless raw is
// set, the result is piped through the formatter; a formatter failure
// falls back to the unformatted code rather than losing the output.
func (d *Decompiler) Enhance(ctx context.Context, input string, raw bool, style string) (string, error) {
	code, err := d.Client.Generate(ctx, d.Model, strings.TrimSpace(input), d.ContextLength)
	if err != nil {
		return "", err
	}

	if raw || d.Formatter == "" {
		return code, nil
	}
	return d.format(ctx, code, style), nil
}

func (d *Decompiler) format(ctx context.Context, code, style string) string {
	var args []string
	if style != "" {
		args = append(args, "--style", style)
	}

	out, err := d.Runner.Output(ctx, strings.NewReader(code), d.Formatter, args...)
	if err != nil {
		errOut := d.ErrOut
		if errOut == nil {
			errOut = os.Stderr
		}
		fmt.Fprintf(errOut, "error running %s: %v\n", d.Formatter, err)
		return code
	}
	return strings.TrimSpace(string(out))
}
