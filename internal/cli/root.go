// Package cli implements the koda command-line interface using Cobra.
// Each subcommand maps to one workbench tool (pull, ask, grep, ...).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "koda",
	Short: "A command-line workbench for local LLMs",
	Long: `koda is a command-line workbench for local language models:
batch-pull the base models referenced by your Modelfiles, ask a coding
question with file context, filter files against an LLM criteria,
translate text, and clean up decompiler output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
