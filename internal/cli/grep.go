package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/koda-tools/koda/internal/app"
	"github.com/koda-tools/koda/internal/config"
)

func init() {
	grepCmd.Flags().StringVarP(&grepModel, "model", "m", "", "Model to use (prefix match against the catalog)")
	rootCmd.AddCommand(grepCmd)
}

var grepModel string

var grepCmd = &cobra.Command{
	Use:   "grep CRITERIA",
	Short: "Filter file paths from stdin against an LLM criteria",
	Long: `Read file paths from stdin, one per line (a blank line stops input),
and print the paths whose contents match the criteria. Binary files
are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runGrep,
}

func runGrep(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	model, err := cfg.ResolveModel(grepModel)
	if err != nil {
		return err
	}

	client, err := newChatClient(cfg)
	if err != nil {
		return err
	}

	g := &app.Grep{Client: client, Model: model, Criteria: args[0]}
	return g.Run(cmd.Context(), os.Stdin, os.Stdout, os.Stderr)
}
