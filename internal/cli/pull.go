package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/koda-tools/koda/internal/app"
	"github.com/koda-tools/koda/internal/config"
	"github.com/koda-tools/koda/internal/infra/runner"
)

func init() {
	pullCmd.Flags().StringVar(&pullTool, "tool", "", "Override the configured pull tool binary")
	rootCmd.AddCommand(pullCmd)
}

var pullTool string

var pullCmd = &cobra.Command{
	Use:   "pull MODELFILE...",
	Short: "Pull the base model referenced by each Modelfile",
	Long: `Scan each Modelfile for its FROM directive and pull the referenced
base model with the external pull tool (ollama by default).

Files without a FROM directive are reported and skipped. A failed pull
aborts the remaining files.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
			return fmt.Errorf("requires at least one Modelfile argument")
		}
		return nil
	},
	RunE: runPull,
}

func runPull(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	tool := cfg.Pull.Tool
	if pullTool != "" {
		tool = pullTool
	}

	p := &app.Puller{
		Runner: runner.New(),
		Tool:   tool,
		Args:   cfg.Pull.Args,
	}
	return p.PullFiles(cmd.Context(), args)
}
