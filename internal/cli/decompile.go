package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/koda-tools/koda/internal/app"
	"github.com/koda-tools/koda/internal/config"
	"github.com/koda-tools/koda/internal/infra/llm"
	"github.com/koda-tools/koda/internal/infra/runner"
)

func init() {
	decompileCmd.Flags().BoolVarP(&decompileRaw, "raw", "r", false, "Print the output without formatting")
	decompileCmd.Flags().StringVar(&decompileStyle, "style", "", "Style passed to the formatter")
	rootCmd.AddCommand(decompileCmd)
}

var (
	decompileRaw   bool
	decompileStyle string
)

var decompileCmd = &cobra.Command{
	Use:   "decompile",
	Short: "Enhance decompiler output with an LLM",
	Long: `Read raw decompiler output (e.g. from Ghidra) on stdin, rewrite it
with the enhancement model, and print the cleaned-up source. The result
runs through clang-format unless --raw is set.`,
	Args: cobra.NoArgs,
	RunE: runDecompile,
}

func runDecompile(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	d := &app.Decompiler{
		Client:        llm.NewOllamaClient(cfg.API.OllamaHost),
		Runner:        runner.New(),
		Model:         cfg.Decompile.Model,
		ContextLength: cfg.Decompile.ContextLength,
		Formatter:     cfg.Decompile.Formatter,
	}

	code, err := d.Enhance(cmd.Context(), string(data), decompileRaw, decompileStyle)
	if err != nil {
		return err
	}

	fmt.Println(code)
	return nil
}
