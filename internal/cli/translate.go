package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/koda-tools/koda/internal/app"
	"github.com/koda-tools/koda/internal/config"
)

func init() {
	translateCmd.Flags().StringVarP(&translateModel, "model", "m", "", "Model to use (prefix match against the catalog)")
	translateCmd.Flags().StringVarP(&translateLanguage, "language", "l", "English", "Language to translate the text into")
	rootCmd.AddCommand(translateCmd)
}

var (
	translateModel    string
	translateLanguage string
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate text from stdin",
	Long:  `Read text from stdin and stream its translation to stdout.`,
	Args:  cobra.NoArgs,
	RunE:  runTranslate,
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	model, err := cfg.ResolveModel(translateModel)
	if err != nil {
		return err
	}

	client, err := newChatClient(cfg)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	input := strings.TrimSpace(string(data))
	if input == "" {
		return fmt.Errorf("nothing to translate")
	}

	t := &app.Translator{Client: client, Model: model}
	report, err := t.Translate(cmd.Context(), translateLanguage, input)
	if err != nil {
		return err
	}

	printReport(report)
	recordInvocation(cfg, "translate", model, report)
	return nil
}
