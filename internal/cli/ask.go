package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/koda-tools/koda/internal/api"
	"github.com/koda-tools/koda/internal/app"
	"github.com/koda-tools/koda/internal/config"
	"github.com/koda-tools/koda/internal/infra/runner"
)

func init() {
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "Model to use (prefix match against the catalog)")
	askCmd.Flags().BoolVarP(&askNoRender, "no-render", "n", false, "Skip the browser transcript preview")
	rootCmd.AddCommand(askCmd)
}

var (
	askModel    string
	askNoRender bool
)

var askCmd = &cobra.Command{
	Use:   "ask PROMPT [FILE...]",
	Short: "Ask the coding assistant, with optional file context",
	Long: `Ask a one-shot question. Any FILE arguments are sent to the model as
context before the question. The answer streams to stdout; a rendered
transcript opens in the browser afterwards unless --no-render is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	model, err := cfg.ResolveModel(askModel)
	if err != nil {
		return err
	}

	client, err := newChatClient(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Model: %s\n", model)

	prompt, contextFiles := args[0], args[1:]

	assistant := &app.Assistant{Client: client, Model: model}
	response, report, err := assistant.Ask(cmd.Context(), prompt, contextFiles)
	if err != nil {
		return err
	}

	printReport(report)
	recordInvocation(cfg, "ask", model, report)

	if askNoRender {
		return nil
	}
	return renderTranscript(cmd.Context(), cfg, model, prompt, contextFiles, response, report.ThinkingTime)
}

// renderTranscript shows the ask session in the browser, falling back
// to a saved Markdown file when pandoc is not installed.
func renderTranscript(ctx context.Context, cfg config.Config, model, prompt string, contextFiles []string, response string, thinkingTime time.Duration) error {
	r := runner.New()
	markdown := app.BuildTranscript(model, prompt, contextFiles, response, thinkingTime)

	if _, err := r.LookPath(cfg.Render.Pandoc); err != nil {
		path := filepath.Join(os.TempDir(), fmt.Sprintf("koda-%s.md", uuid.New().String()[:8]))
		if werr := os.WriteFile(path, markdown, 0600); werr != nil {
			return werr
		}
		fmt.Fprintf(os.Stderr, "pandoc not found, transcript saved to %s\n", path)
		return nil
	}

	preview := &api.Preview{
		Runner:  r,
		Pandoc:  cfg.Render.Pandoc,
		Browser: cfg.Render.Browser,
		Host:    cfg.Render.Host,
	}

	page, err := preview.Render(ctx, markdown, "Koda")
	if err != nil {
		return fmt.Errorf("render transcript: %w", err)
	}
	return preview.Show(ctx, page)
}
