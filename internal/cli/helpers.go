package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/koda-tools/koda/internal/app"
	"github.com/koda-tools/koda/internal/config"
	"github.com/koda-tools/koda/internal/domain"
	"github.com/koda-tools/koda/internal/infra/history"
	"github.com/koda-tools/koda/internal/infra/llm"
)

// newChatClient builds the streaming chat client from config.
func newChatClient(cfg config.Config) (*llm.Client, error) {
	return llm.NewClient(cfg.API.BaseURL, cfg.API.Key)
}

// recordInvocation appends one usage row to the history store.
// Best-effort: history failures never break the command itself.
func recordInvocation(cfg config.Config, command, model string, report app.Report) {
	if !cfg.History.Enabled || report.Start.IsZero() {
		return
	}

	store, err := history.Open(config.KodaHome())
	if err != nil {
		log.Printf("[history] open: %v", err)
		return
	}
	defer store.Close()

	inv := domain.Invocation{
		ID:        uuid.New().String(),
		Timestamp: report.Start,
		Command:   command,
		Model:     model,
		Usage:     report.Usage,
		Duration:  report.Duration(),
	}
	if err := store.Record(inv); err != nil {
		log.Printf("[history] record: %v", err)
	}
}

// printReport writes the usage stats block to stderr.
func printReport(report app.Report) {
	for _, line := range report.Lines() {
		fmt.Fprintln(os.Stderr, line)
	}
}
