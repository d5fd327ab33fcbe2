package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/koda-tools/koda/internal/config"
	"github.com/koda-tools/koda/internal/domain"
	"github.com/koda-tools/koda/internal/infra/history"
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of invocations to show")
	rootCmd.AddCommand(historyCmd)
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent LLM invocations",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(config.KodaHome())
	if err != nil {
		return err
	}
	defer store.Close()

	return printHistory(cmd.OutOrStdout(), store, historyLimit)
}

// printHistory renders the invocation table from any store implementation.
func printHistory(w io.Writer, store domain.InvocationStore, limit int) error {
	invocations, err := store.List(limit)
	if err != nil {
		return err
	}

	if len(invocations) == 0 {
		fmt.Fprintln(w, "No invocations recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tCOMMAND\tMODEL\tTOKENS\tDURATION")
	for _, inv := range invocations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			inv.Timestamp.Format("2006-01-02 15:04"),
			inv.Command,
			inv.Model,
			inv.Usage.TotalTokens,
			inv.Duration.Round(100*time.Millisecond),
		)
	}
	return tw.Flush()
}
