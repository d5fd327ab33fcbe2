package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/koda-tools/koda/internal/app"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show MODELFILE",
	Short: "Show the parsed directives of a Modelfile",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	mf, err := app.ParseModelfile(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}

	fmt.Printf("From: %s\n", mf.From)
	if mf.Adapter != "" {
		fmt.Printf("Adapter: %s\n", mf.Adapter)
	}

	if len(mf.Parameters) > 0 {
		fmt.Println("Parameters:")
		keys := make([]string, 0, len(mf.Parameters))
		for k := range mf.Parameters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			for _, v := range mf.Parameters[k] {
				fmt.Printf("  %s %s\n", k, v)
			}
		}
	}

	if mf.System != "" {
		fmt.Printf("System:\n%s\n", indent(mf.System))
	}
	if mf.Template != "" {
		fmt.Printf("Template:\n%s\n", indent(mf.Template))
	}
	if mf.License != "" {
		fmt.Printf("License:\n%s\n", indent(mf.License))
	}

	return nil
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
