package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/koda-tools/koda/internal/config"
)

func init() {
	rootCmd.AddCommand(modelsCmd)
}

var modelsCmd = &cobra.Command{
	Use:     "models",
	Aliases: []string{"ls"},
	Short:   "List the configured model catalog",
	Args:    cobra.NoArgs,
	RunE:    runModels,
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if len(cfg.Models.Catalog) == 0 {
		fmt.Println("No models configured. Run 'koda config init' and edit the catalog.")
		return nil
	}

	for _, model := range cfg.Models.Catalog {
		if model == cfg.Models.Default {
			fmt.Printf("%s (default)\n", model)
		} else {
			fmt.Println(model)
		}
	}
	return nil
}
