package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var modelsJSON bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models that can answer searches",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

func init() {
	modelsCmd.Flags().BoolVar(&modelsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	models, err := searchService.ListModels(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	if modelsJSON {
		return printJSON(cmd, models)
	}

	if len(models) == 0 {
		cmd.Println("No models found.")
		return nil
	}
	for _, m := range models {
		if m.DisplayName != "" {
			cmd.Printf("  %-32s %s\n", m.Name, m.DisplayName)
		} else {
			cmd.Printf("  %s\n", m.Name)
		}
	}
	return nil
}
