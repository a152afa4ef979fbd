package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

var (
	searchStores []string
	searchFilter string
	searchModel  string
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Ask a question grounded in stores",
	Long: `Asks Gemini a question using the File Search tool over one or more stores.
Prints the generated answer followed by the sources it was grounded in.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVarP(&searchStores, "store", "s", nil, "store ID to search (repeatable)")
	searchCmd.Flags().StringVar(&searchFilter, "filter", "", "metadata filter expression")
	searchCmd.Flags().StringVar(&searchModel, "model", "", "generative model (default "+domain.DefaultSearchModel+")")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output result as JSON")
	_ = searchCmd.MarkFlagRequired("store")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	result, err := searchService.Search(cmd.Context(), domain.SearchQuery{
		Query:          args[0],
		StoreIDs:       searchStores,
		MetadataFilter: searchFilter,
		Model:          searchModel,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, result)
	}

	cmd.Println(result.Answer)
	if len(result.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, src := range result.Sources {
			cmd.Printf("  [%d] %s\n", i+1, src)
		}
	}
	return nil
}
