package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

var (
	storeJSON      bool
	storePageSize  int
	storePageToken string
	storeForce     bool
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage file search stores",
	Long:  `Create, list, inspect and delete Gemini File Search stores.`,
}

var storeCreateCmd = &cobra.Command{
	Use:   "create [display-name]",
	Short: "Create a store",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStoreCreate,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stores",
	Args:  cobra.NoArgs,
	RunE:  runStoreList,
}

var storeGetCmd = &cobra.Command{
	Use:   "get [store-id]",
	Short: "Show store info",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreGet,
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete [store-id]",
	Short: "Delete a store",
	Long:  `Deletes a store. Use --force to also delete the documents it contains.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreDelete,
}

func init() {
	storeCmd.PersistentFlags().BoolVar(&storeJSON, "json", false, "output as JSON")
	storeListCmd.Flags().IntVar(&storePageSize, "page-size", domain.DefaultPageSize, "stores per page (max 20)")
	storeListCmd.Flags().StringVar(&storePageToken, "page-token", "", "token from a previous listing")
	storeDeleteCmd.Flags().BoolVarP(&storeForce, "force", "f", false, "also delete the store's documents")

	storeCmd.AddCommand(storeCreateCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeGetCmd)
	storeCmd.AddCommand(storeDeleteCmd)
	rootCmd.AddCommand(storeCmd)
}

func runStoreCreate(cmd *cobra.Command, args []string) error {
	if storeService == nil {
		return errors.New("store service not configured")
	}

	displayName := ""
	if len(args) == 1 {
		displayName = args[0]
	}

	store, err := storeService.Create(cmd.Context(), displayName)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	if storeJSON {
		return printJSON(cmd, store)
	}
	cmd.Printf("Created store %s\n", store.ID())
	return nil
}

func runStoreList(cmd *cobra.Command, _ []string) error {
	if storeService == nil {
		return errors.New("store service not configured")
	}

	list, err := storeService.List(cmd.Context(), domain.PageRequest{
		PageSize:  storePageSize,
		PageToken: storePageToken,
	})
	if err != nil {
		return fmt.Errorf("failed to list stores: %w", err)
	}

	if storeJSON {
		return printJSON(cmd, list)
	}

	if len(list.Stores) == 0 {
		cmd.Println("No stores found.")
		return nil
	}

	cmd.Println("Stores:")
	cmd.Println()
	for _, st := range list.Stores {
		cmd.Printf("  %s\n", st.ID())
		if st.DisplayName != "" {
			cmd.Printf("    Name: %s\n", st.DisplayName)
		}
		cmd.Printf("    Documents: %d active, %d pending, %d failed\n",
			st.ActiveDocumentsCount, st.PendingDocumentsCount, st.FailedDocumentsCount)
		cmd.Println()
	}

	cmd.Printf("Total: %d stores\n", len(list.Stores))
	if list.NextPageToken != "" {
		cmd.Printf("Next page: --page-token %s\n", list.NextPageToken)
	}
	return nil
}

func runStoreGet(cmd *cobra.Command, args []string) error {
	if storeService == nil {
		return errors.New("store service not configured")
	}

	store, err := storeService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get store: %w", err)
	}

	if storeJSON {
		return printJSON(cmd, store)
	}

	cmd.Printf("Store: %s\n\n", store.ID())
	cmd.Printf("  Name:      %s\n", store.DisplayName)
	cmd.Printf("  Resource:  %s\n", store.Name)
	cmd.Printf("  Active:    %d\n", store.ActiveDocumentsCount)
	cmd.Printf("  Pending:   %d\n", store.PendingDocumentsCount)
	cmd.Printf("  Failed:    %d\n", store.FailedDocumentsCount)
	cmd.Printf("  Size:      %s\n", formatBytes(int64(store.SizeBytes)))
	cmd.Printf("  Created:   %s\n", formatTime(store.CreateTime))
	cmd.Printf("  Updated:   %s\n", formatTime(store.UpdateTime))
	return nil
}

func runStoreDelete(cmd *cobra.Command, args []string) error {
	if storeService == nil {
		return errors.New("store service not configured")
	}

	if err := storeService.Delete(cmd.Context(), args[0], storeForce); err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}

	cmd.Printf("Deleted store %s\n", args[0])
	return nil
}
