package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

var (
	documentJSON      bool
	documentPageSize  int
	documentPageToken string
	documentForce     bool
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage documents in a store",
	Long:  `List, view, or delete documents ingested into a file search store.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list [store-id]",
	Short: "List documents in a store",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [store-id] [document-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentGet,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [store-id] [document-id]",
	Short: "Delete a document",
	Long:  `Removes a document from a store. Use --force to also delete its chunks.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentDelete,
}

func init() {
	documentCmd.PersistentFlags().BoolVar(&documentJSON, "json", false, "output as JSON")
	documentListCmd.Flags().IntVar(&documentPageSize, "page-size", domain.DefaultPageSize, "documents per page (max 20)")
	documentListCmd.Flags().StringVar(&documentPageToken, "page-token", "", "token from a previous listing")
	documentDeleteCmd.Flags().BoolVarP(&documentForce, "force", "f", false, "also delete the document's chunks")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	storeID := args[0]
	list, err := documentService.List(cmd.Context(), storeID, domain.PageRequest{
		PageSize:  documentPageSize,
		PageToken: documentPageToken,
	})
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if documentJSON {
		return printJSON(cmd, list)
	}

	if len(list.Documents) == 0 {
		cmd.Printf("No documents found in store: %s\n", storeID)
		return nil
	}

	cmd.Printf("Documents in store %s:\n\n", storeID)
	for i := range list.Documents {
		doc := &list.Documents[i]
		cmd.Printf("  %s\n", doc.ID())
		if doc.DisplayName != "" {
			cmd.Printf("    Name: %s\n", doc.DisplayName)
		}
		cmd.Printf("    State: %s\n", doc.State)
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(list.Documents))
	if list.NextPageToken != "" {
		cmd.Printf("Next page: --page-token %s\n", list.NextPageToken)
	}
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	if documentJSON {
		return printJSON(cmd, doc)
	}

	cmd.Printf("Document: %s\n\n", doc.ID())
	cmd.Printf("  Name:     %s\n", doc.DisplayName)
	cmd.Printf("  Resource: %s\n", doc.Name)
	cmd.Printf("  State:    %s\n", doc.State)
	cmd.Printf("  Type:     %s\n", doc.MIMEType)
	cmd.Printf("  Size:     %s\n", formatBytes(int64(doc.SizeBytes)))
	cmd.Printf("  Created:  %s\n", formatTime(doc.CreateTime))
	cmd.Printf("  Updated:  %s\n", formatTime(doc.UpdateTime))

	if len(doc.CustomMetadata) > 0 {
		cmd.Println("\n  Metadata:")
		for _, md := range doc.CustomMetadata {
			cmd.Printf("    %s: %s\n", md.Key, metadataValue(md))
		}
	}
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(cmd.Context(), args[0], args[1], documentForce); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document %s\n", args[1])
	return nil
}

func metadataValue(md domain.CustomMetadata) string {
	switch {
	case md.StringValue != nil:
		return *md.StringValue
	case md.NumericValue != nil:
		return fmt.Sprintf("%g", *md.NumericValue)
	case md.StringListValue != nil:
		return fmt.Sprintf("%v", md.StringListValue.Values)
	default:
		return ""
	}
}
