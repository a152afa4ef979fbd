package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

var (
	uploadDisplayName string
	uploadMIMEType    string
	uploadMetadata    []string
	uploadNumeric     []string
	uploadMaxTokens   int
	uploadOverlap     int
	uploadWait        bool
	uploadJSON        bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload [store-id] [file]",
	Short: "Upload a file into a store",
	Long: `Uploads a local file and imports it into a file search store.

The command returns once the upstream has accepted the import. Use --wait to
poll the ingestion operation until it finishes.`,
	Args: cobra.ExactArgs(2),
	RunE: runUpload,
}

var importCmd = &cobra.Command{
	Use:   "import [store-id] [file-name]",
	Short: "Import an uploaded file into a store",
	Long:  `Imports a file previously uploaded to the Files API (files/{id} or a bare ID) into a store.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runImport,
}

func init() {
	for _, c := range []*cobra.Command{uploadCmd, importCmd} {
		c.Flags().StringArrayVarP(&uploadMetadata, "metadata", "m", nil, "string metadata as key=value (repeatable)")
		c.Flags().StringArrayVar(&uploadNumeric, "numeric-metadata", nil, "numeric metadata as key=number (repeatable)")
		c.Flags().IntVar(&uploadMaxTokens, "max-tokens-per-chunk", domain.DefaultMaxTokensPerChunk, "maximum tokens per chunk")
		c.Flags().IntVar(&uploadOverlap, "max-overlap-tokens", domain.DefaultMaxOverlapTokens, "maximum overlapping tokens between chunks")
		c.Flags().BoolVarP(&uploadWait, "wait", "w", false, "wait for ingestion to finish")
		c.Flags().BoolVar(&uploadJSON, "json", false, "output the operation as JSON")
	}
	uploadCmd.Flags().StringVarP(&uploadDisplayName, "display-name", "n", "", "display name (default: file name)")
	uploadCmd.Flags().StringVar(&uploadMIMEType, "mime-type", "", "content type (default: detected from extension)")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(importCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if mediaService == nil {
		return errors.New("media service not configured")
	}

	storeID, path := args[0], args[1]
	metadata, err := parseMetadata(uploadMetadata, uploadNumeric)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > appSettings.MaxUploadSize {
		return fmt.Errorf("%w: %s is %s, limit is %s", domain.ErrFileTooLarge, path,
			formatBytes(info.Size()), formatBytes(appSettings.MaxUploadSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	op, err := mediaService.Upload(cmd.Context(), domain.UploadRequest{
		StoreID: storeID,
		File: domain.FileContent{
			Name:     filepath.Base(path),
			Data:     data,
			MIMEType: uploadMIMEType,
		},
		DisplayName:    uploadDisplayName,
		CustomMetadata: metadata,
		Chunking:       domain.ChunkingConfig{MaxTokensPerChunk: uploadMaxTokens, MaxOverlapTokens: uploadOverlap},
	})
	if err != nil {
		return fmt.Errorf("failed to upload: %w", err)
	}

	return reportOperation(cmd, op, uploadWait, uploadJSON)
}

func runImport(cmd *cobra.Command, args []string) error {
	if mediaService == nil {
		return errors.New("media service not configured")
	}

	metadata, err := parseMetadata(uploadMetadata, uploadNumeric)
	if err != nil {
		return err
	}

	op, err := mediaService.Import(cmd.Context(), domain.ImportRequest{
		StoreID:        args[0],
		FileName:       args[1],
		CustomMetadata: metadata,
		Chunking:       domain.ChunkingConfig{MaxTokensPerChunk: uploadMaxTokens, MaxOverlapTokens: uploadOverlap},
	})
	if err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}

	return reportOperation(cmd, op, uploadWait, uploadJSON)
}

// reportOperation prints an accepted operation, optionally waiting for it.
func reportOperation(cmd *cobra.Command, op *domain.Operation, wait, asJSON bool) error {
	if wait && !op.Done {
		var err error
		op, err = waitForOperation(cmd, op.Name, operationInterval, operationTimeout)
		if err != nil {
			return err
		}
	}

	if asJSON {
		return printJSON(cmd, op)
	}
	printOperation(cmd, op)
	if op.Failed() {
		return fmt.Errorf("operation %s failed: %s", op.Name, op.Error.Message)
	}
	return nil
}

// parseMetadata builds custom metadata from key=value flags.
func parseMetadata(strs, numbers []string) ([]domain.CustomMetadata, error) {
	var md []domain.CustomMetadata
	for _, kv := range strs {
		key, value, err := splitPair(kv)
		if err != nil {
			return nil, err
		}
		md = append(md, domain.StringMetadata(key, value))
	}
	for _, kv := range numbers {
		key, raw, err := splitPair(kv)
		if err != nil {
			return nil, err
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: metadata %q is not a number", domain.ErrInvalidInput, key)
		}
		md = append(md, domain.NumericMetadata(key, value))
	}
	return md, nil
}

func splitPair(kv string) (string, string, error) {
	key, value, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("%w: metadata must be key=value, got %q", domain.ErrInvalidInput, kv)
	}
	return key, value, nil
}
