// Package cli implements the filesearch command line.
//
// Commands talk to the core through driving ports held in package variables.
// Ports left nil are built from configuration before a command runs, so tests
// and embedders can inject their own implementations with SetServices.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/filesearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/filesearch/internal/adapters/driven/gemini"
	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/core/ports/driving"
	"github.com/custodia-labs/filesearch/internal/core/services"
	"github.com/custodia-labs/filesearch/internal/logger"
	"github.com/custodia-labs/filesearch/internal/normalisers/grounding"
)

// version is set at build time via SetVersion.
var version = "dev"

var (
	storeService    driving.StoreService
	documentService driving.DocumentService
	mediaService    driving.MediaService
	searchService   driving.SearchService
	settingsService driving.SettingsService

	// appSettings is the configuration resolved before each command.
	appSettings = domain.DefaultSettings()
)

var (
	configPath string
	envFile    string
	verbose    bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "filesearch",
	Short: "Gemini File Search backend and CLI",
	Long: `filesearch manages Gemini File Search stores, ingests documents and
answers grounded questions over them.

Run "filesearch serve" to start the JSON API used by the web front end, or use
the store, document, upload and search commands directly.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initialise,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.filesearch/config.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// Services holds the driving ports used by commands.
type Services struct {
	Stores    driving.StoreService
	Documents driving.DocumentService
	Media     driving.MediaService
	Search    driving.SearchService
	Settings  driving.SettingsService
}

// SetServices injects driving ports. Nil fields are built from configuration.
func SetServices(s Services) {
	storeService = s.Stores
	documentService = s.Documents
	mediaService = s.Media
	searchService = s.Search
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// initialise loads configuration, applies logging settings and wires any
// services that were not injected.
func initialise(_ *cobra.Command, _ []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if settingsService == nil {
		store, err := file.NewConfigStore(configPath)
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		settingsService = services.NewSettingsService(file.WithEnv(store))
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	appSettings = settings

	level := settings.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if err := logger.SetLevel(level); err != nil {
		return err
	}
	if verbose {
		logger.SetVerbose(true)
	}

	return wireServices(settings)
}

// wireServices builds the upstream client and any nil service from settings.
func wireServices(settings domain.Settings) error {
	if storeService != nil && documentService != nil && mediaService != nil && searchService != nil {
		return nil
	}

	if !settings.HasAPIKey() {
		logger.Warn("no API key configured, upstream calls will fail",
			"env", file.EnvBindings[services.KeyAPIKey],
			"config_key", services.KeyAPIKey,
		)
	}

	client, err := gemini.NewClient(gemini.ConfigFromSettings(settings, &http.Client{}))
	if err != nil {
		return fmt.Errorf("creating upstream client: %w", err)
	}

	if storeService == nil {
		storeService = services.NewStoreService(client)
	}
	if documentService == nil {
		documentService = services.NewDocumentService(client)
	}
	if mediaService == nil {
		mediaService = services.NewMediaService(client, gemini.NewUploader(client), settings)
	}
	if searchService == nil {
		searchService = services.NewSearchService(client, grounding.New())
	}
	return nil
}
