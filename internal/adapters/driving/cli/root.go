// Package cli provides the command-line interface for the Arke MCP server.
// Besides serving MCP, it mirrors each tool as a command so operators can
// see exactly what an assistant would receive.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/arke-mcp/internal/adapters/driven/arke"
	"github.com/custodia-labs/arke-mcp/internal/adapters/driven/config/file"
	"github.com/custodia-labs/arke-mcp/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/arke-mcp/internal/core/domain"
	"github.com/custodia-labs/arke-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/arke-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/arke-mcp/internal/core/services"
	"github.com/custodia-labs/arke-mcp/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	ephemeral bool
)

// Wired services. Tests replace these with mocks before executing commands.
var (
	configStore     driven.ConfigStore
	settingsService driving.SettingsService
	searchService   driving.SearchService
	entityService   driving.EntityService
	ocrService      driving.OCRService
	toolConfig      domain.ToolConfig
)

var rootCmd = &cobra.Command{
	Use:   "arke-mcp",
	Short: "MCP server for the Arke archive",
	Long: `arke-mcp exposes the Arke archive of NARA records and presidential
libraries to AI assistants over the Model Context Protocol.

Three tools are served: semantic search, entity retrieval and OCR text
extraction. Each is also available as a command for manual use.`,
	SilenceUsage:      true,
	PersistentPreRunE: initSettings,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.arke)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "ignore the config file and use defaults")
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logger.Sync()

	return rootCmd.ExecuteContext(ctx)
}

// initSettings opens the config store and applies the log settings.
func initSettings(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if settingsService == nil {
		store, err := openConfigStore()
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		configStore = store
		settingsService = services.NewSettingsService(store)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if err := logger.SetLevel(settings.Log.Level); err != nil {
		logger.Warn("Ignoring log.level: %v", err)
	}
	return nil
}

func openConfigStore() (driven.ConfigStore, error) {
	if ephemeral {
		return memory.NewConfigStore(), nil
	}
	return file.NewConfigStore(configDir)
}

// ensureServices wires the gateway client and core services on first use.
// The namespace catalog is fetched here, once per process.
func ensureServices(ctx context.Context) error {
	if searchService != nil && entityService != nil && ocrService != nil {
		return nil
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if err := settingsService.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	client := arke.NewClient(arke.ConfigFromSettings(settings.Gateway))
	catalog := services.LoadCatalog(ctx, client, settings.Search.Namespaces)

	searchService = services.NewSearchService(client, catalog)
	entityService = services.NewEntityService(client)
	ocrService = services.NewOCRService(client)
	toolConfig = domain.ToolConfig{
		Catalog:       catalog,
		ViewerBaseURL: settings.Viewer.BaseURL,
	}

	logger.Debug("Services ready: %d namespaces, viewer %s", catalog.Len(), settings.Viewer.BaseURL)
	return nil
}
