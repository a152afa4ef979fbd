package cli

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/filesearch/internal/adapters/driving/mcp"
	"github.com/custodia-labs/filesearch/internal/adapters/driving/rest"
)

var (
	serveHost    string
	servePort    int
	serveMCPAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON API server",
	Long: `Starts the HTTP JSON API consumed by the web front end.

With --mcp-addr (or server.mcp_addr in the config file) an MCP server is also
served over streamable HTTP on that address. Both stop on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config, 0.0.0.0)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config, 8000)")
	serveCmd.Flags().StringVar(&serveMCPAddr, "mcp-addr", "", "also serve MCP over HTTP on this address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if storeService == nil || documentService == nil || mediaService == nil || searchService == nil {
		return errors.New("services not configured")
	}

	settings := appSettings
	if serveHost != "" {
		settings.Host = serveHost
	}
	if servePort != 0 {
		settings.Port = servePort
	}
	if serveMCPAddr != "" {
		settings.MCPAddr = serveMCPAddr
	}
	addr := net.JoinHostPort(settings.Host, strconv.Itoa(settings.Port))

	api, err := rest.New(&rest.Ports{
		Stores:    storeService,
		Documents: documentService,
		Media:     mediaService,
		Search:    searchService,
	}, rest.ConfigFromSettings(settings))
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Run(ctx, addr)
	})
	cmd.Printf("API listening on http://%s\n", addr)

	if settings.MCPAddr != "" {
		server, err := mcp.NewServer(mcpPorts())
		if err != nil {
			stop()
			_ = g.Wait()
			return err
		}
		g.Go(func() error {
			return server.RunHTTP(ctx, settings.MCPAddr)
		})
		cmd.Printf("MCP server listening on http://%s\n", settings.MCPAddr)
	}

	return g.Wait()
}
