// Package main implements the todo MCP server executable. It exposes a
// persistent todo list as Model Context Protocol tools over stdio.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/yusuke-w/todo-mcp/internal/config"
	"github.com/yusuke-w/todo-mcp/internal/logging"
	"github.com/yusuke-w/todo-mcp/internal/server"
	"github.com/yusuke-w/todo-mcp/internal/store"
	"github.com/yusuke-w/todo-mcp/pkg/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "todo-mcp",
	Short: "Persistent todo list MCP server",
	Long: `todo-mcp provides a Model Context Protocol server that manages a
persistent todo list backed by a JSON file. Clients add, list, update,
complete, and delete todo items through seven MCP tools.`,
	RunE: runServer,
}

// serverFlags holds the flags for the server command
type serverFlags struct {
	configPath  string
	storagePath string
}

var serverOpts = &serverFlags{}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information and exit")

	rootCmd.Flags().StringVar(&serverOpts.configPath, "config", "", "Config file path (default: ~/.todo-mcp/config.yaml)")
	rootCmd.Flags().StringVar(&serverOpts.storagePath, "storage", "", "Todo file path (overrides config and TODO_STORAGE_PATH)")
}

// runServer starts the MCP server
func runServer(cmd *cobra.Command, args []string) error {
	if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
		fmt.Println(version.GetVersion().String())
		return nil
	}

	cfg, err := config.Load(serverOpts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serverOpts.storagePath != "" {
		cfg.Storage.Path = serverOpts.storagePath
	}

	logger := logging.NewLogger(cfg.Log.Level)

	// The access credential is only meaningful to a network transport; the
	// stdio transport has no use for it. TODO: consume it when the
	// streamable HTTP transport lands.
	if cfg.API.Key != "" {
		logger.Debug("API key configured, unused by the stdio transport")
	}

	// A corrupt todo file is fatal: refusing to start beats silently
	// running with an empty collection.
	st, err := store.New(cfg.Storage.Path, logger)
	if err != nil {
		logger.Error("Failed to open todo store", slog.Any("error", err))
		return fmt.Errorf("failed to open todo store: %w", err)
	}

	srv, err := server.New(&server.Options{
		Logger: logger,
		Store:  st,
	})
	if err != nil {
		logger.Error("Failed to create server", slog.Any("error", err))
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Set up signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		logger.Error("Failed to start server", slog.Any("error", err))
		return fmt.Errorf("failed to start server: %w", err)
	}

	transport := mcp.NewStdioTransport()

	logger.Info("Todo MCP server starting",
		slog.String("version", version.GetVersion().Version),
		slog.String("storage", st.Path()),
		slog.Int("tools_available", srv.GetRegistry().Count()))

	// Start server in a goroutine so we can handle signals
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Serve(ctx, transport)
	}()

	// Wait for either the server to finish or a signal
	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Server error", slog.Any("error", err))
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	// Create a new context for shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Error stopping server", slog.Any("error", err))
	}

	logger.Info("Todo MCP server stopped")
	return nil
}
