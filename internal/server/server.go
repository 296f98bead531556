// Package server implements the MCP server for the todo tools.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yusuke-w/todo-mcp/internal/logging"
	"github.com/yusuke-w/todo-mcp/internal/store"
	"github.com/yusuke-w/todo-mcp/internal/tools"
	"github.com/yusuke-w/todo-mcp/internal/tools/todo"
	"github.com/yusuke-w/todo-mcp/pkg/version"
)

// loggerAdapter wraps logging.Logger to implement the tools.Logger interface.
// This avoids a circular dependency between the logging and tools packages.
type loggerAdapter struct {
	*logging.Logger
}

// WithTool implements tools.Logger.
func (a *loggerAdapter) WithTool(toolName string) tools.Logger {
	return &loggerAdapter{Logger: a.Logger.WithTool(toolName)}
}

// Server represents the todo MCP server.
type Server struct {
	mcpServer *mcp.Server
	registry  *tools.Registry
	store     *store.Store
	logger    *logging.Logger
}

// Options configures the server instance.
type Options struct {
	Logger *logging.Logger
	Store  *store.Store
}

// New creates a new todo MCP server with the given options. The store is
// required; a nil logger falls back to info-level logging.
func New(opts *Options) (*Server, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger("info")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "todo-mcp",
		Version: version.GetVersion().Version,
	}, nil)

	server := &Server{
		mcpServer: mcpServer,
		registry:  tools.NewRegistry(),
		store:     opts.Store,
		logger:    opts.Logger,
	}

	if err := server.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return server, nil
}

// Start validates the registry and logs the startup state.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting todo MCP server",
		slog.String("version", version.GetVersion().Version),
		slog.Int("tools", s.registry.Count()),
		slog.String("storage", s.store.Path()),
		slog.Int("todos", s.store.Count()),
	)

	if err := s.registry.Validate(); err != nil {
		return fmt.Errorf("tool registry validation failed: %w", err)
	}

	return nil
}

// Stop stops the MCP server gracefully. All store mutations persist inline,
// so there is no state to flush here.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping todo MCP server")

	select {
	case <-ctx.Done():
		s.logger.Warn("Server stop timed out")
		return ctx.Err()
	default:
		s.logger.Info("Server stopped successfully")
		return nil
	}
}

// GetRegistry returns the tool registry.
func (s *Server) GetRegistry() *tools.Registry {
	return s.registry
}

// registerTools registers the todo tools with the MCP server.
func (s *Server) registerTools() error {
	s.logger.Debug("Registering tools with MCP server")

	toolCtx := &tools.Context{
		Logger: &loggerAdapter{Logger: s.logger},
		Store:  s.store,
	}

	todoTools := todo.CreateTodoTools(toolCtx)

	var toolNames []string
	for _, tool := range todoTools {
		tool.RegisterFunc(s.mcpServer)
		if err := s.registry.Register(tool); err != nil {
			return err
		}
		toolNames = append(toolNames, tool.Tool.Name)

		s.logger.Debug("Registered tool", "name", tool.Tool.Name)
	}

	s.logger.Info("Successfully registered tools",
		slog.Int("count", len(todoTools)),
		slog.Any("tools", toolNames),
	)

	return nil
}

// Serve runs the MCP server with the specified transport. It connects the
// server to the transport and waits for either the session to complete or
// the context to be cancelled.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("Starting MCP server transport",
		slog.String("transport", fmt.Sprintf("%T", transport)),
	)

	session, err := s.mcpServer.Connect(ctx, transport)
	if err != nil {
		return fmt.Errorf("failed to connect MCP server: %w", err)
	}

	sessionDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("MCP session goroutine panicked",
					slog.Any("panic", r))
				sessionDone <- fmt.Errorf("session panicked: %v", r)
			}
		}()
		sessionDone <- session.Wait()
	}()

	select {
	case err := <-sessionDone:
		s.logger.Info("MCP session finished")
		return err
	case <-ctx.Done():
		s.logger.Info("MCP server shutting down due to context cancellation")
		return ctx.Err()
	}
}
