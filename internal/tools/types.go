// Package tools provides the shared framework for MCP tool implementations:
// the tool context, registration plumbing, and response helpers.
package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yusuke-w/todo-mcp/internal/store"
)

// Context contains common dependencies needed by tools.
type Context struct {
	Logger Logger
	Store  *store.Store
}

// Logger defines the logging interface for tools.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithTool(toolName string) Logger
}

// ServerTool couples an MCP tool schema with its registration function.
// RegisterFunc exists because mcp.AddTool needs the handler's concrete
// argument type, which only the creating package knows.
type ServerTool struct {
	Tool         *mcp.Tool
	RegisterFunc func(server *mcp.Server)
}
