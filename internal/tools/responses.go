// Package tools provides centralized response utilities for MCP tool handlers.
package tools

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/yusuke-w/todo-mcp/internal/errors"
)

// ErrorResponse creates a standardized error response for MCP tools.
func ErrorResponse(message string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + message}},
		IsError: true,
	}
}

// ErrorResponsef creates a standardized error response with formatted message.
func ErrorResponsef(format string, args ...any) *mcp.CallToolResultFor[any] {
	return ErrorResponse(fmt.Sprintf(format, args...))
}

// SuccessResponse creates a standardized success response with text content.
func SuccessResponse(message string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: false,
	}
}

// SuccessResponsef creates a standardized success response with formatted message.
func SuccessResponsef(format string, args ...any) *mcp.CallToolResultFor[any] {
	return SuccessResponse(fmt.Sprintf(format, args...))
}

// StoreErrorResponse converts a store error into a user-facing error response,
// keeping the three failure kinds distinguishable without exposing internals.
func StoreErrorResponse(err error) *mcp.CallToolResultFor[any] {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		return ErrorResponse(err.Error())
	case apperrors.Is(err, apperrors.ErrValidation):
		return ErrorResponse(err.Error())
	case apperrors.Is(err, apperrors.ErrPersistence):
		// The chain carries OS-level detail (paths, errnos); the store logs
		// it, the caller only needs the kind.
		return ErrorResponse("failed to save todos, the todo file could not be written")
	default:
		return ErrorResponsef("unexpected failure: %v", err)
	}
}

// InvalidIDResponse creates the error response for a non-positive todo id.
func InvalidIDResponse(id int64) *mcp.CallToolResultFor[any] {
	return ErrorResponsef("invalid id %d, must be a positive integer", id)
}
