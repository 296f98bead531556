// Package todo provides registration for the todo management tools.
package todo

import (
	"github.com/yusuke-w/todo-mcp/internal/tools"
)

// CreateTodoTools creates all todo management tools.
func CreateTodoTools(ctx *tools.Context) []*tools.ServerTool {
	return []*tools.ServerTool{
		CreateAddTodoTool(ctx),
		CreateListTodosTool(ctx),
		CreateGetTodoTool(ctx),
		CreateUpdateTodoTool(ctx),
		CreateCompleteTodoTool(ctx),
		CreateUncompleteTodoTool(ctx),
		CreateDeleteTodoTool(ctx),
	}
}
