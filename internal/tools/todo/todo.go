// Package todo implements the seven todo management tools exposed over MCP.
package todo

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yusuke-w/todo-mcp/internal/store"
	"github.com/yusuke-w/todo-mcp/internal/tools"
)

// Tool descriptions shown to MCP clients.
const (
	addTodoDoc        = "Add a new todo item with a title, optional description, and optional priority (low, medium, high)."
	listTodosDoc      = "List all todo items, optionally filtered by completion status and/or priority."
	getTodoDoc        = "Get a specific todo item by ID."
	updateTodoDoc     = "Update the title, description, or priority of an existing todo item. Only supplied fields change."
	completeTodoDoc   = "Mark a todo item as completed. Completing an already-completed item keeps its original completion time."
	uncompleteTodoDoc = "Mark a todo item as not completed, clearing its completion time."
	deleteTodoDoc     = "Delete a todo item by ID."
)

// AddTodoArgs represents the arguments for the add_todo tool.
type AddTodoArgs struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

// ListTodosArgs represents the arguments for the list_todos tool.
// Pointer fields distinguish an omitted filter from an explicit value.
type ListTodosArgs struct {
	Completed *bool   `json:"completed,omitempty"`
	Priority  *string `json:"priority,omitempty"`
}

// TodoIDArgs represents the arguments for tools addressing a single todo.
type TodoIDArgs struct {
	ID int64 `json:"id"`
}

// UpdateTodoArgs represents the arguments for the update_todo tool.
type UpdateTodoArgs struct {
	ID          int64   `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

// CreateAddTodoTool creates the add_todo tool.
func CreateAddTodoTool(ctx *tools.Context) *tools.ServerTool {
	handler := func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[AddTodoArgs]) (*mcp.CallToolResultFor[any], error) {
		return runAddTodo(ctx, params.Arguments), nil
	}

	tool := &mcp.Tool{
		Name:        "add_todo",
		Description: addTodoDoc,
	}

	return &tools.ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

func runAddTodo(ctx *tools.Context, args AddTodoArgs) *mcp.CallToolResultFor[any] {
	description := ""
	if args.Description != nil {
		description = *args.Description
	}
	var priority store.Priority
	if args.Priority != nil {
		priority = store.Priority(*args.Priority)
	}

	todo, err := ctx.Store.Add(args.Title, description, priority)
	if err != nil {
		return tools.StoreErrorResponse(err)
	}

	ctx.Logger.WithTool("add_todo").Debug("added todo", "id", todo.ID)
	return tools.SuccessResponsef("Added todo item #%d: %s", todo.ID, todo.Title)
}

// CreateListTodosTool creates the list_todos tool.
func CreateListTodosTool(ctx *tools.Context) *tools.ServerTool {
	handler := func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ListTodosArgs]) (*mcp.CallToolResultFor[any], error) {
		return runListTodos(ctx, params.Arguments), nil
	}

	tool := &mcp.Tool{
		Name:        "list_todos",
		Description: listTodosDoc,
	}

	return &tools.ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

func runListTodos(ctx *tools.Context, args ListTodosArgs) *mcp.CallToolResultFor[any] {
	var priority *store.Priority
	if args.Priority != nil {
		p := store.Priority(*args.Priority)
		priority = &p
	}

	todos, err := ctx.Store.List(args.Completed, priority)
	if err != nil {
		return tools.StoreErrorResponse(err)
	}

	return tools.SuccessResponse(FormatTodoList(todos))
}

// CreateGetTodoTool creates the get_todo tool.
func CreateGetTodoTool(ctx *tools.Context) *tools.ServerTool {
	handler := func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[TodoIDArgs]) (*mcp.CallToolResultFor[any], error) {
		return runGetTodo(ctx, params.Arguments), nil
	}

	tool := &mcp.Tool{
		Name:        "get_todo",
		Description: getTodoDoc,
	}

	return &tools.ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

func runGetTodo(ctx *tools.Context, args TodoIDArgs) *mcp.CallToolResultFor[any] {
	if args.ID < 1 {
		return tools.InvalidIDResponse(args.ID)
	}

	todo, err := ctx.Store.Get(args.ID)
	if err != nil {
		return tools.StoreErrorResponse(err)
	}

	return tools.SuccessResponse(FormatTodoDetail(todo))
}

// CreateUpdateTodoTool creates the update_todo tool.
func CreateUpdateTodoTool(ctx *tools.Context) *tools.ServerTool {
	handler := func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[UpdateTodoArgs]) (*mcp.CallToolResultFor[any], error) {
		return runUpdateTodo(ctx, params.Arguments), nil
	}

	tool := &mcp.Tool{
		Name:        "update_todo",
		Description: updateTodoDoc,
	}

	return &tools.ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

func runUpdateTodo(ctx *tools.Context, args UpdateTodoArgs) *mcp.CallToolResultFor[any] {
	if args.ID < 1 {
		return tools.InvalidIDResponse(args.ID)
	}

	var priority *store.Priority
	if args.Priority != nil {
		p := store.Priority(*args.Priority)
		priority = &p
	}

	todo, err := ctx.Store.Update(args.ID, args.Title, args.Description, priority)
	if err != nil {
		return tools.StoreErrorResponse(err)
	}

	ctx.Logger.WithTool("update_todo").Debug("updated todo", "id", todo.ID)
	return tools.SuccessResponsef("Updated todo item #%d: %s", todo.ID, todo.Title)
}

// CreateCompleteTodoTool creates the complete_todo tool.
func CreateCompleteTodoTool(ctx *tools.Context) *tools.ServerTool {
	handler := func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[TodoIDArgs]) (*mcp.CallToolResultFor[any], error) {
		return runCompleteTodo(ctx, params.Arguments), nil
	}

	tool := &mcp.Tool{
		Name:        "complete_todo",
		Description: completeTodoDoc,
	}

	return &tools.ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

func runCompleteTodo(ctx *tools.Context, args TodoIDArgs) *mcp.CallToolResultFor[any] {
	if args.ID < 1 {
		return tools.InvalidIDResponse(args.ID)
	}

	todo, err := ctx.Store.Complete(args.ID)
	if err != nil {
		return tools.StoreErrorResponse(err)
	}

	ctx.Logger.WithTool("complete_todo").Debug("completed todo", "id", todo.ID)
	return tools.SuccessResponsef("Completed todo item #%d: %s", todo.ID, todo.Title)
}

// CreateUncompleteTodoTool creates the uncomplete_todo tool.
func CreateUncompleteTodoTool(ctx *tools.Context) *tools.ServerTool {
	handler := func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[TodoIDArgs]) (*mcp.CallToolResultFor[any], error) {
		return runUncompleteTodo(ctx, params.Arguments), nil
	}

	tool := &mcp.Tool{
		Name:        "uncomplete_todo",
		Description: uncompleteTodoDoc,
	}

	return &tools.ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

func runUncompleteTodo(ctx *tools.Context, args TodoIDArgs) *mcp.CallToolResultFor[any] {
	if args.ID < 1 {
		return tools.InvalidIDResponse(args.ID)
	}

	todo, err := ctx.Store.Uncomplete(args.ID)
	if err != nil {
		return tools.StoreErrorResponse(err)
	}

	ctx.Logger.WithTool("uncomplete_todo").Debug("uncompleted todo", "id", todo.ID)
	return tools.SuccessResponsef("Uncompleted todo item #%d: %s", todo.ID, todo.Title)
}

// CreateDeleteTodoTool creates the delete_todo tool.
func CreateDeleteTodoTool(ctx *tools.Context) *tools.ServerTool {
	handler := func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[TodoIDArgs]) (*mcp.CallToolResultFor[any], error) {
		return runDeleteTodo(ctx, params.Arguments), nil
	}

	tool := &mcp.Tool{
		Name:        "delete_todo",
		Description: deleteTodoDoc,
	}

	return &tools.ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

func runDeleteTodo(ctx *tools.Context, args TodoIDArgs) *mcp.CallToolResultFor[any] {
	if args.ID < 1 {
		return tools.InvalidIDResponse(args.ID)
	}

	todo, err := ctx.Store.Delete(args.ID)
	if err != nil {
		return tools.StoreErrorResponse(err)
	}

	ctx.Logger.WithTool("delete_todo").Debug("deleted todo", "id", todo.ID)
	return tools.SuccessResponsef("Deleted todo item #%d: %s", todo.ID, todo.Title)
}
