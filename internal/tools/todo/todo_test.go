package todo

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yusuke-w/todo-mcp/internal/logging"
	"github.com/yusuke-w/todo-mcp/internal/store"
	"github.com/yusuke-w/todo-mcp/internal/tools"
)

// testLogger adapts logging.Logger to the tools.Logger interface for tests.
type testLogger struct {
	*logging.Logger
}

func (l *testLogger) WithTool(toolName string) tools.Logger {
	return &testLogger{Logger: l.Logger.WithTool(toolName)}
}

// newTestContext builds a tool context over a store in a temp directory.
func newTestContext(t *testing.T) *tools.Context {
	t.Helper()

	logger := logging.NewLogger("error")
	s, err := store.New(filepath.Join(t.TempDir(), "todos.json"), logger)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	return &tools.Context{
		Logger: &testLogger{Logger: logger},
		Store:  s,
	}
}

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResultFor[any]) string {
	t.Helper()

	if len(result.Content) != 1 {
		t.Fatalf("Expected one content block, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestAddTodo(t *testing.T) {
	ctx := newTestContext(t)

	result := runAddTodo(ctx, AddTodoArgs{Title: "Buy milk"})
	if result.IsError {
		t.Fatalf("Expected success, got error: %s", resultText(t, result))
	}
	if got := resultText(t, result); got != "Added todo item #1: Buy milk" {
		t.Errorf("Unexpected message: %q", got)
	}
}

func TestAddTodoValidation(t *testing.T) {
	ctx := newTestContext(t)

	cases := []struct {
		name string
		args AddTodoArgs
		want string
	}{
		{"empty title", AddTodoArgs{Title: "   "}, "title cannot be empty"},
		{"bad priority", AddTodoArgs{Title: "ok", Priority: strPtr("urgent")}, "invalid priority"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := runAddTodo(ctx, tc.args)
			if !result.IsError {
				t.Fatalf("Expected error result")
			}
			if got := resultText(t, result); !strings.Contains(got, tc.want) {
				t.Errorf("Expected message containing %q, got %q", tc.want, got)
			}
		})
	}
}

func TestGetTodoNotFound(t *testing.T) {
	ctx := newTestContext(t)

	result := runGetTodo(ctx, TodoIDArgs{ID: 42})
	if !result.IsError {
		t.Fatalf("Expected error result")
	}
	if got := resultText(t, result); !strings.Contains(got, "todo item #42") || !strings.Contains(got, "not found") {
		t.Errorf("Expected not-found message for #42, got %q", got)
	}
}

func TestGetTodoRejectsNonPositiveID(t *testing.T) {
	ctx := newTestContext(t)

	result := runGetTodo(ctx, TodoIDArgs{ID: 0})
	if !result.IsError {
		t.Fatalf("Expected error result")
	}
	if got := resultText(t, result); !strings.Contains(got, "positive integer") {
		t.Errorf("Expected invalid id message, got %q", got)
	}
}

func TestGetTodoDetail(t *testing.T) {
	ctx := newTestContext(t)

	runAddTodo(ctx, AddTodoArgs{Title: "Read book", Description: strPtr("chapter 3"), Priority: strPtr("high")})

	result := runGetTodo(ctx, TodoIDArgs{ID: 1})
	if result.IsError {
		t.Fatalf("Expected success, got error: %s", resultText(t, result))
	}

	got := resultText(t, result)
	for _, want := range []string{"Todo #1", "Title: Read book", "Description: chapter 3", "Status: Pending", "🔴 High", "Created: "} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected detail to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Completed: ") {
		t.Errorf("Expected no completion line for a pending todo, got:\n%s", got)
	}
}

func TestListTodosEmpty(t *testing.T) {
	ctx := newTestContext(t)

	result := runListTodos(ctx, ListTodosArgs{})
	if result.IsError {
		t.Fatalf("Expected success, got error: %s", resultText(t, result))
	}
	if got := resultText(t, result); got != "No todos found" {
		t.Errorf("Expected empty-list message, got %q", got)
	}
}

func TestListTodosRendering(t *testing.T) {
	ctx := newTestContext(t)

	runAddTodo(ctx, AddTodoArgs{Title: "Buy milk", Priority: strPtr("low")})
	runAddTodo(ctx, AddTodoArgs{Title: "Pay bills", Description: strPtr("before Friday"), Priority: strPtr("high")})
	runCompleteTodo(ctx, TodoIDArgs{ID: 1})

	result := runListTodos(ctx, ListTodosArgs{})
	if result.IsError {
		t.Fatalf("Expected success, got error: %s", resultText(t, result))
	}

	got := resultText(t, result)
	lines := strings.Split(got, "\n")
	if lines[0] != "Todo List:" {
		t.Errorf("Expected header, got %q", lines[0])
	}
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d:\n%s", len(lines), got)
	}
	if lines[1] != "✓ #1 🔵 Buy milk" {
		t.Errorf("Unexpected first entry: %q", lines[1])
	}
	if lines[2] != "○ #2 🔴 Pay bills" {
		t.Errorf("Unexpected second entry: %q", lines[2])
	}
	if lines[3] != "    before Friday" {
		t.Errorf("Expected indented description, got %q", lines[3])
	}
}

func TestListTodosFilters(t *testing.T) {
	ctx := newTestContext(t)

	runAddTodo(ctx, AddTodoArgs{Title: "low one", Priority: strPtr("low")})
	runAddTodo(ctx, AddTodoArgs{Title: "high one", Priority: strPtr("high")})
	runCompleteTodo(ctx, TodoIDArgs{ID: 1})

	result := runListTodos(ctx, ListTodosArgs{Priority: strPtr("high")})
	got := resultText(t, result)
	if !strings.Contains(got, "high one") || strings.Contains(got, "low one") {
		t.Errorf("Expected only the high-priority todo, got:\n%s", got)
	}

	result = runListTodos(ctx, ListTodosArgs{Completed: boolPtr(false)})
	got = resultText(t, result)
	if !strings.Contains(got, "high one") || strings.Contains(got, "low one") {
		t.Errorf("Expected only the open todo, got:\n%s", got)
	}

	result = runListTodos(ctx, ListTodosArgs{Priority: strPtr("urgent")})
	if !result.IsError {
		t.Errorf("Expected error for invalid priority filter")
	}
}

func TestUpdateTodo(t *testing.T) {
	ctx := newTestContext(t)

	runAddTodo(ctx, AddTodoArgs{Title: "old title", Description: strPtr("keep me")})

	result := runUpdateTodo(ctx, UpdateTodoArgs{ID: 1, Title: strPtr("new title")})
	if result.IsError {
		t.Fatalf("Expected success, got error: %s", resultText(t, result))
	}
	if got := resultText(t, result); got != "Updated todo item #1: new title" {
		t.Errorf("Unexpected message: %q", got)
	}

	detail := resultText(t, runGetTodo(ctx, TodoIDArgs{ID: 1}))
	if !strings.Contains(detail, "Description: keep me") {
		t.Errorf("Expected description preserved, got:\n%s", detail)
	}
}

func TestUpdateTodoNotFound(t *testing.T) {
	ctx := newTestContext(t)

	result := runUpdateTodo(ctx, UpdateTodoArgs{ID: 9, Title: strPtr("anything")})
	if !result.IsError {
		t.Fatalf("Expected error result")
	}
	if got := resultText(t, result); !strings.Contains(got, "not found") {
		t.Errorf("Expected not-found message, got %q", got)
	}
}

func TestCompleteAndUncompleteTodo(t *testing.T) {
	ctx := newTestContext(t)

	runAddTodo(ctx, AddTodoArgs{Title: "task"})

	result := runCompleteTodo(ctx, TodoIDArgs{ID: 1})
	if got := resultText(t, result); got != "Completed todo item #1: task" {
		t.Errorf("Unexpected message: %q", got)
	}

	detail := resultText(t, runGetTodo(ctx, TodoIDArgs{ID: 1}))
	if !strings.Contains(detail, "Status: Completed") || !strings.Contains(detail, "Completed: ") {
		t.Errorf("Expected completed detail, got:\n%s", detail)
	}

	result = runUncompleteTodo(ctx, TodoIDArgs{ID: 1})
	if got := resultText(t, result); got != "Uncompleted todo item #1: task" {
		t.Errorf("Unexpected message: %q", got)
	}

	detail = resultText(t, runGetTodo(ctx, TodoIDArgs{ID: 1}))
	if !strings.Contains(detail, "Status: Pending") || strings.Contains(detail, "Completed: ") {
		t.Errorf("Expected pending detail, got:\n%s", detail)
	}
}

func TestDeleteTodo(t *testing.T) {
	ctx := newTestContext(t)

	runAddTodo(ctx, AddTodoArgs{Title: "doomed"})

	result := runDeleteTodo(ctx, TodoIDArgs{ID: 1})
	if got := resultText(t, result); got != "Deleted todo item #1: doomed" {
		t.Errorf("Unexpected message: %q", got)
	}

	result = runGetTodo(ctx, TodoIDArgs{ID: 1})
	if !result.IsError {
		t.Errorf("Expected not-found after delete")
	}
}

func TestCreateTodoTools(t *testing.T) {
	ctx := newTestContext(t)

	todoTools := CreateTodoTools(ctx)
	if len(todoTools) != 7 {
		t.Fatalf("Expected 7 tools, got %d", len(todoTools))
	}

	want := map[string]bool{
		"add_todo": false, "list_todos": false, "get_todo": false,
		"update_todo": false, "complete_todo": false,
		"uncomplete_todo": false, "delete_todo": false,
	}
	for _, tool := range todoTools {
		name := tool.Tool.Name
		if _, ok := want[name]; !ok {
			t.Errorf("Unexpected tool %q", name)
			continue
		}
		want[name] = true
		if tool.Tool.Description == "" {
			t.Errorf("Tool %q has empty description", name)
		}
		if tool.RegisterFunc == nil {
			t.Errorf("Tool %q has nil register function", name)
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("Missing tool %q", name)
		}
	}
}
