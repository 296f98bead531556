package todo

import (
	"fmt"
	"strings"
	"time"

	"github.com/yusuke-w/todo-mcp/internal/store"
)

// statusMarker returns the completion marker for list output.
func statusMarker(t *store.Todo) string {
	if t.Completed {
		return "✓"
	}
	return "○"
}

// priorityMarker returns the colored marker for a priority level.
func priorityMarker(p store.Priority) string {
	switch p {
	case store.PriorityHigh:
		return "🔴"
	case store.PriorityLow:
		return "🔵"
	default:
		return "🟡"
	}
}

// priorityLabel returns the capitalized priority name for detail output.
func priorityLabel(p store.Priority) string {
	switch p {
	case store.PriorityHigh:
		return "High"
	case store.PriorityLow:
		return "Low"
	default:
		return "Medium"
	}
}

// FormatTodoList renders todos as an ordered enumeration, one line per item
// with an indented description line when present. An empty slice renders a
// clear "no todos" message rather than empty output.
func FormatTodoList(todos []*store.Todo) string {
	if len(todos) == 0 {
		return "No todos found"
	}

	var lines []string
	for _, t := range todos {
		lines = append(lines, fmt.Sprintf("%s #%d %s %s", statusMarker(t), t.ID, priorityMarker(t.Priority), t.Title))
		if t.Description != "" {
			lines = append(lines, "    "+t.Description)
		}
	}

	return "Todo List:\n" + strings.Join(lines, "\n")
}

// FormatTodoDetail renders the full record of a single todo.
func FormatTodoDetail(t *store.Todo) string {
	status := "Pending"
	if t.Completed {
		status = "Completed"
	}

	description := t.Description
	if description == "" {
		description = "None"
	}

	details := []string{
		fmt.Sprintf("Todo #%d", t.ID),
		"Title: " + t.Title,
		"Description: " + description,
		"Status: " + status,
		fmt.Sprintf("Priority: %s %s", priorityMarker(t.Priority), priorityLabel(t.Priority)),
		"Created: " + t.CreatedAt.Format(time.RFC3339),
	}

	if t.CompletedAt != nil {
		details = append(details, "Completed: "+t.CompletedAt.Format(time.RFC3339))
	}

	return strings.Join(details, "\n")
}
