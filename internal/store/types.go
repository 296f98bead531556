// Package store owns the todo collection and its JSON file persistence.
package store

import "time"

// Priority represents the importance level of a todo item.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether the priority is one of the known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Todo represents a single todo item. The JSON field names are part of the
// on-disk compatibility surface and must not change.
type Todo struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Priority    Priority   `json:"priority"`
}

// document is the persisted representation: the full collection plus the
// id counter.
type document struct {
	Todos  []*Todo `json:"todos"`
	NextID int64   `json:"next_id"`
}

// clone returns a copy of the todo so callers cannot mutate store state.
func (t *Todo) clone() *Todo {
	c := *t
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		c.CompletedAt = &ts
	}
	return &c
}
