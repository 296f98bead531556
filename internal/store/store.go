package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	apperrors "github.com/yusuke-w/todo-mcp/internal/errors"
	"github.com/yusuke-w/todo-mcp/internal/logging"
)

// Store is the exclusive owner of the todo collection. Every operation runs
// under the mutex, mutation and persistence included, so operations are
// serialized with respect to both memory and the backing file. A concurrent
// writer in another process is last-writer-wins; there is no cross-process
// locking.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *logging.Logger
	todos  []*Todo
	nextID int64
}

// New creates a store backed by the file at path. The path must already be
// resolved; the store does not consult the environment. A missing file yields
// an empty collection; an unparseable one is a fatal persistence error so the
// process never runs against silently dropped data.
func New(path string, logger *logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewLogger("info")
	}

	s := &Store{
		path:   path,
		logger: logger.WithComponent("store"),
		nextID: 1,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.PersistenceWithCause("failed to create storage directory", err)
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Count returns the number of todos in the collection.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.todos)
}

// Add creates a new todo item. An empty priority defaults to medium.
func (s *Store) Add(title, description string, priority Priority) (*Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.Validation("title cannot be empty")
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.Validationf("invalid priority %q, must be one of: low, medium, high", priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	todo := &Todo{
		ID:          s.nextID,
		Title:       title,
		Description: description,
		Priority:    priority,
		CreatedAt:   time.Now().UTC(),
	}

	s.todos = append(s.todos, todo)
	s.nextID++

	if err := s.save(); err != nil {
		s.todos = s.todos[:len(s.todos)-1]
		s.nextID--
		return nil, err
	}

	s.logger.Debug("added todo", "id", todo.ID, "title", todo.Title)
	return todo.clone(), nil
}

// Get returns the todo with the given id.
func (s *Store) Get(id int64) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo := s.find(id)
	if todo == nil {
		return nil, apperrors.NotFoundf("todo item #%d", id)
	}
	return todo.clone(), nil
}

// List returns todos matching all supplied filters, in creation order.
// Nil filters match everything; an empty result is not an error.
func (s *Store) List(completed *bool, priority *Priority) ([]*Todo, error) {
	if priority != nil && !priority.Valid() {
		return nil, apperrors.Validationf("invalid priority %q, must be one of: low, medium, high", *priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		if completed != nil && todo.Completed != *completed {
			continue
		}
		if priority != nil && todo.Priority != *priority {
			continue
		}
		result = append(result, todo.clone())
	}
	return result, nil
}

// Update changes the supplied fields of a todo; nil fields keep their prior
// values. Validation runs before anything is mutated, so a rejected update
// leaves the item unchanged.
func (s *Store) Update(id int64, title, description *string, priority *Priority) (*Todo, error) {
	var newTitle string
	if title != nil {
		newTitle = strings.TrimSpace(*title)
		if newTitle == "" {
			return nil, apperrors.Validation("title cannot be empty")
		}
	}
	if priority != nil && !priority.Valid() {
		return nil, apperrors.Validationf("invalid priority %q, must be one of: low, medium, high", *priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	todo := s.find(id)
	if todo == nil {
		return nil, apperrors.NotFoundf("todo item #%d", id)
	}

	prev := *todo
	if title != nil {
		todo.Title = newTitle
	}
	if description != nil {
		todo.Description = *description
	}
	if priority != nil {
		todo.Priority = *priority
	}

	if err := s.save(); err != nil {
		*todo = prev
		return nil, err
	}

	s.logger.Debug("updated todo", "id", todo.ID)
	return todo.clone(), nil
}

// Complete marks a todo as completed. The completion timestamp is set on the
// first false-to-true transition and preserved by repeated calls, so the
// operation is idempotent in user-visible state.
func (s *Store) Complete(id int64) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo := s.find(id)
	if todo == nil {
		return nil, apperrors.NotFoundf("todo item #%d", id)
	}

	prev := *todo
	if !todo.Completed {
		now := time.Now().UTC()
		todo.Completed = true
		todo.CompletedAt = &now
	}

	if err := s.save(); err != nil {
		*todo = prev
		return nil, err
	}

	s.logger.Debug("completed todo", "id", todo.ID)
	return todo.clone(), nil
}

// Uncomplete marks a todo as not completed and clears its completion
// timestamp.
func (s *Store) Uncomplete(id int64) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo := s.find(id)
	if todo == nil {
		return nil, apperrors.NotFoundf("todo item #%d", id)
	}

	prev := *todo
	todo.Completed = false
	todo.CompletedAt = nil

	if err := s.save(); err != nil {
		*todo = prev
		return nil, err
	}

	s.logger.Debug("uncompleted todo", "id", todo.ID)
	return todo.clone(), nil
}

// Delete removes a todo from the collection and returns the removed item.
// The id counter is not decremented; deleted ids are never reused.
func (s *Store) Delete(id int64) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, todo := range s.todos {
		if todo.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NotFoundf("todo item #%d", id)
	}

	removed := s.todos[idx]
	s.todos = append(s.todos[:idx], s.todos[idx+1:]...)

	if err := s.save(); err != nil {
		s.todos = append(s.todos[:idx], append([]*Todo{removed}, s.todos[idx:]...)...)
		return nil, err
	}

	s.logger.Debug("deleted todo", "id", removed.ID)
	return removed.clone(), nil
}

// find returns the todo with the given id, or nil. Callers must hold the lock.
func (s *Store) find(id int64) *Todo {
	for _, todo := range s.todos {
		if todo.ID == id {
			return todo
		}
	}
	return nil
}

// load reads the backing file into memory. A missing file initializes an
// empty collection; anything else that fails is fatal.
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.todos = nil
			s.nextID = 1
			return nil
		}
		return apperrors.PersistenceWithCause("failed to read todo file", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return apperrors.PersistenceWithCause("corrupt todo file "+s.path, err)
	}
	if doc.NextID < 1 {
		return apperrors.Persistencef("corrupt todo file %s: next_id must be positive, got %d", s.path, doc.NextID)
	}

	s.todos = doc.Todos
	s.nextID = doc.NextID

	s.logger.Debug("loaded todos", "count", len(s.todos), "next_id", s.nextID)
	return nil
}

// save writes the whole collection to a temporary file and renames it over
// the target, so an interrupted write never leaves a truncated file behind.
// Callers must hold the lock.
func (s *Store) save() error {
	doc := document{
		Todos:  s.todos,
		NextID: s.nextID,
	}
	if doc.Todos == nil {
		doc.Todos = []*Todo{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return s.saveError(apperrors.PersistenceWithCause("failed to marshal todos", err))
	}

	tempFile := s.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return s.saveError(apperrors.PersistenceWithCause("failed to write todo file", err))
	}

	if err := os.Rename(tempFile, s.path); err != nil {
		_ = os.Remove(tempFile)
		return s.saveError(apperrors.PersistenceWithCause("failed to replace todo file", err))
	}

	return nil
}

// saveError logs the full persistence failure, OS-level detail included; the
// tool layer only surfaces the error kind to callers.
func (s *Store) saveError(err error) error {
	s.logger.Error("failed to persist todos", "path", s.path, "error", err)
	return err
}
