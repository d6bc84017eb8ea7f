package store

import (
	"fmt"

	"github.com/google/uuid"
)

// Store owns the ordered, in-memory collection of tasks for one session.
//
// Insertion order is significant: it is the display order until Sort
// replaces it. Add, MarkComplete, RemoveWhere, Clear and Sort are the only
// mutation points. A Store is not safe for concurrent use.
type Store struct {
	tasks []Task
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a task to the end of the store and returns the stored copy.
// The task is always stored as pending; an empty ID is filled in.
func (s *Store) Add(t Task) Task {
	if t.ID == "" {
		t.ID = newTaskID()
	}
	t.Completed = false
	s.tasks = append(s.tasks, t)
	return t
}

// List returns a copy of the tasks in current order.
func (s *Store) List() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// At returns the task at the 1-based index.
func (s *Store) At(index int) (Task, error) {
	if err := s.checkIndex(index); err != nil {
		return Task{}, err
	}
	return s.tasks[index-1], nil
}

// RemoveWhere removes every task for which pred returns true in a single
// pass, keeping survivors in their relative order. It returns the number
// of tasks removed.
func (s *Store) RemoveWhere(pred func(Task) bool) int {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !pred(t) {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)

	// Zero the tail so dropped tasks are not retained by the backing array.
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = Task{}
	}
	s.tasks = kept
	return removed
}

// Clear removes every task.
func (s *Store) Clear() {
	s.tasks = nil
}

func (s *Store) checkIndex(index int) error {
	if index < 1 || index > len(s.tasks) {
		return fmt.Errorf("%w: %d (have %d tasks)", ErrIndexOutOfRange, index, len(s.tasks))
	}
	return nil
}

func newTaskID() string {
	return uuid.Must(uuid.NewV7()).String()
}
