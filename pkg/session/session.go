// Package session owns one task store for the lifetime of an interactive
// or batch run and exposes the operations a menu needs.
package session

import (
	"fmt"
	"log/slog"

	"github.com/stefanpenner/duedate/pkg/store"
)

// Options configures a Session.
type Options struct {
	// StrictDeadlines rejects Add calls whose deadline fails DeadlineKey.
	StrictDeadlines bool

	// SeedPath is the task file Reload reads. Empty means no seed.
	SeedPath string

	Logger *slog.Logger
}

// Session is the single owner of a store. It is not safe for concurrent use.
type Session struct {
	store  *store.Store
	opts   Options
	logger *slog.Logger
}

// New creates a Session with an empty store.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		store:  store.NewStore(),
		opts:   opts,
		logger: logger,
	}
}

// Open creates a Session and loads the seed file, if one is configured.
func Open(opts Options) (*Session, error) {
	s := New(opts)
	if opts.SeedPath == "" {
		return s, nil
	}
	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// SeedPath returns the configured seed file path.
func (s *Session) SeedPath() string {
	return s.opts.SeedPath
}

// Add appends a new pending task.
func (s *Session) Add(course, description, deadline string) (store.Task, error) {
	if s.opts.StrictDeadlines {
		if _, err := store.DeadlineKey(deadline); err != nil {
			s.logger.Warn("task rejected", "course", course, "deadline", deadline, "error", err)
			return store.Task{}, err
		}
	}

	t := s.store.Add(store.NewTask(course, description, deadline))
	s.logger.Info("task added", "id", t.ID, "course", t.CourseName, "deadline", t.Deadline, "tasks", s.store.Len())
	return t, nil
}

// List returns the tasks in current display order.
func (s *Session) List() []store.Task {
	tasks := s.store.List()
	s.logger.Debug("tasks listed", "tasks", len(tasks))
	return tasks
}

// Sort orders the store by deadline and returns the new order.
//
// Zero tasks yields ErrEmptyStore and one task ErrTooFewRecords; in both
// cases the sort is not attempted. On ErrInvalidDateFormat the store keeps
// its previous order.
func (s *Session) Sort() ([]store.Task, error) {
	switch n := s.store.Len(); {
	case n == 0:
		s.logger.Warn("sort rejected", "error", store.ErrEmptyStore)
		return nil, store.ErrEmptyStore
	case n == 1:
		s.logger.Warn("sort rejected", "error", store.ErrTooFewRecords)
		return nil, store.ErrTooFewRecords
	}

	if err := s.store.Sort(); err != nil {
		s.logger.Warn("sort failed", "error", err)
		return nil, fmt.Errorf("sorting by deadline: %w", err)
	}
	s.logger.Info("tasks sorted", "tasks", s.store.Len())
	return s.store.List(), nil
}

// Search returns the first task whose course name matches query ignoring
// case. found is false when nothing matches.
func (s *Session) Search(query string) (task store.Task, found bool, err error) {
	if s.store.Len() == 0 {
		s.logger.Warn("search rejected", "query", query, "error", store.ErrEmptyStore)
		return store.Task{}, false, store.ErrEmptyStore
	}

	task, found = s.store.Search(query)
	s.logger.Debug("search", "query", query, "found", found)
	return task, found, nil
}

// Count returns the number of tasks, computed recursively.
func (s *Session) Count() int {
	n := s.store.CountRecursive()
	s.logger.Debug("tasks counted", "tasks", n)
	return n
}

// MarkCompleteAndCompact marks the task at the 1-based index complete and
// removes every completed task. It returns the number of tasks removed.
func (s *Session) MarkCompleteAndCompact(index int) (int, error) {
	if s.store.Len() == 0 {
		s.logger.Warn("complete rejected", "index", index, "error", store.ErrEmptyStore)
		return 0, store.ErrEmptyStore
	}

	target, err := s.store.At(index)
	if err != nil {
		s.logger.Warn("complete rejected", "index", index, "error", err)
		return 0, err
	}

	removed, err := s.store.MarkCompleteAndCompact(index)
	if err != nil {
		return 0, err
	}
	s.logger.Info("task completed", "id", target.ID, "course", target.CourseName,
		"removed", removed, "tasks", s.store.Len())
	return removed, nil
}

// Reload clears the store and loads the seed file again. It returns the
// number of tasks loaded. The store is untouched if the file cannot be read.
func (s *Session) Reload() (int, error) {
	if s.opts.SeedPath == "" {
		return 0, fmt.Errorf("no seed file configured")
	}

	tasks, err := store.ReadTaskFile(s.opts.SeedPath)
	if err != nil {
		s.logger.Warn("reload failed", "path", s.opts.SeedPath, "error", err)
		return 0, err
	}

	s.store.Clear()
	s.store.Seed(tasks)
	s.logger.Info("seed loaded", "path", s.opts.SeedPath, "tasks", s.store.Len())
	return len(tasks), nil
}

// Export renders the current tasks as a task file.
func (s *Session) Export() (string, error) {
	return store.SerializeTaskFile(s.store.List())
}
