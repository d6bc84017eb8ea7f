package store

// MarkComplete flags the task at the 1-based index as complete.
func (s *Store) MarkComplete(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.tasks[index-1].Completed = true
	return nil
}

// CompactCompleted removes every completed task, not only the most recently
// marked one, and returns how many were removed.
func (s *Store) CompactCompleted() int {
	return s.RemoveWhere(Task.IsComplete)
}

// MarkCompleteAndCompact marks the task at index complete and then sweeps
// all completed tasks out of the store. On an invalid index nothing changes.
func (s *Store) MarkCompleteAndCompact(index int) (int, error) {
	if err := s.MarkComplete(index); err != nil {
		return 0, err
	}
	return s.CompactCompleted(), nil
}
