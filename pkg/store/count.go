package store

// CountRecursive returns the number of tasks using count(0) = 0,
// count(n) = 1 + count(n-1).
//
// The recursion depth equals the store size. Go grows goroutine stacks on
// demand, but a store with tens of millions of tasks will still hit the
// runtime's maximum stack size and crash. That limit is not guarded.
func (s *Store) CountRecursive() int {
	return countFrom(len(s.tasks))
}

func countFrom(n int) int {
	if n == 0 {
		return 0
	}
	return 1 + countFrom(n-1)
}
