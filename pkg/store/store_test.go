package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, tasks ...Task) *Store {
	t.Helper()
	s := NewStore()
	for _, task := range tasks {
		s.Add(task)
	}
	return s
}

func courses(tasks []Task) []string {
	var out []string
	for _, t := range tasks {
		out = append(out, t.CourseName)
	}
	return out
}

func TestAdd(t *testing.T) {
	s := NewStore()

	task := s.Add(NewTask("CS101", "HW1", "15-03-2025"))
	assert.Equal(t, "CS101", task.CourseName)
	assert.Equal(t, "HW1", task.Description)
	assert.Equal(t, "15-03-2025", task.Deadline)
	assert.False(t, task.Completed)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, 1, s.Len())
}

func TestAddAlwaysStoresPending(t *testing.T) {
	s := NewStore()

	in := NewTask("CS101", "HW1", "15-03-2025")
	in.Completed = true
	task := s.Add(in)
	assert.False(t, task.Completed)

	first, err := s.At(1)
	require.NoError(t, err)
	assert.False(t, first.Completed)
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	s := setupTestStore(t,
		NewTask("C", "", "03-01-2025"),
		NewTask("A", "", "01-01-2025"),
		NewTask("B", "", "02-01-2025"),
	)
	assert.Equal(t, []string{"C", "A", "B"}, courses(s.List()))
}

func TestAddAllowsDuplicates(t *testing.T) {
	s := setupTestStore(t,
		NewTask("CS101", "HW1", "15-03-2025"),
		NewTask("CS101", "HW1", "15-03-2025"),
	)
	tasks := s.List()
	require.Len(t, tasks, 2)
	assert.NotEqual(t, tasks[0].ID, tasks[1].ID)
}

func TestListReturnsCopy(t *testing.T) {
	s := setupTestStore(t, NewTask("CS101", "HW1", "15-03-2025"))

	tasks := s.List()
	tasks[0].CourseName = "changed"
	tasks[0].Completed = true

	first, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, "CS101", first.CourseName)
	assert.False(t, first.Completed)
}

func TestListEmpty(t *testing.T) {
	s := NewStore()
	assert.Empty(t, s.List())
	assert.Equal(t, 0, s.Len())
}

func TestAt(t *testing.T) {
	s := setupTestStore(t,
		NewTask("CS101", "HW1", "15-03-2025"),
		NewTask("MA201", "HW2", "01-03-2025"),
	)

	first, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, "CS101", first.CourseName)

	last, err := s.At(2)
	require.NoError(t, err)
	assert.Equal(t, "MA201", last.CourseName)
}

func TestAtOutOfRange(t *testing.T) {
	s := setupTestStore(t,
		NewTask("CS101", "HW1", "15-03-2025"),
		NewTask("MA201", "HW2", "01-03-2025"),
	)

	for _, idx := range []int{-1, 0, 3, 100} {
		_, err := s.At(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)
	}
}

func TestAtOnEmptyStore(t *testing.T) {
	s := NewStore()
	_, err := s.At(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRemoveWhere(t *testing.T) {
	s := setupTestStore(t,
		NewTask("A", "", "01-01-2025"),
		NewTask("B", "", "02-01-2025"),
		NewTask("C", "", "03-01-2025"),
		NewTask("D", "", "04-01-2025"),
		NewTask("E", "", "05-01-2025"),
	)

	removed := s.RemoveWhere(func(t Task) bool {
		return t.CourseName == "B" || t.CourseName == "D"
	})
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"A", "C", "E"}, courses(s.List()))
}

func TestRemoveWhereNoMatch(t *testing.T) {
	s := setupTestStore(t,
		NewTask("A", "", "01-01-2025"),
		NewTask("B", "", "02-01-2025"),
	)

	removed := s.RemoveWhere(func(Task) bool { return false })
	assert.Equal(t, 0, removed)
	assert.Equal(t, []string{"A", "B"}, courses(s.List()))
}

func TestRemoveWhereAll(t *testing.T) {
	s := setupTestStore(t,
		NewTask("A", "", "01-01-2025"),
		NewTask("B", "", "02-01-2025"),
	)

	removed := s.RemoveWhere(func(Task) bool { return true })
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, s.Len())

	// Store stays usable after being emptied.
	s.Add(NewTask("C", "", "03-01-2025"))
	assert.Equal(t, []string{"C"}, courses(s.List()))
}

func TestRemoveWhereDoesNotAliasEarlierList(t *testing.T) {
	s := setupTestStore(t,
		NewTask("A", "", "01-01-2025"),
		NewTask("B", "", "02-01-2025"),
		NewTask("C", "", "03-01-2025"),
	)
	before := s.List()

	s.RemoveWhere(func(t Task) bool { return t.CourseName == "A" })

	assert.Equal(t, []string{"A", "B", "C"}, courses(before))
	assert.Equal(t, []string{"B", "C"}, courses(s.List()))
}

func TestClear(t *testing.T) {
	s := setupTestStore(t,
		NewTask("A", "", "01-01-2025"),
		NewTask("B", "", "02-01-2025"),
	)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.List())
}

func TestStatusLabel(t *testing.T) {
	task := NewTask("A", "", "01-01-2025")
	assert.Equal(t, "Pending", task.StatusLabel())
	task.Completed = true
	assert.Equal(t, "Done", task.StatusLabel())
}
