package session

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/duedate/pkg/logging"
	"github.com/stefanpenner/duedate/pkg/store"
)

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return New(opts)
}

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func courseNames(tasks []store.Task) []string {
	var out []string
	for _, t := range tasks {
		out = append(out, t.CourseName)
	}
	return out
}

func TestAddAndList(t *testing.T) {
	s := newTestSession(t, Options{})

	task, err := s.Add("CS101", "HW1", "15-03-2025")
	require.NoError(t, err)
	assert.Equal(t, "CS101", task.CourseName)
	assert.False(t, task.Completed)

	_, err = s.Add("MA201", "HW2", "01-03-2025")
	require.NoError(t, err)

	assert.Equal(t, []string{"CS101", "MA201"}, courseNames(s.List()))
}

func TestAddPermissiveByDefault(t *testing.T) {
	s := newTestSession(t, Options{})

	task, err := s.Add("CS101", "HW1", "next friday")
	require.NoError(t, err)
	assert.Equal(t, "next friday", task.Deadline)
}

func TestAddStrictDeadlines(t *testing.T) {
	s := newTestSession(t, Options{StrictDeadlines: true})

	_, err := s.Add("CS101", "HW1", "2025-03-15")
	assert.ErrorIs(t, err, store.ErrInvalidDateFormat)
	assert.Equal(t, 0, s.Count())

	_, err = s.Add("CS101", "HW1", "15-03-2025")
	assert.NoError(t, err)
	assert.Equal(t, 1, s.Count())
}

func TestSortScenario(t *testing.T) {
	s := newTestSession(t, Options{})
	_, _ = s.Add("CS101", "HW1", "15-03-2025")
	_, _ = s.Add("MA201", "HW2", "01-03-2025")

	sorted, err := s.Sort()
	require.NoError(t, err)
	assert.Equal(t, []string{"MA201", "CS101"}, courseNames(sorted))
	assert.Equal(t, []string{"MA201", "CS101"}, courseNames(s.List()))
}

func TestSortEmpty(t *testing.T) {
	s := newTestSession(t, Options{})

	_, err := s.Sort()
	assert.ErrorIs(t, err, store.ErrEmptyStore)
}

func TestSortSingleRecord(t *testing.T) {
	s := newTestSession(t, Options{})
	_, _ = s.Add("CS101", "HW1", "not a date")
	before := s.List()

	_, err := s.Sort()
	assert.ErrorIs(t, err, store.ErrTooFewRecords)
	assert.Equal(t, before, s.List())
}

func TestSortInvalidDeadline(t *testing.T) {
	s := newTestSession(t, Options{})
	_, _ = s.Add("CS101", "HW1", "15-03-2025")
	_, _ = s.Add("MA201", "HW2", "2025-03-01")
	before := s.List()

	_, err := s.Sort()
	assert.ErrorIs(t, err, store.ErrInvalidDateFormat)
	assert.Equal(t, before, s.List())
}

func TestSearch(t *testing.T) {
	s := newTestSession(t, Options{})
	_, _ = s.Add("CS101", "HW1", "15-03-2025")

	task, found, err := s.Search("cs101")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "HW1", task.Description)

	_, found, err = s.Search("MA201")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSearchEmpty(t *testing.T) {
	s := newTestSession(t, Options{})

	_, found, err := s.Search("CS101")
	assert.ErrorIs(t, err, store.ErrEmptyStore)
	assert.False(t, found)
}

func TestCount(t *testing.T) {
	s := newTestSession(t, Options{})
	assert.Equal(t, 0, s.Count())

	_, _ = s.Add("A", "", "01-01-2025")
	_, _ = s.Add("B", "", "02-01-2025")
	assert.Equal(t, 2, s.Count())
}

func TestMarkCompleteAndCompact(t *testing.T) {
	s := newTestSession(t, Options{})
	_, _ = s.Add("A", "", "01-01-2025")
	_, _ = s.Add("B", "", "02-01-2025")
	_, _ = s.Add("C", "", "03-01-2025")

	removed, err := s.MarkCompleteAndCompact(2)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"A", "C"}, courseNames(s.List()))
	assert.Equal(t, 2, s.Count())
}

func TestMarkCompleteAndCompactErrors(t *testing.T) {
	s := newTestSession(t, Options{})

	_, err := s.MarkCompleteAndCompact(1)
	assert.ErrorIs(t, err, store.ErrEmptyStore)

	_, _ = s.Add("A", "", "01-01-2025")
	_, err = s.MarkCompleteAndCompact(0)
	assert.ErrorIs(t, err, store.ErrIndexOutOfRange)
	_, err = s.MarkCompleteAndCompact(2)
	assert.ErrorIs(t, err, store.ErrIndexOutOfRange)
	assert.Equal(t, 1, s.Count())
}

func TestOpenWithSeed(t *testing.T) {
	path := writeSeed(t, `tasks:
  - course: CS101
    description: HW1
    deadline: 15-03-2025
  - course: OLD
    description: finished last week
    deadline: 01-02-2025
    completed: true
  - course: MA201
    description: HW2
    deadline: 01-03-2025
`)

	s, err := Open(Options{SeedPath: path, Logger: logging.Discard()})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count())

	// Completing CS101 also sweeps the task that arrived already completed.
	removed, err := s.MarkCompleteAndCompact(1)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"MA201"}, courseNames(s.List()))
}

func TestOpenMissingSeed(t *testing.T) {
	_, err := Open(Options{SeedPath: filepath.Join(t.TempDir(), "missing.yaml"), Logger: logging.Discard()})
	assert.Error(t, err)
}

func TestReloadReplacesStore(t *testing.T) {
	path := writeSeed(t, "tasks:\n  - course: A\n    deadline: 01-01-2025\n")

	s, err := Open(Options{SeedPath: path, Logger: logging.Discard()})
	require.NoError(t, err)
	_, _ = s.Add("extra", "", "02-01-2025")
	assert.Equal(t, 2, s.Count())

	require.NoError(t, os.WriteFile(path, []byte("tasks:\n  - course: B\n    deadline: 01-01-2025\n  - course: C\n    deadline: 02-01-2025\n"), 0644))
	n, err := s.Reload()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"B", "C"}, courseNames(s.List()))
}

func TestReloadFailureKeepsStore(t *testing.T) {
	path := writeSeed(t, "tasks:\n  - course: A\n    deadline: 01-01-2025\n")
	s, err := Open(Options{SeedPath: path, Logger: logging.Discard()})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("tasks: [\n"), 0644))
	_, err = s.Reload()
	assert.Error(t, err)
	assert.Equal(t, []string{"A"}, courseNames(s.List()))
}

func TestReloadWithoutSeed(t *testing.T) {
	s := newTestSession(t, Options{})
	_, err := s.Reload()
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	s := newTestSession(t, Options{})
	_, _ = s.Add("CS101", "HW1", "15-03-2025")

	out, err := s.Export()
	require.NoError(t, err)

	tasks, err := store.ParseTaskFile(out)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "CS101", tasks[0].CourseName)
	assert.Equal(t, "15-03-2025", tasks[0].Deadline)
}

func TestOperationsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	s := New(Options{Logger: logging.New(&buf, slog.LevelDebug)})

	_, _ = s.Add("CS101", "HW1", "15-03-2025")
	_, _ = s.Sort()
	_, _, _ = s.Search("cs101")

	out := buf.String()
	assert.Contains(t, out, "msg=\"task added\"")
	assert.Contains(t, out, "course=CS101")
	assert.Contains(t, out, "msg=\"sort rejected\"")
	assert.Contains(t, out, "msg=search")
}
