package tui

import (
	"github.com/stefanpenner/duedate/pkg/store"
)

// Row is a task as displayed in the list pane.
type Row struct {
	Index         int // 1-based position, the number passed to MarkCompleteAndCompact
	Task          store.Task
	ValidDeadline bool
}

// BuildRows numbers tasks in display order.
func BuildRows(tasks []store.Task) []Row {
	rows := make([]Row, len(tasks))
	for i, t := range tasks {
		rows[i] = Row{
			Index:         i + 1,
			Task:          t,
			ValidDeadline: store.ValidDeadline(t.Deadline),
		}
	}
	return rows
}

// FindRow returns the position of the row holding the task with id, or -1.
func FindRow(rows []Row, id string) int {
	for i, r := range rows {
		if r.Task.ID == id {
			return i
		}
	}
	return -1
}

// InvalidDeadlines counts rows whose deadline the codec rejects.
func InvalidDeadlines(rows []Row) int {
	n := 0
	for _, r := range rows {
		if !r.ValidDeadline {
			n++
		}
	}
	return n
}
