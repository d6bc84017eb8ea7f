// Package report renders task store results for the command line as text,
// JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/stefanpenner/duedate/pkg/store"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ValidFormats lists the accepted --format values.
var ValidFormats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	for _, f := range ValidFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format %q: must be one of %v", s, ValidFormats)
}

// TaskView is one task as printed, with its 1-based display position.
type TaskView struct {
	Index       int    `json:"index" yaml:"index"`
	ID          string `json:"id" yaml:"id"`
	Course      string `json:"course" yaml:"course"`
	Description string `json:"description" yaml:"description"`
	Deadline    string `json:"deadline" yaml:"deadline"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// Views numbers tasks from 1 in their current order.
func Views(tasks []store.Task) []TaskView {
	views := make([]TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = TaskView{
			Index:       i + 1,
			ID:          t.ID,
			Course:      t.CourseName,
			Description: t.Description,
			Deadline:    t.Deadline,
			Completed:   t.Completed,
		}
	}
	return views
}

type listPayload struct {
	Tasks []TaskView `json:"tasks" yaml:"tasks"`
}

type searchPayload struct {
	Query string    `json:"query" yaml:"query"`
	Found bool      `json:"found" yaml:"found"`
	Task  *TaskView `json:"task,omitempty" yaml:"task,omitempty"`
}

type countPayload struct {
	Count int `json:"count" yaml:"count"`
}

type completePayload struct {
	Removed int        `json:"removed" yaml:"removed"`
	Tasks   []TaskView `json:"tasks" yaml:"tasks"`
}

type messagePayload struct {
	Message string `json:"message" yaml:"message"`
}

// Printer writes results in one format.
type Printer struct {
	Format Format
	Writer io.Writer
}

// Tasks prints the task list.
func (p *Printer) Tasks(tasks []store.Task) error {
	if p.Format == FormatText {
		return WriteTaskList(p.Writer, tasks)
	}
	return p.encode(listPayload{Tasks: Views(tasks)})
}

// SearchResult prints the outcome of a search for query.
func (p *Printer) SearchResult(query string, task store.Task, found bool) error {
	if p.Format == FormatText {
		if !found {
			_, err := fmt.Fprintf(p.Writer, "No task found for %q.\n", query)
			return err
		}
		_, err := fmt.Fprintf(p.Writer, "Found: %s | %s | Deadline: %s\n", task.CourseName, task.Description, task.Deadline)
		return err
	}

	payload := searchPayload{Query: query, Found: found}
	if found {
		v := Views([]store.Task{task})[0]
		v.Index = 0
		payload.Task = &v
	}
	return p.encode(payload)
}

// Count prints the task count.
func (p *Printer) Count(n int) error {
	if p.Format == FormatText {
		_, err := fmt.Fprintf(p.Writer, "Total tasks: %d\n", n)
		return err
	}
	return p.encode(countPayload{Count: n})
}

// Completed prints how many tasks a completion removed and what remains.
func (p *Printer) Completed(removed int, tasks []store.Task) error {
	if p.Format == FormatText {
		if _, err := fmt.Fprintf(p.Writer, "Task marked complete. Removed %d completed task(s).\n", removed); err != nil {
			return err
		}
		return WriteTaskList(p.Writer, tasks)
	}
	return p.encode(completePayload{Removed: removed, Tasks: Views(tasks)})
}

// Message prints a one-line notice.
func (p *Printer) Message(msg string) error {
	if p.Format == FormatText {
		_, err := fmt.Fprintln(p.Writer, msg)
		return err
	}
	return p.encode(messagePayload{Message: msg})
}

func (p *Printer) encode(v interface{}) error {
	switch p.Format {
	case FormatJSON:
		enc := json.NewEncoder(p.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(p.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", p.Format)
	}
}

// WriteTaskList prints tasks one per line, numbered from 1.
func WriteTaskList(w io.Writer, tasks []store.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks yet.")
		return err
	}
	for i, t := range tasks {
		_, err := fmt.Fprintf(w, "%d. %s | %s | Deadline: %s | Status: %s\n",
			i+1, t.CourseName, t.Description, t.Deadline, t.StatusLabel())
		if err != nil {
			return err
		}
	}
	return nil
}
