package store

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// taskFile is the on-disk shape of a task list:
//
//	tasks:
//	  - course: CS101
//	    description: HW1
//	    deadline: 15-03-2025
//	    completed: false
type taskFile struct {
	Tasks []Task `yaml:"tasks"`
}

// ParseTaskFile decodes a YAML task list. An empty document yields no tasks.
func ParseTaskFile(content string) ([]Task, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	var f taskFile
	if err := yaml.Unmarshal([]byte(content), &f); err != nil {
		return nil, fmt.Errorf("parsing task file YAML: %w", err)
	}
	return f.Tasks, nil
}

// SerializeTaskFile renders tasks as a YAML task list that ParseTaskFile
// accepts.
func SerializeTaskFile(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	out, err := yaml.Marshal(taskFile{Tasks: tasks})
	if err != nil {
		return "", fmt.Errorf("serializing task file YAML: %w", err)
	}
	return string(out), nil
}

// ReadTaskFile reads and parses the task list at path.
func ReadTaskFile(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading task file %s: %w", path, err)
	}
	tasks, err := ParseTaskFile(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tasks, nil
}

// Seed appends tasks through Add, then marks the ones flagged completed so
// that a later compaction sweeps them. Deadlines are carried through as-is.
func (s *Store) Seed(tasks []Task) {
	for _, t := range tasks {
		s.Add(t)
		if t.Completed {
			s.tasks[len(s.tasks)-1].Completed = true
		}
	}
}
