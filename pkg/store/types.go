package store

// Task is a single course assignment held by the Store.
type Task struct {
	// ID is an opaque handle assigned by Add. No algorithm looks at it.
	ID string `yaml:"-" json:"id"`

	CourseName  string `yaml:"course" json:"course"`
	Description string `yaml:"description" json:"description"`
	Deadline    string `yaml:"deadline" json:"deadline"` // DD-MM-YYYY, unvalidated
	Completed   bool   `yaml:"completed" json:"completed"`
}

// NewTask returns a pending task with the given fields.
func NewTask(course, description, deadline string) Task {
	return Task{
		CourseName:  course,
		Description: description,
		Deadline:    deadline,
	}
}

// IsComplete returns true if the task has been marked complete.
func (t Task) IsComplete() bool {
	return t.Completed
}

// StatusLabel returns the human-readable completion state.
func (t Task) StatusLabel() string {
	if t.Completed {
		return "Done"
	}
	return "Pending"
}
