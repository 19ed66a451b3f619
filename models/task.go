package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityNormal TaskPriority = "normal"
	PriorityHigh   TaskPriority = "high"
)

// Subtask is a nested checklist entry belonging to exactly one Task.
// It has no identity of its own; it is addressed by position within the
// parent's sequence.
type Subtask struct {
	Text      string `json:"text" yaml:"text" validate:"required,min=1,max=255"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Task is one user-visible to-do item.
//
// With a non-empty Subtasks list, Completed is derived state: it is true
// exactly when every subtask is completed, and is never writable directly.
// The subtask sequence is kept with all incomplete entries before all
// completed entries; order within each half is user-controlled.
type Task struct {
	ID        string       `json:"id" yaml:"id" validate:"omitempty,uuid4"`
	Text      string       `json:"text" yaml:"text" validate:"required,min=1,max=500"`
	AddedDate time.Time    `json:"addedDate" yaml:"addedDate" validate:"required"`
	Deadline  *time.Time   `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Priority  TaskPriority `json:"priority" yaml:"priority" validate:"required,oneof=low normal high"`
	Completed bool         `json:"completed" yaml:"completed"`
	Subtasks  []Subtask    `json:"subtasks,omitempty" yaml:"subtasks,omitempty" validate:"dive"`
}

// TaskList is a full point-in-time snapshot of a user's task collection,
// ordered by AddedDate descending.
type TaskList struct {
	Tasks      []Task `json:"tasks" yaml:"tasks" validate:"dive"`
	TotalCount int    `json:"totalCount" yaml:"totalCount"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// NewTask returns a task with defaults applied: incomplete, normal priority,
// no subtasks, AddedDate set to now.
func NewTask(id, text string) *Task {
	return &Task{
		ID:        id,
		Text:      text,
		AddedDate: time.Now().UTC(),
		Priority:  PriorityNormal,
		Completed: false,
		Subtasks:  []Subtask{},
	}
}

// Clone returns a deep copy of the task. Subtask slices are never shared
// between the canonical collection and snapshots handed to callers.
func (t Task) Clone() Task {
	out := t
	if t.Deadline != nil {
		d := *t.Deadline
		out.Deadline = &d
	}
	if t.Subtasks != nil {
		out.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(out.Subtasks, t.Subtasks)
	}
	return out
}

// Clone returns a deep copy of the snapshot.
func (l TaskList) Clone() TaskList {
	out := TaskList{TotalCount: l.TotalCount}
	if l.Tasks != nil {
		out.Tasks = make([]Task, len(l.Tasks))
		for i, t := range l.Tasks {
			out.Tasks[i] = t.Clone()
		}
	}
	return out
}

// HasIncompleteSubtasks reports whether at least one subtask is not done.
func (t Task) HasIncompleteSubtasks() bool {
	for _, s := range t.Subtasks {
		if !s.Completed {
			return true
		}
	}
	return false
}

// Overdue reports whether the task has a deadline in the past and is not
// completed.
func (t Task) Overdue(now time.Time) bool {
	return !t.Completed && t.Deadline != nil && t.Deadline.Before(now)
}
