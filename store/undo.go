package store

import (
	"context"
	"sync"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/types"
)

// UndoBuffer holds the most recently deleted task for one generation of
// single-step restore. There is no history stack: a new capture overwrites
// the previous one, and a successful restore empties the buffer.
type UndoBuffer struct {
	mu   sync.Mutex
	task *models.Task
	id   string
}

// NewUndoBuffer returns an empty buffer.
func NewUndoBuffer() *UndoBuffer {
	return &UndoBuffer{}
}

// Capture remembers a deleted task and its pre-delete ID, overwriting any
// prior held value.
func (b *UndoBuffer) Capture(task models.Task, id string) {
	b.mu.Lock()
	t := task.Clone()
	b.task = &t
	b.id = id
	b.mu.Unlock()
}

// Held returns the captured task and ID without consuming them, with
// ok=false when the buffer is empty.
func (b *UndoBuffer) Held() (models.Task, string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.task == nil {
		return models.Task{}, "", false
	}
	return b.task.Clone(), b.id, true
}

// Restore re-creates the captured task through the store and empties the
// buffer. The restored task gets a fresh store-assigned ID; the original
// identifier is not reclaimed. A second Restore without a new Capture
// fails with EmptyBufferError.
func (b *UndoBuffer) Restore(ctx context.Context, s *TaskStore) (string, error) {
	b.mu.Lock()
	if b.task == nil {
		b.mu.Unlock()
		return "", types.NewEmptyBufferError()
	}
	task := b.task.Clone()
	b.mu.Unlock()

	id, err := s.Create(ctx, TaskDraft{
		Text:      task.Text,
		Deadline:  task.Deadline,
		Priority:  task.Priority,
		Subtasks:  task.Subtasks,
		Completed: task.Completed,
	})
	if err != nil {
		// The buffer keeps its value so the user can retry after a
		// transient write failure.
		return "", err
	}

	b.mu.Lock()
	b.task = nil
	b.id = ""
	b.mu.Unlock()
	return id, nil
}
