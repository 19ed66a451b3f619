// Package subtasks holds the pure reconciliation logic for a task's nested
// checklist: completion derivation, partition ordering, and reorders.
//
// Every function takes a task value and returns a new task value; nothing
// here touches a backing store. Two invariants are re-established after
// every mutation:
//
//   - a task with subtasks is completed exactly when all subtasks are, and
//   - all incomplete subtasks come before all completed ones, with the
//     user-chosen order preserved inside each half.
package subtasks

import (
	"strings"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/types"
)

// SetCompletion flips the subtask at index and returns the reconciled task.
func SetCompletion(task models.Task, index int, completed bool) (models.Task, error) {
	if index < 0 || index >= len(task.Subtasks) {
		return task, types.NewValidationError("subtask index %d out of range (task has %d subtasks)", index, len(task.Subtasks))
	}
	out := task.Clone()
	out.Subtasks[index].Completed = completed
	out.Subtasks = partition(out.Subtasks)
	out.Completed = allCompleted(out.Subtasks)
	return out, nil
}

// Add appends an incomplete subtask. A previously completed task (only
// possible with zero prior subtasks) flips back to incomplete, since the
// new subtask is not done.
func Add(task models.Task, text string) (models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return task, types.NewValidationError("subtask text must not be empty")
	}
	out := task.Clone()
	out.Subtasks = append(out.Subtasks, models.Subtask{Text: text, Completed: false})
	out.Subtasks = partition(out.Subtasks)
	out.Completed = false
	return out, nil
}

// Remove deletes the subtask at index and re-derives completion. When the
// removal leaves zero subtasks the task keeps its completion value as of
// the removal and becomes freely toggleable again.
func Remove(task models.Task, index int) (models.Task, error) {
	if index < 0 || index >= len(task.Subtasks) {
		return task, types.NewValidationError("subtask index %d out of range (task has %d subtasks)", index, len(task.Subtasks))
	}
	out := task.Clone()
	out.Subtasks = append(out.Subtasks[:index], out.Subtasks[index+1:]...)
	if len(out.Subtasks) > 0 {
		out.Completed = allCompleted(out.Subtasks)
	}
	return out, nil
}

// Reorder moves the subtask at from to position to. Moves are confined to a
// single completion partition; crossing the boundary is only possible by
// toggling completion, never by dragging.
func Reorder(task models.Task, from, to int) (models.Task, error) {
	n := len(task.Subtasks)
	if from < 0 || from >= n {
		return task, types.NewValidationError("subtask index %d out of range (task has %d subtasks)", from, n)
	}
	if to < 0 || to >= n {
		return task, types.NewValidationError("subtask index %d out of range (task has %d subtasks)", to, n)
	}
	boundary := incompleteCount(task.Subtasks)
	if (from < boundary) != (to < boundary) {
		return task, types.NewCrossPartitionMoveError(from, to)
	}
	out := task.Clone()
	moved := out.Subtasks[from]
	out.Subtasks = append(out.Subtasks[:from], out.Subtasks[from+1:]...)
	out.Subtasks = append(out.Subtasks[:to], append([]models.Subtask{moved}, out.Subtasks[to:]...)...)
	out.Subtasks = partition(out.Subtasks)
	return out, nil
}

// Normalize re-applies both invariants without another mutation. Useful for
// task values arriving from outside (remote snapshots, restored backups).
func Normalize(task models.Task) models.Task {
	if len(task.Subtasks) == 0 {
		return task
	}
	out := task.Clone()
	out.Subtasks = partition(out.Subtasks)
	out.Completed = allCompleted(out.Subtasks)
	return out
}

// partition stably moves incomplete subtasks before completed ones.
func partition(subs []models.Subtask) []models.Subtask {
	out := make([]models.Subtask, 0, len(subs))
	for _, s := range subs {
		if !s.Completed {
			out = append(out, s)
		}
	}
	for _, s := range subs {
		if s.Completed {
			out = append(out, s)
		}
	}
	return out
}

func allCompleted(subs []models.Subtask) bool {
	for _, s := range subs {
		if !s.Completed {
			return false
		}
	}
	return len(subs) > 0
}

func incompleteCount(subs []models.Subtask) int {
	n := 0
	for _, s := range subs {
		if !s.Completed {
			n++
		}
	}
	return n
}
