package cmd

import (
	"strconv"
	"strings"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/store"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/types"
)

// resolveTask maps a user-supplied reference to a task in the current
// snapshot. A reference is a full ID, a unique ID prefix, or a 1-based
// position in list order.
func resolveTask(s *store.TaskStore, ref string) (models.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Task{}, types.NewValidationError("task reference must not be empty")
	}
	snapshot := s.Snapshot()

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(snapshot.Tasks) {
			return models.Task{}, types.NewNotFoundError(ref)
		}
		return snapshot.Tasks[n-1], nil
	}

	var matches []models.Task
	for _, t := range snapshot.Tasks {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Task{}, types.NewNotFoundError(ref)
	default:
		return models.Task{}, types.NewValidationError("task reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// undoSlotKey namespaces the cross-invocation undo slot away from regular
// snapshot rows in the cache.
func undoSlotKey(user string) string {
	return "undo:" + user
}

// saveUndoSlot persists the last-deleted task so a later invocation can
// restore it. Best effort, a nil cache disables the feature.
func saveUndoSlot(cache *store.SQLiteSnapshotCache, user string, task models.Task) error {
	if cache == nil {
		return nil
	}
	return cache.Put(undoSlotKey(user), models.TaskList{Tasks: []models.Task{task}, TotalCount: 1})
}

// loadUndoSlot reads the held task, ok=false when the slot is empty.
func loadUndoSlot(cache *store.SQLiteSnapshotCache, user string) (models.Task, bool, error) {
	if cache == nil {
		return models.Task{}, false, nil
	}
	list, ok, err := cache.Get(undoSlotKey(user))
	if err != nil || !ok || len(list.Tasks) == 0 {
		return models.Task{}, false, err
	}
	return list.Tasks[0], true, nil
}

// clearUndoSlot empties the slot after a successful restore.
func clearUndoSlot(cache *store.SQLiteSnapshotCache, user string) {
	if cache == nil {
		return
	}
	_ = cache.Delete(undoSlotKey(user))
}
