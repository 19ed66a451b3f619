package store

import (
	"time"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/types"
)

// applyPatch merges patch fields into the task. ID and AddedDate are not
// patchable; the TaskStore refuses them before a patch ever reaches a
// backend, and backends refuse them again here.
func applyPatch(task *models.Task, patch map[string]interface{}) error {
	for key, value := range patch {
		switch key {
		case "text":
			s, ok := value.(string)
			if !ok || s == "" {
				return types.NewValidationError("field 'text' must be a non-empty string")
			}
			task.Text = s
		case "deadline":
			switch v := value.(type) {
			case nil:
				task.Deadline = nil
			case time.Time:
				t := v
				task.Deadline = &t
			case *time.Time:
				task.Deadline = v
			default:
				return types.NewValidationError("field 'deadline' must be a timestamp or null")
			}
		case "priority":
			switch v := value.(type) {
			case models.TaskPriority:
				task.Priority = v
			case string:
				task.Priority = models.TaskPriority(v)
			default:
				return types.NewValidationError("field 'priority' must be a string")
			}
		case "completed":
			b, ok := value.(bool)
			if !ok {
				return types.NewValidationError("field 'completed' must be a boolean")
			}
			task.Completed = b
		case "subtasks":
			subs, ok := value.([]models.Subtask)
			if !ok {
				return types.NewValidationError("field 'subtasks' must be a subtask list")
			}
			task.Subtasks = make([]models.Subtask, len(subs))
			copy(task.Subtasks, subs)
		default:
			return types.NewValidationError("field '%s' is not patchable", key)
		}
	}
	return models.ValidateStruct(*task)
}
