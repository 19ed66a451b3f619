package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/store"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/subtasks"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/types"
)

// subCmd groups the subtask operations.
var subCmd = &cobra.Command{
	Use:   "sub",
	Short: "Manage a task's subtask checklist",
	Long: `Manage the nested checklist of a task. Subtasks are addressed by
their 1-based position in the list; incomplete subtasks always come
before completed ones. A task with subtasks derives its completion from
them: when the last subtask is checked off, the task completes itself.

Examples:
  todo sub add 1 "Write tests"
  todo sub done 1 2
  todo sub undone 1 2
  todo sub rm 1 3
  todo sub move 1 3 1`,
}

var subAddCmd = &cobra.Command{
	Use:   "add <task> <text>",
	Short: "Add a subtask",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args[1:], " "))
		return runSubtaskEdit(cmd, args[0], func(t models.Task) (models.Task, error) {
			return subtasks.Add(t, text)
		})
	},
}

var subDoneCmd = &cobra.Command{
	Use:   "done <task> <n>",
	Short: "Check off a subtask",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubtaskToggle(cmd, args[0], args[1], true)
	},
}

var subUndoneCmd = &cobra.Command{
	Use:   "undone <task> <n>",
	Short: "Uncheck a subtask",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubtaskToggle(cmd, args[0], args[1], false)
	},
}

var subRmCmd = &cobra.Command{
	Use:   "rm <task> <n>",
	Short: "Remove a subtask",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		return runSubtaskEdit(cmd, args[0], func(t models.Task) (models.Task, error) {
			return subtasks.Remove(t, index)
		})
	},
}

var subMoveCmd = &cobra.Command{
	Use:   "move <task> <from> <to>",
	Short: "Reorder a subtask within its completion group",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		to, err := parseIndex(args[2])
		if err != nil {
			return err
		}
		return runSubtaskEdit(cmd, args[0], func(t models.Task) (models.Task, error) {
			return subtasks.Reorder(t, from, to)
		})
	},
}

func init() {
	rootCmd.AddCommand(subCmd)
	subCmd.AddCommand(subAddCmd, subDoneCmd, subUndoneCmd, subRmCmd, subMoveCmd)
}

func runSubtaskToggle(cmd *cobra.Command, taskRef, indexRef string, completed bool) error {
	index, err := parseIndex(indexRef)
	if err != nil {
		return err
	}
	return runSubtaskEdit(cmd, taskRef, func(t models.Task) (models.Task, error) {
		return subtasks.SetCompletion(t, index, completed)
	})
}

// runSubtaskEdit resolves the task, applies the edit, and persists the
// result through a coalescer so the write path matches the live view's.
func runSubtaskEdit(cmd *cobra.Command, taskRef string, edit func(models.Task) (models.Task, error)) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	task, err := resolveTask(sess.Store, taskRef)
	if err != nil {
		return err
	}

	updated, err := edit(task)
	if err != nil {
		if types.IsCode(err, types.CodeCrossPartitionMove) {
			return fmt.Errorf("cannot move a subtask between the incomplete and completed groups; toggle it instead")
		}
		return err
	}

	delay := time.Duration(GetConfig().Sync.EffectiveDebounceMs()) * time.Millisecond
	if err := saveReconciled(cmd.Context(), sess.Store, updated, delay); err != nil {
		return err
	}

	printSubtasks(updated)
	return nil
}

// saveReconciled persists a reconciled task value through a coalescer. The
// flush runs on a timer goroutine when the quiet window elapses first, so
// the outcome comes back over a channel rather than a shared variable.
func saveReconciled(ctx context.Context, ts *store.TaskStore, task models.Task, delay time.Duration) error {
	result := make(chan error, 1)
	coalescer := store.NewCoalescer(func(t models.Task) {
		result <- ts.SaveSubtasks(ctx, t)
	}, delay)
	coalescer.Enqueue(task)
	coalescer.Stop()
	return <-result
}

func printSubtasks(t models.Task) {
	state := "active"
	if t.Completed {
		state = "completed"
	}
	fmt.Printf("%s (%s)\n", t.Text, state)
	for i, s := range t.Subtasks {
		mark := "[ ]"
		if s.Completed {
			mark = "[x]"
		}
		fmt.Printf("  %s %d) %s\n", mark, i+1, s.Text)
	}
	if len(t.Subtasks) == 0 {
		fmt.Fprintln(os.Stderr, "  (no subtasks)")
	}
}

// parseIndex converts a 1-based user-facing position to a 0-based index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("subtask position must be a positive number, got %q", s)
	}
	return n - 1, nil
}
