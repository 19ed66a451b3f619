package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/store"
)

// undoCmd represents the undo command
var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Restore the most recently deleted task",
	Long: `Restore the task held by the last 'todo delete'. Only the most recent
deletion is held, and a restore consumes it: the restored task comes back
with a new ID.`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

func init() {
	rootCmd.AddCommand(undoCmd)
}

func runUndo(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	user := GetConfig().User
	task, ok, err := loadUndoSlot(sess.Cache, user)
	if err != nil {
		return fmt.Errorf("read undo state: %w", err)
	}
	if !ok {
		return fmt.Errorf("nothing to undo")
	}

	id, err := sess.Store.Create(cmd.Context(), store.TaskDraft{
		Text:      task.Text,
		Deadline:  task.Deadline,
		Priority:  task.Priority,
		Subtasks:  task.Subtasks,
		Completed: task.Completed,
	})
	if err != nil {
		// Keep the slot so the user can retry once the store is back.
		return err
	}
	clearUndoSlot(sess.Cache, user)

	fmt.Printf("↩ Restored: %s (%s)\n", task.Text, shortRef(id))
	return nil
}
