package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/types"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:   "done <task>",
	Short: "Toggle a task's completion",
	Long: `Toggle a task between completed and not completed. The task is
referenced by its list position, full ID, or a unique ID prefix.

A task with subtasks cannot be toggled directly: its completion follows
from its subtasks. Use 'todo sub done' on the remaining items instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	task, err := resolveTask(sess.Store, args[0])
	if err != nil {
		return err
	}

	if err := sess.Store.ToggleCompletion(cmd.Context(), task.ID); err != nil {
		if types.IsCode(err, types.CodeLocked) {
			return fmt.Errorf("%q has subtasks; complete or remove them with 'todo sub' instead", task.Text)
		}
		return err
	}

	if task.Completed {
		fmt.Printf("↺ Reopened: %s\n", task.Text)
	} else {
		fmt.Printf("✓ Completed: %s\n", task.Text)
	}
	return nil
}
