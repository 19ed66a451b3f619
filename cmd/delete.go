package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <task>",
	Short: "Delete a task",
	Long: `Delete a task, referenced by list position, full ID, or a unique ID
prefix. The deleted task is held for a single 'todo undo'; deleting again
replaces the held task.`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	task, err := resolveTask(sess.Store, args[0])
	if err != nil {
		return err
	}

	removed, err := sess.Store.Remove(cmd.Context(), task.ID)
	if err != nil {
		return err
	}

	if err := saveUndoSlot(sess.Cache, GetConfig().User, removed); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Could not save undo state: %v\n", err)
	}

	fmt.Printf("✗ Deleted: %s (undo with 'todo undo')\n", removed.Text)
	return nil
}
