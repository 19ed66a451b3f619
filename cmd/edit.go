package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <task>",
	Short: "Edit a task's text, deadline, or priority",
	Long: `Change fields of an existing task, referenced by list position, full
ID, or a unique ID prefix. Only the flags you pass are changed; the
task's ID and creation date never move. Subtasks are edited with
'todo sub'.

Examples:
  todo edit 1 --text "Buy groceries and milk"
  todo edit 1 --deadline 2026-09-01T18:00
  todo edit 1 --deadline none
  todo edit 1 --priority high`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editText     string
	editDeadline string
	editPriority string
)

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editText, "text", "", "new task text")
	editCmd.Flags().StringVar(&editDeadline, "deadline", "", "new deadline as RFC 3339 or 2006-01-02T15:04 (local), or 'none' to clear")
	editCmd.Flags().StringVar(&editPriority, "priority", "", "new priority: low, normal, or high")
}

func runEdit(cmd *cobra.Command, args []string) error {
	patch, err := editPatch(editText, editDeadline, editPriority)
	if err != nil {
		return err
	}
	if len(patch) == 0 {
		return fmt.Errorf("nothing to change; pass --text, --deadline, or --priority")
	}

	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	task, err := resolveTask(sess.Store, args[0])
	if err != nil {
		return err
	}

	if err := sess.Store.Update(cmd.Context(), task.ID, patch); err != nil {
		return err
	}

	fmt.Printf("✎ Updated: %s (%s)\n", task.Text, shortRef(task.ID))
	return nil
}

// editPatch builds the partial update from whichever flags were set. The
// literal "none" clears the deadline.
func editPatch(text, deadline, priority string) (map[string]interface{}, error) {
	patch := make(map[string]interface{})
	if text != "" {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil, fmt.Errorf("task text cannot be blank")
		}
		patch["text"] = trimmed
	}
	if deadline != "" {
		if deadline == "none" {
			patch["deadline"] = nil
		} else {
			ts, err := parseDeadline(deadline)
			if err != nil {
				return nil, err
			}
			patch["deadline"] = ts
		}
	}
	if priority != "" {
		patch["priority"] = priority
	}
	return patch, nil
}
