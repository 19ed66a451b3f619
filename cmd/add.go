package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/store"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task to your list",
	Long: `Add a task. The text may span multiple arguments.

Examples:
  todo add "Buy groceries"
  todo add Water the plants --deadline 2026-09-01T18:00
  todo add "Ship the release" --priority high`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDeadline string
	addPriority string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addDeadline, "deadline", "", "deadline as RFC 3339 or 2006-01-02T15:04 (local)")
	addCmd.Flags().StringVar(&addPriority, "priority", "", "priority: low, normal, or high")
}

func runAdd(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("task text cannot be empty")
	}

	draft := store.TaskDraft{Text: text}
	if addPriority != "" {
		draft.Priority = models.TaskPriority(addPriority)
	}
	if addDeadline != "" {
		deadline, err := parseDeadline(addDeadline)
		if err != nil {
			return err
		}
		draft.Deadline = &deadline
	}

	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	id, err := sess.Store.Create(cmd.Context(), draft)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Added: %s (%s)\n", text, shortRef(id))
	return nil
}

// parseDeadline accepts RFC 3339 or a local date/time without zone.
func parseDeadline(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if layout == time.RFC3339 {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, nil
			}
			continue
		}
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse deadline %q (want RFC 3339, 2006-01-02T15:04, or 2006-01-02)", s)
}

func shortRef(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
