package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/internal/ui"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/view"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [all|active|completed|overdue]",
	Short: "List your tasks",
	Long: `List the current snapshot of your tasks, newest first, with a
completion summary. An optional filter narrows the listing; the summary
always covers the whole snapshot.

Examples:
  todo list
  todo list active
  todo list --by-day
  todo list overdue --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var (
	listByDay bool
	listJSON  bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listByDay, "by-day", false, "group tasks by the day they were added")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "emit the filtered snapshot as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	filter, ok := view.ParseFilter(name)
	if !ok {
		return fmt.Errorf("unknown filter %q (want all, active, completed, or overdue)", name)
	}

	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	config := GetConfig()
	now := time.Now()
	snapshot := sess.Store.Snapshot()
	progress := view.Summarize(snapshot)
	opts := ui.Options{Features: config.Features, Now: now, ShowIDs: true}

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Tasks    interface{}   `json:"tasks"`
			Progress view.Progress `json:"progress"`
		}{Tasks: view.Project(snapshot, filter, now), Progress: progress})
	}

	if listByDay && config.Features.GroupByDay {
		fmt.Print(ui.RenderDayGroups(view.ProjectByDay(snapshot, filter, now), progress, opts))
		return nil
	}
	fmt.Print(ui.RenderTasks(view.Project(snapshot, filter, now), progress, opts))
	return nil
}
