package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/internal/ui"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live task view",
	Long: `Open a full-screen view that follows the task list as it changes:
edits made by other invocations or processes appear as the store emits
new snapshots. Tasks can be added, toggled, deleted, and restored
without leaving the view.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	model := ui.NewWatchModel(sess.Store, ui.Options{
		Features: GetConfig().Features,
		Now:      time.Now(),
	})
	return model.Run()
}
