package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// userID identifies whose task list the command operates on.
	userID string
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "todo keeps a per-user task list with live updates and offline fallback.",
	Long: `todo manages a per-user to-do list from the command line.

Tasks live in a document store (a per-user file by default) and every
command sees the store's current snapshot: the newest 100 tasks, most
recent first. A local cache keeps the last-known list available when the
store is unreachable. Tasks can carry deadlines, priorities, and nested
subtask checklists whose completion rolls up to the parent.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
	Version: version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.todo.yaml or ./.todo.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "user whose task list to operate on")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))
}

// newDocumentStore builds the configured document-store backend.
func newDocumentStore() (store.DocumentStore, error) {
	config := GetConfig()
	switch config.Data.Backend {
	case "memory":
		return store.NewMemoryDocumentStore(), nil
	default:
		return store.NewFileDocumentStore(afero.NewOsFs(), config.Data.Dir, config.Data.Format)
	}
}

// newSnapshotCache opens the configured cache, or returns nil when caching
// is disabled.
func newSnapshotCache() (*store.SQLiteSnapshotCache, error) {
	config := GetConfig()
	if config.Cache.Path == "" {
		return nil, nil
	}
	return store.NewSQLiteSnapshotCache(config.Cache.Path)
}

// session bundles the subscribed task store with its collaborators for the
// lifetime of one command invocation.
type session struct {
	Store *store.TaskStore
	Cache *store.SQLiteSnapshotCache
	docs  store.DocumentStore
}

// openSession wires the document store, cache, and task store, then opens
// the user subscription. A subscription failure with a cached snapshot is
// reported but not fatal: the session continues read-only on the cache.
func openSession(cmd *cobra.Command) (*session, error) {
	config := GetConfig()

	docs, err := newDocumentStore()
	if err != nil {
		return nil, fmt.Errorf("open document store: %w", err)
	}
	cache, err := newSnapshotCache()
	if err != nil {
		_ = docs.Close()
		return nil, fmt.Errorf("open snapshot cache: %w", err)
	}

	var cacheIface store.SnapshotCache
	if cache != nil {
		cacheIface = cache
	}
	ts := store.NewTaskStore(docs, cacheIface, config.Sync)
	if err := ts.Subscribe(cmd.Context(), config.User); err != nil {
		if ts.UserID() == "" {
			_ = docs.Close()
			if cache != nil {
				_ = cache.Close()
			}
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "⚠️  Store unreachable, showing cached tasks: %v\n", err)
	}

	return &session{Store: ts, Cache: cache, docs: docs}, nil
}

// Close tears down the subscription and all backends.
func (s *session) Close() {
	s.Store.Unsubscribe()
	_ = s.docs.Close()
	if s.Cache != nil {
		_ = s.Cache.Close()
	}
}

// setupLogging routes slog to stderr, quiet by default.
func setupLogging() {
	level := slog.LevelWarn
	if GetConfig().Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// defaultCachePath places the cache under the user config dir, falling
// back to the working directory.
func defaultCachePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".todo", "cache.db")
	}
	return filepath.Join(dir, "todo", "cache.db")
}
