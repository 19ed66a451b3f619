package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
)

// SQLiteSnapshotCache implements SnapshotCache on a local SQLite database:
// one row per user holding the serialized last-known snapshot. It is a
// per-device cache; concurrent writers from other processes follow
// last-writer-wins, which is the documented limitation, not a bug.
type SQLiteSnapshotCache struct {
	db *sql.DB
}

// NewSQLiteSnapshotCache opens (creating if needed) the cache database at
// path. ":memory:" gives a throwaway cache for tests.
func NewSQLiteSnapshotCache(path string) (*SQLiteSnapshotCache, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create cache directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		user_id    TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return &SQLiteSnapshotCache{db: db}, nil
}

// Get returns the cached snapshot for the user.
func (c *SQLiteSnapshotCache) Get(userID string) (models.TaskList, bool, error) {
	var payload string
	err := c.db.QueryRow(`SELECT payload FROM snapshots WHERE user_id = ?`, userID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TaskList{}, false, nil
	}
	if err != nil {
		return models.TaskList{}, false, fmt.Errorf("read cached snapshot: %w", err)
	}
	var list models.TaskList
	if err := json.Unmarshal([]byte(payload), &list); err != nil {
		return models.TaskList{}, false, fmt.Errorf("decode cached snapshot: %w", err)
	}
	return list, true, nil
}

// Put replaces the cached snapshot for the user.
func (c *SQLiteSnapshotCache) Put(userID string, list models.TaskList) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = c.db.Exec(`
		INSERT INTO snapshots (user_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		userID, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write cached snapshot: %w", err)
	}
	return nil
}

// Delete drops the user's cached snapshot. Used by the CLI shell for its
// cross-invocation undo slot.
func (c *SQLiteSnapshotCache) Delete(userID string) error {
	_, err := c.db.Exec(`DELETE FROM snapshots WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete cached snapshot: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (c *SQLiteSnapshotCache) Close() error {
	return c.db.Close()
}
