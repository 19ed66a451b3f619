package store

import (
	"context"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
)

// DocumentStore is the remote per-user task collection. Implementations
// must deliver full snapshots (never deltas) ordered by AddedDate
// descending and bounded to the subscription's limit, and must assign
// document IDs on create.
type DocumentStore interface {
	// Subscribe opens a live snapshot stream for the user. onSnapshot is
	// invoked with an initial snapshot and again after every change, in the
	// store's commit order; onError reports a failed stream. The returned
	// cancel func tears the stream down synchronously: once it returns, no
	// further callbacks fire.
	Subscribe(ctx context.Context, userID string, limit int, onSnapshot func(models.TaskList), onError func(error)) (cancel func(), err error)

	// Create adds a document and returns its store-assigned ID.
	Create(ctx context.Context, userID string, task models.Task) (string, error)

	// Update merges the patch fields into an existing document.
	Update(ctx context.Context, userID, id string, patch map[string]interface{}) error

	// Delete removes a document and returns its last-known state.
	Delete(ctx context.Context, userID, id string) (models.Task, error)

	// Close releases any resources held by the store.
	Close() error
}

// SnapshotCache is the local durable cache, keyed by user. It is a
// best-effort fallback: a failed write never fails the operation that
// triggered it, and readers must tolerate absence.
type SnapshotCache interface {
	// Get returns the cached snapshot for the user, with ok=false when no
	// entry exists.
	Get(userID string) (list models.TaskList, ok bool, err error)

	// Put replaces the cached snapshot for the user.
	Put(userID string, list models.TaskList) error

	// Close releases the cache's resources.
	Close() error
}
