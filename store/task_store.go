package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/subtasks"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/types"
)

// errNotSubscribed guards mutations issued before a user subscription is
// open (or after sign-out).
var errNotSubscribed = errors.New("no active user subscription")

// TaskDraft carries the caller-writable fields for a new task. ID and
// AddedDate are always store-assigned.
type TaskDraft struct {
	Text      string
	Deadline  *time.Time
	Priority  models.TaskPriority
	Subtasks  []models.Subtask
	Completed bool
}

// TaskStore owns the canonical in-memory task collection for the signed-in
// user and mediates every read and write against the remote document store
// and the optional local snapshot cache.
//
// The canonical collection is always a full replacement of the last
// snapshot the backing store delivered (or the cached snapshot while the
// store is unreachable); mutations become visible only once the store
// acknowledges them with a new emission.
type TaskStore struct {
	docs  DocumentStore
	cache SnapshotCache
	limit int
	log   *slog.Logger

	mu           sync.Mutex
	userID       string
	generation   int
	tasks        []models.Task
	unsubscribe  func()
	listeners    map[int]func(models.TaskList)
	nextListener int
}

// NewTaskStore wires a TaskStore to its collaborators. cache may be nil to
// run without a durable fallback.
func NewTaskStore(docs DocumentStore, cache SnapshotCache, cfg types.SyncConfig) *TaskStore {
	return &TaskStore{
		docs:      docs,
		cache:     cache,
		limit:     cfg.EffectiveSnapshotLimit(),
		log:       slog.Default(),
		listeners: make(map[int]func(models.TaskList)),
	}
}

// OnChange registers a listener for canonical-collection replacements.
// Listeners receive defensive copies and must not retain or mutate shared
// state from them. The returned func removes the listener.
func (s *TaskStore) OnChange(fn func(models.TaskList)) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Subscribe opens the live snapshot subscription for the user, replacing
// any previous session. Before the first live emission the canonical
// collection is seeded from the cache, so a signed-in user sees their last
// known tasks even when the backing store is unreachable; in that case
// Subscribe returns a SubscriptionError and the cached state stays.
func (s *TaskStore) Subscribe(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return types.NewValidationError("user id must not be empty")
	}
	s.Unsubscribe()

	s.mu.Lock()
	s.userID = userID
	s.generation++
	gen := s.generation
	s.tasks = nil
	s.mu.Unlock()

	if s.cache != nil {
		cached, ok, err := s.cache.Get(userID)
		if err != nil {
			s.log.Warn("snapshot cache read failed", "user", userID, "error", err)
		} else if ok {
			s.log.Debug("seeded canonical collection from cache", "user", userID, "tasks", len(cached.Tasks))
			s.replaceCanonical(gen, cached)
		}
	}

	cancel, err := s.docs.Subscribe(ctx, userID, s.limit,
		func(list models.TaskList) { s.onSnapshot(gen, list) },
		func(err error) { s.onStreamError(gen, err) },
	)
	if err != nil {
		if types.IsCode(err, types.CodeSubscription) {
			return err
		}
		return types.NewSubscriptionError(err)
	}

	s.mu.Lock()
	if s.generation != gen {
		// A concurrent re-subscribe or sign-out won the race; tear this
		// stream down instead of keeping two.
		s.mu.Unlock()
		cancel()
		return nil
	}
	s.unsubscribe = cancel
	s.mu.Unlock()

	s.log.Debug("task subscription opened", "user", userID, "limit", s.limit)
	return nil
}

// Unsubscribe tears down the outstanding stream before clearing the
// canonical collection, so a late in-flight emission can never repopulate
// stale data after sign-out.
func (s *TaskStore) Unsubscribe() {
	s.mu.Lock()
	cancel := s.unsubscribe
	s.unsubscribe = nil
	s.generation++
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	s.mu.Lock()
	s.userID = ""
	s.tasks = nil
	s.mu.Unlock()
}

// onSnapshot ingests a live emission: full replacement of the canonical
// collection, best-effort cache persistence, listener fan-out.
func (s *TaskStore) onSnapshot(gen int, list models.TaskList) {
	userID, ok := s.replaceCanonical(gen, list)
	if !ok {
		return
	}
	if s.cache != nil {
		if err := s.cache.Put(userID, list); err != nil {
			s.log.Warn("snapshot cache write failed", "user", userID, "error", err)
		}
	}
}

func (s *TaskStore) onStreamError(gen int, err error) {
	s.mu.Lock()
	stale := s.generation != gen
	userID := s.userID
	s.mu.Unlock()
	if stale {
		return
	}
	// Fail visibly, keep last-good state. The canonical collection is left
	// untouched; the caller sees the error through its own channel when it
	// next writes.
	s.log.Warn("task subscription stream failed", "user", userID, "error", err)
}

// replaceCanonical swaps in a snapshot if the generation still matches and
// notifies listeners. Returns the owning user and whether the swap
// happened.
func (s *TaskStore) replaceCanonical(gen int, list models.TaskList) (string, bool) {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return "", false
	}
	tasks := make([]models.Task, len(list.Tasks))
	for i, t := range list.Tasks {
		tasks[i] = subtasks.Normalize(t)
	}
	s.tasks = tasks
	userID := s.userID
	var notify []func(models.TaskList)
	for _, fn := range s.listeners {
		notify = append(notify, fn)
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(s.Snapshot())
	}
	return userID, true
}

// Snapshot returns a defensive copy of the canonical collection.
func (s *TaskStore) Snapshot() models.TaskList {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := models.TaskList{Tasks: make([]models.Task, len(s.tasks)), TotalCount: len(s.tasks)}
	for i, t := range s.tasks {
		out.Tasks[i] = t.Clone()
	}
	return out
}

// Get returns the canonical state of one task.
func (s *TaskStore) Get(id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return models.Task{}, types.NewNotFoundError(id)
}

// UserID returns the currently subscribed user, empty when signed out.
func (s *TaskStore) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Create validates the draft and writes a new document. The task becomes
// part of the canonical collection when the backing store's next emission
// confirms it.
func (s *TaskStore) Create(ctx context.Context, draft TaskDraft) (string, error) {
	userID := s.UserID()
	if userID == "" {
		return "", types.NewWriteError("create", errNotSubscribed)
	}

	text := strings.TrimSpace(draft.Text)
	if text == "" {
		return "", types.NewValidationError("task text must not be empty")
	}
	priority := draft.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	task := subtasks.Normalize(models.Task{
		Text:      text,
		AddedDate: time.Now().UTC(),
		Deadline:  draft.Deadline,
		Priority:  priority,
		Completed: draft.Completed,
		Subtasks:  draft.Subtasks,
	})
	if err := models.ValidateStruct(task); err != nil {
		return "", types.NewValidationError("invalid task: %v", err)
	}

	id, err := s.docs.Create(ctx, userID, task)
	if err != nil {
		var te *types.TaskError
		if errors.As(err, &te) {
			return "", err
		}
		return "", types.NewWriteError("create", err)
	}
	return id, nil
}

// Update merges partial fields into an existing document. ID and AddedDate
// are immutable and refused here before the patch reaches the backend.
func (s *TaskStore) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	userID := s.UserID()
	if userID == "" {
		return types.NewWriteError("update", errNotSubscribed)
	}
	if len(patch) == 0 {
		return nil
	}
	for _, key := range []string{"id", "addedDate"} {
		if _, ok := patch[key]; ok {
			return types.NewValidationError("field '%s' is immutable", key)
		}
	}
	if err := s.docs.Update(ctx, userID, id, patch); err != nil {
		var te *types.TaskError
		if errors.As(err, &te) {
			return err
		}
		return types.NewWriteError("update", err)
	}
	return nil
}

// Remove deletes a document and returns its last-known snapshot, the value
// an undo buffer captures.
func (s *TaskStore) Remove(ctx context.Context, id string) (models.Task, error) {
	userID := s.UserID()
	if userID == "" {
		return models.Task{}, types.NewWriteError("delete", errNotSubscribed)
	}
	removed, err := s.docs.Delete(ctx, userID, id)
	if err != nil {
		var te *types.TaskError
		if errors.As(err, &te) {
			return models.Task{}, err
		}
		return models.Task{}, types.NewWriteError("delete", err)
	}
	return removed, nil
}

// ToggleCompletion flips a zero-subtask task's completion. A task with any
// subtasks is refused with LockedError: its completion is derived state,
// and the write is never attempted.
func (s *TaskStore) ToggleCompletion(ctx context.Context, id string) error {
	task, err := s.Get(id)
	if err != nil {
		return err
	}
	if len(task.Subtasks) > 0 {
		return types.NewLockedError(id)
	}
	return s.Update(ctx, id, map[string]interface{}{"completed": !task.Completed})
}

// SaveSubtasks persists a reconciled task value produced by the subtasks
// package: the subtask sequence plus the derived completion flag in one
// patch. Rapid consecutive saves for the same task should go through a
// Coalescer rather than calling this directly.
func (s *TaskStore) SaveSubtasks(ctx context.Context, task models.Task) error {
	return s.Update(ctx, task.ID, map[string]interface{}{
		"subtasks":  task.Subtasks,
		"completed": task.Completed,
	})
}
