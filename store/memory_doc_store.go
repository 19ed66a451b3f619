package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/types"
)

// MemoryDocumentStore implements DocumentStore entirely in memory. It is
// the default backend for demos and the reference implementation for the
// subscription contract in tests.
type MemoryDocumentStore struct {
	mu      sync.Mutex
	users   map[string]map[string]models.Task
	subs    map[int]*memSubscription
	nextSub int
	closed  bool
}

type memSubscription struct {
	userID     string
	limit      int
	onSnapshot func(models.TaskList)
	canceled   bool
}

// NewMemoryDocumentStore creates an empty in-memory document store.
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		users: make(map[string]map[string]models.Task),
		subs:  make(map[int]*memSubscription),
	}
}

// Subscribe registers the callbacks and delivers the initial snapshot
// before returning. Every subsequent committed write re-emits.
func (s *MemoryDocumentStore) Subscribe(ctx context.Context, userID string, limit int, onSnapshot func(models.TaskList), onError func(error)) (func(), error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, types.NewSubscriptionError(context.Canceled)
	}
	id := s.nextSub
	s.nextSub++
	sub := &memSubscription{userID: userID, limit: limit, onSnapshot: onSnapshot}
	s.subs[id] = sub
	initial := s.snapshotLocked(userID, limit)
	s.mu.Unlock()

	onSnapshot(initial)

	cancel := func() {
		s.mu.Lock()
		sub.canceled = true
		delete(s.subs, id)
		s.mu.Unlock()
	}
	return cancel, nil
}

// Create adds a document and notifies subscribers.
func (s *MemoryDocumentStore) Create(ctx context.Context, userID string, task models.Task) (string, error) {
	s.mu.Lock()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	docs := s.users[userID]
	if docs == nil {
		docs = make(map[string]models.Task)
		s.users[userID] = docs
	}
	docs[task.ID] = task.Clone()
	id := task.ID
	s.mu.Unlock()

	s.notify(userID)
	return id, nil
}

// Update merges the patch into an existing document and notifies
// subscribers.
func (s *MemoryDocumentStore) Update(ctx context.Context, userID, id string, patch map[string]interface{}) error {
	s.mu.Lock()
	docs := s.users[userID]
	task, ok := docs[id]
	if !ok {
		s.mu.Unlock()
		return types.NewNotFoundError(id)
	}
	updated := task.Clone()
	if err := applyPatch(&updated, patch); err != nil {
		s.mu.Unlock()
		return err
	}
	docs[id] = updated
	s.mu.Unlock()

	s.notify(userID)
	return nil
}

// Delete removes a document, returning its last state, and notifies
// subscribers.
func (s *MemoryDocumentStore) Delete(ctx context.Context, userID, id string) (models.Task, error) {
	s.mu.Lock()
	docs := s.users[userID]
	task, ok := docs[id]
	if !ok {
		s.mu.Unlock()
		return models.Task{}, types.NewNotFoundError(id)
	}
	delete(docs, id)
	s.mu.Unlock()

	s.notify(userID)
	return task, nil
}

// Close drops all subscriptions and documents.
func (s *MemoryDocumentStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.subs = make(map[int]*memSubscription)
	s.users = make(map[string]map[string]models.Task)
	s.mu.Unlock()
	return nil
}

func (s *MemoryDocumentStore) notify(userID string) {
	s.mu.Lock()
	type pending struct {
		fn   func(models.TaskList)
		list models.TaskList
	}
	var emissions []pending
	for _, sub := range s.subs {
		if sub.canceled || sub.userID != userID {
			continue
		}
		emissions = append(emissions, pending{fn: sub.onSnapshot, list: s.snapshotLocked(userID, sub.limit)})
	}
	s.mu.Unlock()

	for _, e := range emissions {
		e.fn(e.list)
	}
}

// snapshotLocked builds the ordered, bounded snapshot for a user. Ties on
// AddedDate break by ascending ID, mirroring document-ID tie-breaks in
// hosted stores.
func (s *MemoryDocumentStore) snapshotLocked(userID string, limit int) models.TaskList {
	docs := s.users[userID]
	tasks := make([]models.Task, 0, len(docs))
	for _, t := range docs {
		tasks = append(tasks, t.Clone())
	}
	sortSnapshot(tasks)
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return models.TaskList{Tasks: tasks, TotalCount: len(tasks)}
}

// sortSnapshot orders tasks by AddedDate descending, ID ascending on ties.
func sortSnapshot(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].AddedDate.Equal(tasks[j].AddedDate) {
			return tasks[i].AddedDate.After(tasks[j].AddedDate)
		}
		return tasks[i].ID < tasks[j].ID
	})
}
