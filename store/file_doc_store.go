package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/types"
)

const (
	// FormatJSON and FormatYAML are the supported document-file encodings.
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FileDocumentStore implements DocumentStore on a filesystem: one document
// file per user under a data directory, written atomically via a temp file
// and rename. On a real filesystem the directory is additionally watched
// with fsnotify so edits made by other processes re-emit snapshots, the
// file analogue of a remote change event.
type FileDocumentStore struct {
	fs     afero.Fs
	dir    string
	format string

	mu      sync.Mutex
	subs    map[int]*fileSubscription
	nextSub int

	watcher   *fsnotify.Watcher
	done      chan struct{}
	closeOnce sync.Once
}

type fileSubscription struct {
	userID     string
	limit      int
	onSnapshot func(models.TaskList)
	onError    func(error)
	canceled   bool
}

// NewFileDocumentStore creates the data directory if needed and, when fsys
// is the OS filesystem, starts the external-edit watcher.
func NewFileDocumentStore(fsys afero.Fs, dir, format string) (*FileDocumentStore, error) {
	switch format {
	case "":
		format = FormatJSON
	case FormatJSON, FormatYAML:
	default:
		return nil, types.NewValidationError("unsupported document format %q (supported: json, yaml)", format)
	}
	if dir == "" {
		return nil, types.NewValidationError("document directory must not be empty")
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create document directory %s: %w", dir, err)
	}

	s := &FileDocumentStore{
		fs:     fsys,
		dir:    dir,
		format: format,
		subs:   make(map[int]*fileSubscription),
		done:   make(chan struct{}),
	}

	if _, ok := fsys.(*afero.OsFs); ok {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			slog.Warn("file watcher unavailable, external edits will not re-emit", "error", err)
		} else if err := watcher.Add(dir); err != nil {
			slog.Warn("file watcher could not watch data directory", "dir", dir, "error", err)
			_ = watcher.Close()
		} else {
			s.watcher = watcher
			go s.watchLoop()
		}
	}

	return s, nil
}

// watchLoop re-emits snapshots for document files changed outside this
// process.
func (s *FileDocumentStore) watchLoop() {
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			userID, ok := s.userForPath(ev.Name)
			if !ok {
				continue
			}
			s.notify(userID)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("file watcher error", "error", err)
		}
	}
}

func (s *FileDocumentStore) userForPath(path string) (string, bool) {
	base := filepath.Base(path)
	suffix := "." + s.format
	if !strings.HasSuffix(base, suffix) {
		return "", false
	}
	user := strings.TrimSuffix(base, suffix)
	if user == "" || strings.HasSuffix(user, ".tmp") {
		return "", false
	}
	return user, true
}

func (s *FileDocumentStore) path(userID string) string {
	return filepath.Join(s.dir, userID+"."+s.format)
}

// Subscribe delivers the current file contents immediately and after every
// committed write for the user.
func (s *FileDocumentStore) Subscribe(ctx context.Context, userID string, limit int, onSnapshot func(models.TaskList), onError func(error)) (func(), error) {
	s.mu.Lock()
	initial, err := s.loadLocked(userID)
	if err != nil {
		s.mu.Unlock()
		return nil, types.NewSubscriptionError(err)
	}
	id := s.nextSub
	s.nextSub++
	sub := &fileSubscription{userID: userID, limit: limit, onSnapshot: onSnapshot, onError: onError}
	s.subs[id] = sub
	s.mu.Unlock()

	onSnapshot(boundSnapshot(initial, limit))

	cancel := func() {
		s.mu.Lock()
		sub.canceled = true
		delete(s.subs, id)
		s.mu.Unlock()
	}
	return cancel, nil
}

// Create adds a document and notifies subscribers.
func (s *FileDocumentStore) Create(ctx context.Context, userID string, task models.Task) (string, error) {
	s.mu.Lock()
	tasks, err := s.loadLocked(userID)
	if err != nil {
		s.mu.Unlock()
		return "", types.NewWriteError("create", err)
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	tasks = append(tasks, task.Clone())
	if err := s.saveLocked(userID, tasks); err != nil {
		s.mu.Unlock()
		return "", types.NewWriteError("create", err)
	}
	s.mu.Unlock()

	s.notify(userID)
	return task.ID, nil
}

// Update merges the patch into an existing document and notifies
// subscribers.
func (s *FileDocumentStore) Update(ctx context.Context, userID, id string, patch map[string]interface{}) error {
	s.mu.Lock()
	tasks, err := s.loadLocked(userID)
	if err != nil {
		s.mu.Unlock()
		return types.NewWriteError("update", err)
	}
	idx := -1
	for i := range tasks {
		if tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return types.NewNotFoundError(id)
	}
	updated := tasks[idx].Clone()
	if err := applyPatch(&updated, patch); err != nil {
		s.mu.Unlock()
		return err
	}
	tasks[idx] = updated
	if err := s.saveLocked(userID, tasks); err != nil {
		s.mu.Unlock()
		return types.NewWriteError("update", err)
	}
	s.mu.Unlock()

	s.notify(userID)
	return nil
}

// Delete removes a document, returning its last state, and notifies
// subscribers.
func (s *FileDocumentStore) Delete(ctx context.Context, userID, id string) (models.Task, error) {
	s.mu.Lock()
	tasks, err := s.loadLocked(userID)
	if err != nil {
		s.mu.Unlock()
		return models.Task{}, types.NewWriteError("delete", err)
	}
	idx := -1
	for i := range tasks {
		if tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return models.Task{}, types.NewNotFoundError(id)
	}
	removed := tasks[idx]
	tasks = append(tasks[:idx], tasks[idx+1:]...)
	if err := s.saveLocked(userID, tasks); err != nil {
		s.mu.Unlock()
		return models.Task{}, types.NewWriteError("delete", err)
	}
	s.mu.Unlock()

	s.notify(userID)
	return removed, nil
}

// Close stops the watcher and drops all subscriptions. Safe to call more
// than once.
func (s *FileDocumentStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.subs = make(map[int]*fileSubscription)
		s.mu.Unlock()

		close(s.done)
		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}

func (s *FileDocumentStore) notify(userID string) {
	s.mu.Lock()
	tasks, err := s.loadLocked(userID)
	type pending struct {
		snap  func(models.TaskList)
		fail  func(error)
		list  models.TaskList
		isErr bool
	}
	var emissions []pending
	for _, sub := range s.subs {
		if sub.canceled || sub.userID != userID {
			continue
		}
		if err != nil {
			emissions = append(emissions, pending{fail: sub.onError, isErr: true})
			continue
		}
		emissions = append(emissions, pending{snap: sub.onSnapshot, list: boundSnapshot(tasks, sub.limit)})
	}
	s.mu.Unlock()

	for _, e := range emissions {
		if e.isErr {
			if e.fail != nil {
				e.fail(types.NewSubscriptionError(err))
			}
			continue
		}
		e.snap(e.list)
	}
}

// loadLocked reads and decodes the user's document file. A missing file is
// an empty collection, not an error.
func (s *FileDocumentStore) loadLocked(userID string) ([]models.Task, error) {
	data, err := afero.ReadFile(s.fs, s.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read document file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var list models.TaskList
	switch s.format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("unmarshal YAML document file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("unmarshal JSON document file: %w", err)
		}
	}
	return list.Tasks, nil
}

// saveLocked encodes and atomically replaces the user's document file.
func (s *FileDocumentStore) saveLocked(userID string, tasks []models.Task) error {
	list := models.TaskList{Tasks: tasks, TotalCount: len(tasks)}
	var data []byte
	var err error
	switch s.format {
	case FormatYAML:
		data, err = yaml.Marshal(list)
	default:
		data, err = json.MarshalIndent(list, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal document file: %w", err)
	}

	path := s.path(userID)
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temporary document file: %w", err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace document file: %w", err)
	}
	return nil
}

// boundSnapshot orders and limits a raw document list into a snapshot.
func boundSnapshot(tasks []models.Task, limit int) models.TaskList {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	sortSnapshot(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return models.TaskList{Tasks: out, TotalCount: len(out)}
}
