package store

import (
	"path/filepath"
	"testing"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
)

func newTestCache(t *testing.T) *SQLiteSnapshotCache {
	t.Helper()
	cache, err := NewSQLiteSnapshotCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewSQLiteSnapshotCache failed: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestSQLiteSnapshotCache_RoundTrip(t *testing.T) {
	cache := newTestCache(t)

	task := *models.NewTask("", "cached task")
	task.Subtasks = []models.Subtask{{Text: "step one"}, {Text: "step two", Completed: true}}
	want := models.TaskList{Tasks: []models.Task{task}, TotalCount: 1}

	if err := cache.Put(testUser, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := cache.Get(testUser)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Get: snapshot should be present after Put")
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Text != "cached task" {
		t.Errorf("round trip mangled tasks: %+v", got.Tasks)
	}
	if len(got.Tasks[0].Subtasks) != 2 || !got.Tasks[0].Subtasks[1].Completed {
		t.Errorf("round trip mangled subtasks: %+v", got.Tasks[0].Subtasks)
	}
}

func TestSQLiteSnapshotCache_MissingUser(t *testing.T) {
	cache := newTestCache(t)

	_, ok, err := cache.Get("nobody")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Get should report no snapshot for an unknown user")
	}
}

func TestSQLiteSnapshotCache_PutOverwrites(t *testing.T) {
	cache := newTestCache(t)

	first := models.TaskList{Tasks: []models.Task{*models.NewTask("", "old")}, TotalCount: 1}
	second := models.TaskList{Tasks: []models.Task{*models.NewTask("", "a"), *models.NewTask("", "b")}, TotalCount: 2}

	if err := cache.Put(testUser, first); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := cache.Put(testUser, second); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	got, ok, err := cache.Get(testUser)
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if len(got.Tasks) != 2 {
		t.Errorf("Put should replace the previous snapshot, got %d tasks", len(got.Tasks))
	}
}

func TestSQLiteSnapshotCache_Delete(t *testing.T) {
	cache := newTestCache(t)

	list := models.TaskList{Tasks: []models.Task{*models.NewTask("", "gone soon")}, TotalCount: 1}
	if err := cache.Put(testUser, list); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := cache.Delete(testUser); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, ok, err := cache.Get(testUser)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("snapshot should be absent after Delete")
	}
	if err := cache.Delete(testUser); err != nil {
		t.Errorf("Delete of an absent row should be a no-op, got %v", err)
	}
}
