package store

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/types"
)

func newFileStore(t *testing.T, format string) *FileDocumentStore {
	t.Helper()
	s, err := NewFileDocumentStore(afero.NewMemMapFs(), "data", format)
	if err != nil {
		t.Fatalf("NewFileDocumentStore failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFileDocumentStore_CRUD(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			s := newFileStore(t, format)
			ctx := context.Background()

			task := *models.NewTask("", "persisted task")
			id, err := s.Create(ctx, testUser, task)
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			if err := s.Update(ctx, testUser, id, map[string]interface{}{"text": "renamed"}); err != nil {
				t.Fatalf("Update failed: %v", err)
			}

			removed, err := s.Delete(ctx, testUser, id)
			if err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if removed.Text != "renamed" {
				t.Errorf("Delete should return last-known state, got %q", removed.Text)
			}

			if _, err := s.Delete(ctx, testUser, id); !types.IsCode(err, types.CodeNotFound) {
				t.Errorf("second delete: want not-found, got %v", err)
			}
		})
	}
}

func TestFileDocumentStore_SubscriptionEmitsOnWrite(t *testing.T) {
	s := newFileStore(t, FormatJSON)
	ctx := context.Background()

	var snapshots []models.TaskList
	cancel, err := s.Subscribe(ctx, testUser, 100, func(list models.TaskList) {
		snapshots = append(snapshots, list)
	}, nil)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer cancel()

	if len(snapshots) != 1 || len(snapshots[0].Tasks) != 0 {
		t.Fatalf("want one empty initial snapshot, got %+v", snapshots)
	}

	if _, err := s.Create(ctx, testUser, *models.NewTask("", "live")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	last := snapshots[len(snapshots)-1]
	if len(last.Tasks) != 1 || last.Tasks[0].Text != "live" {
		t.Errorf("write should re-emit, last snapshot = %+v", last.Tasks)
	}

	cancel()
	before := len(snapshots)
	if _, err := s.Create(ctx, testUser, *models.NewTask("", "after cancel")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(snapshots) != before {
		t.Error("canceled subscription must not receive emissions")
	}
}

func TestFileDocumentStore_SubscriptionIsPerUser(t *testing.T) {
	s := newFileStore(t, FormatJSON)
	ctx := context.Background()

	var aliceEmissions int
	cancel, err := s.Subscribe(ctx, "alice", 100, func(models.TaskList) { aliceEmissions++ }, nil)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer cancel()

	if _, err := s.Create(ctx, "bob", *models.NewTask("", "bob's task")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if aliceEmissions != 1 {
		t.Errorf("bob's writes must not re-emit to alice, emissions = %d", aliceEmissions)
	}
}

func TestFileDocumentStore_OrderingAndLimit(t *testing.T) {
	s := newFileStore(t, FormatJSON)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		task := *models.NewTask("", "task")
		task.AddedDate = base.Add(time.Duration(i) * time.Minute)
		task.Text = task.Text + "-" + string(rune('a'+i))
		if _, err := s.Create(ctx, testUser, task); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	var got models.TaskList
	cancel, err := s.Subscribe(ctx, testUser, 3, func(list models.TaskList) { got = list }, nil)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer cancel()

	if len(got.Tasks) != 3 {
		t.Fatalf("limit 3: got %d tasks", len(got.Tasks))
	}
	for i, want := range []string{"task-e", "task-d", "task-c"} {
		if got.Tasks[i].Text != want {
			t.Errorf("position %d = %q, want %q", i, got.Tasks[i].Text, want)
		}
	}
}

func TestFileDocumentStore_PersistsAcrossReopen(t *testing.T) {
	fs := afero.NewMemMapFs()
	ctx := context.Background()

	s1, err := NewFileDocumentStore(fs, "data", FormatJSON)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	id, err := s1.Create(ctx, testUser, *models.NewTask("", "survives"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_ = s1.Close()

	s2, err := NewFileDocumentStore(fs, "data", FormatJSON)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = s2.Close() }()

	var got models.TaskList
	cancel, err := s2.Subscribe(ctx, testUser, 100, func(list models.TaskList) { got = list }, nil)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer cancel()

	if len(got.Tasks) != 1 || got.Tasks[0].ID != id {
		t.Errorf("reopened store should see the persisted document, got %+v", got.Tasks)
	}
}

func TestFileDocumentStore_CloseTwice(t *testing.T) {
	s, err := NewFileDocumentStore(afero.NewMemMapFs(), "data", FormatJSON)
	if err != nil {
		t.Fatalf("NewFileDocumentStore failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}

func TestFileDocumentStore_RejectsUnknownFormat(t *testing.T) {
	if _, err := NewFileDocumentStore(afero.NewMemMapFs(), "data", "toml"); !types.IsCode(err, types.CodeValidation) {
		t.Errorf("want validation error for unsupported format, got %v", err)
	}
}
