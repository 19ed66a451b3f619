package store

import (
	"context"
	"testing"
	"time"

	"github.com/ChaturnaK/Firebase-To-do-List-PWA/models"
	"github.com/ChaturnaK/Firebase-To-do-List-PWA/types"
)

func TestUndoBuffer_RestoreRecreatesTask(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	deadline := time.Now().UTC().Add(24 * time.Hour)
	id, err := s.Create(ctx, TaskDraft{
		Text:     "Buy milk",
		Deadline: &deadline,
		Priority: models.PriorityHigh,
		Subtasks: []models.Subtask{{Text: "2%"}, {Text: "eggs"}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	buf := NewUndoBuffer()
	removed, err := s.Remove(ctx, id)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	buf.Capture(removed, id)

	restoredID, err := buf.Restore(ctx, s)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restoredID == id {
		t.Error("restored task is not guaranteed the original ID; memory store must assign a fresh one")
	}

	restored, err := s.Get(restoredID)
	if err != nil {
		t.Fatalf("restored task not in canonical collection: %v", err)
	}
	if restored.Text != "Buy milk" || restored.Priority != models.PriorityHigh {
		t.Errorf("restored fields mismatch: %+v", restored)
	}
	if restored.Deadline == nil || !restored.Deadline.Equal(deadline) {
		t.Errorf("restored deadline mismatch: %v", restored.Deadline)
	}
	if len(restored.Subtasks) != 2 {
		t.Errorf("restored subtasks mismatch: %+v", restored.Subtasks)
	}
}

func TestUndoBuffer_SingleUse(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id, _ := s.Create(ctx, TaskDraft{Text: "once"})
	removed, _ := s.Remove(ctx, id)

	buf := NewUndoBuffer()
	buf.Capture(removed, id)

	if _, err := buf.Restore(ctx, s); err != nil {
		t.Fatalf("first restore failed: %v", err)
	}
	if _, err := buf.Restore(ctx, s); !types.IsCode(err, types.CodeEmptyBuffer) {
		t.Errorf("second restore: want empty-buffer error, got %v", err)
	}
}

func TestUndoBuffer_EmptyRestore(t *testing.T) {
	s, _ := newTestStore(t)
	buf := NewUndoBuffer()
	if _, err := buf.Restore(context.Background(), s); !types.IsCode(err, types.CodeEmptyBuffer) {
		t.Errorf("want empty-buffer error, got %v", err)
	}
}

func TestUndoBuffer_CaptureOverwrites(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	idA, _ := s.Create(ctx, TaskDraft{Text: "first deleted"})
	idB, _ := s.Create(ctx, TaskDraft{Text: "second deleted"})

	buf := NewUndoBuffer()
	removedA, _ := s.Remove(ctx, idA)
	buf.Capture(removedA, idA)
	removedB, _ := s.Remove(ctx, idB)
	buf.Capture(removedB, idB)

	restoredID, err := buf.Restore(ctx, s)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	restored, _ := s.Get(restoredID)
	if restored.Text != "second deleted" {
		t.Errorf("only the most recent deletion is restorable, got %q", restored.Text)
	}
}

func TestUndoBuffer_HeldReportsPreDeleteID(t *testing.T) {
	buf := NewUndoBuffer()
	buf.Capture(models.Task{Text: "gone"}, "doc-42")

	task, id, ok := buf.Held()
	if !ok {
		t.Fatal("Held should report the captured task")
	}
	if id != "doc-42" {
		t.Errorf("id = %q, want the pre-delete identifier", id)
	}
	if task.Text != "gone" {
		t.Errorf("task = %q, want the captured value", task.Text)
	}
}

func TestUndoBuffer_KeepsValueOnFailedRestore(t *testing.T) {
	docs := NewMemoryDocumentStore()
	s := NewTaskStore(docs, nil, types.SyncConfig{})
	// Never subscribed: writes are refused, restore must fail but keep the
	// captured value for a retry.
	buf := NewUndoBuffer()
	buf.Capture(models.Task{Text: "precious"}, "old-id")

	if _, err := buf.Restore(context.Background(), s); !types.IsCode(err, types.CodeWrite) {
		t.Fatalf("want write error, got %v", err)
	}
	if _, _, ok := buf.Held(); !ok {
		t.Error("failed restore must not consume the buffer")
	}
}
